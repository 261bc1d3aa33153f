package utils

import (
	"context"
	"runtime"

	"go.uber.org/zap"
)

func init() {
	zap.ReplaceGlobals(zap.Must(zap.NewProduction()))
}

func GetLogger(ctx context.Context) *zap.Logger {
	return zap.L()
}

// SetVerbose replaces the global logger with a development logger that
// emits debug entries.
func SetVerbose(verbose bool) {
	if verbose {
		zap.ReplaceGlobals(zap.Must(zap.NewDevelopment()))
		return
	}
	zap.ReplaceGlobals(zap.Must(zap.NewProduction()))
}

func GetPanicInfo() string {
	buf := make([]byte, 16384)
	l := runtime.Stack(buf, false)
	return string(buf[:l])
}
