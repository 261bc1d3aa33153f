// Package cmd is the copula command line: it loads a distribution from a
// YAML parameter file and prints the results of the evaluation core as YAML.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/uyouii/copula-algorithms/config"
	"github.com/uyouii/copula-algorithms/distribution"
	"github.com/uyouii/copula-algorithms/metrics"
	"github.com/uyouii/copula-algorithms/model"
	"github.com/uyouii/copula-algorithms/utils"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type rootOptions struct {
	paramsFile  string
	cfgFile     string
	verbose     bool
	showMetrics bool

	registry *prometheus.Registry
}

// Execute runs the root command. A panic inside a command is logged with
// its stack and reported as an error.
func Execute() (err error) {
	defer func() {
		if r := recover(); r != nil {
			utils.GetLogger(context.Background()).Error("command panicked",
				zap.Any("panic", r), zap.String("stack", utils.GetPanicInfo()))
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return NewRootCommand().Execute()
}

func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:   "copula",
		Short: "Evaluate multivariate distributions and copulas",
		Long: `copula evaluates the distribution described by a YAML parameter file.

Families: NormalCopula, IndependentCopula, Normal, KernelSmoothing.

Example parameter file:
  family: NormalCopula
  correlation:
    - [1, 0.25, 0]
    - [0.25, 1, 0.25]
    - [0, 0.25, 1]`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			utils.SetVerbose(opts.verbose)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.showMetrics {
				opts.logMetrics(cmd.Context())
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.paramsFile, "params", "", "YAML parameter file of the distribution")
	flags.StringVar(&opts.cfgFile, "config", "", "YAML numerical settings file (default: built-in settings)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	flags.BoolVar(&opts.showMetrics, "metrics", false, "log solver metrics on exit")

	rootCmd.AddCommand(
		newDescribeCmd(opts),
		newEvalCmd(opts),
		newQuantileCmd(opts, false),
		newQuantileCmd(opts, true),
		newSampleCmd(opts),
		newRegionCmd(opts),
		newMarginalCmd(opts),
		newSpearmanCmd(opts),
	)
	return rootCmd
}

func (o *rootOptions) readParameters() (model.ParameterSet, error) {
	if o.paramsFile == "" {
		return model.ParameterSet{}, fmt.Errorf("--params is required")
	}
	data, err := os.ReadFile(o.paramsFile)
	if err != nil {
		return model.ParameterSet{}, err
	}
	return model.ParseParameterSet(data)
}

// load builds the distribution of the parameter file with the configured
// settings and solver metrics.
func (o *rootOptions) load(ctx context.Context) (*distribution.Distribution, error) {
	logger := utils.GetLogger(ctx)

	settings := config.Default()
	if o.cfgFile != "" {
		var err error
		if settings, err = config.Load(o.cfgFile); err != nil {
			logger.Error("load config failed", zap.String("file", o.cfgFile), zap.Error(err))
			return nil, err
		}
	}

	ps, err := o.readParameters()
	if err != nil {
		logger.Error("read parameters failed", zap.String("file", o.paramsFile), zap.Error(err))
		return nil, err
	}

	o.registry = prometheus.NewRegistry()
	m, err := metrics.NewSolverMetrics(o.registry)
	if err != nil {
		return nil, err
	}

	d, err := distribution.FromParameters(ps,
		distribution.WithSettings(settings),
		distribution.WithLogger(logger),
		distribution.WithMetrics(m))
	if err != nil {
		logger.Error("build distribution failed", zap.String("family", ps.Family), zap.Error(err))
		return nil, err
	}
	logger.Debug("distribution loaded", zap.String("family", d.Name()), zap.Int("dimension", d.Dimension()))
	return d, nil
}

func (o *rootOptions) logMetrics(ctx context.Context) {
	if o.registry == nil {
		return
	}
	logger := utils.GetLogger(ctx)
	families, err := o.registry.Gather()
	if err != nil {
		logger.Error("gather metrics failed", zap.Error(err))
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			fields := []zap.Field{zap.String("name", mf.GetName())}
			for _, l := range m.GetLabel() {
				fields = append(fields, zap.String(l.GetName(), l.GetValue()))
			}
			if h := m.GetHistogram(); h != nil {
				fields = append(fields, zap.Uint64("count", h.GetSampleCount()), zap.Float64("sum", h.GetSampleSum()))
			}
			if c := m.GetCounter(); c != nil {
				fields = append(fields, zap.Float64("value", c.GetValue()))
			}
			logger.Info("solver metric", fields...)
		}
	}
}

func printYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
