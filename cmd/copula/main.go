package main

import (
	"os"

	"github.com/uyouii/copula-algorithms/cmd/copula/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
