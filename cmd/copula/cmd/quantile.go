package cmd

import (
	"github.com/spf13/cobra"
	"github.com/uyouii/copula-algorithms/model"
)

type quantileResult struct {
	P     float64     `yaml:"p"`
	Point model.Point `yaml:"point"`
	// CDF, or survival for the inverse survival function, at Point
	Check float64 `yaml:"check"`
}

// newQuantileCmd builds "quantile", or "survival-quantile" when survival
// is set.
func newQuantileCmd(opts *rootOptions, survival bool) *cobra.Command {
	var p float64
	cmd := &cobra.Command{
		Use:     "quantile",
		Short:   "Point x with CDF(x) = p (equal marginal probabilities)",
		Example: `  copula quantile --params copula.yaml --p 0.5`,
	}
	if survival {
		cmd.Use = "survival-quantile"
		cmd.Short = "Point x with SurvivalFunction(x) = p"
		cmd.Example = `  copula survival-quantile --params copula.yaml --p 0.95`
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		d, err := opts.load(cmd.Context())
		if err != nil {
			return err
		}
		res := quantileResult{P: p}
		if survival {
			if res.Point, err = d.InverseSurvivalFunction(p); err != nil {
				return err
			}
			res.Check, err = d.SurvivalFunction(res.Point)
		} else {
			if res.Point, err = d.Quantile(p); err != nil {
				return err
			}
			res.Check, err = d.CDF(res.Point)
		}
		if err != nil {
			return err
		}
		return printYAML(cmd.OutOrStdout(), res)
	}
	cmd.Flags().Float64Var(&p, "p", 0.5, "probability level in (0, 1)")
	return cmd
}
