package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/uyouii/copula-algorithms/model"
	"github.com/uyouii/copula-algorithms/utils"
)

type evalResult struct {
	Point    model.Point `yaml:"point"`
	PDF      float64     `yaml:"pdf"`
	LogPDF   float64     `yaml:"log_pdf"`
	CDF      float64     `yaml:"cdf"`
	Survival float64     `yaml:"survival"`
	DDF      model.Point `yaml:"ddf"`
	DDFFD    model.Point `yaml:"ddf_finite_difference"`
}

func newEvalCmd(opts *rootOptions) *cobra.Command {
	var point string
	cmd := &cobra.Command{
		Use:     "eval",
		Short:   "Evaluate PDF, CDF, survival and DDF at a point",
		Example: `  copula eval --params copula.yaml --point 0.2,0.2,0.2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := utils.ParseFloats(point)
			if err != nil {
				return fmt.Errorf("--point: %w", err)
			}
			d, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}

			res := evalResult{Point: x}
			if res.PDF, err = d.PDF(x); err != nil {
				return err
			}
			if res.LogPDF, err = d.LogPDF(x); err != nil {
				return err
			}
			if res.CDF, err = d.CDF(x); err != nil {
				return err
			}
			if res.Survival, err = d.SurvivalFunction(x); err != nil {
				return err
			}
			if res.DDF, err = d.DDF(x); err != nil {
				return err
			}
			if res.DDFFD, err = d.FiniteDifferenceDDF(x); err != nil {
				return err
			}
			return printYAML(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVar(&point, "point", "", "comma separated coordinates")
	_ = cmd.MarkFlagRequired("point")
	return cmd
}
