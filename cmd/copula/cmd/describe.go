package cmd

import (
	"github.com/spf13/cobra"
	"github.com/uyouii/copula-algorithms/model"
)

type description struct {
	Family              string      `yaml:"family"`
	Dimension           int         `yaml:"dimension"`
	Elliptical          bool        `yaml:"elliptical"`
	EllipticalCopula    bool        `yaml:"elliptical_copula"`
	IndependentCopula   bool        `yaml:"independent_copula"`
	Mean                model.Point `yaml:"mean"`
	Covariance          [][]float64 `yaml:"covariance"`
	Correlation         [][]float64 `yaml:"correlation"`
	SpearmanCorrelation [][]float64 `yaml:"spearman"`
	KendallTau          [][]float64 `yaml:"kendall"`
	RangeLower          model.Point `yaml:"range_lower"`
	RangeUpper          model.Point `yaml:"range_upper"`
}

func newDescribeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "describe",
		Short:   "Print predicates, moments and dependence measures",
		Example: `  copula describe --params copula.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			cov := d.Covariance()
			n := d.Dimension()
			rows := make([][]float64, n)
			for i := range rows {
				rows[i] = make([]float64, n)
				for j := range rows[i] {
					rows[i][j] = cov.At(i, j)
				}
			}
			r := d.Range()
			return printYAML(cmd.OutOrStdout(), description{
				Family:              d.Name(),
				Dimension:           n,
				Elliptical:          d.IsElliptical(),
				EllipticalCopula:    d.HasEllipticalCopula(),
				IndependentCopula:   d.HasIndependentCopula(),
				Mean:                d.Mean(),
				Covariance:          rows,
				Correlation:         d.Correlation().Rows(),
				SpearmanCorrelation: d.SpearmanCorrelation().Rows(),
				KendallTau:          d.KendallTau().Rows(),
				RangeLower:          r.Lower,
				RangeUpper:          r.Upper,
			})
		},
	}
}
