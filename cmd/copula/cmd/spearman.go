package cmd

import (
	"github.com/spf13/cobra"
	"github.com/uyouii/copula-algorithms/correlation"
	"github.com/uyouii/copula-algorithms/distribution"
	"github.com/uyouii/copula-algorithms/model"
	"github.com/uyouii/copula-algorithms/utils"
	"go.uber.org/zap"
)

func newSpearmanCmd(opts *rootOptions) *cobra.Command {
	var kendall bool
	cmd := &cobra.Command{
		Use:   "spearman",
		Short: "Normal copula parameters from a rank correlation matrix",
		Long: `Reads the correlation rows of the parameter file as a Spearman (or,
with --kendall, Kendall) matrix and prints the parameter file of the normal
copula with that rank correlation.`,
		Example: `  copula spearman --params ranks.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := utils.GetLogger(cmd.Context())
			ps, err := opts.readParameters()
			if err != nil {
				return err
			}
			ranks, err := model.NewCorrelationMatrixFromRows(ps.Correlation)
			if err != nil {
				return err
			}

			var r *model.CorrelationMatrix
			if kendall {
				r, err = correlation.NormalCorrelationFromKendall(ranks)
			} else {
				r, err = correlation.NormalCorrelationFromSpearman(ranks)
			}
			if err != nil {
				logger.Error("convert rank correlation failed", zap.Bool("kendall", kendall), zap.Error(err))
				return err
			}
			return printYAML(cmd.OutOrStdout(), model.ParameterSet{
				Family:      distribution.NormalCopulaName,
				Dimension:   r.Dimension(),
				Correlation: r.Rows(),
			})
		},
	}
	cmd.Flags().BoolVar(&kendall, "kendall", false, "the matrix holds Kendall's tau")
	return cmd
}
