package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/uyouii/copula-algorithms/utils"
)

func newMarginalCmd(opts *rootOptions) *cobra.Command {
	var indices string
	cmd := &cobra.Command{
		Use:     "marginal",
		Short:   "Print the parameter file of a marginal distribution",
		Example: `  copula marginal --params copula.yaml --indices 1,0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ind, err := utils.ParseInts(indices)
			if err != nil {
				return fmt.Errorf("--indices: %w", err)
			}
			d, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			m, err := d.Marginal(ind...)
			if err != nil {
				return err
			}
			return printYAML(cmd.OutOrStdout(), m.Parameters())
		},
	}
	cmd.Flags().StringVar(&indices, "indices", "", "comma separated component indices")
	return cmd
}
