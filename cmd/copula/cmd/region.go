package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/uyouii/copula-algorithms/distribution"
	"github.com/uyouii/copula-algorithms/model"
)

type intervalOutput struct {
	Kind                string      `yaml:"kind"`
	Lower               model.Point `yaml:"lower"`
	Upper               model.Point `yaml:"upper"`
	MarginalProbability float64     `yaml:"marginal_probability"`
	Coverage            float64     `yaml:"coverage"`
}

type levelSetOutput struct {
	Kind      string  `yaml:"kind"`
	LevelSet  string  `yaml:"level_set"`
	Threshold float64 `yaml:"threshold"`
	Coverage  float64 `yaml:"coverage"`
}

const (
	regionMinimumVolume = "minimum-volume"
	regionLevelSet      = "level-set"
	regionBilateral     = "bilateral"
	regionLower         = "lower"
	regionUpper         = "upper"
)

func newRegionCmd(opts *rootOptions) *cobra.Command {
	var (
		p    float64
		kind string
	)
	cmd := &cobra.Command{
		Use:   "region",
		Short: "Confidence region of probability p (dimension <= 2)",
		Long: `Builds a confidence region of probability p. Kinds:
  minimum-volume  box made of the shortest marginal intervals
  level-set       minimum volume density level set
  bilateral       box with equal tails in every marginal
  lower, upper    one-sided boxes`,
		Example: `  copula region --params copula.yaml --p 0.95 --kind bilateral`,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}

			var res distribution.IntervalResult
			switch kind {
			case regionLevelSet:
				ls, err := d.MinimumVolumeLevelSet(p)
				if err != nil {
					return err
				}
				return printYAML(cmd.OutOrStdout(), levelSetOutput{
					Kind:      kind,
					LevelSet:  ls.LevelSet.String(),
					Threshold: ls.Threshold,
					Coverage:  ls.Coverage,
				})
			case regionMinimumVolume:
				res, err = d.MinimumVolumeInterval(p)
			case regionBilateral:
				res, err = d.BilateralConfidenceInterval(p)
			case regionLower:
				res, err = d.UnilateralConfidenceInterval(p, distribution.LowerTail)
			case regionUpper:
				res, err = d.UnilateralConfidenceInterval(p, distribution.UpperTail)
			default:
				return fmt.Errorf("unknown region kind %q", kind)
			}
			if err != nil {
				return err
			}
			return printYAML(cmd.OutOrStdout(), intervalOutput{
				Kind:                kind,
				Lower:               res.Interval.Lower,
				Upper:               res.Interval.Upper,
				MarginalProbability: res.MarginalProbability,
				Coverage:            res.Coverage,
			})
		},
	}
	cmd.Flags().Float64Var(&p, "p", 0.95, "coverage probability in (0, 1)")
	cmd.Flags().StringVar(&kind, "kind", regionBilateral, "region kind")
	return cmd
}
