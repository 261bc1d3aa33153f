package cmd

import (
	"github.com/spf13/cobra"
	"github.com/uyouii/copula-algorithms/distribution"
	"github.com/uyouii/copula-algorithms/model"
	"github.com/uyouii/copula-algorithms/utils"
	"golang.org/x/exp/rand"
)

type sampleResult struct {
	Size       int           `yaml:"size"`
	Points     []model.Point `yaml:"points,omitempty"`
	Mean       model.Point   `yaml:"mean"`
	Covariance [][]float64   `yaml:"covariance"`
}

func newSampleCmd(opts *rootOptions) *cobra.Command {
	var (
		n      int
		seed   uint64
		points bool
		round  int32
	)
	cmd := &cobra.Command{
		Use:     "sample",
		Short:   "Draw a seeded sample and report its mean and covariance",
		Example: `  copula sample --params copula.yaml --n 10000 --seed 42`,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			s, err := distribution.NewSampler(d, rand.New(rand.NewSource(seed)))
			if err != nil {
				return err
			}
			sample, err := s.Sample(n)
			if err != nil {
				return err
			}

			res := sampleResult{Size: sample.Size(), Mean: sample.ComputeMean()}
			cov := sample.ComputeCovariance()
			res.Covariance = make([][]float64, d.Dimension())
			for i := range res.Covariance {
				res.Covariance[i] = make([]float64, d.Dimension())
				for j := range res.Covariance[i] {
					res.Covariance[i][j] = cov.At(i, j)
				}
			}
			if points {
				for i := 0; i < sample.Size(); i++ {
					res.Points = append(res.Points, sample.At(i))
				}
			}
			if round >= 0 {
				res.roundTo(round)
			}
			return printYAML(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().IntVar(&n, "n", 10, "sample size")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "random seed")
	cmd.Flags().BoolVar(&points, "points", false, "print the drawn points")
	cmd.Flags().Int32Var(&round, "round", -1, "decimal places kept in the output (negative keeps all)")
	return cmd
}

func (r *sampleResult) roundTo(decimals int32) {
	for _, p := range r.Points {
		for j := range p {
			p[j] = utils.FormatFloat(p[j], decimals)
		}
	}
	for j := range r.Mean {
		r.Mean[j] = utils.FormatFloat(r.Mean[j], decimals)
	}
	for _, row := range r.Covariance {
		for j := range row {
			row[j] = utils.FormatFloat(row[j], decimals)
		}
	}
}
