package config

import (
	"fmt"
	"os"

	"github.com/uyouii/copula-algorithms/common"
	"gopkg.in/yaml.v3"
)

type SolverSettings struct {
	AbsoluteTolerance float64 `yaml:"absolute_tolerance"`
	RelativeTolerance float64 `yaml:"relative_tolerance"`
	ResidualTolerance float64 `yaml:"residual_tolerance"`
	MaxIterations     int     `yaml:"max_iterations"`
}

type IntegrationSettings struct {
	NodesPerPanel         int     `yaml:"nodes_per_panel"`
	Cutoff                float64 `yaml:"cutoff"`
	MaxRecursiveDimension int     `yaml:"max_recursive_dimension"`
	QMCPoints             int     `yaml:"qmc_points"`
	QMCShifts             int     `yaml:"qmc_shifts"`
	Seed                  uint64  `yaml:"seed"`
}

type LevelSetSettings struct {
	SamplingSize int    `yaml:"sampling_size"`
	Seed         uint64 `yaml:"seed"`
}

type FiniteDifferenceSettings struct {
	Step float64 `yaml:"step"`
}

// Settings holds every numerical knob of the evaluation core. A
// distribution copies its Settings at construction, so changing a Settings
// value afterwards never affects existing instances.
type Settings struct {
	Solver           SolverSettings           `yaml:"solver"`
	Integration      IntegrationSettings      `yaml:"integration"`
	LevelSet         LevelSetSettings         `yaml:"level_set"`
	FiniteDifference FiniteDifferenceSettings `yaml:"finite_difference"`
}

func Default() Settings {
	return Settings{
		Solver: SolverSettings{
			AbsoluteTolerance: SolverAbsoluteTolerance,
			RelativeTolerance: SolverRelativeTolerance,
			ResidualTolerance: SolverResidualTolerance,
			MaxIterations:     SolverMaxIterations,
		},
		Integration: IntegrationSettings{
			NodesPerPanel:         IntegrationNodesPerPanel,
			Cutoff:                IntegrationCutoff,
			MaxRecursiveDimension: IntegrationMaxRecursiveDimension,
			QMCPoints:             IntegrationQMCPoints,
			QMCShifts:             IntegrationQMCShifts,
			Seed:                  IntegrationSeed,
		},
		LevelSet: LevelSetSettings{
			SamplingSize: LevelSetSamplingSize,
			Seed:         LevelSetSeed,
		},
		FiniteDifference: FiniteDifferenceSettings{
			Step: FiniteDifferenceStep,
		},
	}
}

// Load reads a YAML settings file. Keys missing from the file keep their
// default values.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, err
	}
	return Parse(data)
}

func Parse(data []byte) (Settings, error) {
	s := Default()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s Settings) Validate() error {
	switch {
	case s.Solver.AbsoluteTolerance <= 0 || s.Solver.RelativeTolerance < 0 || s.Solver.ResidualTolerance < 0:
		return fmt.Errorf("solver tolerances %+v: %w", s.Solver, common.ErrorInvalidParameter)
	case s.Solver.MaxIterations <= 0:
		return fmt.Errorf("solver max_iterations %d: %w", s.Solver.MaxIterations, common.ErrorInvalidParameter)
	case s.Integration.NodesPerPanel <= 0 || s.Integration.Cutoff <= 0:
		return fmt.Errorf("integration %+v: %w", s.Integration, common.ErrorInvalidParameter)
	case s.Integration.MaxRecursiveDimension < 2:
		return fmt.Errorf("integration max_recursive_dimension %d: %w",
			s.Integration.MaxRecursiveDimension, common.ErrorInvalidParameter)
	case s.Integration.QMCPoints <= 0 || s.Integration.QMCShifts <= 0:
		return fmt.Errorf("integration qmc %+v: %w", s.Integration, common.ErrorInvalidParameter)
	case s.LevelSet.SamplingSize <= 0:
		return fmt.Errorf("level_set sampling_size %d: %w", s.LevelSet.SamplingSize, common.ErrorInvalidParameter)
	case s.FiniteDifference.Step <= 0:
		return fmt.Errorf("finite_difference step %v: %w", s.FiniteDifference.Step, common.ErrorInvalidParameter)
	}
	return nil
}
