package model

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParameterSet is the full parameter state of a distribution. Which fields
// are meaningful depends on Family.
type ParameterSet struct {
	Family      string      `yaml:"family"`
	Dimension   int         `yaml:"dimension,omitempty"`
	Mean        []float64   `yaml:"mean,omitempty"`
	Sigma       []float64   `yaml:"sigma,omitempty"`
	Correlation [][]float64 `yaml:"correlation,omitempty"`
	Sample      []float64   `yaml:"sample,omitempty"`
	Weights     []float64   `yaml:"weights,omitempty"`
	Bandwidth   float64     `yaml:"bandwidth,omitempty"`
	Clip        *Clip       `yaml:"clip,omitempty"`
	// ClipZScore derives a clip of that many standard deviations around
	// the sample mean when Clip is unset.
	ClipZScore float64 `yaml:"clip_zscore,omitempty"`
}

func ParseParameterSet(data []byte) (ParameterSet, error) {
	var ps ParameterSet
	if err := yaml.Unmarshal(data, &ps); err != nil {
		return ParameterSet{}, fmt.Errorf("parse parameters: %w", err)
	}
	return ps, nil
}

func (ps ParameterSet) Marshal() ([]byte, error) {
	return yaml.Marshal(ps)
}
