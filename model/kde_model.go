package model

// Clip bounds the observations fed to a kernel smoothing estimator.
type Clip struct {
	Lower float64 `yaml:"lower"`
	Upper float64 `yaml:"upper"`
}

func (c *Clip) Keep(x float64) bool {
	if c == nil {
		return true
	}
	return x >= c.Lower && x <= c.Upper
}
