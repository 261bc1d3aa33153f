package config

const (
	// Brent stops when the bracket is narrower than this, measured on the
	// solver variable (a marginal probability for multivariate quantiles).
	SolverAbsoluteTolerance = 1e-14
	SolverRelativeTolerance = 1e-12
	// Brent also stops once |f(x)| drops below this residual.
	SolverResidualTolerance = 1e-13
	SolverMaxIterations     = 200

	// Gauss-Legendre nodes per unit-length panel when integrating out one
	// coordinate of the multivariate normal CDF.
	IntegrationNodesPerPanel = 20
	// Standard normal mass below -IntegrationCutoff is treated as zero.
	IntegrationCutoff = 9.0
	// Above this dimension the normal CDF switches from recursive
	// conditioning to lattice quasi-Monte Carlo.
	IntegrationMaxRecursiveDimension = 3
	IntegrationQMCPoints             = 4096
	IntegrationQMCShifts             = 8
	IntegrationSeed                  = 1

	LevelSetSamplingSize = 10000
	LevelSetSeed         = 77

	FiniteDifferenceStep = 1e-5
)
