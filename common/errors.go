package common

import "errors"

// Errors returned by the evaluation core. Callers match them with errors.Is;
// the packages wrap them with the failing operation and the offending value.
var (
	// ErrorInvalidParameter: a construction-time constraint was violated.
	ErrorInvalidParameter = errors.New("invalid parameter")

	// ErrorDimensionMismatch: a point or index list disagrees with the
	// distribution dimension.
	ErrorDimensionMismatch = errors.New("dimension mismatch")

	// ErrorConvergenceFailure: an iterative solver ran out of its
	// iteration budget or could not bracket a root.
	ErrorConvergenceFailure = errors.New("convergence failure")

	// ErrorUnsupportedOperation: the operation is undefined for this
	// family and dimension.
	ErrorUnsupportedOperation = errors.New("unsupported operation")

	// ErrorInvalidArgument: malformed call-site input, such as an empty
	// index list or a probability outside (0, 1).
	ErrorInvalidArgument = errors.New("invalid argument")
)
