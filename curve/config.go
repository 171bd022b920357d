package curve

// SolverConfig holds the Newton-Raphson parameters used by the bootstrap.
// It is passed explicitly; there is no process-wide configuration state.
type SolverConfig struct {
	// Tolerance is the NPV tolerance for Newton-Raphson convergence.
	Tolerance float64

	// MaxIterations caps the Newton iterations per tenor, bounding
	// worst-case bootstrap latency deterministically.
	MaxIterations int

	// Bump is the forward bump applied to the candidate rate when forming
	// the numerical derivative.
	Bump float64

	// DerivativeFloor is the minimum derivative magnitude. Below this the
	// iteration is stalled and the solver returns its last estimate.
	DerivativeFloor float64
}

// DefaultSolverConfig provides production-ready default values.
var DefaultSolverConfig = SolverConfig{
	Tolerance:       1e-10,
	MaxIterations:   100,
	Bump:            1e-4,
	DerivativeFloor: 1e-14,
}
