package chemistry

import (
	"errors"
	"math"
)

// RUniversal is the universal gas constant in J/kmol/K
const RUniversal = 8314.462618

// TinyFloat is the smallest magnitude treated as distinct from zero when sizing steps
const TinyFloat = 1.e-20

// MachineEpsilon is the spacing of float64 values near 1
var MachineEpsilon = math.Nextafter(1., 2.) - 1.

var (
	ErrInvalidSpeciesCount = errors.New("chemistry: number of species must be positive")
	ErrDimensionMismatch   = errors.New("chemistry: vector length does not match the number of equations")
	ErrNonPositivePressure = errors.New("chemistry: pressure must be positive")
)

// StepParameters controls the finite difference step used for each Jacobian column
type StepParameters struct {
	TOLA, TOLR float64 // Absolute and relative error weights
	ETA2       float64 // Relative step, sqrt of machine epsilon
	ZeroDer    float64 // Lower bound on any step
	HF         float64 // Multiplier on the error weighted floor
	MaxAbsStep float64 // Upper bound on a step is MaxAbsStep + MaxRelStep*|y|
	MaxRelStep float64
}

func DefaultStepParameters() StepParameters {
	return StepParameters{
		TOLA:       1.e-12,
		TOLR:       1.e-7,
		ETA2:       math.Sqrt(MachineEpsilon),
		ZeroDer:    math.Sqrt(TinyFloat),
		HF:         1.,
		MaxAbsStep: 1.e-3,
		MaxRelStep: 1.e-3,
	}
}

// Step returns the forward difference perturbation for a state value yk
func (sp StepParameters) Step(yk float64) (dy float64) {
	var (
		errorWeight = 1. / (sp.TOLA + sp.TOLR*math.Abs(yk))
		hJ          = sp.ETA2 * math.Abs(math.Max(yk, 1./errorWeight))
		hJf         = sp.HF / errorWeight
	)
	hJ = math.Max(hJ, hJf)
	hJ = math.Max(hJ, sp.ZeroDer)
	dy = math.Min(hJ, sp.MaxAbsStep+sp.MaxRelStep*math.Abs(yk))
	return
}
