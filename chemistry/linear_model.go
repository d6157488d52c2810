package chemistry

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/reactingflow/utils"
)

// MixtureState holds the mixture properties computed by the last source term evaluation
type MixtureState struct {
	MW          float64 // Mixture molar mass, kg/kmol
	CTot        float64 // Total concentration, kmol/m3
	Rho         float64 // Density, kg/m3
	CpMixMolar  float64 // J/kmol/K
	CpMixMass   float64 // J/kg/K
	HeatRelease float64 // J/m3/s
}

// LinearModelChemistry evaluates reaction source terms and their diagonal Jacobian for
// the state y = [Y_0 .. Y_NC-1, T]. The scratch vectors are owned by the evaluator and
// are fully overwritten by each call before being read.
type LinearModelChemistry struct {
	NC, NE      int
	StepParams  StepParameters
	omega, x    []float64 // Clipped mass fractions, mole fractions
	R, c        []float64 // Formation rates, concentrations
	yPlus       []float64
	dyPlus      []float64
	dyOriginal  []float64
	yVec, jVec  []float64 // Staging for the gonum vector form
	mixture     MixtureState
	Evaluations int // Source term evaluations since construction
}

func NewLinearModelChemistry(nc int) (lm *LinearModelChemistry, err error) {
	if nc <= 0 {
		err = fmt.Errorf("%w: got %d", ErrInvalidSpeciesCount, nc)
		return
	}
	lm = &LinearModelChemistry{
		NC:         nc,
		NE:         nc + 1,
		StepParams: DefaultStepParameters(),
		omega:      make([]float64, nc),
		x:          make([]float64, nc),
		R:          make([]float64, nc),
		c:          make([]float64, nc),
		yPlus:      make([]float64, nc+1),
		dyPlus:     make([]float64, nc+1),
		dyOriginal: make([]float64, nc+1),
		yVec:       make([]float64, nc+1),
		jVec:       make([]float64, nc+1),
	}
	return
}

// NewLinearModelChemistryFromOracle sizes the evaluator from the oracle's species count
func NewLinearModelChemistryFromOracle(o ThermoKineticsOracle) (*LinearModelChemistry, error) {
	return NewLinearModelChemistry(o.Thermodynamics().NumberOfSpecies())
}

// Mixture returns the mixture properties of the most recent source term evaluation
func (lm *LinearModelChemistry) Mixture() MixtureState {
	return lm.mixture
}

func (lm *LinearModelChemistry) checkDims(y, out []float64, P0 float64) error {
	if len(y) != lm.NE {
		return fmt.Errorf("%w: state has length %d, want %d", ErrDimensionMismatch, len(y), lm.NE)
	}
	if len(out) != lm.NE {
		return fmt.Errorf("%w: output has length %d, want %d", ErrDimensionMismatch, len(out), lm.NE)
	}
	if !(P0 > 0) {
		return fmt.Errorf("%w: got %g Pa", ErrNonPositivePressure, P0)
	}
	return nil
}

// ReactionSourceTerms overwrites S with the species mass production rates in kg/m3/s
// followed by the heat release rate in J/m3/s, evaluated at state y and pressure P0 in Pa.
// Negative mass fractions are clipped to zero, the temperature is used as given.
func (lm *LinearModelChemistry) ReactionSourceTerms(o ThermoKineticsOracle, y []float64, P0 float64,
	S []float64) (err error) {
	if err = lm.checkDims(y, S, P0); err != nil {
		return
	}
	return lm.sourceTerms(o, y, P0, S)
}

func (lm *LinearModelChemistry) sourceTerms(o ThermoKineticsOracle, y []float64, P0 float64,
	S []float64) (err error) {
	var (
		NC     = lm.NC
		T      = y[NC]
		thermo = o.Thermodynamics()
		kin    = o.Kinetics()
	)
	lm.Evaluations++
	utils.ClipNonNegative(lm.omega, y[:NC])

	// Concentrations of species
	MW := thermo.MoleFractionsFromMassFractions(lm.x, lm.omega)
	cTot := P0 / RUniversal / T
	floats.ScaleTo(lm.c, cTot, lm.x)

	// The maps cache on this exact sequence
	if err = thermo.SetTemperature(T); err != nil {
		return fmt.Errorf("thermodynamics at T = %g K: %w", T, err)
	}
	if err = thermo.SetPressure(P0); err != nil {
		return fmt.Errorf("thermodynamics at P = %g Pa: %w", P0, err)
	}
	if err = kin.SetTemperature(T); err != nil {
		return fmt.Errorf("kinetics at T = %g K: %w", T, err)
	}
	if err = kin.SetPressure(P0); err != nil {
		return fmt.Errorf("kinetics at P = %g Pa: %w", P0, err)
	}
	kin.KineticConstants()
	kin.ReactionRates(lm.c)
	kin.FormationRates(lm.R)

	for i := 0; i < NC; i++ {
		S[i] = lm.R[i] * thermo.MW(i)
	}

	// Energy
	CpMixMolar := thermo.CpMolarMixtureFromMoleFractions(lm.x)
	QR := kin.HeatRelease(lm.R)
	S[NC] = QR

	lm.mixture = MixtureState{
		MW:          MW,
		CTot:        cTot,
		Rho:         cTot * MW,
		CpMixMolar:  CpMixMolar,
		CpMixMass:   CpMixMolar / MW,
		HeatRelease: QR,
	}
	return
}

// ReactionJacobian overwrites J with the diagonal of the source term Jacobian, dS_k/dy_k,
// using one forward difference per state entry. Off diagonal sensitivities are not computed.
// The mixture state left behind is that of the unperturbed evaluation, while the oracle maps
// hold the temperature and pressure of the last perturbed column.
func (lm *LinearModelChemistry) ReactionJacobian(o ThermoKineticsOracle, y []float64, P0 float64,
	J []float64) (err error) {
	if err = lm.checkDims(y, J, P0); err != nil {
		return
	}
	copy(lm.yPlus, y)

	if err = lm.sourceTerms(o, y, P0, lm.dyOriginal); err != nil {
		return
	}
	base := lm.mixture

	for kd := 0; kd < lm.NE; kd++ {
		dy := lm.StepParams.Step(y[kd])
		lm.yPlus[kd] += dy
		if err = lm.sourceTerms(o, lm.yPlus, P0, lm.dyPlus); err != nil {
			return fmt.Errorf("jacobian column %d perturbed by %g: %w", kd, dy, err)
		}
		J[kd] = (lm.dyPlus[kd] - lm.dyOriginal[kd]) / dy
		lm.yPlus[kd] = y[kd]
	}
	lm.mixture = base
	return
}

// ReactionJacobianVec is ReactionJacobian writing into a gonum vector, allocated when J is nil
func (lm *LinearModelChemistry) ReactionJacobianVec(o ThermoKineticsOracle, y mat.Vector, P0 float64,
	J *mat.VecDense) (*mat.VecDense, error) {
	if J == nil {
		J = mat.NewVecDense(lm.NE, nil)
	}
	if y.Len() != lm.NE || J.Len() != lm.NE {
		return J, fmt.Errorf("%w: state %d, jacobian %d, want %d", ErrDimensionMismatch, y.Len(), J.Len(), lm.NE)
	}
	for i := range lm.yVec {
		lm.yVec[i] = y.AtVec(i)
	}
	if err := lm.ReactionJacobian(o, lm.yVec, P0, lm.jVec); err != nil {
		return J, err
	}
	for i, v := range lm.jVec {
		J.SetVec(i, v)
	}
	return J, nil
}

// SourceAndJacobian evaluates both S and the diagonal J at y, sharing the unperturbed evaluation
func (lm *LinearModelChemistry) SourceAndJacobian(o ThermoKineticsOracle, y []float64, P0 float64,
	S, J []float64) (err error) {
	if err = lm.checkDims(y, S, P0); err != nil {
		return
	}
	if err = lm.ReactionJacobian(o, y, P0, J); err != nil {
		return
	}
	copy(S, lm.dyOriginal)
	return
}
