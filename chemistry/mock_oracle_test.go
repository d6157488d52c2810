package chemistry

import (
	"errors"
	"fmt"
)

var errMockTemperature = errors.New("mock: temperature out of range")

type mockThermo struct {
	calls       *[]string
	mw          []float64
	identityX   bool // Pass mass fractions through as mole fractions with unit molar mass
	cpMolar     float64
	TMin, TMax  float64
	T, P        float64
	lastOmegaIn []float64
}

func (mt *mockThermo) record(s string) {
	if mt.calls != nil {
		*mt.calls = append(*mt.calls, s)
	}
}

func (mt *mockThermo) NumberOfSpecies() int { return len(mt.mw) }

func (mt *mockThermo) MW(i int) float64 {
	mt.record("thermo.MW")
	return mt.mw[i]
}

func (mt *mockThermo) MoleFractionsFromMassFractions(x, omega []float64) (MW float64) {
	mt.record("thermo.MoleFractionsFromMassFractions")
	mt.lastOmegaIn = append(mt.lastOmegaIn[:0], omega...)
	if mt.identityX {
		copy(x, omega)
		return 1
	}
	var sum float64
	for i, w := range omega {
		x[i] = w / mt.mw[i]
		sum += x[i]
	}
	MW = 1. / sum
	for i := range x {
		x[i] *= MW
	}
	return
}

func (mt *mockThermo) SetTemperature(T float64) error {
	mt.record("thermo.SetTemperature")
	if T < mt.TMin || (mt.TMax > 0 && T > mt.TMax) {
		return fmt.Errorf("%w: %g", errMockTemperature, T)
	}
	mt.T = T
	return nil
}

func (mt *mockThermo) SetPressure(P float64) error {
	mt.record("thermo.SetPressure")
	mt.P = P
	return nil
}

func (mt *mockThermo) CpMolarMixtureFromMoleFractions(x []float64) float64 {
	mt.record("thermo.CpMolarMixtureFromMoleFractions")
	return mt.cpMolar
}

// mockKinetics hands the formation function the mole fractions c/cTot recovered from
// the cached temperature and pressure
type mockKinetics struct {
	calls     *[]string
	T, P      float64
	c, x      []float64
	formation func(T float64, x, R []float64)
	heat      func(R []float64) float64
}

func (mk *mockKinetics) record(s string) {
	if mk.calls != nil {
		*mk.calls = append(*mk.calls, s)
	}
}

func (mk *mockKinetics) SetTemperature(T float64) error {
	mk.record("kinetics.SetTemperature")
	mk.T = T
	return nil
}

func (mk *mockKinetics) SetPressure(P float64) error {
	mk.record("kinetics.SetPressure")
	mk.P = P
	return nil
}

func (mk *mockKinetics) KineticConstants() { mk.record("kinetics.KineticConstants") }

func (mk *mockKinetics) ReactionRates(c []float64) {
	mk.record("kinetics.ReactionRates")
	mk.c = append(mk.c[:0], c...)
}

func (mk *mockKinetics) FormationRates(R []float64) {
	mk.record("kinetics.FormationRates")
	cTot := mk.P / RUniversal / mk.T
	mk.x = mk.x[:0]
	for _, ci := range mk.c {
		mk.x = append(mk.x, ci/cTot)
	}
	mk.formation(mk.T, mk.x, R)
}

func (mk *mockKinetics) HeatRelease(R []float64) float64 {
	mk.record("kinetics.HeatRelease")
	if mk.heat == nil {
		return 0
	}
	return mk.heat(R)
}

// constantOracle returns a fixed formation rate and heat release regardless of state
func constantOracle(mw, rate, heat float64) *Oracle {
	return &Oracle{
		Thermo: &mockThermo{mw: []float64{mw}, cpMolar: 29.e3, TMin: 1.e-300},
		Kin: &mockKinetics{
			formation: func(T float64, x, R []float64) { R[0] = rate },
			heat:      func(R []float64) float64 { return heat },
		},
	}
}

// linearOracle gives S_i = k_i*y_i for species and a constant heat release
func linearOracle(k []float64) *Oracle {
	mw := make([]float64, len(k))
	for i := range mw {
		mw[i] = 1
	}
	return &Oracle{
		Thermo: &mockThermo{mw: mw, identityX: true, cpMolar: 1., TMin: 1.e-300},
		Kin: &mockKinetics{
			formation: func(T float64, x, R []float64) {
				for i := range R {
					R[i] = k[i] * x[i]
				}
			},
			heat: func(R []float64) float64 { return 500. },
		},
	}
}

var (
	_ ThermodynamicsMap = (*mockThermo)(nil)
	_ KineticsMap       = (*mockKinetics)(nil)
)
