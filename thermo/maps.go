package thermo

import (
	"errors"
	"fmt"
	"math"

	"github.com/notargets/reactingflow/chemistry"
	"github.com/notargets/reactingflow/utils"
)

var (
	ErrNonPhysicalTemperature = errors.New("thermo: temperature must be positive and finite")
	ErrNonPhysicalPressure    = errors.New("thermo: pressure must be positive and finite")
)

func checkTemperature(T float64) error {
	if !(T > 0) || math.IsInf(T, 0) {
		return fmt.Errorf("%w: got %g K", ErrNonPhysicalTemperature, T)
	}
	return nil
}

func checkPressure(P float64) error {
	if !(P > 0) || math.IsInf(P, 0) {
		return fmt.Errorf("%w: got %g Pa", ErrNonPhysicalPressure, P)
	}
	return nil
}

// ThermoMap evaluates ideal gas mixture properties, species properties are cached per temperature
type ThermoMap struct {
	mech     *Mechanism
	T, P     float64
	cpR, hRT []float64
}

func NewThermoMap(m *Mechanism) *ThermoMap {
	nc := m.NumberOfSpecies()
	return &ThermoMap{
		mech: m,
		cpR:  make([]float64, nc),
		hRT:  make([]float64, nc),
	}
}

func (tm *ThermoMap) NumberOfSpecies() int { return tm.mech.NumberOfSpecies() }
func (tm *ThermoMap) MW(i int) float64     { return tm.mech.Species[i].MW }
func (tm *ThermoMap) Temperature() float64 { return tm.T }
func (tm *ThermoMap) Pressure() float64    { return tm.P }

func (tm *ThermoMap) SetTemperature(T float64) (err error) {
	if err = checkTemperature(T); err != nil {
		return
	}
	if T == tm.T {
		return
	}
	tm.T = T
	for i := range tm.mech.Species {
		sp := &tm.mech.Species[i]
		tm.cpR[i] = sp.CpR(T)
		tm.hRT[i] = sp.HRT(T)
	}
	return
}

func (tm *ThermoMap) SetPressure(P float64) (err error) {
	if err = checkPressure(P); err != nil {
		return
	}
	tm.P = P
	return
}

// MoleFractionsFromMassFractions does not renormalize, an all zero composition gives zero
// mole fractions and a zero molar mass
func (tm *ThermoMap) MoleFractionsFromMassFractions(x, omega []float64) (MW float64) {
	var sum float64
	for i, w := range omega {
		x[i] = w / tm.mech.Species[i].MW
		sum += x[i]
	}
	if sum == 0 {
		return 0
	}
	MW = 1. / sum
	for i := range x {
		x[i] *= MW
	}
	return
}

// CpMolarMixtureFromMoleFractions uses the temperature of the last SetTemperature
func (tm *ThermoMap) CpMolarMixtureFromMoleFractions(x []float64) (cp float64) {
	for i, xi := range x {
		cp += xi * tm.cpR[i]
	}
	return cp * chemistry.RUniversal
}

// EnthalpyMolar returns the molar enthalpy of species i at the cached temperature, J/kmol
func (tm *ThermoMap) EnthalpyMolar(i int) float64 {
	return tm.hRT[i] * chemistry.RUniversal * tm.T
}

// KineticsMap evaluates mass action rates for all reactions of a mechanism
type KineticsMap struct {
	mech       *Mechanism
	T, P       float64
	gRT, hRT   []float64 // Per species, at T
	kf, kr     []float64 // Per reaction
	rNet       []float64 // Per reaction, kmol/m3/s
	constantsT float64   // Temperature of the cached kf, kr
}

func NewKineticsMap(m *Mechanism) *KineticsMap {
	var (
		nc = m.NumberOfSpecies()
		nr = len(m.compiled)
	)
	return &KineticsMap{
		mech: m,
		gRT:  make([]float64, nc),
		hRT:  make([]float64, nc),
		kf:   make([]float64, nr),
		kr:   make([]float64, nr),
		rNet: make([]float64, nr),
	}
}

func (km *KineticsMap) NumberOfReactions() int { return len(km.mech.compiled) }

func (km *KineticsMap) SetTemperature(T float64) (err error) {
	if err = checkTemperature(T); err != nil {
		return
	}
	if T == km.T {
		return
	}
	km.T = T
	for i := range km.mech.Species {
		sp := &km.mech.Species[i]
		km.hRT[i] = sp.HRT(T)
		km.gRT[i] = km.hRT[i] - sp.SR(T)
	}
	return
}

func (km *KineticsMap) SetPressure(P float64) (err error) {
	if err = checkPressure(P); err != nil {
		return
	}
	km.P = P
	return
}

// KineticConstants computes forward and reverse rate constants at the cached temperature,
// reverse constants come from the equilibrium constant in concentration units
func (km *KineticsMap) KineticConstants() {
	var (
		T      = km.T
		lnT    = math.Log(T)
		uRT    = 1. / T
		lnPatm = math.Log(PAtm / (chemistry.RUniversal * T))
	)
	if T == km.constantsT {
		return
	}
	for j := range km.mech.compiled {
		cr := &km.mech.compiled[j]
		km.kf[j] = cr.A * math.Exp(cr.Beta*lnT-cr.EaR*uRT)
		km.kr[j] = 0
		if cr.reversible {
			var dG float64
			for n, i := range cr.prodIdx {
				dG += cr.prodNu[n] * km.gRT[i]
			}
			for n, i := range cr.reacIdx {
				dG -= cr.reacNu[n] * km.gRT[i]
			}
			lnKc := -dG + cr.deltaNu*lnPatm
			km.kr[j] = km.kf[j] * math.Exp(-lnKc)
		}
	}
	km.constantsT = T
}

// ReactionRates computes the net rate of each reaction from concentrations in kmol/m3
func (km *KineticsMap) ReactionRates(c []float64) {
	for j := range km.mech.compiled {
		cr := &km.mech.compiled[j]
		fwd := km.kf[j]
		for n, i := range cr.orderIdx {
			fwd *= utils.POW(c[i], cr.orders[n])
		}
		var rev float64
		if cr.reversible {
			rev = km.kr[j]
			for n, i := range cr.prodIdx {
				rev *= utils.POW(c[i], cr.prodNu[n])
			}
		}
		km.rNet[j] = fwd - rev
	}
}

// FormationRates writes the net molar formation rate of each species, kmol/m3/s
func (km *KineticsMap) FormationRates(R []float64) {
	for i := range R {
		R[i] = 0
	}
	for j := range km.mech.compiled {
		cr := &km.mech.compiled[j]
		for n, i := range cr.prodIdx {
			R[i] += cr.prodNu[n] * km.rNet[j]
		}
		for n, i := range cr.reacIdx {
			R[i] -= cr.reacNu[n] * km.rNet[j]
		}
	}
}

// NetRates returns the net reaction rates of the last ReactionRates call
func (km *KineticsMap) NetRates() []float64 {
	return km.rNet
}

func (km *KineticsMap) HeatRelease(R []float64) (QR float64) {
	for i, Ri := range R {
		QR -= km.hRT[i] * Ri
	}
	return QR * chemistry.RUniversal * km.T
}

var (
	_ chemistry.ThermodynamicsMap = (*ThermoMap)(nil)
	_ chemistry.KineticsMap       = (*KineticsMap)(nil)
)
