package chemistry

// ThermodynamicsMap provides mixture thermodynamics for a fixed species list.
// Implementations cache state keyed on the last SetTemperature/SetPressure calls.
type ThermodynamicsMap interface {
	NumberOfSpecies() int
	// MW returns the molecular weight of species i in kg/kmol
	MW(i int) float64
	// MoleFractionsFromMassFractions fills x from omega and returns the mixture molar mass
	MoleFractionsFromMassFractions(x, omega []float64) (MW float64)
	SetTemperature(T float64) error
	SetPressure(P float64) error
	// CpMolarMixtureFromMoleFractions returns the mixture molar heat capacity in J/kmol/K
	CpMolarMixtureFromMoleFractions(x []float64) float64
}

// KineticsMap evaluates reaction rates for the same species list as its ThermodynamicsMap.
// KineticConstants uses the cached temperature and pressure, ReactionRates uses the
// cached constants, FormationRates uses the cached reaction rates.
type KineticsMap interface {
	SetTemperature(T float64) error
	SetPressure(P float64) error
	KineticConstants()
	ReactionRates(c []float64)
	FormationRates(R []float64)
	// HeatRelease returns the volumetric heat release in J/m3/s from formation rates in kmol/m3/s
	HeatRelease(R []float64) float64
}

// ThermoKineticsOracle bundles the two stateful maps used by the evaluator.
//
// The order of calls made on the maps is part of their semantics:
//
//	Thermodynamics().SetTemperature -> Thermodynamics().SetPressure ->
//	Kinetics().SetTemperature -> Kinetics().SetPressure ->
//	KineticConstants -> ReactionRates -> FormationRates
//
// An oracle is not safe for concurrent use. Parallel callers give each worker its own
// oracle instance.
type ThermoKineticsOracle interface {
	Thermodynamics() ThermodynamicsMap
	Kinetics() KineticsMap
}

// Oracle is the simplest ThermoKineticsOracle, a pair of maps.
type Oracle struct {
	Thermo ThermodynamicsMap
	Kin    KineticsMap
}

func (o *Oracle) Thermodynamics() ThermodynamicsMap { return o.Thermo }
func (o *Oracle) Kinetics() KineticsMap             { return o.Kin }
