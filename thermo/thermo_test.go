package thermo

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/reactingflow/chemistry"
)

func isomerMechanism(reversible bool) *Mechanism {
	m := &Mechanism{
		Title: "isomerization",
		Species: []Species{
			{Name: "A", MW: 30, TLow: 200, TMid: 1000, THigh: 3000,
				Low: []float64{3.5, 0, 0, 0, 0, -1000, 4}, High: []float64{3.5, 0, 0, 0, 0, -1000, 4}},
			{Name: "B", MW: 30, TLow: 200, TMid: 1000, THigh: 3000,
				Low: []float64{3.5, 0, 0, 0, 0, -2000, 4}, High: []float64{3.5, 0, 0, 0, 0, -2000, 4}},
		},
		Reactions: []Reaction{
			{Name: "A<=>B", Reactants: map[string]float64{"A": 1}, Products: map[string]float64{"B": 1},
				A: 1.e3, Reversible: reversible},
		},
	}
	if err := m.Compile(); err != nil {
		panic(err)
	}
	return m
}

func TestReadMechanism(t *testing.T) {
	m, err := ReadMechanism("testdata/h2_global.yaml")
	require.NoError(t, err)
	assert.Equal(t, "H2 global", m.Title)
	assert.Equal(t, 4, m.NumberOfSpecies())
	assert.Equal(t, 2, m.SpeciesIndex("H2O"))
	assert.Equal(t, -1, m.SpeciesIndex("CH4"))
	assert.Equal(t, 1, len(m.Reactions))

	omega, err := m.MassFractions(map[string]float64{"H2": 0.1, "O2": 0.9})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.9, 0, 0}, omega)
	_, err = m.MassFractions(map[string]float64{"Xe": 1})
	assert.Error(t, err)

	_, err = ReadMechanism("testdata/missing.yaml")
	assert.Error(t, err)
}

func TestMechanismValidation(t *testing.T) {
	_, err := ParseMechanism([]byte(`Title: empty`))
	assert.Error(t, err)

	bad := isomerMechanism(false)
	bad.Reactions[0].Products = map[string]float64{"C": 1}
	assert.Error(t, bad.Compile())

	bad = isomerMechanism(false)
	bad.Species = append(bad.Species, bad.Species[0])
	assert.Error(t, bad.Compile())

	bad = isomerMechanism(false)
	bad.Species[0].Low = bad.Species[0].Low[:6]
	assert.Error(t, bad.Compile())

	bad = isomerMechanism(false)
	bad.Species[1].TMid = 5000
	assert.Error(t, bad.Compile())

	bad = isomerMechanism(false)
	bad.Reactions[0].A = -1
	assert.Error(t, bad.Compile())
}

func TestSpeciesProperties(t *testing.T) {
	m, err := ReadMechanism("testdata/h2_global.yaml")
	require.NoError(t, err)
	h2, h2o := &m.Species[0], &m.Species[2]
	// Polynomials meet at the midpoint temperature
	assert.InDelta(t, h2.CpR(999.999999), h2.CpR(1000), 1.e-4)
	// Heat of formation of water vapor, J/kmol
	T := 298.15
	assert.InDelta(t, -2.418e8, h2o.HRT(T)*chemistry.RUniversal*T, 0.001e8)
	assert.InDelta(t, h2o.HRT(T)-h2o.SR(T), h2o.GRT(T), 1.e-12)
}

func TestThermoMap(t *testing.T) {
	m, err := ReadMechanism("testdata/h2_global.yaml")
	require.NoError(t, err)
	tm := NewThermoMap(m)
	var (
		omega = []float64{0.5, 0.5, 0, 0}
		x     = make([]float64, 4)
	)
	MW := tm.MoleFractionsFromMassFractions(x, omega)
	n1, n2 := 0.5/2.01588, 0.5/31.9988
	assert.InDelta(t, 1./(n1+n2), MW, 1.e-12)
	assert.InDelta(t, n1/(n1+n2), x[0], 1.e-12)
	assert.InDelta(t, 1., x[0]+x[1], 1.e-12)

	assert.Equal(t, 0., tm.MoleFractionsFromMassFractions(x, []float64{0, 0, 0, 0}))

	require.NoError(t, tm.SetTemperature(1000))
	require.NoError(t, tm.SetPressure(101325))
	assert.Equal(t, 1000., tm.Temperature())
	assert.Equal(t, 101325., tm.Pressure())
	cp := tm.CpMolarMixtureFromMoleFractions([]float64{1, 0, 0, 0})
	assert.InDelta(t, m.Species[0].CpR(1000)*chemistry.RUniversal, cp, 1.e-6)

	err = tm.SetTemperature(-10)
	assert.True(t, errors.Is(err, ErrNonPhysicalTemperature))
	err = tm.SetTemperature(math.NaN())
	assert.True(t, errors.Is(err, ErrNonPhysicalTemperature))
	err = tm.SetPressure(0)
	assert.True(t, errors.Is(err, ErrNonPhysicalPressure))
	// A rejected temperature leaves the cache alone
	assert.Equal(t, 1000., tm.Temperature())
}

func TestKineticsMap(t *testing.T) {
	{ // Irreversible first order reaction
		m := isomerMechanism(false)
		km := NewKineticsMap(m)
		R := make([]float64, 2)
		require.NoError(t, km.SetTemperature(800))
		require.NoError(t, km.SetPressure(1.e5))
		km.KineticConstants()
		km.ReactionRates([]float64{2, 1})
		km.FormationRates(R)
		assert.Equal(t, 1, km.NumberOfReactions())
		assert.InDelta(t, 2.e3, km.NetRates()[0], 1.e-9)
		assert.InDelta(t, -2.e3, R[0], 1.e-9)
		assert.InDelta(t, 2.e3, R[1], 1.e-9)
		// Forming B releases 1000 R
		assert.InDelta(t, 2.e3*1000*chemistry.RUniversal, km.HeatRelease(R), 1.e-3)
	}
	{ // Reversible reaction has no net rate at equilibrium, Kc = exp(1000/T)
		m := isomerMechanism(true)
		km := NewKineticsMap(m)
		T := 800.
		require.NoError(t, km.SetTemperature(T))
		require.NoError(t, km.SetPressure(1.e5))
		km.KineticConstants()
		cA := 0.01
		km.ReactionRates([]float64{cA, cA * math.Exp(1000/T)})
		assert.InDelta(t, 0., km.NetRates()[0], 1.e-12*km.kf[0]*cA)
		km.ReactionRates([]float64{cA, 0})
		assert.InDelta(t, 1.e3*cA, km.NetRates()[0], 1.e-12)
	}
	{ // Mass is conserved by the global hydrogen reaction
		m, err := ReadMechanism("testdata/h2_global.yaml")
		require.NoError(t, err)
		km := NewKineticsMap(m)
		require.NoError(t, km.SetTemperature(1500))
		require.NoError(t, km.SetPressure(101325))
		km.KineticConstants()
		km.ReactionRates([]float64{0.002, 0.004, 0.001, 0.005})
		R := make([]float64, 4)
		km.FormationRates(R)
		var sum float64
		for i, Ri := range R {
			sum += Ri * m.Species[i].MW
		}
		assert.InDelta(t, 0., sum, 1.e-12*math.Abs(R[0]*m.Species[0].MW))
		assert.Greater(t, km.HeatRelease(R), 0.)
		assert.Error(t, km.SetTemperature(0))
		assert.Error(t, km.SetPressure(-1))
	}
}
