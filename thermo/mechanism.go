package thermo

import (
	"fmt"
	"io/ioutil"
	"sort"

	"github.com/ghodss/yaml"

	"github.com/notargets/reactingflow/chemistry"
)

// PAtm is the reference pressure of the thermodynamic data in Pa
const PAtm = 101325.

// Reaction is an elementary reaction with Arrhenius rate k = A T^Beta exp(-Ea/(R T)),
// in kmol, m3, s and J/kmol
type Reaction struct {
	Name       string             `json:"Name"`
	Reactants  map[string]float64 `json:"Reactants"`
	Products   map[string]float64 `json:"Products"`
	Orders     map[string]float64 `json:"Orders"` // Forward orders, defaults to the reactant coefficients
	A          float64            `json:"A"`
	Beta       float64            `json:"Beta"`
	Ea         float64            `json:"Ea"`
	Reversible bool               `json:"Reversible"`
}

type Mechanism struct {
	Title     string     `json:"Title"`
	Species   []Species  `json:"Species"`
	Reactions []Reaction `json:"Reactions"`
	index     map[string]int
	compiled  []compiledReaction
}

type compiledReaction struct {
	reacIdx, prodIdx []int
	reacNu, prodNu   []float64
	orderIdx         []int
	orders           []float64
	deltaNu          float64
	A, Beta, EaR     float64
	reversible       bool
}

func ParseMechanism(data []byte) (m *Mechanism, err error) {
	m = &Mechanism{}
	if err = yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("parsing mechanism: %w", err)
	}
	if err = m.Compile(); err != nil {
		return nil, err
	}
	return
}

func ReadMechanism(path string) (m *Mechanism, err error) {
	var data []byte
	if data, err = ioutil.ReadFile(path); err != nil {
		return
	}
	if m, err = ParseMechanism(data); err != nil {
		err = fmt.Errorf("%s: %w", path, err)
	}
	return
}

// Compile validates the species and reactions and builds the index arrays used by the maps.
// It must be called after building a Mechanism by hand.
func (m *Mechanism) Compile() (err error) {
	if len(m.Species) == 0 {
		return fmt.Errorf("mechanism %q has no species", m.Title)
	}
	m.index = make(map[string]int, len(m.Species))
	for i := range m.Species {
		sp := &m.Species[i]
		if err = sp.Validate(); err != nil {
			return
		}
		if _, dup := m.index[sp.Name]; dup {
			return fmt.Errorf("species %s is defined twice", sp.Name)
		}
		m.index[sp.Name] = i
	}
	m.compiled = make([]compiledReaction, len(m.Reactions))
	for j, rx := range m.Reactions {
		if m.compiled[j], err = m.compile(rx); err != nil {
			return fmt.Errorf("reaction %d (%s): %w", j, rx.Name, err)
		}
	}
	return
}

// Map iteration order is randomized, the sorted names keep the summation order fixed
func (m *Mechanism) side(coeffs map[string]float64) (idx []int, nu []float64, err error) {
	names := make([]string, 0, len(coeffs))
	for name := range coeffs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		i, ok := m.index[name]
		if !ok {
			return nil, nil, fmt.Errorf("unknown species %s", name)
		}
		if coeffs[name] < 0 {
			return nil, nil, fmt.Errorf("negative coefficient %g for %s", coeffs[name], name)
		}
		idx = append(idx, i)
		nu = append(nu, coeffs[name])
	}
	return
}

func (m *Mechanism) compile(rx Reaction) (cr compiledReaction, err error) {
	if len(rx.Reactants) == 0 {
		err = fmt.Errorf("no reactants")
		return
	}
	if rx.A < 0 {
		err = fmt.Errorf("negative pre-exponential factor %g", rx.A)
		return
	}
	if cr.reacIdx, cr.reacNu, err = m.side(rx.Reactants); err != nil {
		return
	}
	if cr.prodIdx, cr.prodNu, err = m.side(rx.Products); err != nil {
		return
	}
	orders := rx.Orders
	if len(orders) == 0 {
		orders = rx.Reactants
	}
	if cr.orderIdx, cr.orders, err = m.side(orders); err != nil {
		return
	}
	for _, nu := range cr.prodNu {
		cr.deltaNu += nu
	}
	for _, nu := range cr.reacNu {
		cr.deltaNu -= nu
	}
	cr.A, cr.Beta, cr.EaR = rx.A, rx.Beta, rx.Ea/chemistry.RUniversal
	cr.reversible = rx.Reversible
	return
}

func (m *Mechanism) NumberOfSpecies() int { return len(m.Species) }

// SpeciesIndex returns the position of a species in the state vector, or -1
func (m *Mechanism) SpeciesIndex(name string) int {
	if i, ok := m.index[name]; ok {
		return i
	}
	return -1
}

// MassFractions builds a mass fraction vector from a name map, missing species are zero
func (m *Mechanism) MassFractions(byName map[string]float64) (omega []float64, err error) {
	omega = make([]float64, len(m.Species))
	for name, val := range byName {
		i := m.SpeciesIndex(name)
		if i < 0 {
			return nil, fmt.Errorf("unknown species %s", name)
		}
		omega[i] = val
	}
	return
}

// NewOracle returns an oracle with its own cached state, one per concurrent worker
func (m *Mechanism) NewOracle() *chemistry.Oracle {
	return &chemistry.Oracle{
		Thermo: NewThermoMap(m),
		Kin:    NewKineticsMap(m),
	}
}
