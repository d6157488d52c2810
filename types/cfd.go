package types

import (
	"fmt"
	"strings"
)

// EnergyMode selects how the reactor treats the temperature equation
type EnergyMode uint8

const (
	Adiabatic EnergyMode = iota
	Isothermal
)

var EnergyModeNameMap = map[string]EnergyMode{
	"adiabatic":  Adiabatic,
	"isothermal": Isothermal,
	"constantt":  Isothermal,
}

func (em EnergyMode) String() string {
	switch em {
	case Adiabatic:
		return "Adiabatic"
	case Isothermal:
		return "Isothermal"
	}
	return "Unknown"
}

// NewEnergyMode parses a mode name, the empty string selects Adiabatic
func NewEnergyMode(label string) (em EnergyMode, err error) {
	label = strings.ToLower(strings.TrimSpace(label))
	if len(label) == 0 {
		return Adiabatic, nil
	}
	var ok bool
	if em, ok = EnergyModeNameMap[label]; !ok {
		err = fmt.Errorf("unknown energy mode %q", label)
	}
	return
}
