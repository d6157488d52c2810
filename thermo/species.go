package thermo

import (
	"fmt"
	"math"
)

// Species carries the molecular weight and the NASA 7 coefficient polynomials of one species
type Species struct {
	Name  string    `json:"Name"`
	MW    float64   `json:"MW"` // kg/kmol
	TLow  float64   `json:"TLow"`
	TMid  float64   `json:"TMid"`
	THigh float64   `json:"THigh"`
	Low   []float64 `json:"Low"`  // Coefficients for TLow <= T < TMid
	High  []float64 `json:"High"` // Coefficients for TMid <= T <= THigh
}

func (sp *Species) Validate() (err error) {
	switch {
	case len(sp.Name) == 0:
		err = fmt.Errorf("species has no name")
	case !(sp.MW > 0):
		err = fmt.Errorf("species %s: molecular weight must be positive, got %g", sp.Name, sp.MW)
	case len(sp.Low) != 7 || len(sp.High) != 7:
		err = fmt.Errorf("species %s: NASA polynomials need 7 coefficients, got %d and %d",
			sp.Name, len(sp.Low), len(sp.High))
	case !(sp.TLow < sp.TMid && sp.TMid < sp.THigh):
		err = fmt.Errorf("species %s: temperature ranges out of order: %g, %g, %g",
			sp.Name, sp.TLow, sp.TMid, sp.THigh)
	}
	return
}

// Temperatures outside the fitted range use the nearest polynomial
func (sp *Species) coeffs(T float64) []float64 {
	if T < sp.TMid {
		return sp.Low
	}
	return sp.High
}

// CpR returns cp/R
func (sp *Species) CpR(T float64) float64 {
	a := sp.coeffs(T)
	return a[0] + T*(a[1]+T*(a[2]+T*(a[3]+T*a[4])))
}

// HRT returns h/(R T)
func (sp *Species) HRT(T float64) float64 {
	a := sp.coeffs(T)
	return a[0] + T*(a[1]/2+T*(a[2]/3+T*(a[3]/4+T*a[4]/5))) + a[5]/T
}

// SR returns s/R at the reference pressure
func (sp *Species) SR(T float64) float64 {
	a := sp.coeffs(T)
	return a[0]*math.Log(T) + T*(a[1]+T*(a[2]/2+T*(a[3]/3+T*a[4]/4))) + a[6]
}

// GRT returns g/(R T) at the reference pressure
func (sp *Species) GRT(T float64) float64 {
	return sp.HRT(T) - sp.SR(T)
}
