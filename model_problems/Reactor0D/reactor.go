package Reactor0D

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/reactingflow/chemistry"
	"github.com/notargets/reactingflow/types"
	"github.com/notargets/reactingflow/utils"
)

// Reactor is a homogeneous constant pressure reactor marched in pseudo time to a steady
// state with a diagonal point implicit update
type Reactor struct {
	Oracle        chemistry.ThermoKineticsOracle
	Chem          *chemistry.LinearModelChemistry
	Pressure      float64
	EnergyMode    types.EnergyMode
	TimeStep      float64
	MaxIterations int
	Tolerance     float64
	LogEvery      int
	Y             []float64 // Mass fractions followed by temperature
	S, J, dY      []float64
}

type Result struct {
	Iterations int
	Residual   float64
	Converged  bool
	State      []float64
	Residuals  []float64
}

func NewReactor(o chemistry.ThermoKineticsOracle, P0 float64, Y0 []float64, dt float64,
	maxIterations int, tol float64, mode types.EnergyMode) (r *Reactor, err error) {
	var lm *chemistry.LinearModelChemistry
	if lm, err = chemistry.NewLinearModelChemistryFromOracle(o); err != nil {
		return
	}
	switch {
	case len(Y0) != lm.NE:
		err = fmt.Errorf("initial state has %d entries, mechanism needs %d", len(Y0), lm.NE)
	case !(dt > 0):
		err = fmt.Errorf("time step must be positive, got %g", dt)
	case maxIterations < 1:
		err = fmt.Errorf("need at least one iteration, got %d", maxIterations)
	case !(P0 > 0):
		err = fmt.Errorf("pressure must be positive, got %g", P0)
	}
	if err != nil {
		return
	}
	r = &Reactor{
		Oracle:        o,
		Chem:          lm,
		Pressure:      P0,
		EnergyMode:    mode,
		TimeStep:      dt,
		MaxIterations: maxIterations,
		Tolerance:     tol,
		LogEvery:      100,
		Y:             append([]float64{}, Y0...),
		S:             make([]float64, lm.NE),
		J:             make([]float64, lm.NE),
		dY:            make([]float64, lm.NE),
	}
	return
}

// PointImplicitRate converts entry i of the source terms and their diagonal Jacobian into a
// state rate F, dY/dt = S/rho or dT/dt = S_T/(rho cp), and its damping part Jd <= 0. Both are
// zero for temperature when isothermal.
func PointImplicitRate(ms chemistry.MixtureState, S, J []float64, mode types.EnergyMode,
	i int) (F, Jd float64) {
	scale := 1. / ms.Rho
	if i == len(S)-1 {
		if mode == types.Isothermal {
			return 0, 0
		}
		scale /= ms.CpMixMass
	}
	F, Jd = S[i]*scale, math.Min(J[i]*scale, 0)
	return
}

// PointImplicitIncrement writes the increment dY = dt F/(1 - dt Jd). Only the damping
// (negative) part of the diagonal Jacobian is treated implicitly.
func PointImplicitIncrement(ms chemistry.MixtureState, S, J []float64, dt float64,
	mode types.EnergyMode, dY []float64) {
	for i := range S {
		F, Jd := PointImplicitRate(ms, S, J, mode, i)
		dY[i] = dt * F / (1. - dt*Jd)
	}
}

// Step advances the state by one pseudo time step and returns the rate of change norm
func (r *Reactor) Step() (residual float64, err error) {
	if err = r.Chem.SourceAndJacobian(r.Oracle, r.Y, r.Pressure, r.S, r.J); err != nil {
		return
	}
	PointImplicitIncrement(r.Chem.Mixture(), r.S, r.J, r.TimeStep, r.EnergyMode, r.dY)
	if !utils.IsFinite(r.dY) {
		err = fmt.Errorf("non finite increment at state %v", r.Y)
		return
	}
	floats.Add(r.Y, r.dY)
	residual = floats.Norm(r.dY, 2) / r.TimeStep
	return
}

// Solve iterates until the residual drops below Tolerance or MaxIterations is reached
func (r *Reactor) Solve() (res *Result, err error) {
	res = &Result{}
	NC := r.Chem.NC
	for res.Iterations < r.MaxIterations {
		var residual float64
		if residual, err = r.Step(); err != nil {
			err = fmt.Errorf("iteration %d: %w", res.Iterations, err)
			break
		}
		res.Iterations++
		res.Residual = residual
		res.Residuals = append(res.Residuals, residual)
		if r.LogEvery > 0 && res.Iterations%r.LogEvery == 0 {
			log.WithFields(log.Fields{
				"iteration": res.Iterations,
				"residual":  residual,
				"T":         r.Y[NC],
			}).Debug("reactor step")
		}
		if residual < r.Tolerance {
			res.Converged = true
			break
		}
	}
	res.State = append([]float64{}, r.Y...)
	log.WithFields(log.Fields{
		"iterations": res.Iterations,
		"residual":   res.Residual,
		"converged":  res.Converged,
		"T":          r.Y[NC],
		"mode":       r.EnergyMode.String(),
	}).Info("reactor finished")
	return
}
