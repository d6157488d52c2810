package ChemistryField

import (
	"errors"
	"fmt"
	"sync"

	"github.com/james-bowman/sparse"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/reactingflow/chemistry"
	"github.com/notargets/reactingflow/model_problems/Reactor0D"
	"github.com/notargets/reactingflow/types"
	"github.com/notargets/reactingflow/utils"
)

// OracleFactory returns a fresh oracle, one is created for each worker
type OracleFactory func() chemistry.ThermoKineticsOracle

type worker struct {
	oracle chemistry.ThermoKineticsOracle
	chem   *chemistry.LinearModelChemistry
}

// Field holds the thermochemical state of a set of cells and evaluates their chemistry in
// parallel, cells are split into contiguous buckets with one worker per bucket
type Field struct {
	NCells, NE int
	Pressure   float64
	EnergyMode types.EnergyMode
	Y          [][]float64 // Per cell, mass fractions followed by temperature
	S, J       [][]float64
	Mixture    []chemistry.MixtureState
	Partitions *utils.PartitionMap
	workers    []worker
}

func NewField(factory OracleFactory, ParallelDegree int, P0 float64, Y [][]float64,
	mode types.EnergyMode) (f *Field, err error) {
	if len(Y) == 0 {
		return nil, fmt.Errorf("field has no cells")
	}
	f = &Field{
		NCells:     len(Y),
		Pressure:   P0,
		EnergyMode: mode,
		Partitions: utils.NewPartitionMap(ParallelDegree, len(Y)),
	}
	f.workers = make([]worker, f.Partitions.ParallelDegree)
	for np := range f.workers {
		o := factory()
		if f.workers[np].chem, err = chemistry.NewLinearModelChemistryFromOracle(o); err != nil {
			return nil, err
		}
		f.workers[np].oracle = o
	}
	f.NE = f.workers[0].chem.NE
	f.Y = make([][]float64, f.NCells)
	f.S = make([][]float64, f.NCells)
	f.J = make([][]float64, f.NCells)
	f.Mixture = make([]chemistry.MixtureState, f.NCells)
	for k, yk := range Y {
		if len(yk) != f.NE {
			return nil, fmt.Errorf("cell %d has %d entries, want %d", k, len(yk), f.NE)
		}
		f.Y[k] = append([]float64{}, yk...)
		f.S[k] = make([]float64, f.NE)
		f.J[k] = make([]float64, f.NE)
	}
	return
}

// Evaluate computes the source terms and diagonal Jacobian of every cell
func (f *Field) Evaluate() error {
	var (
		NP   = f.Partitions.ParallelDegree
		errs = make([]error, NP)
		wg   = sync.WaitGroup{}
	)
	for np := 0; np < NP; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			var (
				w          = f.workers[np]
				kMin, kMax = f.Partitions.GetBucketRange(np)
			)
			for k := kMin; k < kMax; k++ {
				if err := w.chem.SourceAndJacobian(w.oracle, f.Y[k], f.Pressure, f.S[k], f.J[k]); err != nil {
					errs[np] = fmt.Errorf("cell %d (worker %d, %d cells): %w",
						k, np, f.Partitions.GetBucketDimension(np), err)
					return
				}
				f.Mixture[k] = w.chem.Mixture()
			}
		}(np)
	}
	wg.Wait()
	return errors.Join(errs...)
}

// GlobalJacobian assembles the diagonal Jacobians of all cells into one diagonal matrix of
// order NCells*NE, cell k occupies rows k*NE to (k+1)*NE-1
func (f *Field) GlobalJacobian() *sparse.DIA {
	var (
		N    = f.NCells * f.NE
		diag = make([]float64, N)
	)
	for k := 0; k < f.NCells; k++ {
		copy(diag[k*f.NE:], f.J[k])
	}
	return sparse.NewDIA(N, N, diag)
}

// Advance evaluates the chemistry and applies one point implicit step of size dt to every
// cell, returning the rate of change norm over the whole field. The global Jacobian is
// turned in place into the operator dt/(1 - dt Jd) and applied to the stacked state rates.
func (f *Field) Advance(dt float64) (residual float64, err error) {
	if err = f.Evaluate(); err != nil {
		return
	}
	var (
		N  = f.NCells * f.NE
		op = f.GlobalJacobian()
		M  = op.Diagonal()
		F  = make([]float64, N)
		dY = make([]float64, N)
	)
	for k := 0; k < f.NCells; k++ {
		for i := 0; i < f.NE; i++ {
			Fi, Jd := Reactor0D.PointImplicitRate(f.Mixture[k], f.S[k], f.J[k], f.EnergyMode, i)
			F[k*f.NE+i] = Fi
			M[k*f.NE+i] = dt / (1. - dt*Jd)
		}
	}
	op.MulVecTo(dY, false, F)
	for k := 0; k < f.NCells; k++ {
		floats.Add(f.Y[k], dY[k*f.NE:(k+1)*f.NE])
	}
	residual = floats.Norm(dY, 2) / dt
	log.WithFields(log.Fields{
		"cells":    f.NCells,
		"workers":  f.Partitions.ParallelDegree,
		"residual": residual,
	}).Debug("field advanced")
	return
}
