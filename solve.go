/*
Copyright © 2026 the goscip authors

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <http://www.gnu.org/licenses/>.
*/

package goscip

// #include "bridge.h"
import "C"

import (
	"context"
	"fmt"
)

// flipObjectiveForSense negates every objective coefficient when the declared
// sense is Maximize. The solver only minimizes; posing the problem as a
// minimization also keeps the internal ordering of stored solutions intact
// across the free-transform step. Calling it twice restores the original
// coefficients, so Solve brackets the search with a symmetric pair of flips.
func (model *Model) flipObjectiveForSense() error {
	if model.sense != Maximize {
		return nil
	}

	for _, v := range model.vars {
		coef := C.SCIPvarGetObj(v)
		if err := scipError(C.SCIPchgVarObj(model.scip, v, -coef)); err != nil {
			return err
		}
	}

	return nil
}

// Solve runs the solver's branch-and-bound search. It blocks until the
// search terminates, invoking any registered callbacks on the calling
// goroutine. The terminal status and the best dual bound are cached before
// the solver discards its transformed problem, and remain queryable via
// Status and ObjBound. The model may be edited and solved again afterwards.
func (model *Model) Solve() error {
	model.mu.Lock()
	defer model.mu.Unlock()

	return model.solve()
}

func (model *Model) solve() error {
	if err := model.flipObjectiveForSense(); err != nil {
		return err
	}

	// a pending initial solution is consumed here whether or not the solver
	// accepts it
	if model.initialSol != nil {
		var stored C.SCIP_Bool
		if err := scipError(C.SCIPaddSolFree(model.scip, &model.initialSol, &stored)); err != nil {
			return err
		}
	}

	if err := scipError(C.SCIPsolve(model.scip)); err != nil {
		return err
	}

	// cache status and bound now: freeTransform invalidates these queries
	model.status = statusFromSCIP(C.SCIPgetStatus(model.scip))

	dual := float64(C.SCIPgetDualbound(model.scip))
	if model.sense == Maximize {
		dual = -dual
	}
	model.objBound = dual

	if err := scipError(C.SCIPfreeTransform(model.scip)); err != nil {
		return err
	}

	return model.flipObjectiveForSense()
}

// SolveWithContext wraps Solve with a context. When the context is cancelled
// or times out, the solver is asked to interrupt its search; the interrupt
// surfaces as StatusUserLimit and the context error is returned.
func (model *Model) SolveWithContext(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			C.SCIPinterruptSolve(model.scip)
		case <-done:
		}
	}()

	err := model.Solve()
	close(done)

	if ctxErr := ctx.Err(); ctxErr != nil && err == nil {
		return ctxErr
	}

	return err
}

// Status returns the cached outcome of the last solve, or StatusUnknown if
// the model was never solved.
func (model *Model) Status() Status {
	model.mu.RLock()
	defer model.mu.RUnlock()

	return model.status
}

// ObjValue returns the objective value of the best solution, expressed in
// the declared sense. It fails with ErrNoSolution if no solution exists.
func (model *Model) ObjValue() (float64, error) {
	model.mu.RLock()
	defer model.mu.RUnlock()

	sol := C.SCIPgetBestSol(model.scip)
	if sol == nil {
		return 0, ErrNoSolution
	}

	objval := float64(C.SCIPgetSolOrigObj(model.scip, sol))
	if model.sense == Maximize {
		objval = -objval
	}

	return objval, nil
}

// ObjBound returns the best proven dual bound of the last solve, expressed
// in the declared sense. It is NaN before the first solve.
func (model *Model) ObjBound() float64 {
	model.mu.RLock()
	defer model.mu.RUnlock()

	return model.objBound
}

// VarValues returns the values of all variables in the best solution, in
// index order. It fails with ErrNoSolution if no solution exists.
func (model *Model) VarValues() ([]float64, error) {
	model.mu.RLock()
	defer model.mu.RUnlock()

	sol := C.SCIPgetBestSol(model.scip)
	if sol == nil {
		return nil, ErrNoSolution
	}

	values := make([]float64, len(model.vars))
	for i, v := range model.vars {
		values[i] = float64(C.SCIPgetSolVal(model.scip, sol, v))
	}

	return values, nil
}

// VarValue returns the value of one variable in the best solution.
func (model *Model) VarValue(index int) (float64, error) {
	model.mu.RLock()
	defer model.mu.RUnlock()

	v, err := model.varAt(index)
	if err != nil {
		return 0, err
	}

	sol := C.SCIPgetBestSol(model.scip)
	if sol == nil {
		return 0, ErrNoSolution
	}

	return float64(C.SCIPgetSolVal(model.scip, sol, v)), nil
}

// SetInitialSolution stores a dense candidate solution to be handed to the
// solver at the start of the next solve, where it is checked and, if
// feasible, installed as the first incumbent. At most one initial solution
// is pending at a time; setting a new one releases the previous.
func (model *Model) SetInitialSolution(values []float64) error {
	model.mu.Lock()
	defer model.mu.Unlock()

	if len(values) != len(model.vars) {
		return fmt.Errorf("%w: got %d values for %d variables", ErrEngine, len(values), len(model.vars))
	}

	if model.initialSol != nil { // a solution was already given
		if err := scipError(C.SCIPfreeSol(model.scip, &model.initialSol)); err != nil {
			return err
		}
	}

	if err := scipError(C.SCIPcreateSol(model.scip, &model.initialSol, nil)); err != nil {
		return err
	}

	cValues := make([]C.SCIP_Real, len(values))
	for i, value := range values {
		cValues[i] = C.SCIP_Real(value)
	}

	var varsPtr **C.SCIP_VAR
	var valuesPtr *C.SCIP_Real
	if len(model.vars) > 0 {
		varsPtr = &model.vars[0]
		valuesPtr = &cValues[0]
	}

	// handed to the solver by the next Solve call
	return scipError(C.SCIPsetSolVals(model.scip, model.initialSol, C.int(len(model.vars)), varsPtr, valuesPtr))
}
