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

// #include <stdlib.h>
// #include "bridge.h"
import "C"

import (
	"fmt"
	"unsafe"
)

// HeuristicFunc is invoked by the solver after each search-tree node. It may
// inspect the node's relaxation values and propose a complete candidate
// solution via HeurContext.SetSolution; the solver then re-verifies the
// candidate itself (feasibility, bounds, objective improvement).
//
// The callback runs on the goroutine that called Solve and must not block.
type HeuristicFunc func(ctx *HeurContext) error

// heuristic is the registration record for one heuristic callback. Each
// registration becomes its own heuristic plugin in the solver; the plugin
// handle is kept so that supplied solutions are attributed to it.
type heuristic struct {
	model *Model
	fn    HeuristicFunc
	heur  *C.SCIP_HEUR
}

// HeurContext is the session passed to a HeuristicFunc for a single
// invocation. A fresh context is created per invocation, so the solution
// slot is always empty when the callback starts.
type HeurContext struct {
	model  *Model
	plugin *heuristic
	sol    *C.SCIP_SOL // candidate built by the callback, if any
}

// RelaxationValues returns the variable values of the current node's
// relaxation, in index order.
func (ctx *HeurContext) RelaxationValues() ([]float64, error) {
	model := ctx.model

	cValues := make([]C.SCIP_Real, len(model.vars))

	var varsPtr **C.SCIP_VAR
	var valuesPtr *C.SCIP_Real
	if len(model.vars) > 0 {
		varsPtr = &model.vars[0]
		valuesPtr = &cValues[0]
	}

	if err := scipError(C.SCIPgetSolVals(model.scip, nil, C.int(len(model.vars)), varsPtr, valuesPtr)); err != nil {
		return nil, err
	}

	values := make([]float64, len(cValues))
	for i, v := range cValues {
		values[i] = float64(v)
	}

	return values, nil
}

// SetSolution installs a dense, complete candidate solution, one value per
// model variable. The candidate is owned by the heuristic plugin and is
// submitted to the solver when the callback returns. Calling SetSolution
// again replaces an earlier candidate from the same invocation.
func (ctx *HeurContext) SetSolution(values []float64) error {
	model := ctx.model

	if len(values) != len(model.vars) {
		return fmt.Errorf("%w: got %d values for %d variables", ErrEngine, len(values), len(model.vars))
	}

	if ctx.sol != nil {
		if err := scipError(C.SCIPfreeSol(model.scip, &ctx.sol)); err != nil {
			return err
		}
	}

	if err := scipError(C.SCIPcreateSol(model.scip, &ctx.sol, ctx.plugin.heur)); err != nil {
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

	return scipError(C.SCIPsetSolVals(model.scip, ctx.sol, C.int(len(model.vars)), varsPtr, valuesPtr))
}

// AddHeuristicCallback registers fn as a primal heuristic, invoked after
// each search-tree node.
func (model *Model) AddHeuristicCallback(fn HeuristicFunc) error {
	model.mu.Lock()
	defer model.mu.Unlock()

	handler := &heuristic{model: model, fn: fn}
	token := saveRef(handler)

	cName := C.CString(fmt.Sprintf("heur_%d", model.nHeur))
	defer C.free(unsafe.Pointer(cName))

	var heur *C.SCIP_HEUR
	if err := scipError(C.goscipIncludeHeur(model.scip, &heur, cName, token)); err != nil {
		freeRef(token)
		return err
	}
	handler.heur = heur

	model.nHeur++

	return nil
}

//export goHeurExec
func goHeurExec(scip *C.SCIP, heur *C.SCIP_HEUR, heurtiming C.SCIP_HEURTIMING,
	nodeinfeasible C.SCIP_Bool, result *C.SCIP_RESULT) C.SCIP_RETCODE {
	*result = C.SCIP_DIDNOTFIND

	handler, _ := loadRef(unsafe.Pointer(C.SCIPheurGetData(heur))).(*heuristic)
	if handler == nil {
		return C.SCIP_ERROR
	}

	ctx := &HeurContext{model: handler.model, plugin: handler}
	if err := handler.fn(ctx); err != nil {
		return scipRetcode(err)
	}

	if ctx.sol != nil {
		// the solver decides acceptance: feasibility, bounds and objective
		// improvement are all checked on its side, and the solution is freed
		// either way
		var stored C.SCIP_Bool
		if retcode := C.SCIPtrySolFree(scip, &ctx.sol,
			C.FALSE, C.TRUE, C.TRUE, C.TRUE, C.TRUE, &stored); retcode != C.SCIP_OKAY {
			return retcode
		}
		if stored != C.FALSE {
			*result = C.SCIP_FOUNDSOL
		}
	}

	return C.SCIP_OKAY
}

//export goHeurFree
func goHeurFree(scip *C.SCIP, heur *C.SCIP_HEUR) C.SCIP_RETCODE {
	freeRef(unsafe.Pointer(C.SCIPheurGetData(heur)))
	C.SCIPheurSetData(heur, nil)

	return C.SCIP_OKAY
}
