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

// LazyConstraintFunc is invoked by the solver whenever a candidate solution
// must be enforced or checked. Implementations read the candidate through
// LazyContext.VarValues and reject it by adding one or more violated
// constraints through LazyContext.AddLinearConstraint. State is best passed
// by capturing it in the closure.
//
// The callback runs on the goroutine that called Solve and must not block.
type LazyConstraintFunc func(ctx *LazyContext) error

// lazyConshdlr is the registration record for one lazy constraint callback.
// Each registration becomes its own constraint handler plugin in the solver.
type lazyConshdlr struct {
	model *Model
	fn    LazyConstraintFunc
}

// LazyContext is the session passed to a LazyConstraintFunc for a single
// enforcement or feasibility check. A fresh context is created per
// invocation and must not be retained after the callback returns.
type LazyContext struct {
	model     *Model
	checkOnly bool
	feasible  bool
	sol       *C.SCIP_SOL // candidate under check; nil in enforcement mode
}

// CheckOnly reports whether the callback is asked only to verify a complete
// candidate solution. In that mode added constraints influence the verdict
// but are not attached to the search.
func (ctx *LazyContext) CheckOnly() bool {
	return ctx.checkOnly
}

// VarValues returns the candidate values of all variables: the specific
// solution under check in check mode, the solver's current working solution
// during enforcement.
func (ctx *LazyContext) VarValues() ([]float64, error) {
	var sol *C.SCIP_SOL
	if ctx.checkOnly {
		sol = ctx.sol
	}

	values := make([]float64, len(ctx.model.vars))
	for i, v := range ctx.model.vars {
		values[i] = float64(C.SCIPgetSolVal(ctx.model.scip, sol, v))
	}

	return values, nil
}

// AddLinearConstraint adds a lazy constraint lhs <= sum(coefs[i]*x[i]) <= rhs.
// The constraint is checked against the session's candidate solution and, if
// violated, marks the candidate infeasible. In enforcement mode it is also
// attached to the running search; it is never recorded in the model's own
// constraint list, because the original problem does not contain it and it
// would not survive the post-solve cleanup. This is a known limitation: cuts
// added here are gone when the model is solved again.
func (ctx *LazyContext) AddLinearConstraint(indices []int, coefs []float64, lhs, rhs float64) error {
	scip := ctx.model.scip

	var sol *C.SCIP_SOL
	if ctx.checkOnly {
		sol = ctx.sol
	}

	// a late feasibility check can arrive after the search has fully
	// finished; constraint creation is illegal in that stage, so accept the
	// candidate and do nothing else
	if C.SCIPgetStage(scip) == C.SCIP_STAGE_SOLVED {
		ctx.feasible = true
		return nil
	}

	cons, err := ctx.model.buildLinearCons(indices, coefs, lhs, rhs)
	if err != nil {
		return err
	}

	var result C.SCIP_RESULT
	if err := scipError(C.SCIPcheckCons(scip, cons, sol, C.FALSE, C.FALSE, C.FALSE, &result)); err != nil {
		return err
	}
	if result == C.SCIP_INFEASIBLE {
		ctx.feasible = false
	}

	if !ctx.checkOnly {
		if err := scipError(C.SCIPaddCons(scip, cons)); err != nil {
			return err
		}
	}

	return scipError(C.SCIPreleaseCons(scip, &cons))
}

// AddLazyConstraintCallback registers fn as a lazy constraint callback. With
// fractional set, the callback's plugin runs at enforcement priority -1 and
// may be handed solutions that violate integrality; otherwise it runs at
// priority +1 and only sees integer-feasible candidates (the solver's
// integrality handler sits at priority 0).
func (model *Model) AddLazyConstraintCallback(fn LazyConstraintFunc, fractional bool) error {
	model.mu.Lock()
	defer model.mu.Unlock()

	priority := 1
	if fractional {
		priority = -1
	}

	handler := &lazyConshdlr{model: model, fn: fn}
	token := saveRef(handler)

	cName := C.CString(fmt.Sprintf("lazycons_%d", model.nLazyCB))
	defer C.free(unsafe.Pointer(cName))

	if err := scipError(C.goscipIncludeLazyConshdlr(model.scip, cName, C.int(priority), token)); err != nil {
		freeRef(token)
		return err
	}

	model.nLazyCB++

	return nil
}

func lazyConshdlrFromC(conshdlr *C.SCIP_CONSHDLR) *lazyConshdlr {
	handler, _ := loadRef(unsafe.Pointer(C.SCIPconshdlrGetData(conshdlr))).(*lazyConshdlr)
	return handler
}

// enforce runs the user callback with a fresh enforcement session and
// translates its verdict. Both LP and pseudo-solution enforcement land here.
func (handler *lazyConshdlr) enforce(result *C.SCIP_RESULT) C.SCIP_RETCODE {
	*result = C.SCIP_FEASIBLE

	ctx := &LazyContext{model: handler.model, checkOnly: false, feasible: true}
	if err := handler.fn(ctx); err != nil {
		return scipRetcode(err)
	}

	if !ctx.feasible {
		*result = C.SCIP_CONSADDED
	}

	return C.SCIP_OKAY
}

//export goConsEnfolpLazy
func goConsEnfolpLazy(scip *C.SCIP, conshdlr *C.SCIP_CONSHDLR, conss **C.SCIP_CONS,
	nconss, nusefulconss C.int, solinfeasible C.SCIP_Bool, result *C.SCIP_RESULT) C.SCIP_RETCODE {
	handler := lazyConshdlrFromC(conshdlr)
	if handler == nil {
		return C.SCIP_ERROR
	}

	return handler.enforce(result)
}

//export goConsEnfopsLazy
func goConsEnfopsLazy(scip *C.SCIP, conshdlr *C.SCIP_CONSHDLR, conss **C.SCIP_CONS,
	nconss, nusefulconss C.int, solinfeasible, objinfeasible C.SCIP_Bool, result *C.SCIP_RESULT) C.SCIP_RETCODE {
	handler := lazyConshdlrFromC(conshdlr)
	if handler == nil {
		return C.SCIP_ERROR
	}

	return handler.enforce(result)
}

//export goConsCheckLazy
func goConsCheckLazy(scip *C.SCIP, conshdlr *C.SCIP_CONSHDLR, conss **C.SCIP_CONS,
	nconss C.int, sol *C.SCIP_SOL, checkintegrality, checklprows, printreason, completely C.SCIP_Bool,
	result *C.SCIP_RESULT) C.SCIP_RETCODE {
	*result = C.SCIP_FEASIBLE

	handler := lazyConshdlrFromC(conshdlr)
	if handler == nil {
		return C.SCIP_ERROR
	}

	ctx := &LazyContext{model: handler.model, checkOnly: true, feasible: true, sol: sol}
	if err := handler.fn(ctx); err != nil {
		return scipRetcode(err)
	}

	if !ctx.feasible {
		*result = C.SCIP_INFEASIBLE
	}

	return C.SCIP_OKAY
}

//export goConsLockLazy
func goConsLockLazy(scip *C.SCIP, conshdlr *C.SCIP_CONSHDLR, cons *C.SCIP_CONS,
	nlockspos, nlocksneg C.int) C.SCIP_RETCODE {
	handler := lazyConshdlrFromC(conshdlr)
	if handler == nil {
		return C.SCIP_ERROR
	}

	// the callback may involve any variable, so lock all of them both ways
	for _, v := range handler.model.vars {
		if retcode := C.SCIPaddVarLocks(scip, v, nlockspos+nlocksneg, nlockspos+nlocksneg); retcode != C.SCIP_OKAY {
			return retcode
		}
	}

	return C.SCIP_OKAY
}

//export goConsFreeLazy
func goConsFreeLazy(scip *C.SCIP, conshdlr *C.SCIP_CONSHDLR) C.SCIP_RETCODE {
	freeRef(unsafe.Pointer(C.SCIPconshdlrGetData(conshdlr)))
	C.SCIPconshdlrSetData(conshdlr, nil)

	return C.SCIP_OKAY
}
