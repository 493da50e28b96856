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

// buildLinearCons creates a linear constraint lhs <= sum(coefs[i]*x[i]) <= rhs
// over the listed variables. The constraint is fully initialized but not yet
// attached to the solver session. Duplicate indices accumulate additively.
func (model *Model) buildLinearCons(indices []int, coefs []float64, lhs, rhs float64) (*C.SCIP_CONS, error) {
	if len(indices) != len(coefs) {
		return nil, fmt.Errorf("%w: inconsistent number of indices and coefficients: %d != %d", ErrEngine, len(indices), len(coefs))
	}

	cName := C.CString("lincons")
	defer C.free(unsafe.Pointer(cName))

	var cons *C.SCIP_CONS
	if err := scipError(C.SCIPcreateConsBasicLinear(model.scip, &cons, cName,
		0, nil, nil, model.real(lhs), model.real(rhs))); err != nil {
		return nil, err
	}

	for i, index := range indices {
		v, err := model.varAt(index)
		if err != nil {
			return nil, err
		}
		if err := scipError(C.SCIPaddCoefLinear(model.scip, cons, v, C.SCIP_Real(coefs[i]))); err != nil {
			return nil, err
		}
	}

	return cons, nil
}

// registerCons hands a built constraint to the solver session, appends it to
// the constraint store and returns the assigned index.
func (model *Model) registerCons(cons *C.SCIP_CONS) (int, error) {
	if err := scipError(C.SCIPaddCons(model.scip, cons)); err != nil {
		return -1, err
	}

	index := len(model.conss)
	model.conss = append(model.conss, cons)

	return index, nil
}

// AddLinearConstraint adds the constraint lhs <= sum(coefs[i]*x[i]) <= rhs
// and returns its index. Use NegInf()/Inf() for one-sided ranges.
func (model *Model) AddLinearConstraint(indices []int, coefs []float64, lhs, rhs float64) (int, error) {
	model.mu.Lock()
	defer model.mu.Unlock()

	cons, err := model.buildLinearCons(indices, coefs, lhs, rhs)
	if err != nil {
		return -1, err
	}

	return model.registerCons(cons)
}

// AddQuadraticConstraint adds a constraint with a linear part over linIndices
// and a bilinear part with one term quadCoefs[i]*x[quadRowIndices[i]]*
// x[quadColIndices[i]] per entry; row and column may name the same variable
// for a pure quadratic term. Returns the constraint index.
func (model *Model) AddQuadraticConstraint(linIndices []int, linCoefs []float64,
	quadRowIndices, quadColIndices []int, quadCoefs []float64, lhs, rhs float64) (int, error) {
	if len(linIndices) != len(linCoefs) {
		return -1, fmt.Errorf("%w: inconsistent number of linear indices and coefficients: %d != %d", ErrEngine, len(linIndices), len(linCoefs))
	}
	if len(quadRowIndices) != len(quadCoefs) || len(quadColIndices) != len(quadCoefs) {
		return -1, fmt.Errorf("%w: inconsistent number of quadratic terms", ErrEngine)
	}

	model.mu.Lock()
	defer model.mu.Unlock()

	cName := C.CString("quadcons")
	defer C.free(unsafe.Pointer(cName))

	var cons *C.SCIP_CONS
	if err := scipError(C.SCIPcreateConsBasicQuadratic(model.scip, &cons, cName,
		0, nil, nil, 0, nil, nil, nil, model.real(lhs), model.real(rhs))); err != nil {
		return -1, err
	}

	for i, index := range linIndices {
		v, err := model.varAt(index)
		if err != nil {
			return -1, err
		}
		if err := scipError(C.SCIPaddLinearVarQuadratic(model.scip, cons, v, C.SCIP_Real(linCoefs[i]))); err != nil {
			return -1, err
		}
	}

	for i := range quadCoefs {
		v1, err := model.varAt(quadRowIndices[i])
		if err != nil {
			return -1, err
		}
		v2, err := model.varAt(quadColIndices[i])
		if err != nil {
			return -1, err
		}
		if err := scipError(C.SCIPaddBilinTermQuadratic(model.scip, cons, v1, v2, C.SCIP_Real(quadCoefs[i]))); err != nil {
			return -1, err
		}
	}

	return model.registerCons(cons)
}

// AddSOS1Constraint adds a special-ordered-set constraint of type 1 over the
// listed variables: at most one of them may be nonzero. The weights define
// the branching order, not a magnitude restriction; they are passed to the
// solver unvalidated. Returns the constraint index.
func (model *Model) AddSOS1Constraint(indices []int, weights []float64) (int, error) {
	return model.addSOSConstraint(indices, weights, false)
}

// AddSOS2Constraint adds a special-ordered-set constraint of type 2 over the
// listed variables: at most two of them may be nonzero, and those two must be
// consecutive in the given order. Returns the constraint index.
func (model *Model) AddSOS2Constraint(indices []int, weights []float64) (int, error) {
	return model.addSOSConstraint(indices, weights, true)
}

func (model *Model) addSOSConstraint(indices []int, weights []float64, sos2 bool) (int, error) {
	if len(indices) != len(weights) {
		return -1, fmt.Errorf("%w: inconsistent number of indices and weights: %d != %d", ErrEngine, len(indices), len(weights))
	}

	model.mu.Lock()
	defer model.mu.Unlock()

	vars := make([]*C.SCIP_VAR, len(indices))
	cWeights := make([]C.SCIP_Real, len(weights))
	for i, index := range indices {
		v, err := model.varAt(index)
		if err != nil {
			return -1, err
		}
		vars[i] = v
		cWeights[i] = C.SCIP_Real(weights[i])
	}

	var varsPtr **C.SCIP_VAR
	var weightsPtr *C.SCIP_Real
	if len(vars) > 0 {
		varsPtr = &vars[0]
		weightsPtr = &cWeights[0]
	}

	var cons *C.SCIP_CONS
	if sos2 {
		cName := C.CString("sos2")
		defer C.free(unsafe.Pointer(cName))
		if err := scipError(C.SCIPcreateConsBasicSOS2(model.scip, &cons, cName,
			C.int(len(vars)), varsPtr, weightsPtr)); err != nil {
			return -1, err
		}
	} else {
		cName := C.CString("sos1")
		defer C.free(unsafe.Pointer(cName))
		if err := scipError(C.SCIPcreateConsBasicSOS1(model.scip, &cons, cName,
			C.int(len(vars)), varsPtr, weightsPtr)); err != nil {
			return -1, err
		}
	}

	return model.registerCons(cons)
}
