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
	"fmt"
	"math"
)

// VarType is the domain of a model variable.
type VarType int

const (
	Binary VarType = iota
	Integer
	ImplInt
	Continuous
)

// String returns a human-readable representation of the variable type.
func (t VarType) String() string {
	switch t {
	case Binary:
		return "Binary"
	case Integer:
		return "Integer"
	case ImplInt:
		return "ImplInt"
	case Continuous:
		return "Continuous"
	default:
		return "Unknown"
	}
}

func (t VarType) toC() C.SCIP_VARTYPE {
	switch t {
	case Binary:
		return C.SCIP_VARTYPE_BINARY
	case Integer:
		return C.SCIP_VARTYPE_INTEGER
	case ImplInt:
		return C.SCIP_VARTYPE_IMPLINT
	default:
		return C.SCIP_VARTYPE_CONTINUOUS
	}
}

func varTypeFromC(t C.SCIP_VARTYPE) VarType {
	switch t {
	case C.SCIP_VARTYPE_BINARY:
		return Binary
	case C.SCIP_VARTYPE_INTEGER:
		return Integer
	case C.SCIP_VARTYPE_IMPLINT:
		return ImplInt
	default:
		return Continuous
	}
}

// real converts a Go float to a solver value, mapping IEEE infinities to the
// solver's notion of infinity.
func (model *Model) real(v float64) C.SCIP_Real {
	switch {
	case math.IsInf(v, 1):
		return C.SCIPinfinity(model.scip)
	case math.IsInf(v, -1):
		return -C.SCIPinfinity(model.scip)
	default:
		return C.SCIP_Real(v)
	}
}

func (model *Model) varAt(index int) (*C.SCIP_VAR, error) {
	if index < 0 || index >= len(model.vars) {
		return nil, fmt.Errorf("%w: variable index %d out of range [0,%d)", ErrEngine, index, len(model.vars))
	}
	return model.vars[index], nil
}

// AddVariable adds a variable with the given bounds and type to the model
// and returns its index. Indices are assigned in insertion order, starting
// at 0, and stay valid for the lifetime of the model. The new variable has
// an objective coefficient of 0.
func (model *Model) AddVariable(lower, upper float64, varType VarType) (int, error) {
	model.mu.Lock()
	defer model.mu.Unlock()

	var v *C.SCIP_VAR
	if err := scipError(C.SCIPcreateVarBasic(model.scip, &v, nil,
		model.real(lower), model.real(upper), 0.0, varType.toC())); err != nil {
		return -1, err
	}
	if err := scipError(C.SCIPaddVar(model.scip, v)); err != nil {
		return -1, err
	}

	index := len(model.vars)
	model.vars = append(model.vars, v)

	return index, nil
}

// SetLowerBounds changes the lower bounds of the listed variables.
func (model *Model) SetLowerBounds(indices []int, bounds []float64) error {
	if len(indices) != len(bounds) {
		return fmt.Errorf("%w: inconsistent number of indices and bounds: %d != %d", ErrEngine, len(indices), len(bounds))
	}

	model.mu.Lock()
	defer model.mu.Unlock()

	for i, index := range indices {
		v, err := model.varAt(index)
		if err != nil {
			return err
		}
		if err := scipError(C.SCIPchgVarLb(model.scip, v, model.real(bounds[i]))); err != nil {
			return err
		}
	}

	return nil
}

// SetUpperBounds changes the upper bounds of the listed variables.
func (model *Model) SetUpperBounds(indices []int, bounds []float64) error {
	if len(indices) != len(bounds) {
		return fmt.Errorf("%w: inconsistent number of indices and bounds: %d != %d", ErrEngine, len(indices), len(bounds))
	}

	model.mu.Lock()
	defer model.mu.Unlock()

	for i, index := range indices {
		v, err := model.varAt(index)
		if err != nil {
			return err
		}
		if err := scipError(C.SCIPchgVarUb(model.scip, v, model.real(bounds[i]))); err != nil {
			return err
		}
	}

	return nil
}

// SetVarType changes the type of a variable. Changing to Binary clamps the
// variable's bounds to [0,1]; the solver rejects binary variables with wider
// bounds, while modeling layers expect the change to just work.
func (model *Model) SetVarType(index int, varType VarType) error {
	model.mu.Lock()
	defer model.mu.Unlock()

	v, err := model.varAt(index)
	if err != nil {
		return err
	}

	var infeasible C.SCIP_Bool
	if err := scipError(C.SCIPchgVarType(model.scip, v, varType.toC(), &infeasible)); err != nil {
		return err
	}
	// the infeasibility flag from the type change is deliberately ignored;
	// the bound clamp below is the behavior callers rely on
	if varType == Binary && float64(C.SCIPvarGetLbLocal(v)) < 0.0 {
		if err := scipError(C.SCIPchgVarLb(model.scip, v, 0.0)); err != nil {
			return err
		}
	}
	if varType == Binary && float64(C.SCIPvarGetUbLocal(v)) > 1.0 {
		if err := scipError(C.SCIPchgVarUb(model.scip, v, 1.0)); err != nil {
			return err
		}
	}

	return nil
}

// VarType returns the current type of a variable.
func (model *Model) VarType(index int) (VarType, error) {
	model.mu.RLock()
	defer model.mu.RUnlock()

	v, err := model.varAt(index)
	if err != nil {
		return Continuous, err
	}

	return varTypeFromC(C.SCIPvarGetType(v)), nil
}

// Bounds returns the current bounds of a variable.
func (model *Model) Bounds(index int) (lower, upper float64, err error) {
	model.mu.RLock()
	defer model.mu.RUnlock()

	v, err := model.varAt(index)
	if err != nil {
		return 0, 0, err
	}

	lower = float64(C.SCIPvarGetLbLocal(v))
	upper = float64(C.SCIPvarGetUbLocal(v))
	if C.SCIPisInfinity(model.scip, C.SCIP_Real(-lower)) == C.TRUE {
		lower = math.Inf(-1)
	}
	if C.SCIPisInfinity(model.scip, C.SCIP_Real(upper)) == C.TRUE {
		upper = math.Inf(1)
	}

	return lower, upper, nil
}

// SetObjective changes the objective coefficients of the listed variables.
// Variables not listed keep their current coefficient. Coefficients are
// always expressed in the declared sense of the model, regardless of the
// sign flipping performed internally around a solve.
func (model *Model) SetObjective(indices []int, coefs []float64) error {
	if len(indices) != len(coefs) {
		return fmt.Errorf("%w: inconsistent number of indices and coefficients: %d != %d", ErrEngine, len(indices), len(coefs))
	}

	model.mu.Lock()
	defer model.mu.Unlock()

	for i, index := range indices {
		v, err := model.varAt(index)
		if err != nil {
			return err
		}
		if err := scipError(C.SCIPchgVarObj(model.scip, v, C.SCIP_Real(coefs[i]))); err != nil {
			return err
		}
	}

	return nil
}
