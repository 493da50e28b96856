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

/*
Package goscip provides Go bindings for the SCIP mixed-integer programming
solver. It covers model building (variables, linear, quadratic and SOS
constraints, objective), solving, and solution queries, plus two solver-time
extension points: lazy constraint callbacks and primal heuristic callbacks.

A small knapsack-style problem looks like this:

	package main

	import (
		"fmt"

		"github.com/goscip/goscip"
	)

	func main() {
		model, _ := goscip.NewModel("example")
		defer model.Close()

		x, _ := model.AddVariable(0, 10, goscip.Continuous)
		y, _ := model.AddVariable(0, 10, goscip.Continuous)
		model.AddLinearConstraint([]int{x, y}, []float64{1, 1}, goscip.NegInf(), 5)
		model.SetObjective([]int{x, y}, []float64{1, 1})
		model.SetSense(goscip.Maximize)

		if err := model.Solve(); err != nil { // you should check all errors
			panic(err)
		}

		obj, _ := model.ObjValue()
		fmt.Printf("solution optimal? %t\n", model.Status() == goscip.StatusOptimal)
		fmt.Printf("z = %f\n", obj)
	}

All operations that talk to the solver return an error instead of panicking.
SCIP itself always minimizes; a Maximize sense is simulated by negating the
objective coefficients around each solve, so the coefficients visible through
this API never change.
*/
package goscip

// #cgo LDFLAGS: -lscip
// #include <stdlib.h>
// #include "bridge.h"
import "C"

import (
	"fmt"
	"math"
	"sync"
	"unsafe"

	"github.com/rs/zerolog"
)

// initialStoreCapacity is the starting capacity of the variable and
// constraint handle stores. Growth beyond it is the usual amortized doubling.
const initialStoreCapacity = 64

// Sense is the optimization direction of a model.
type Sense int

const (
	Minimize Sense = iota
	Maximize
)

// Model is a single SCIP problem instance. It owns the solver session and
// the handles of all variables and constraints added to it; both are
// identified by stable 0-based indices assigned in insertion order.
//
// A Model must be released with Close. It must not be solved concurrently.
type Model struct {
	mu   sync.RWMutex
	scip *C.SCIP

	// append-only handle stores; the slice index is the public identifier
	vars  []*C.SCIP_VAR
	conss []*C.SCIP_CONS

	sense      Sense
	initialSol *C.SCIP_SOL

	// cached after each solve, because freeTransform invalidates the
	// corresponding direct queries
	status   Status
	objBound float64

	// counters used to generate unique plugin names
	nLazyCB int
	nHeur   int

	log zerolog.Logger
}

// NewModel creates an empty model with the given (purely informational) name.
// The default optimization sense is Minimize.
func NewModel(name string, opts ...Option) (*Model, error) {
	model := &Model{
		vars:     make([]*C.SCIP_VAR, 0, initialStoreCapacity),
		conss:    make([]*C.SCIP_CONS, 0, initialStoreCapacity),
		sense:    Minimize,
		status:   StatusUnknown,
		objBound: math.NaN(),
		log:      zerolog.Nop(),
	}

	if err := scipError(C.SCIPcreate(&model.scip)); err != nil {
		return nil, err
	}
	if err := scipError(C.SCIPincludeDefaultPlugins(model.scip)); err != nil {
		C.SCIPfree(&model.scip)
		return nil, err
	}

	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	if err := scipError(C.SCIPcreateProbBasic(model.scip, cName)); err != nil {
		C.SCIPfree(&model.scip)
		return nil, err
	}

	for _, opt := range opts {
		if err := opt(model); err != nil {
			C.SCIPfree(&model.scip)
			return nil, fmt.Errorf("applying model option: %w", err)
		}
	}

	// redirect solver output to our logger; the handler data token is
	// released by the handler's own free callback when the session dies
	if err := scipError(C.goscipInstallMessagehdlr(model.scip, saveRef(model))); err != nil {
		C.SCIPfree(&model.scip)
		return nil, err
	}

	if err := model.SetParam("display/width", 80); err != nil {
		model.Close()
		return nil, err
	}

	return model, nil
}

// Close releases the model and every solver-owned handle it tracks.
// Variables are released first, then constraints, then the session itself;
// the session free runs the plugin lock methods a last time, which still
// reads the stored variable handles, so the store is cleared only afterwards.
func (model *Model) Close() error {
	model.mu.Lock()
	defer model.mu.Unlock()

	if model.scip == nil {
		return nil
	}

	if model.initialSol != nil { // solve was never called
		if err := scipError(C.SCIPfreeSol(model.scip, &model.initialSol)); err != nil {
			return err
		}
	}

	for _, v := range model.vars {
		// release through a copy: SCIPreleaseVar nils its argument, but the
		// stored pointer must stay intact until SCIPfree has run
		v := v
		if err := scipError(C.SCIPreleaseVar(model.scip, &v)); err != nil {
			return err
		}
	}
	for i := range model.conss {
		if err := scipError(C.SCIPreleaseCons(model.scip, &model.conss[i])); err != nil {
			return err
		}
	}
	if err := scipError(C.SCIPfree(&model.scip)); err != nil {
		return err
	}

	model.scip = nil
	model.vars = nil
	model.conss = nil

	return nil
}

// Name returns the name provided upon instantiation of the model.
func (model *Model) Name() string {
	model.mu.RLock()
	defer model.mu.RUnlock()

	return C.GoString(C.SCIPgetProbName(model.scip))
}

// SetSense changes the direction of the model's optimization.
func (model *Model) SetSense(sense Sense) {
	model.mu.Lock()
	defer model.mu.Unlock()

	model.sense = sense
}

// Sense returns the model's current optimization direction.
func (model *Model) Sense() Sense {
	model.mu.RLock()
	defer model.mu.RUnlock()

	return model.sense
}

// NumVars returns the number of variables added to the model.
func (model *Model) NumVars() int {
	model.mu.RLock()
	defer model.mu.RUnlock()

	return len(model.vars)
}

// NumConss returns the number of constraints added to the model. Lazy
// constraints injected by callbacks during a solve are not counted; they
// belong to the solver for the duration of that solve only.
func (model *Model) NumConss() int {
	model.mu.RLock()
	defer model.mu.RUnlock()

	return len(model.conss)
}

// SetParam sets a solver parameter. The value type must match the parameter:
// bool, int, int64, float64, byte or string.
func (model *Model) SetParam(name string, value interface{}) error {
	model.mu.Lock()
	defer model.mu.Unlock()

	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	switch v := value.(type) {
	case bool:
		b := C.SCIP_Bool(C.FALSE)
		if v {
			b = C.SCIP_Bool(C.TRUE)
		}
		return scipError(C.SCIPsetBoolParam(model.scip, cName, b))
	case int:
		return scipError(C.SCIPsetIntParam(model.scip, cName, C.int(v)))
	case int64:
		return scipError(C.SCIPsetLongintParam(model.scip, cName, C.SCIP_Longint(v)))
	case float64:
		return scipError(C.SCIPsetRealParam(model.scip, cName, C.SCIP_Real(v)))
	case byte:
		return scipError(C.SCIPsetCharParam(model.scip, cName, C.char(v)))
	case string:
		cValue := C.CString(v)
		defer C.free(unsafe.Pointer(cValue))
		return scipError(C.SCIPsetStringParam(model.scip, cName, cValue))
	default:
		return fmt.Errorf("%w: unsupported parameter type %T for %q", ErrEngine, value, name)
	}
}

// Inf returns the value treated as positive infinity in bounds and ranges.
func Inf() float64 { return math.Inf(1) }

// NegInf returns the value treated as negative infinity in bounds and ranges.
func NegInf() float64 { return math.Inf(-1) }
