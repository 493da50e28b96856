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

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	bigModel     *Model
	bigModelOnce sync.Once
)

// getBigModel builds a model that is cheap to state but slow enough to solve
// that a context can expire first.
func getBigModel(t *testing.T) *Model {
	t.Helper()

	bigModelOnce.Do(func() {
		numVars := 10000
		model, err := NewModel("testBig")
		require.NoError(t, err)
		model.SetSense(Maximize)

		for i := 0; i < numVars; i++ {
			v, err := model.AddVariable(math.Inf(-1), math.Inf(1), Integer)
			require.NoError(t, err)
			require.NoError(t, model.SetObjective([]int{v}, []float64{1}))
			_, err = model.AddLinearConstraint([]int{v}, []float64{1}, -float64(i), float64(i))
			require.NoError(t, err)
		}

		bigModel = model
	})

	return bigModel
}

func TestSolveSingleBinary(t *testing.T) {
	model, err := NewModel("test")
	require.NoError(t, err)
	defer model.Close()

	x, err := model.AddVariable(0, 1, Binary)
	require.NoError(t, err)
	require.NoError(t, model.SetObjective([]int{x}, []float64{1}))

	require.NoError(t, model.Solve())

	assert.Equal(t, StatusOptimal, model.Status())

	obj, err := model.ObjValue()
	require.NoError(t, err)
	assert.InDelta(t, 0.0, obj, delta)

	value, err := model.VarValue(x)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, value, delta)
}

func TestSolveLPMaximize(t *testing.T) {
	model, err := NewModel("test")
	require.NoError(t, err)
	defer model.Close()

	x, _ := model.AddVariable(0, 10, Continuous)
	y, _ := model.AddVariable(0, 10, Continuous)

	_, err = model.AddLinearConstraint([]int{x, y}, []float64{1, 1}, math.Inf(-1), 5)
	require.NoError(t, err)
	require.NoError(t, model.SetObjective([]int{x, y}, []float64{1, 1}))
	model.SetSense(Maximize)

	require.NoError(t, model.Solve())

	assert.Equal(t, StatusOptimal, model.Status())

	obj, err := model.ObjValue()
	require.NoError(t, err)
	assert.InDelta(t, 5.0, obj, delta)

	values, err := model.VarValues()
	require.NoError(t, err)
	assert.InDelta(t, 5.0, values[x]+values[y], delta)
}

// buildMIP states the MIP
//
//	max    x1 + 2 x2 + 3 x3 + x4
//	s.t.   0 <= - x1 +   x2 + x3 + 10 x4 <= 20
//	       0 <=   x1 - 3 x2 + x3         <= 30
//	              x2             - 3.5 x4 = 0
//	       0 <= x1 <= 40;  x2, x3 >= 0;  x4 in {2,..,3} integer
//
// with optimum 122.5 at (40, 10.5, 19.5, 3).
func buildMIP(t *testing.T, negated bool) (*Model, []int) {
	t.Helper()

	model, err := NewModel("testMIP")
	require.NoError(t, err)

	x1, _ := model.AddVariable(0, 40, Continuous)
	x2, _ := model.AddVariable(0, math.Inf(1), Continuous)
	x3, _ := model.AddVariable(0, math.Inf(1), Continuous)
	x4, err := model.AddVariable(2, 3, Integer)
	require.NoError(t, err)

	vars := []int{x1, x2, x3, x4}

	_, err = model.AddLinearConstraint(vars, []float64{-1, 1, 1, 10}, 0, 20)
	require.NoError(t, err)
	_, err = model.AddLinearConstraint([]int{x1, x2, x3}, []float64{1, -3, 1}, 0, 30)
	require.NoError(t, err)
	_, err = model.AddLinearConstraint([]int{x2, x4}, []float64{1, -3.5}, 0, 0)
	require.NoError(t, err)

	coefs := []float64{1, 2, 3, 1}
	if negated {
		for i := range coefs {
			coefs[i] = -coefs[i]
		}
		model.SetSense(Minimize)
	} else {
		model.SetSense(Maximize)
	}
	require.NoError(t, model.SetObjective(vars, coefs))

	return model, vars
}

func TestSolveMIP(t *testing.T) {
	model, vars := buildMIP(t, false)
	defer model.Close()

	require.NoError(t, model.Solve())

	expectedXs := []float64{40, 10.5, 19.5, 3}
	expectedObj := 122.5

	assert.Equal(t, StatusOptimal, model.Status())

	obj, err := model.ObjValue()
	require.NoError(t, err)
	assert.InDelta(t, expectedObj, obj, delta)

	for i, x := range vars {
		value, err := model.VarValue(x)
		require.NoError(t, err)
		assert.InDelta(t, expectedXs[i], value, delta)
	}
}

// Maximizing must behave exactly like minimizing the negated objective: same
// variable assignment, negated objective value and bound.
func TestMaximizeMatchesNegatedMinimize(t *testing.T) {
	maxModel, _ := buildMIP(t, false)
	defer maxModel.Close()
	minModel, _ := buildMIP(t, true)
	defer minModel.Close()

	require.NoError(t, maxModel.Solve())
	require.NoError(t, minModel.Solve())

	require.Equal(t, StatusOptimal, maxModel.Status())
	require.Equal(t, StatusOptimal, minModel.Status())

	maxValues, err := maxModel.VarValues()
	require.NoError(t, err)
	minValues, err := minModel.VarValues()
	require.NoError(t, err)
	assert.Equal(t, minValues, maxValues)

	maxObj, err := maxModel.ObjValue()
	require.NoError(t, err)
	minObj, err := minModel.ObjValue()
	require.NoError(t, err)
	assert.Equal(t, -minObj, maxObj)
}

// Objective coefficients must be unchanged outside of a solve even when the
// sense is Maximize (the internal sign flip is undone after solving).
func TestResolveAfterEdit(t *testing.T) {
	model, vars := buildMIP(t, false)
	defer model.Close()

	require.NoError(t, model.Solve())

	obj, err := model.ObjValue()
	require.NoError(t, err)
	assert.InDelta(t, 122.5, obj, delta)

	// tighten x1 and solve again
	require.NoError(t, model.SetUpperBounds([]int{vars[0]}, []float64{20}))
	require.NoError(t, model.Solve())

	assert.Equal(t, StatusOptimal, model.Status())

	obj, err = model.ObjValue()
	require.NoError(t, err)
	assert.Less(t, obj, 122.5)
}

func TestCachedResultsAfterSolve(t *testing.T) {
	model, _ := buildMIP(t, false)
	defer model.Close()

	// before any solve there is nothing to report
	_, err := model.ObjValue()
	assert.ErrorIs(t, err, ErrNoSolution)
	_, err = model.VarValues()
	assert.ErrorIs(t, err, ErrNoSolution)
	assert.True(t, math.IsNaN(model.ObjBound()))

	require.NoError(t, model.Solve())

	// status and bound are cached and stay readable after the solver has
	// discarded its transformed problem
	assert.Equal(t, StatusOptimal, model.Status())
	assert.InDelta(t, 122.5, model.ObjBound(), delta)

	obj, err := model.ObjValue()
	require.NoError(t, err)
	assert.InDelta(t, 122.5, obj, delta)
}

func TestInfeasible(t *testing.T) {
	model, err := NewModel("test")
	require.NoError(t, err)
	defer model.Close()

	x, _ := model.AddVariable(0, 1, Continuous)
	_, err = model.AddLinearConstraint([]int{x}, []float64{1}, 2, 3)
	require.NoError(t, err)

	require.NoError(t, model.Solve())

	assert.Equal(t, StatusInfeasible, model.Status())

	_, err = model.ObjValue()
	assert.ErrorIs(t, err, ErrNoSolution)
}

func TestInitialSolution(t *testing.T) {
	model, vars := buildMIP(t, false)
	defer model.Close()

	// feasible but suboptimal: x2 = 3.5 x4, all constraints hold
	initial := []float64{0, 7, 0, 2}
	initialObj := 0.0
	coefs := []float64{1, 2, 3, 1}
	for i := range vars {
		initialObj += coefs[i] * initial[i]
	}

	require.NoError(t, model.SetInitialSolution(initial))
	require.NoError(t, model.Solve())

	assert.Equal(t, StatusOptimal, model.Status())

	obj, err := model.ObjValue()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, obj+delta, initialObj)
}

func TestSOS1(t *testing.T) {
	model, err := NewModel("test")
	require.NoError(t, err)
	defer model.Close()

	var vars []int
	for i := 0; i < 3; i++ {
		v, err := model.AddVariable(0, 1, Continuous)
		require.NoError(t, err)
		vars = append(vars, v)
	}
	_, err = model.AddSOS1Constraint(vars, []float64{1, 2, 3})
	require.NoError(t, err)
	require.NoError(t, model.SetObjective(vars, []float64{1, 1, 1}))
	model.SetSense(Maximize)

	require.NoError(t, model.Solve())

	assert.Equal(t, StatusOptimal, model.Status())

	obj, err := model.ObjValue()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, obj, delta)
}

func TestSOS2(t *testing.T) {
	model, err := NewModel("test")
	require.NoError(t, err)
	defer model.Close()

	var vars []int
	for i := 0; i < 3; i++ {
		v, err := model.AddVariable(0, 1, Continuous)
		require.NoError(t, err)
		vars = append(vars, v)
	}
	_, err = model.AddSOS2Constraint(vars, []float64{1, 2, 3})
	require.NoError(t, err)
	require.NoError(t, model.SetObjective(vars, []float64{1, 1, 1}))
	model.SetSense(Maximize)

	require.NoError(t, model.Solve())

	assert.Equal(t, StatusOptimal, model.Status())

	obj, err := model.ObjValue()
	require.NoError(t, err)
	assert.InDelta(t, 2.0, obj, delta)

	// the two nonzero variables must be consecutive
	values, err := model.VarValues()
	require.NoError(t, err)
	assert.InDelta(t, 0.0, values[0]*values[2], delta)
}

func TestQuadraticConstraint(t *testing.T) {
	model, err := NewModel("test")
	require.NoError(t, err)
	defer model.Close()

	x, err := model.AddVariable(0, 10, Continuous)
	require.NoError(t, err)

	// x^2 <= 4
	_, err = model.AddQuadraticConstraint(nil, nil, []int{x}, []int{x}, []float64{1}, math.Inf(-1), 4)
	require.NoError(t, err)
	require.NoError(t, model.SetObjective([]int{x}, []float64{1}))
	model.SetSense(Maximize)

	require.NoError(t, model.Solve())

	assert.Equal(t, StatusOptimal, model.Status())

	value, err := model.VarValue(x)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, value, 1e-5)
}

func TestContext(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test in short mode.")
	}

	model := getBigModel(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := model.SolveWithContext(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, StatusUserLimit, model.Status())
}

func TestSolveWithContextNoDeadline(t *testing.T) {
	model, _ := buildMIP(t, false)
	defer model.Close()

	require.NoError(t, model.SolveWithContext(context.Background()))
	assert.Equal(t, StatusOptimal, model.Status())
}

func ExampleModel_Solve() {
	model, _ := NewModel("example")
	defer model.Close()

	x, _ := model.AddVariable(0, 10, Continuous)
	y, _ := model.AddVariable(0, 10, Continuous)
	model.AddLinearConstraint([]int{x, y}, []float64{1, 1}, NegInf(), 5)
	model.SetObjective([]int{x, y}, []float64{1, 1})
	model.SetSense(Maximize)

	if err := model.Solve(); err != nil {
		panic(err)
	}

	obj, _ := model.ObjValue()
	fmt.Printf("status: %v, objective: %g\n", model.Status(), obj)
	// Output: status: Optimal, objective: 5
}
