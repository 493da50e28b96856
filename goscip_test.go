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
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	delta = 0.0000001 // acceptable numerical deviation for test results
)

func TestInstantiation(t *testing.T) {
	name := "test model 1"
	model, err := NewModel(name)
	require.NoError(t, err)
	defer model.Close()

	assert.Equal(t, name, model.Name())
	assert.Equal(t, Minimize, model.Sense())
	assert.Equal(t, 0, model.NumVars())
	assert.Equal(t, 0, model.NumConss())
	assert.Equal(t, StatusUnknown, model.Status())
	assert.True(t, math.IsNaN(model.ObjBound()))
}

func TestAddVariableIndices(t *testing.T) {
	model, err := NewModel("test")
	require.NoError(t, err)
	defer model.Close()

	numVars := 200 // past the initial store capacity
	for i := 0; i < numVars; i++ {
		idx, err := model.AddVariable(0, float64(i), Continuous)
		require.NoError(t, err)
		assert.Equal(t, i, idx)
	}

	assert.Equal(t, numVars, model.NumVars())
}

func TestAddConstraintIndices(t *testing.T) {
	model, err := NewModel("test")
	require.NoError(t, err)
	defer model.Close()

	x, _ := model.AddVariable(0, 10, Continuous)
	y, _ := model.AddVariable(0, 10, Continuous)

	idx, err := model.AddLinearConstraint([]int{x, y}, []float64{1, 1}, NegInf(), 5)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	idx, err = model.AddQuadraticConstraint(nil, nil, []int{x}, []int{x}, []float64{1}, NegInf(), 4)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	idx, err = model.AddSOS1Constraint([]int{x, y}, []float64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 2, idx)

	idx, err = model.AddSOS2Constraint([]int{x, y}, []float64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 3, idx)

	assert.Equal(t, 4, model.NumConss())
}

func TestVariableTypes(t *testing.T) {
	model, err := NewModel("test")
	require.NoError(t, err)
	defer model.Close()

	for i, varType := range []VarType{Binary, Integer, ImplInt, Continuous} {
		lower, upper := 0.0, 1.0
		idx, err := model.AddVariable(lower, upper, varType)
		require.NoError(t, err)
		assert.Equal(t, i, idx)

		got, err := model.VarType(idx)
		require.NoError(t, err)
		assert.Equal(t, varType, got, "variable %d", idx)
	}
}

func TestBinaryTypeClampsBounds(t *testing.T) {
	model, err := NewModel("test")
	require.NoError(t, err)
	defer model.Close()

	x, err := model.AddVariable(-3, 5, Continuous)
	require.NoError(t, err)

	require.NoError(t, model.SetVarType(x, Binary))

	lower, upper, err := model.Bounds(x)
	require.NoError(t, err)
	assert.Equal(t, 0.0, lower)
	assert.Equal(t, 1.0, upper)

	// changing to any other type never mutates bounds
	y, err := model.AddVariable(-3, 5, Continuous)
	require.NoError(t, err)

	require.NoError(t, model.SetVarType(y, Integer))

	lower, upper, err = model.Bounds(y)
	require.NoError(t, err)
	assert.Equal(t, -3.0, lower)
	assert.Equal(t, 5.0, upper)
}

func TestSetBounds(t *testing.T) {
	model, err := NewModel("test")
	require.NoError(t, err)
	defer model.Close()

	x, _ := model.AddVariable(0, 1, Continuous)
	y, _ := model.AddVariable(0, 1, Continuous)

	require.NoError(t, model.SetLowerBounds([]int{x, y}, []float64{-2, math.Inf(-1)}))
	require.NoError(t, model.SetUpperBounds([]int{x, y}, []float64{7, math.Inf(1)}))

	lower, upper, err := model.Bounds(x)
	require.NoError(t, err)
	assert.Equal(t, -2.0, lower)
	assert.Equal(t, 7.0, upper)

	lower, upper, err = model.Bounds(y)
	require.NoError(t, err)
	assert.Equal(t, math.Inf(-1), lower)
	assert.Equal(t, math.Inf(1), upper)

	err = model.SetLowerBounds([]int{x}, []float64{1, 2})
	assert.Error(t, err)

	err = model.SetUpperBounds([]int{42}, []float64{1})
	assert.Error(t, err)
}

func TestSetParam(t *testing.T) {
	model, err := NewModel("test")
	require.NoError(t, err)
	defer model.Close()

	assert.NoError(t, model.SetParam("display/verblevel", 0))
	assert.NoError(t, model.SetParam("limits/time", 10.0))
	assert.NoError(t, model.SetParam("limits/nodes", int64(1000)))
	assert.Error(t, model.SetParam("display/verblevel", struct{}{}))
}

func TestVariableIndexOutOfRange(t *testing.T) {
	model, err := NewModel("test")
	require.NoError(t, err)
	defer model.Close()

	_, err = model.AddVariable(0, 1, Continuous)
	require.NoError(t, err)

	_, err = model.AddLinearConstraint([]int{7}, []float64{1}, 0, 1)
	assert.ErrorIs(t, err, ErrEngine)

	err = model.SetObjective([]int{-1}, []float64{1})
	assert.ErrorIs(t, err, ErrEngine)

	_, err = model.VarType(1)
	assert.ErrorIs(t, err, ErrEngine)
}

func TestStatusString(t *testing.T) {
	for status, want := range map[Status]string{
		StatusUnknown:               "Unknown",
		StatusUserLimit:             "UserLimit",
		StatusNodeLimit:             "NodeLimit",
		StatusTimeLimit:             "TimeLimit",
		StatusMemLimit:              "MemLimit",
		StatusOptimal:               "Optimal",
		StatusInfeasible:            "Infeasible",
		StatusUnbounded:             "Unbounded",
		StatusInfeasibleOrUnbounded: "InfeasibleOrUnbounded",
	} {
		assert.Equal(t, want, status.String())
		assert.Equal(t, want, fmt.Sprintf("%v", status))
	}
}
