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
package main

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goscip/goscip"
)

// Problem is the YAML description of an optimization problem.
type Problem struct {
	Name        string       `yaml:"name"`
	Sense       string       `yaml:"sense"` // "minimize" (default) or "maximize"
	Variables   []Variable   `yaml:"variables"`
	Constraints []Constraint `yaml:"constraints"`
}

// Variable declares a single decision variable. Omitted bounds default to
// the variable type's natural domain: [0,1] for binaries, unbounded
// otherwise.
type Variable struct {
	Name      string   `yaml:"name"`
	Type      string   `yaml:"type"` // binary, integer, implint or continuous (default)
	Lower     *float64 `yaml:"lower"`
	Upper     *float64 `yaml:"upper"`
	Objective float64  `yaml:"objective"`
}

// Constraint is a linear row over named variables. Omitted sides default
// to unbounded.
type Constraint struct {
	Terms map[string]float64 `yaml:"terms"`
	Lower *float64           `yaml:"lower"`
	Upper *float64           `yaml:"upper"`
}

// LoadProblem reads and parses a problem description from a YAML file.
func LoadProblem(path string) (*Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var problem Problem
	if err := yaml.Unmarshal(data, &problem); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return &problem, nil
}

func (p *Problem) varType(name string) (goscip.VarType, error) {
	switch name {
	case "binary":
		return goscip.Binary, nil
	case "integer":
		return goscip.Integer, nil
	case "implint":
		return goscip.ImplInt, nil
	case "continuous", "":
		return goscip.Continuous, nil
	}
	return 0, fmt.Errorf("unknown variable type %q", name)
}

func bound(b *float64, fallback float64) float64 {
	if b == nil {
		return fallback
	}
	return *b
}

// Build instantiates the problem as a solver model and returns it together
// with the variable names in index order.
func (p *Problem) Build(opts ...goscip.Option) (*goscip.Model, []string, error) {
	model, err := goscip.NewModel(p.Name, opts...)
	if err != nil {
		return nil, nil, err
	}

	switch p.Sense {
	case "maximize":
		model.SetSense(goscip.Maximize)
	case "minimize", "":
		model.SetSense(goscip.Minimize)
	default:
		model.Close()
		return nil, nil, fmt.Errorf("unknown sense %q", p.Sense)
	}

	index := make(map[string]int, len(p.Variables))
	names := make([]string, 0, len(p.Variables))
	var objVars []int
	var objCoefs []float64

	for _, v := range p.Variables {
		if _, ok := index[v.Name]; ok {
			model.Close()
			return nil, nil, fmt.Errorf("duplicate variable %q", v.Name)
		}

		varType, err := p.varType(v.Type)
		if err != nil {
			model.Close()
			return nil, nil, err
		}

		lower, upper := math.Inf(-1), math.Inf(1)
		if varType == goscip.Binary {
			lower, upper = 0, 1
		}
		lower = bound(v.Lower, lower)
		upper = bound(v.Upper, upper)

		idx, err := model.AddVariable(lower, upper, varType)
		if err != nil {
			model.Close()
			return nil, nil, err
		}
		index[v.Name] = idx
		names = append(names, v.Name)

		if v.Objective != 0 {
			objVars = append(objVars, idx)
			objCoefs = append(objCoefs, v.Objective)
		}
	}

	if err := model.SetObjective(objVars, objCoefs); err != nil {
		model.Close()
		return nil, nil, err
	}

	for i, cons := range p.Constraints {
		var vars []int
		var coefs []float64
		for name, coef := range cons.Terms {
			idx, ok := index[name]
			if !ok {
				model.Close()
				return nil, nil, fmt.Errorf("constraint %d references unknown variable %q", i, name)
			}
			vars = append(vars, idx)
			coefs = append(coefs, coef)
		}

		lhs := bound(cons.Lower, math.Inf(-1))
		rhs := bound(cons.Upper, math.Inf(1))
		if _, err := model.AddLinearConstraint(vars, coefs, lhs, rhs); err != nil {
			model.Close()
			return nil, nil, err
		}
	}

	return model, names, nil
}
