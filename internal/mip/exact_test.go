package mip

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExactBackendPicksCheaperOneHotOption(t *testing.T) {
	// Two groups of 2 vars each; objective prefers var 0 and var 2.
	p := Problem{
		NumVars: 4,
		Objective: map[VarID]float64{
			0: 1, 1: 5,
			2: 1, 3: 5,
		},
		BinaryGroups: [][]VarID{{0, 1}, {2, 3}},
		Constraints: []Constraint{
			{Coeffs: map[VarID]float64{0: 1, 1: 1}, Op: EQ, RHS: 1},
			{Coeffs: map[VarID]float64{2: 1, 3: 1}, Op: EQ, RHS: 1},
		},
	}

	sol, err := ExactBackend{}.Solve(p, time.Time{})
	require.NoError(t, err)
	require.True(t, sol.Optimal)
	assert.Equal(t, 1.0, sol.Values[0])
	assert.Equal(t, 0.0, sol.Values[1])
	assert.Equal(t, 1.0, sol.Values[2])
	assert.Equal(t, 0.0, sol.Values[3])
}

func TestExactBackendReportsInfeasible(t *testing.T) {
	p := Problem{
		NumVars: 2,
		Objective: map[VarID]float64{
			0: 1,
		},
		Constraints: []Constraint{
			{Coeffs: map[VarID]float64{0: 1}, Op: EQ, RHS: 1},
			{Coeffs: map[VarID]float64{0: 1}, Op: EQ, RHS: 0},
		},
	}

	sol, err := ExactBackend{}.Solve(p, time.Time{})
	require.NoError(t, err)
	assert.False(t, sol.Optimal)
}

func TestExactBackendRejectsOutOfRangeVariable(t *testing.T) {
	p := Problem{
		NumVars: 1,
		Constraints: []Constraint{
			{Coeffs: map[VarID]float64{5: 1}, Op: LE, RHS: 1},
		},
	}
	_, err := ExactBackend{}.Solve(p, time.Time{})
	assert.Error(t, err)
}

func TestExactBackendHandlesUngroupedVariables(t *testing.T) {
	// Plain 0/1 vars, no BinaryGroups hint: minimize x0+x1 subject to
	// x0+x1 >= 1.
	p := Problem{
		NumVars:   2,
		Objective: map[VarID]float64{0: 1, 1: 1},
		Constraints: []Constraint{
			{Coeffs: map[VarID]float64{0: 1, 1: 1}, Op: GE, RHS: 1},
		},
	}
	sol, err := ExactBackend{}.Solve(p, time.Time{})
	require.NoError(t, err)
	require.True(t, sol.Optimal)
	assert.Equal(t, 1.0, sol.Values[0]+sol.Values[1])
}
