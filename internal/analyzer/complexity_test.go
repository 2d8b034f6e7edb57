package analyzer

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fathomcode/fathom/pkg/models"
)

func TestStandardize(t *testing.T) {
	e := NewComplexityEngine()
	fns := []models.FunctionUnit{
		{Name: "simple", Complexity: 2, Lines: 5},
		{Name: "moderate", Complexity: 8, Lines: 20},
		{Name: "complex", Complexity: 14, Lines: 40},
		{Name: "long", Complexity: 3, Lines: 80},
	}

	result := e.standardize(fns, "test method")

	assert.Equal(t, "test method", result.Method)
	assert.Equal(t, 4, result.TotalFunctions)
	assert.InDelta(t, 6.8, result.Average, 0.05)
	assert.Equal(t, 2.0, result.Min)
	assert.Equal(t, 14.0, result.Max)
	assert.Equal(t, models.ComplexityDistribution{Simple: 2, Moderate: 1, Complex: 1}, result.Distribution)

	require.NotEmpty(t, result.TopFunctions)
	assert.Equal(t, "complex", result.TopFunctions[0].Name)

	// Derived fields are filled in place.
	assert.Equal(t, models.CategoryComplex, fns[2].Category)
	assert.True(t, fns[2].NeedsRefactor)
	assert.True(t, fns[3].NeedsRefactor, "long function flagged regardless of complexity")
	assert.False(t, fns[0].NeedsRefactor)
}

func TestStandardizeEmpty(t *testing.T) {
	result := NewComplexityEngine().standardize(nil, "heuristic (Rust)")
	assert.Equal(t, "heuristic (Rust)", result.Method)
	assert.Zero(t, result.TotalFunctions)
	assert.Zero(t, result.Average)
	assert.Empty(t, result.TopFunctions)
}

func TestStandardizeTopFunctionsCapped(t *testing.T) {
	var fns []models.FunctionUnit
	for i := 0; i < 15; i++ {
		fns = append(fns, models.FunctionUnit{Name: fmt.Sprintf("f%d", i), Complexity: i + 1})
	}

	result := NewComplexityEngine().standardize(fns, "m")
	require.Len(t, result.TopFunctions, maxTopFunctions)
	assert.Equal(t, 15, result.TopFunctions[0].Complexity)
}

func TestComplexityEngineHeuristicTier(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.rb", "def run\n  if ready\n    go\n  end\nend\n")

	e := NewComplexityEngine()
	e.ToolsEnabled = false
	outcome := e.Analyze(context.Background(), "Ruby", []string{path})

	assert.Equal(t, "heuristic (Ruby)", outcome.Result.Method)
	assert.Nil(t, outcome.GoFiles)
	require.NotEmpty(t, outcome.Functions)
	assert.Equal(t, "run", outcome.Functions[0].Name)
}

func TestComplexityEngineNativeGoTier(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "main.go", `package main

// Run dispatches the request.
func Run(n int) int {
	if n > 0 && n < 10 {
		return n
	}
	for i := 0; i < n; i++ {
		n--
	}
	return n
}
`)

	e := NewComplexityEngine()
	e.ToolsEnabled = false
	outcome := e.Analyze(context.Background(), "Go", []string{path})

	assert.Equal(t, "tree-sitter (Go)", outcome.Result.Method)
	require.Len(t, outcome.GoFiles, 1)
	require.Len(t, outcome.Functions, 1)

	fn := outcome.Functions[0]
	assert.Equal(t, "Run", fn.Name)
	// 1 + if + && + for
	assert.Equal(t, 4, fn.Complexity)
	assert.True(t, fn.HasDoc)
	assert.Positive(t, outcome.GoFiles[0].HalsteadVolume)
}
