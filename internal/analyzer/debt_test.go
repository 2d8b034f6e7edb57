package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fathomcode/fathom/pkg/models"
)

func TestIndentDepth(t *testing.T) {
	assert.Equal(t, 0, indentDepth("x := 1"))
	assert.Equal(t, 2, indentDepth("\t\tx := 1"))
	assert.Equal(t, 2, indentDepth("        x := 1"))
	assert.Equal(t, 3, indentDepth("\t    \tx := 1"))
	// Trailing partial space group does not count.
	assert.Equal(t, 1, indentDepth("      x := 1"))
}

func TestQualityDebt(t *testing.T) {
	longLine := strings.Repeat("x", 121)
	deepLine := strings.Repeat("\t", 7) + "y()"
	source := strings.Join([]string{
		"package main",
		longLine,
		deepLine,
		"// TODO: remove once migration completes",
		"z()",
	}, "\n")

	// 1 long line + 2 deep indent + 3 marker
	assert.Equal(t, 6, qualityDebt([]byte(source)))
}

func TestQualityDebtClean(t *testing.T) {
	assert.Equal(t, 0, qualityDebt([]byte("package main\n\nfunc ok() {}\n")))
}

func TestEstimateDebt(t *testing.T) {
	result := EstimateDebt(DebtInputs{
		DuplicationPercentage: 10,
		TotalLines:            1000,
		ComplexFunctionCount:  2,
		GoFiles: []GoFileAnalysis{
			{
				Path: "a.go",
				Functions: []models.FunctionUnit{
					{Name: "documented", HasDoc: true, Lines: 10},
					{Name: "undocumented", HasDoc: false, Lines: 60},
				},
				QualityDebt: 4,
			},
		},
	})

	// (10/100) * 1000 * 0.5
	assert.Equal(t, 50, result.Breakdown.Duplication)
	assert.Equal(t, 30, result.Breakdown.Complexity)
	assert.Equal(t, 5, result.Breakdown.Documentation)
	assert.Equal(t, 10, result.Breakdown.LongFunctions)
	assert.Equal(t, 4, result.Breakdown.Quality)
	assert.Equal(t, 99, result.TotalMinutes)
}

func TestEstimateDebtZero(t *testing.T) {
	result := EstimateDebt(DebtInputs{})
	assert.Zero(t, result.TotalMinutes)
	assert.Zero(t, result.Breakdown)
}
