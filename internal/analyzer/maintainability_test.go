package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fathomcode/fathom/pkg/models"
)

func fnsWithTotalComplexity(total int) []models.FunctionUnit {
	return []models.FunctionUnit{{Name: "f", Complexity: total}}
}

func TestLinearMaintainability(t *testing.T) {
	tests := []struct {
		name          string
		language      string
		avgComplexity float64
		avgFileLines  float64
		want          float64
	}{
		{"javascript", "JavaScript", 10, 300, 60},
		{"typescript maps to javascript", "TypeScript", 10, 300, 60},
		{"java", "Java", 5, 150, 80},
		{"short files have no length penalty", "Ruby", 2, 100, 94},
		{"unknown language uses default", "Elixir", 5, 100, 80},
		{"clamped at zero", "C", 30, 1000, 0},
		{"clamped at hundred", "Python", 0, 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := linearMaintainability(tt.language, tt.avgComplexity, tt.avgFileLines)
			assert.InDelta(t, tt.want, got, 0.01)
		})
	}
}

func TestMaintainabilityIndexFormula(t *testing.T) {
	// Degenerate inputs pin the scale.
	assert.Equal(t, 100.0, maintainabilityIndex(1, 0, 0))
	assert.InDelta(t, 100.0, maintainabilityIndex(1, 0, 1), 0.01)

	// A large, complex file lands near the bottom.
	assert.InDelta(t, 13.39, maintainabilityIndex(1000, 50, 500), 0.05)
}

func TestEstimateMaintainabilityGoFiles(t *testing.T) {
	report := EstimateMaintainability(MaintainabilityInputs{
		Language: "Go",
		GoFiles: []GoFileAnalysis{
			{Path: "big.go", HalsteadVolume: 1000, SourceLines: 500,
				Functions: fnsWithTotalComplexity(50)},
			{Path: "small.go", HalsteadVolume: 10, SourceLines: 10,
				Functions: fnsWithTotalComplexity(2)},
		},
	})

	assert.InDelta(t, 42.2, report.Index, 0.05)
	require.Len(t, report.LowFiles, 1)
	assert.Equal(t, "big.go", report.LowFiles[0].File)
	assert.InDelta(t, 13.4, report.LowFiles[0].Index, 0.05)
}

func TestEstimateMaintainabilityLinearFallback(t *testing.T) {
	report := EstimateMaintainability(MaintainabilityInputs{
		Language:      "JavaScript",
		AvgComplexity: 10,
		AvgFileLines:  300,
	})

	assert.InDelta(t, 60.0, report.Index, 0.01)
	assert.Empty(t, report.LowFiles)
}

func TestLowMaintainabilityFilesCapped(t *testing.T) {
	var goFiles []GoFileAnalysis
	for _, name := range []string{"a.go", "b.go", "c.go", "d.go", "e.go", "f.go", "g.go"} {
		goFiles = append(goFiles, GoFileAnalysis{
			Path: name, HalsteadVolume: 1000, SourceLines: 500,
			Functions: fnsWithTotalComplexity(50),
		})
	}

	report := EstimateMaintainability(MaintainabilityInputs{Language: "Go", GoFiles: goFiles})
	assert.Len(t, report.LowFiles, maxLowMaintainabilityFiles)
	// Lexical tie-break on equal scores.
	assert.Equal(t, "a.go", report.LowFiles[0].File)
}
