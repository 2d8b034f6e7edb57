package analyzer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fathomcode/fathom/pkg/models"
)

func TestFilePriorityScore(t *testing.T) {
	tests := []struct {
		name string
		file models.FileReport
		want int
	}{
		{
			"pristine file scores zero",
			models.FileReport{MaintainabilityIndex: 90, CommentRatio: 10},
			0,
		},
		{
			"every band at its top",
			models.FileReport{
				Complexity:            20,
				MaintainabilityIndex:  10,
				DuplicationPercentage: 40,
				CommentRatio:          1,
				Lines:                 600,
			},
			95,
		},
		{
			"middle bands",
			models.FileReport{
				Complexity:            12,
				MaintainabilityIndex:  60,
				DuplicationPercentage: 20,
				CommentRatio:          5,
				Lines:                 350,
			},
			45,
		},
		{
			"band edges are exclusive",
			models.FileReport{
				Complexity:            5,
				MaintainabilityIndex:  70,
				DuplicationPercentage: 5,
				CommentRatio:          8,
				Lines:                 300,
			},
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilePriorityScore(tt.file))
		})
	}
}

func TestTierBoundaries(t *testing.T) {
	assert.Equal(t, models.PriorityCritical, models.TierForScore(70))
	assert.Equal(t, models.PriorityHigh, models.TierForScore(69))
	assert.Equal(t, models.PriorityHigh, models.TierForScore(50))
	assert.Equal(t, models.PriorityMedium, models.TierForScore(49))
	assert.Equal(t, models.PriorityMedium, models.TierForScore(25))
	assert.Equal(t, models.PriorityLow, models.TierForScore(24))
}

func TestPrioritizeFilesSortsAndTruncates(t *testing.T) {
	var files []models.FileReport
	for i := 0; i < 25; i++ {
		files = append(files, models.FileReport{
			Path:                 fmt.Sprintf("f%02d.go", i),
			MaintainabilityIndex: 90,
			CommentRatio:         10,
		})
	}
	files = append(files, models.FileReport{
		Path:                  "worst.go",
		Complexity:            20,
		MaintainabilityIndex:  10,
		DuplicationPercentage: 40,
		CommentRatio:          1,
		Lines:                 600,
	})

	top := PrioritizeFiles(files)

	require.Len(t, top, maxFileReports)
	assert.Equal(t, "worst.go", top[0].Path)
	assert.Equal(t, 95, top[0].PriorityScore)
	assert.Equal(t, models.PriorityCritical, top[0].Priority)
	// Input slice is untouched.
	assert.Zero(t, files[0].PriorityScore)
}

func TestFunctionNeedsAttention(t *testing.T) {
	healthy := models.FunctionUnit{Name: "ok", Complexity: 2, Lines: 10, HasDoc: true}
	assert.False(t, functionNeedsAttention(healthy))

	assert.True(t, functionNeedsAttention(models.FunctionUnit{Complexity: 9, HasDoc: true}))
	assert.True(t, functionNeedsAttention(models.FunctionUnit{Lines: 31, HasDoc: true}))
	assert.True(t, functionNeedsAttention(models.FunctionUnit{HasDoc: false}))
	assert.True(t, functionNeedsAttention(models.FunctionUnit{NeedsRefactor: true, HasDoc: true}))
}

func TestPrioritizeFunctions(t *testing.T) {
	var fns []models.FunctionUnit
	for i := 0; i < 60; i++ {
		fns = append(fns, models.FunctionUnit{
			Name:       fmt.Sprintf("fn%02d", i),
			File:       "a.go",
			StartLine:  i + 1,
			Complexity: i%15 + 1,
		})
	}

	top := PrioritizeFunctions(fns)

	require.Len(t, top, maxFunctionReports)
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].Complexity, top[i].Complexity)
	}
}
