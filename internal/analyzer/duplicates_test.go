package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSignificantLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		path string
		want bool
	}{
		{"long code line", "total := compute(alpha, beta)", "a.go", true},
		{"too short", "x := compute(a)", "a.go", false},
		{"comment", "// total := compute(alpha, beta)", "a.go", false},
		{"import", "import \"very/long/package/path\"", "a.go", false},
		{"include", "#include <some/long/header.h>", "a.c", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isSignificantLine(tt.line, tt.path))
		})
	}
}

func TestDuplicateDetector(t *testing.T) {
	dir := t.TempDir()
	dup := "total := compute(alpha, beta, gamma)"
	a := writeFile(t, dir, "a.go", strings.Join([]string{
		dup,
		dup,
		"uniqueValue := somethingElse(delta)",
		"// a comment long enough to be significant",
	}, "\n")+"\n")
	b := writeFile(t, dir, "b.go", dup+"\n")

	result := NewDuplicateDetector().Analyze([]string{a, b})

	// The line appears 3 times; the first sighting is the original, so
	// 2 of 4 significant lines are duplicates.
	assert.InDelta(t, 50.0, result.Percentage, 0.01)

	require.Len(t, result.Blocks, 1)
	block := result.Blocks[0]
	assert.Equal(t, 3, block.Occurrences)
	assert.Len(t, block.Locations, 3)
	assert.NotEmpty(t, block.ID)
	assert.Equal(t, dup, block.Content)

	assert.Equal(t, 2, result.FilesWithDuplication)
	require.Len(t, result.HighDuplicationFiles, 2)
	// b's only line repeats an earlier one, a repeats 1 of its 3.
	assert.Equal(t, b, result.HighDuplicationFiles[0].File)
	assert.InDelta(t, 100.0, result.HighDuplicationFiles[0].Percentage, 0.01)
	assert.Equal(t, 1, result.HighDuplicationFiles[0].DuplicatedLines)
	assert.Equal(t, 1, result.HighDuplicationFiles[0].SignificantLines)
	assert.Equal(t, a, result.HighDuplicationFiles[1].File)
	assert.InDelta(t, 33.3, result.HighDuplicationFiles[1].Percentage, 0.05)
	assert.Equal(t, 1, result.HighDuplicationFiles[1].DuplicatedLines)
	assert.Equal(t, 3, result.HighDuplicationFiles[1].SignificantLines)
}

func TestDuplicateDetectorNoDuplicates(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.go", "firstDistinctLongLine := value(one)\n")
	b := writeFile(t, dir, "b.go", "secondDistinctLongLine := value(two)\n")

	result := NewDuplicateDetector().Analyze([]string{a, b})

	assert.Zero(t, result.Percentage)
	assert.Empty(t, result.Blocks)
	assert.Empty(t, result.HighDuplicationFiles)
	assert.Zero(t, result.FilesWithDuplication)
}

func TestDuplicateBlockSnippetTruncated(t *testing.T) {
	dir := t.TempDir()
	long := "veryLongIdentifierName := buildSomething(withMany, arguments, here, andMore)"
	a := writeFile(t, dir, "a.go", long+"\n"+long+"\n")

	result := NewDuplicateDetector().Analyze([]string{a})

	require.Len(t, result.Blocks, 1)
	assert.Len(t, result.Blocks[0].Content, blockSnippetMaxChars)
	assert.Equal(t, long[:blockSnippetMaxChars], result.Blocks[0].Content)
}
