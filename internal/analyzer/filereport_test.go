package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fathomcode/fathom/pkg/models"
)

func TestProfileOne(t *testing.T) {
	dup := "repeatedStatement := doWork(alpha, beta)"
	content := strings.Join([]string{
		"// package doc",
		"package p",
		"",
		dup,
		dup,
	}, "\n")

	p := NewFileProfiler()
	report := p.profileOne("p/file.go", []byte(content), "Go", nil, nil)

	assert.Equal(t, "p/file.go", report.Path)
	assert.Equal(t, "file.go", report.Name)
	assert.Equal(t, "Go", report.Language)
	assert.Equal(t, 5, report.Lines)
	assert.Equal(t, 3, report.CodeLines)
	// One of the two identical lines counts as duplicated, over code lines.
	assert.InDelta(t, 33.3, report.DuplicationPercentage, 0.05)
	assert.InDelta(t, 20.0, report.CommentRatio, 0.01)
	// Without a syntax walk the file keeps the neutral index.
	assert.Equal(t, 100.0, report.MaintainabilityIndex)
	assert.Zero(t, report.FunctionCount)
}

func TestProfileOneWithGoAnalysis(t *testing.T) {
	ga := &GoFileAnalysis{
		Path: "a.go",
		Functions: []models.FunctionUnit{
			{Name: "f", Complexity: 4},
			{Name: "g", Complexity: 8},
		},
	}
	mi := map[string]float64{"a.go": 61.25}

	p := NewFileProfiler()
	report := p.profileOne("a.go", []byte("package a\n"), "Go", ga, mi)

	assert.Equal(t, 2, report.FunctionCount)
	assert.InDelta(t, 6.0, report.Complexity, 0.01)
	assert.InDelta(t, 61.3, report.MaintainabilityIndex, 0.01)
}

func TestProfileSkipsUnreadable(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.py", "value = compute(alpha, beta, gamma)\n")

	warned := false
	p := NewFileProfiler()
	p.Warnf = func(string, ...any) { warned = true }

	detect := func(string) string { return "Python" }
	reports := p.Profile([]string{a, dir + "/missing.py"}, detect, nil, nil)

	require.Len(t, reports, 1)
	assert.Equal(t, "Python", reports[0].Language)
	assert.True(t, warned)
}
