package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sitter "github.com/smacker/go-tree-sitter"
)

const sample = `package sample

// Add sums two numbers.
func Add(a, b int) int {
	return a + b
}

func unexported(xs ...string) {
	for range xs {
	}
}

type server struct{}

// Serve runs the loop.
func (s *server) Serve(addr string) error {
	return nil
}
`

func parseSample(t *testing.T) *ParseResult {
	t.Helper()
	p := New()
	t.Cleanup(p.Close)
	result, err := p.Parse([]byte(sample), "sample.go")
	require.NoError(t, err)
	return result
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s.go")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	p := New()
	defer p.Close()

	result, err := p.ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, result.Path)
	assert.NotNil(t, result.Tree)
}

func TestParseFileMissing(t *testing.T) {
	p := New()
	defer p.Close()

	_, err := p.ParseFile(filepath.Join(t.TempDir(), "absent.go"))
	assert.Error(t, err)
}

func TestGetFunctions(t *testing.T) {
	result := parseSample(t)
	fns := GetFunctions(result)
	require.Len(t, fns, 3)

	add := fns[0]
	assert.Equal(t, "Add", add.Name)
	assert.Equal(t, uint32(4), add.StartLine)
	assert.Equal(t, uint32(6), add.EndLine)
	assert.Equal(t, 2, add.Parameters)
	assert.True(t, add.HasDoc)
	assert.NotNil(t, add.Body)

	un := fns[1]
	assert.Equal(t, "unexported", un.Name)
	assert.Equal(t, 1, un.Parameters)
	assert.False(t, un.HasDoc)

	serve := fns[2]
	assert.Equal(t, "Serve", serve.Name)
	assert.Equal(t, 1, serve.Parameters)
	assert.True(t, serve.HasDoc)
}

func TestWalkVisitsAllNodes(t *testing.T) {
	result := parseSample(t)

	total := 0
	Walk(result.Tree.RootNode(), result.Source, func(_ *sitter.Node, _ []byte) bool {
		total++
		return true
	})
	assert.Greater(t, total, 10)

	// Returning false prunes the subtree: visiting only the root gives
	// exactly one call.
	pruned := 0
	Walk(result.Tree.RootNode(), result.Source, func(_ *sitter.Node, _ []byte) bool {
		pruned++
		return false
	})
	assert.Equal(t, 1, pruned)
}

func TestGetNodeText(t *testing.T) {
	result := parseSample(t)
	root := result.Tree.RootNode()

	assert.Equal(t, sample, GetNodeText(root, result.Source))
	assert.Equal(t, "", GetNodeText(nil, result.Source))
}
