package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fathomcode/fathom/pkg/config"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path    string
		content string
		want    string
	}{
		{"main.go", "package main\n", "Go"},
		{"app.py", "print('hi')\n", "Python"},
		{"index.ts", "const x: number = 1\n", "TypeScript"},
		{"Main.java", "class Main {}\n", "Java"},
		{"data.json", `{"a": 1}`, ""},  // data
		{"page.html", "<html></html>", ""}, // markup
		{"notes.txt", "notes\n", ""},   // unknown
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectLanguage(tt.path, []byte(tt.content)), tt.path)
	}
}

func TestDetectLanguageAmbiguousExtensions(t *testing.T) {
	// .rs and .md are ambiguous for enry; content analysis must settle
	// them rather than the first candidate winning.
	rust := "fn main() {\n    println!(\"hi\");\n}\n"
	assert.Equal(t, "Rust", DetectLanguage("lib.rs", []byte(rust)))

	readme := "# Project\n\nSome *prose* about the code.\n"
	assert.Equal(t, "", DetectLanguage("README.md", []byte(readme)))
}

func TestClassify(t *testing.T) {
	root := writeTree(t, map[string]string{
		"main.go":      "package main\n\nfunc main() {}\n",
		"util.go":      "package main\n\nfunc helper() int {\n\treturn 1\n}\n",
		"tool.py":      "print('hi')\n",
		"README.md":    "# docs\n",
		"config.yaml":  "key: value\n",
	})

	s := New(config.DefaultConfig())
	c, err := s.Classify(root)
	require.NoError(t, err)

	assert.Equal(t, "Go", c.PrimaryLanguage)
	assert.Equal(t, 3, c.FilesAnalyzed)
	assert.Len(t, c.SourceFiles, 3)

	goShare := c.LanguageDistribution["Go"]
	pyShare := c.LanguageDistribution["Python"]
	// 6 non-blank Go lines, 1 Python line.
	assert.Equal(t, 6, goShare.Lines)
	assert.Equal(t, 1, pyShare.Lines)
	assert.InDelta(t, 85.7, goShare.Percentage, 0.05)
	assert.InDelta(t, 14.3, pyShare.Percentage, 0.05)
}

func TestClassifyTieBreak(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.py": "x = 1\ny = 2\n",
		"b.rb": "x = 1\ny = 2\n",
	})

	s := New(config.DefaultConfig())
	c, err := s.Classify(root)
	require.NoError(t, err)

	// Equal line counts resolve to the alphabetically first language.
	assert.Equal(t, "Python", c.PrimaryLanguage)
}

func TestClassifySkipsIgnoredDirs(t *testing.T) {
	root := writeTree(t, map[string]string{
		"main.go":                "package main\n",
		"vendor/dep/dep.go":      "package dep\n",
		"node_modules/x/i.js":    "var x = 1\n",
		".git/hook.py":           "print('no')\n",
		"sub/ok.go":              "package sub\n",
	})

	s := New(config.DefaultConfig())
	c, err := s.Classify(root)
	require.NoError(t, err)

	assert.Equal(t, 2, c.FilesAnalyzed)
	for _, f := range c.SourceFiles {
		assert.NotContains(t, f, "vendor")
		assert.NotContains(t, f, "node_modules")
		assert.NotContains(t, f, ".git")
	}
}

func TestClassifyExcludePatterns(t *testing.T) {
	root := writeTree(t, map[string]string{
		"main.go":         "package main\n",
		"main_test.go":    "package main\n",
		"gen/schema.go":   "package gen\n",
	})

	cfg := config.DefaultConfig()
	cfg.Exclude.Patterns = append(cfg.Exclude.Patterns, "*_test.go", "gen/")

	s := New(cfg)
	c, err := s.Classify(root)
	require.NoError(t, err)

	require.Equal(t, 1, c.FilesAnalyzed)
	assert.Equal(t, filepath.Join(root, "main.go"), c.SourceFiles[0])
}

func TestClassifyEmptyDir(t *testing.T) {
	s := New(config.DefaultConfig())
	c, err := s.Classify(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "Unknown", c.PrimaryLanguage)
	assert.Equal(t, 0, c.FilesAnalyzed)
	assert.Empty(t, c.LanguageDistribution)
}

func TestClassifyMissingRoot(t *testing.T) {
	s := New(config.DefaultConfig())
	_, err := s.Classify(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestClassifyRootIsFile(t *testing.T) {
	root := writeTree(t, map[string]string{"main.go": "package main\n"})
	s := New(config.DefaultConfig())
	_, err := s.Classify(filepath.Join(root, "main.go"))
	assert.Error(t, err)
}

func TestCountNonBlankLines(t *testing.T) {
	n := countNonBlankLines([]byte("package p\n\n\nfunc a() {}\n   \n// c\n"))
	assert.Equal(t, 3, n)
}
