// Package scanner walks a source tree and classifies it by language.
package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fathomcode/fathom/pkg/config"
	"github.com/fathomcode/fathom/pkg/models"
	"github.com/go-enry/go-enry/v2"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// Scanner finds and classifies source files in a directory.
type Scanner struct {
	config   *config.Config
	matchers []gitignore.Matcher

	// Warnf receives non-fatal per-file problems. Defaults to a no-op.
	Warnf func(format string, args ...any)
}

// New creates a new file scanner.
func New(cfg *config.Config) *Scanner {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Scanner{
		config: cfg,
		Warnf:  func(string, ...any) {},
	}
}

// findGitRoot finds the root of the git repository by looking for a .git
// directory. Returns empty string if not in a git repository.
func findGitRoot(start string) string {
	dir := start
	for {
		gitDir := filepath.Join(dir, ".git")
		if info, err := os.Stat(gitDir); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// loadExcludePatterns combines config patterns with .gitignore files.
func (s *Scanner) loadExcludePatterns(root string) {
	var patterns []gitignore.Pattern

	for _, pattern := range s.config.Exclude.Patterns {
		patterns = append(patterns, gitignore.ParsePattern(pattern, nil))
	}

	if s.config.Exclude.Gitignore {
		if gitRoot := findGitRoot(root); gitRoot != "" {
			fsys := osfs.New(gitRoot)
			if gitPatterns, err := gitignore.ReadPatterns(fsys, nil); err == nil {
				patterns = append(patterns, gitPatterns...)
			}
		}
	}

	if len(patterns) > 0 {
		s.matchers = append(s.matchers, gitignore.NewMatcher(patterns))
	}
}

// isExcluded checks if a path matches any exclusion pattern.
func (s *Scanner) isExcluded(path string, isDir bool) bool {
	if len(s.matchers) == 0 {
		return false
	}
	pathParts := strings.Split(path, string(filepath.Separator))
	for _, m := range s.matchers {
		if m.Match(pathParts, isDir) {
			return true
		}
	}
	return false
}

// ignoredDir reports whether a directory name is always pruned.
func (s *Scanner) ignoredDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	for _, d := range s.config.Exclude.Dirs {
		if name == d {
			return true
		}
	}
	return false
}

// Classify walks root, maps file extensions to languages, and measures
// each language's volume in non-blank lines. Only programming languages
// count toward the profile; markup, data and prose formats are skipped
// even when textually similar. The returned source-file list is in
// lexical walk order and is reused by every later pipeline stage.
//
// A missing or unreadable root is the only fatal condition. Individual
// unreadable files are skipped with a warning.
func (s *Scanner) Classify(root string) (*models.Classification, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot analyze %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("cannot analyze %s: not a directory", root)
	}

	s.loadExcludePatterns(root)

	languageLines := make(map[string]int)
	fileLanguage := make(map[string]string)
	var sourceFiles []string

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.Warnf("could not read %s: %v", path, err)
			return nil
		}

		relPath, relErr := filepath.Rel(root, path)
		if relErr != nil || relPath == "." {
			return nil
		}

		if d.IsDir() {
			if s.ignoredDir(d.Name()) || s.isExcluded(relPath, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if s.isExcluded(relPath, false) {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			s.Warnf("could not read file %s: %v", path, err)
			return nil
		}

		lang := DetectLanguage(path, content)
		if lang == "" {
			return nil
		}

		languageLines[lang] += countNonBlankLines(content)
		fileLanguage[path] = lang
		sourceFiles = append(sourceFiles, path)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walking %s: %w", root, walkErr)
	}

	return buildClassification(languageLines, fileLanguage, sourceFiles), nil
}

// DetectLanguage maps a file to a language name, returning "" for files
// that are not programming-language source (markup, data, prose,
// unknown). Extension lookup is the fast path; ambiguous extensions
// (.rs, .md, .m and friends) fall back to enry's content classifier.
func DetectLanguage(path string, content []byte) string {
	name := filepath.Base(path)
	lang, safe := enry.GetLanguageByExtension(name)
	if !safe {
		lang = enry.GetLanguage(name, content)
	}
	if lang == "" {
		return ""
	}
	if enry.GetLanguageType(lang) != enry.Programming {
		return ""
	}
	return lang
}

// countNonBlankLines counts lines containing any non-whitespace character.
func countNonBlankLines(content []byte) int {
	count := 0
	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count
}

// buildClassification derives the primary language and distribution from
// per-language line counts. On equal counts the lexicographically
// smallest language name wins so results never depend on map iteration
// order.
func buildClassification(languageLines map[string]int, fileLanguage map[string]string, sourceFiles []string) *models.Classification {
	c := &models.Classification{
		PrimaryLanguage:      "Unknown",
		LanguageDistribution: make(map[string]models.LanguageShare),
		FilesAnalyzed:        len(sourceFiles),
		SourceFiles:          sourceFiles,
		FileLanguages:        fileLanguage,
	}

	total := 0
	for _, lines := range languageLines {
		total += lines
	}
	if total == 0 {
		return c
	}

	names := make([]string, 0, len(languageLines))
	for name := range languageLines {
		names = append(names, name)
	}
	sort.Strings(names)

	best := ""
	for _, name := range names {
		lines := languageLines[name]
		c.LanguageDistribution[name] = models.LanguageShare{
			Lines:      lines,
			Percentage: models.Round1(float64(lines) / float64(total) * 100),
		}
		if best == "" || lines > languageLines[best] {
			best = name
		}
	}
	c.PrimaryLanguage = best

	return c
}
