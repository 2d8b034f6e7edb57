package analyzer

import (
	"os"
	"strings"

	"github.com/fathomcode/fathom/internal/fileproc"
	"github.com/fathomcode/fathom/pkg/models"
)

// LineCounter classifies every line of every source file as code,
// comment or blank.
type LineCounter struct {
	Warnf func(format string, args ...any)
}

// NewLineCounter creates a line counter.
func NewLineCounter() *LineCounter {
	return &LineCounter{Warnf: func(string, ...any) {}}
}

// fileLineCounts is the per-file breakdown reused by the prioritizer.
type fileLineCounts struct {
	total   int
	code    int
	comment int
	blank   int
}

// countLines classifies the lines of one file's content.
func countLines(content []byte, path string) fileLineCounts {
	var c fileLineCounts
	lines := strings.Split(string(content), "\n")
	// A trailing newline produces one empty pseudo-line; drop it.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	for _, line := range lines {
		c.total++
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			c.blank++
		case isCommentLine(trimmed, path):
			c.comment++
		default:
			c.code++
		}
	}
	return c
}

// Analyze aggregates line counts, ratios and the documentation-quality
// tier across all source files. Unreadable files are skipped.
func (lc *LineCounter) Analyze(files []string) models.LineMetrics {
	counts := fileproc.MapFilesN(files, 0, func(path string) (fileLineCounts, error) {
		content, err := os.ReadFile(path)
		if err != nil {
			return fileLineCounts{}, err
		}
		return countLines(content, path), nil
	}, nil, func(path string, err error) {
		lc.Warnf("could not analyze file %s: %v", path, err)
	})

	var agg fileLineCounts
	for _, c := range counts {
		agg.total += c.total
		agg.code += c.code
		agg.comment += c.comment
		agg.blank += c.blank
	}

	total := agg.total
	if total == 0 {
		total = 1
	}
	commentRatio := float64(agg.comment) / float64(total) * 100

	return models.LineMetrics{
		TotalLines:           agg.total,
		CodeLines:            agg.code,
		CommentLines:         agg.comment,
		BlankLines:           agg.blank,
		CommentRatio:         models.Round1(commentRatio),
		CodePercentage:       models.Round1(float64(agg.code) / float64(total) * 100),
		CommentPercentage:    models.Round1(float64(agg.comment) / float64(total) * 100),
		BlankPercentage:      models.Round1(float64(agg.blank) / float64(total) * 100),
		DocumentationQuality: assessDocQuality(commentRatio, agg.code),
	}
}

// assessDocQuality picks the documentation tier. Small codebases are held
// to a lower bar than large ones.
func assessDocQuality(commentRatio float64, codeLines int) models.DocQuality {
	if codeLines < 100 {
		switch {
		case commentRatio >= 15:
			return models.DocExcellent
		case commentRatio >= 8:
			return models.DocGood
		case commentRatio >= 3:
			return models.DocFair
		default:
			return models.DocPoor
		}
	}
	switch {
	case commentRatio >= 20:
		return models.DocExcellent
	case commentRatio >= 12:
		return models.DocGood
	case commentRatio >= 6:
		return models.DocFair
	default:
		return models.DocPoor
	}
}
