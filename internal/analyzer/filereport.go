package analyzer

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/fathomcode/fathom/pkg/models"
)

// FileProfiler builds per-file reports: line breakdown, within-file
// duplication, and, where a syntax walk ran, complexity and
// maintainability.
type FileProfiler struct {
	Warnf func(format string, args ...any)
}

func NewFileProfiler() *FileProfiler {
	return &FileProfiler{}
}

func (p *FileProfiler) warnf(format string, args ...any) {
	if p.Warnf != nil {
		p.Warnf(format, args...)
	}
}

// Profile reads every file and assembles its report. detect maps a path
// to its language; goFiles and miByFile supply exact figures for
// natively parsed files and may be nil.
func (p *FileProfiler) Profile(files []string, detect func(string) string, goFiles []GoFileAnalysis, miByFile map[string]float64) []models.FileReport {
	byPath := make(map[string]*GoFileAnalysis, len(goFiles))
	for i := range goFiles {
		byPath[goFiles[i].Path] = &goFiles[i]
	}

	reports := make([]models.FileReport, 0, len(files))
	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			p.warnf("could not analyze file %s: %v", path, err)
			continue
		}
		reports = append(reports, p.profileOne(path, content, detect(path), byPath[path], miByFile))
	}
	return reports
}

func (p *FileProfiler) profileOne(path string, content []byte, language string, ga *GoFileAnalysis, miByFile map[string]float64) models.FileReport {
	lines := strings.Split(string(content), "\n")
	totalLines := len(lines)

	codeLines := 0
	commentLines := 0
	seen := make(map[uint64]bool)
	duplicateLines := 0
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		switch {
		case stripped == "":
		case isCommentLine(stripped, path):
			commentLines++
		default:
			codeLines++
		}
		if len(stripped) > significantLineMinChars && !isCommentLine(stripped, path) {
			h := xxhash.Sum64String(stripped)
			if seen[h] {
				duplicateLines++
			} else {
				seen[h] = true
			}
		}
	}

	report := models.FileReport{
		Path:                 path,
		Name:                 filepath.Base(path),
		Language:             language,
		Lines:                totalLines,
		CodeLines:            codeLines,
		MaintainabilityIndex: 100,
	}
	report.DuplicationPercentage = models.Round1(float64(duplicateLines) / float64(max(codeLines, 1)) * 100)
	report.CommentRatio = models.Round1(float64(commentLines) / float64(max(totalLines, 1)) * 100)

	if ga != nil {
		report.FunctionCount = len(ga.Functions)
		if len(ga.Functions) > 0 {
			sum := 0
			for _, fn := range ga.Functions {
				sum += fn.Complexity
			}
			report.Complexity = models.Round1(float64(sum) / float64(len(ga.Functions)))
		}
		if mi, ok := miByFile[path]; ok {
			report.MaintainabilityIndex = models.Round1(mi)
		}
	}

	return report
}
