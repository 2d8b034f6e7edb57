// Package engine runs the full analysis pipeline over a source tree.
package engine

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fathomcode/fathom/internal/analyzer"
	"github.com/fathomcode/fathom/internal/scanner"
	"github.com/fathomcode/fathom/pkg/config"
	"github.com/fathomcode/fathom/pkg/models"
)

// Stages in execution order, exposed so callers can size progress bars.
var Stages = []string{
	"classify",
	"lines",
	"complexity",
	"maintainability",
	"duplication",
	"debt",
	"files",
	"functions",
	"score",
}

// Engine wires the analysis stages together. One Analyze call keeps all
// intermediate state on its own stack; the same Engine can be reused
// across trees.
type Engine struct {
	cfg *config.Config

	// LanguageHint overrides the detected primary language.
	LanguageHint string

	// Warnf receives non-fatal problems. Defaults to a no-op.
	Warnf func(format string, args ...any)

	// Progress is called as each stage starts. Defaults to a no-op.
	Progress func(stage string)
}

func New(cfg *config.Config) *Engine {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Engine{
		cfg:      cfg,
		Warnf:    func(string, ...any) {},
		Progress: func(string) {},
	}
}

// Analyze walks root and produces the complete metrics report. The only
// fatal error is a missing or unreadable root; per-file problems are
// reported through Warnf and skipped.
func (e *Engine) Analyze(ctx context.Context, root string) (*models.AnalysisResult, error) {
	e.Progress("classify")
	sc := scanner.New(e.cfg)
	sc.Warnf = e.Warnf
	classification, err := sc.Classify(root)
	if err != nil {
		return nil, err
	}

	result := &models.AnalysisResult{
		PrimaryLanguage:      classification.PrimaryLanguage,
		LanguageDistribution: classification.LanguageDistribution,
		FilesAnalyzed:        classification.FilesAnalyzed,
	}
	if classification.FilesAnalyzed == 0 {
		result.Lines.DocumentationQuality = models.DocUnknown
		result.Understanding = analyzer.ComposeUnderstandingScore(analyzer.ScoreInputs{
			MaintainabilityIndex: 100,
		})
		return result, nil
	}

	primary := classification.PrimaryLanguage
	if e.LanguageHint != "" {
		primary = e.LanguageHint
	}
	languageOf := func(path string) string { return classification.FileLanguages[path] }
	var primaryFiles []string
	for _, path := range classification.SourceFiles {
		if languageOf(path) == primary {
			primaryFiles = append(primaryFiles, path)
		}
	}

	e.Progress("lines")
	lc := analyzer.NewLineCounter()
	lc.Warnf = e.Warnf
	result.Lines = lc.Analyze(classification.SourceFiles)

	e.Progress("complexity")
	ce := analyzer.NewComplexityEngine()
	ce.ToolsEnabled = e.cfg.Tools.Enabled
	ce.ToolTimeout = time.Duration(e.cfg.Tools.TimeoutSeconds) * time.Second
	ce.Warnf = e.Warnf
	outcome := ce.Analyze(ctx, primary, primaryFiles)
	result.Complexity = outcome.Result

	e.Progress("maintainability")
	profiler := analyzer.NewFileProfiler()
	profiler.Warnf = e.Warnf
	reports := profiler.Profile(classification.SourceFiles, languageOf, outcome.GoFiles, nil)

	avgFileLines := 0.0
	if len(primaryFiles) > 0 {
		sum := 0
		for _, r := range reports {
			if r.Language == primary {
				sum += r.Lines
			}
		}
		avgFileLines = float64(sum) / float64(len(primaryFiles))
	}
	mi := analyzer.EstimateMaintainability(analyzer.MaintainabilityInputs{
		Language:      primary,
		AvgComplexity: result.Complexity.Average,
		AvgFileLines:  avgFileLines,
		GoFiles:       outcome.GoFiles,
	})
	result.MaintainabilityIndex = mi.Index
	result.LowMaintainabilityFiles = mi.LowFiles
	for i := range reports {
		if v, ok := mi.PerFile[reports[i].Path]; ok {
			reports[i].MaintainabilityIndex = models.Round1(v)
		}
	}

	e.Progress("duplication")
	dd := analyzer.NewDuplicateDetector()
	dd.Warnf = e.Warnf
	result.Duplication = dd.Analyze(classification.SourceFiles)

	e.Progress("debt")
	result.Debt = analyzer.EstimateDebt(analyzer.DebtInputs{
		DuplicationPercentage: result.Duplication.Percentage,
		TotalLines:            result.Lines.TotalLines,
		ComplexFunctionCount:  result.Complexity.Distribution.Complex,
		GoFiles:               outcome.GoFiles,
	})

	e.Progress("files")
	result.Files = analyzer.PrioritizeFiles(reports)

	e.Progress("functions")
	result.Functions = analyzer.PrioritizeFunctions(outcome.Functions)

	e.Progress("score")
	result.Understanding = analyzer.ComposeUnderstandingScore(analyzer.ScoreInputs{
		AvgComplexity:        result.Complexity.Average,
		MaintainabilityIndex: result.MaintainabilityIndex,
		DuplicationPct:       result.Duplication.Percentage,
		DebtMinutes:          result.Debt.TotalMinutes,
		CommentRatio:         result.Lines.CommentRatio,
	})

	relativizePaths(result, root)
	return result, nil
}

// relativizePaths rewrites every file reference to be relative to the
// analyzed root so reports are stable across machines.
func relativizePaths(result *models.AnalysisResult, root string) {
	rel := func(path string) string {
		if r, err := filepath.Rel(root, path); err == nil {
			return r
		}
		return path
	}

	for i := range result.Complexity.TopFunctions {
		result.Complexity.TopFunctions[i].File = rel(result.Complexity.TopFunctions[i].File)
	}
	for i := range result.LowMaintainabilityFiles {
		result.LowMaintainabilityFiles[i].File = rel(result.LowMaintainabilityFiles[i].File)
	}
	for i := range result.Duplication.Blocks {
		for j := range result.Duplication.Blocks[i].Locations {
			result.Duplication.Blocks[i].Locations[j].File = rel(result.Duplication.Blocks[i].Locations[j].File)
		}
	}
	for i := range result.Duplication.HighDuplicationFiles {
		result.Duplication.HighDuplicationFiles[i].File = rel(result.Duplication.HighDuplicationFiles[i].File)
	}
	for i := range result.Files {
		result.Files[i].Path = rel(result.Files[i].Path)
	}
	for i := range result.Functions {
		result.Functions[i].File = rel(result.Functions[i].File)
	}
}
