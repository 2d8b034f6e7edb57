package analyzer

import (
	"context"
	"errors"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/fathomcode/fathom/pkg/models"
)

const (
	maxTopFunctions          = 10
	refactorComplexityFloor  = 10
	refactorFunctionLenFloor = 50
)

// ComplexityEngine measures function complexity for the primary language.
// Tiers, first success wins: external exact tool, native syntax walk
// (Go), keyword heuristic.
type ComplexityEngine struct {
	ToolsEnabled bool
	ToolTimeout  time.Duration
	Warnf        func(format string, args ...any)
}

func NewComplexityEngine() *ComplexityEngine {
	return &ComplexityEngine{
		ToolTimeout: 120 * time.Second,
	}
}

func (e *ComplexityEngine) warnf(format string, args ...any) {
	if e.Warnf != nil {
		e.Warnf(format, args...)
	}
}

// ComplexityOutcome bundles the standardized result, the full function
// list feeding the prioritizers, and per-file Go analyses when the
// native walk ran.
type ComplexityOutcome struct {
	Result    models.ComplexityResult
	Functions []models.FunctionUnit
	GoFiles   []GoFileAnalysis
}

// Analyze runs the tier chain over files of one language. For Go the
// native walk always runs so callers get per-file volume and quality
// data even when an external tool supplied the complexity figures.
func (e *ComplexityEngine) Analyze(ctx context.Context, language string, files []string) ComplexityOutcome {
	var goFiles []GoFileAnalysis
	if language == "Go" {
		goFiles = NewGoStrategy().AnalyzeFiles(files)
	}

	if e.ToolsEnabled {
		if tool := toolForLanguage(language); tool != nil {
			toolCtx := ctx
			if e.ToolTimeout > 0 {
				var cancel context.CancelFunc
				toolCtx, cancel = context.WithTimeout(ctx, e.ToolTimeout)
				defer cancel()
			}
			res, err := tool.AttemptExact(toolCtx, files)
			if err == nil {
				return ComplexityOutcome{
					Result:    e.standardize(res.Functions, res.Method),
					Functions: res.Functions,
					GoFiles:   goFiles,
				}
			}
			if errors.Is(err, ErrUnavailable) {
				e.warnf("%s unavailable, using built-in analysis: %v", tool.Name(), err)
			} else {
				e.warnf("%s failed, using built-in analysis: %v", tool.Name(), err)
			}
		}
	}

	if language == "Go" {
		fns := make([]models.FunctionUnit, 0)
		for _, fa := range goFiles {
			fns = append(fns, fa.Functions...)
		}
		return ComplexityOutcome{
			Result:    e.standardize(fns, NewGoStrategy().Name()),
			Functions: fns,
			GoFiles:   goFiles,
		}
	}

	strategy := NewHeuristicStrategy(language)
	fns := strategy.AnalyzeFiles(files)
	return ComplexityOutcome{
		Result:    e.standardize(fns, strategy.Name()),
		Functions: fns,
	}
}

// standardize fills derived fields and aggregates into a ComplexityResult.
func (e *ComplexityEngine) standardize(fns []models.FunctionUnit, method string) models.ComplexityResult {
	result := models.ComplexityResult{Method: method}
	if len(fns) == 0 {
		return result
	}

	samples := make([]float64, len(fns))
	for i := range fns {
		fns[i].Category = models.CategorizeComplexity(fns[i].Complexity)
		fns[i].NeedsRefactor = fns[i].Complexity > refactorComplexityFloor ||
			fns[i].Lines > refactorFunctionLenFloor
		result.Distribution.Add(fns[i].Complexity)
		samples[i] = float64(fns[i].Complexity)
	}

	result.TotalFunctions = len(fns)
	result.Average = models.Round1(stat.Mean(samples, nil))
	result.Min = floats.Min(samples)
	result.Max = floats.Max(samples)

	sorted := make([]models.FunctionUnit, len(fns))
	copy(sorted, fns)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Complexity > sorted[j].Complexity
	})
	if len(sorted) > maxTopFunctions {
		sorted = sorted[:maxTopFunctions]
	}
	result.TopFunctions = sorted

	return result
}
