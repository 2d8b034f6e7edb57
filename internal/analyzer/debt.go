package analyzer

import (
	"strings"

	"github.com/fathomcode/fathom/pkg/models"
)

// Per-category remediation estimates, in minutes.
const (
	minutesPerDuplicateLine     = 0.5
	minutesPerComplexFunction   = 15
	minutesPerUndocumentedFunc  = 5
	minutesPerLongFunction      = 10
	longFunctionThresholdLines  = 50
	longLineThresholdChars      = 120
	deepIndentThresholdLevels   = 6
	debtWeightLongLine          = 1
	debtWeightDeepIndent        = 2
	debtWeightExplicitMarker    = 3
)

// DebtInputs feeds the estimator from earlier pipeline stages.
type DebtInputs struct {
	DuplicationPercentage float64
	TotalLines            int
	ComplexFunctionCount  int

	// GoFiles carries the exact-tier per-file analyses. Documentation,
	// long-function and quality debt need a syntax walk and are computed
	// only for the natively parsed language; other languages contribute
	// zero to those categories.
	GoFiles []GoFileAnalysis
}

// EstimateDebt converts quality signals into estimated remediation
// minutes, summed per category.
func EstimateDebt(in DebtInputs) models.DebtResult {
	var b models.DebtBreakdown

	b.Duplication = int(in.DuplicationPercentage / 100 * float64(in.TotalLines) * minutesPerDuplicateLine)
	b.Complexity = in.ComplexFunctionCount * minutesPerComplexFunction

	for _, fa := range in.GoFiles {
		for _, fn := range fa.Functions {
			if !fn.HasDoc {
				b.Documentation += minutesPerUndocumentedFunc
			}
			if fn.Lines > longFunctionThresholdLines {
				b.LongFunctions += minutesPerLongFunction
			}
		}
		b.Quality += fa.QualityDebt
	}

	return models.DebtResult{
		TotalMinutes: b.Total(),
		Breakdown:    b,
	}
}

// qualityDebt scans raw source for line-level smells: overlong lines,
// deep nesting, and explicit TODO/FIXME markers.
func qualityDebt(source []byte) int {
	debt := 0
	for _, line := range strings.Split(string(source), "\n") {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) > longLineThresholdChars {
			debt += debtWeightLongLine
		}
		if indentDepth(line) > deepIndentThresholdLevels {
			debt += debtWeightDeepIndent
		}
		if strings.Contains(trimmed, "TODO") || strings.Contains(trimmed, "FIXME") {
			debt += debtWeightExplicitMarker
		}
	}
	return debt
}

// indentDepth measures leading indentation in levels: one tab or four
// spaces per level.
func indentDepth(line string) int {
	depth := 0
	spaces := 0
	for _, r := range line {
		switch r {
		case '\t':
			depth++
		case ' ':
			spaces++
			if spaces == 4 {
				depth++
				spaces = 0
			}
		default:
			return depth
		}
	}
	return depth
}
