package analyzer

import (
	"sort"

	"github.com/fathomcode/fathom/pkg/models"
)

const (
	maxFileReports     = 20
	maxFunctionReports = 50
	maxPriorityScore   = 100
)

// FilePriorityScore converts a file's metrics into a 0-100 improvement
// priority using fixed additive bands.
func FilePriorityScore(f models.FileReport) int {
	score := 0

	switch {
	case f.Complexity > 15:
		score += 30
	case f.Complexity > 10:
		score += 20
	case f.Complexity > 5:
		score += 10
	}

	switch {
	case f.MaintainabilityIndex < 30:
		score += 25
	case f.MaintainabilityIndex < 50:
		score += 15
	case f.MaintainabilityIndex < 70:
		score += 5
	}

	switch {
	case f.DuplicationPercentage > 30:
		score += 20
	case f.DuplicationPercentage > 15:
		score += 10
	case f.DuplicationPercentage > 5:
		score += 5
	}

	switch {
	case f.CommentRatio < 3:
		score += 10
	case f.CommentRatio < 8:
		score += 5
	}

	switch {
	case f.Lines > 500:
		score += 10
	case f.Lines > 300:
		score += 5
	}

	if score > maxPriorityScore {
		score = maxPriorityScore
	}
	return score
}

// PrioritizeFiles scores every file report and keeps the top candidates
// by descending score, path as a stable tie-break.
func PrioritizeFiles(files []models.FileReport) []models.FileReport {
	out := make([]models.FileReport, len(files))
	copy(out, files)
	for i := range out {
		out[i].PriorityScore = FilePriorityScore(out[i])
		out[i].Priority = models.TierForScore(out[i].PriorityScore)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].PriorityScore != out[j].PriorityScore {
			return out[i].PriorityScore > out[j].PriorityScore
		}
		return out[i].Path < out[j].Path
	})
	if len(out) > maxFileReports {
		out = out[:maxFileReports]
	}
	return out
}

// functionNeedsAttention keeps functions worth surfacing: flagged for
// refactoring, notably complex, undocumented, or simply long.
func functionNeedsAttention(fn models.FunctionUnit) bool {
	return fn.NeedsRefactor || fn.Complexity > 8 || !fn.HasDoc || fn.Lines > 30
}

// PrioritizeFunctions filters and ranks functions by complexity,
// returning the top candidates.
func PrioritizeFunctions(fns []models.FunctionUnit) []models.FunctionUnit {
	var kept []models.FunctionUnit
	for _, fn := range fns {
		if functionNeedsAttention(fn) {
			kept = append(kept, fn)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Complexity != kept[j].Complexity {
			return kept[i].Complexity > kept[j].Complexity
		}
		if kept[i].File != kept[j].File {
			return kept[i].File < kept[j].File
		}
		return kept[i].StartLine < kept[j].StartLine
	})
	if len(kept) > maxFunctionReports {
		kept = kept[:maxFunctionReports]
	}
	return kept
}
