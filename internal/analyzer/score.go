package analyzer

import (
	"fmt"

	"github.com/fathomcode/fathom/pkg/models"
)

// ScoreInputs are the project-level signals the composer weighs.
type ScoreInputs struct {
	AvgComplexity        float64
	MaintainabilityIndex float64
	DuplicationPct       float64
	DebtMinutes          int
	CommentRatio         float64
}

// ComposeUnderstandingScore folds the headline metrics into a single
// 0-100 understanding score with fixed per-factor bands.
func ComposeUnderstandingScore(in ScoreInputs) models.UnderstandingScore {
	const base = 100
	debtHours := float64(in.DebtMinutes) / 60

	complexityPenalty := 0
	switch {
	case in.AvgComplexity > 20:
		complexityPenalty = 30
	case in.AvgComplexity > 15:
		complexityPenalty = 20
	case in.AvgComplexity > 10:
		complexityPenalty = 15
	}

	maintainabilityAdj := 0
	switch {
	case in.MaintainabilityIndex < 30:
		maintainabilityAdj = -25
	case in.MaintainabilityIndex < 50:
		maintainabilityAdj = -18
	case in.MaintainabilityIndex > 85:
		maintainabilityAdj = 5
	}

	duplicationPenalty := 0
	switch {
	case in.DuplicationPct > 25:
		duplicationPenalty = 25
	case in.DuplicationPct > 15:
		duplicationPenalty = 18
	case in.DuplicationPct > 5:
		duplicationPenalty = 10
	}

	debtPenalty := 0
	switch {
	case debtHours > 4:
		debtPenalty = 15
	case debtHours > 2:
		debtPenalty = 10
	case debtHours > 1:
		debtPenalty = 5
	}

	documentationAdj := 0
	switch {
	case in.CommentRatio < 3:
		documentationAdj = -10
	case in.CommentRatio > 15:
		documentationAdj = 3
	case in.CommentRatio > 8:
		documentationAdj = 1
	}

	score := base - complexityPenalty + maintainabilityAdj -
		duplicationPenalty - debtPenalty + documentationAdj
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return models.UnderstandingScore{
		Score: score,
		Level: models.LevelForScore(score),

		BaseScore:              base,
		ComplexityPenalty:      complexityPenalty,
		DuplicationPenalty:     duplicationPenalty,
		TechDebtPenalty:        debtPenalty,
		MaintainabilityBonus:   max(0, maintainabilityAdj),
		MaintainabilityPenalty: -min(0, maintainabilityAdj),
		DocumentationBonus:     max(0, documentationAdj),
		DocumentationPenalty:   -min(0, documentationAdj),

		Details: map[string]string{
			"complexity":      fmt.Sprintf("Avg %.1f → -%d pts (30%% weight)", in.AvgComplexity, complexityPenalty),
			"maintainability": fmt.Sprintf("MI %.1f → %+d pts (25%% weight)", in.MaintainabilityIndex, maintainabilityAdj),
			"duplication":     fmt.Sprintf("%.1f%% → -%d pts (20%% weight)", in.DuplicationPct, duplicationPenalty),
			"technical_debt":  fmt.Sprintf("%.1fh → -%d pts (15%% weight)", debtHours, debtPenalty),
			"documentation":   fmt.Sprintf("%.1f%% → %+d pts (10%% weight)", in.CommentRatio, documentationAdj),
		},
	}
}
