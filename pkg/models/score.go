package models

// DifficultyLevel labels how hard a codebase is to understand.
type DifficultyLevel string

const (
	DifficultyEasy        DifficultyLevel = "Easy"        // score >= 85
	DifficultyModerate    DifficultyLevel = "Moderate"    // score >= 65
	DifficultyChallenging DifficultyLevel = "Challenging" // score >= 40
	DifficultyDifficult   DifficultyLevel = "Difficult"
)

// LevelForScore maps an understanding score to its difficulty label.
func LevelForScore(score int) DifficultyLevel {
	switch {
	case score >= 85:
		return DifficultyEasy
	case score >= 65:
		return DifficultyModerate
	case score >= 40:
		return DifficultyChallenging
	default:
		return DifficultyDifficult
	}
}

// UnderstandingScore is the final weighted composite with its breakdown.
// Penalties and bonuses are reported separately so renderers can show
// signed adjustments without re-deriving them.
type UnderstandingScore struct {
	Score int             `json:"score"`
	Level DifficultyLevel `json:"level"`

	BaseScore              int `json:"base_score"`
	ComplexityPenalty      int `json:"complexity_penalty"`
	DuplicationPenalty     int `json:"duplication_penalty"`
	TechDebtPenalty        int `json:"tech_debt_penalty"`
	MaintainabilityBonus   int `json:"maintainability_bonus"`
	MaintainabilityPenalty int `json:"maintainability_penalty"`
	DocumentationBonus     int `json:"documentation_bonus"`
	DocumentationPenalty   int `json:"documentation_penalty"`

	// Details holds one human-readable line per scoring component.
	Details map[string]string `json:"scoring_details"`
}
