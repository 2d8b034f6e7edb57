package models

// PriorityTier labels how urgently a file or function needs attention.
type PriorityTier string

const (
	PriorityLow      PriorityTier = "Low"
	PriorityMedium   PriorityTier = "Medium"
	PriorityHigh     PriorityTier = "High"
	PriorityCritical PriorityTier = "Critical"
)

// TierForScore maps a 0-100 priority score to its tier.
// Boundaries are exact: 69 is High, 70 is Critical.
func TierForScore(score int) PriorityTier {
	switch {
	case score >= 70:
		return PriorityCritical
	case score >= 50:
		return PriorityHigh
	case score >= 25:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// Weight returns a numeric rank for sorting tiers.
func (p PriorityTier) Weight() int {
	switch p {
	case PriorityCritical:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// FileReport carries per-file metrics plus the improvement priority
// derived from them.
type FileReport struct {
	Path     string `json:"file_path"`
	Name     string `json:"file_name"`
	Language string `json:"language"`

	Lines                 int     `json:"lines_of_code"`
	CodeLines             int     `json:"code_lines"`
	FunctionCount         int     `json:"function_count"`
	Complexity            float64 `json:"complexity_score"`
	MaintainabilityIndex  float64 `json:"maintainability_index"`
	DuplicationPercentage float64 `json:"duplication_percentage"`
	CommentRatio          float64 `json:"comment_ratio"`

	PriorityScore int          `json:"priority_score"`
	Priority      PriorityTier `json:"improvement_priority"`
}
