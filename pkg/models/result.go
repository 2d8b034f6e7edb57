package models

import "math"

// AnalysisResult is the immutable aggregate returned from one analysis
// call. Every entity inside it is created and discarded within that call;
// nothing is shared across invocations.
type AnalysisResult struct {
	PrimaryLanguage      string                   `json:"primary_language"`
	LanguageDistribution map[string]LanguageShare `json:"language_distribution"`
	FilesAnalyzed        int                      `json:"files_analyzed"`

	Lines      LineMetrics      `json:"lines"`
	Complexity ComplexityResult `json:"complexity"`

	MaintainabilityIndex    float64           `json:"maintainability_index"`
	LowMaintainabilityFiles []FileMaintenance `json:"low_maintainability_files"`

	Duplication DuplicationResult `json:"duplication"`
	Debt        DebtResult        `json:"technical_debt"`

	// Files holds the top 20 files by improvement priority.
	Files []FileReport `json:"file_analyses"`
	// Functions holds the top 50 functions needing attention.
	Functions []FunctionUnit `json:"function_analyses"`

	Understanding UnderstandingScore `json:"understanding"`
}

// FileMaintenance pairs a file with its maintainability index.
type FileMaintenance struct {
	File  string  `json:"file"`
	Index float64 `json:"mi_score"`
}

// Round1 rounds to one decimal place. All percentages and averages in an
// AnalysisResult are rounded with it.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
