package models

// DebtBreakdown splits estimated remediation time into categories.
// All figures are integer minutes.
type DebtBreakdown struct {
	Duplication   int `json:"duplication"`
	Complexity    int `json:"complexity"`
	Documentation int `json:"documentation"`
	LongFunctions int `json:"long_functions"`
	Quality       int `json:"quality_issues"`
}

// Total sums all debt categories.
func (b DebtBreakdown) Total() int {
	return b.Duplication + b.Complexity + b.Documentation + b.LongFunctions + b.Quality
}

// DebtResult is the technical-debt estimate for a tree.
type DebtResult struct {
	TotalMinutes int           `json:"technical_debt_minutes"`
	Breakdown    DebtBreakdown `json:"debt_breakdown"`
}
