package models

// ComplexityCategory buckets a function by its cyclomatic complexity.
type ComplexityCategory string

const (
	CategorySimple   ComplexityCategory = "Simple"   // complexity <= 5
	CategoryModerate ComplexityCategory = "Moderate" // complexity <= 10
	CategoryComplex  ComplexityCategory = "Complex"  // complexity > 10
)

// CategorizeComplexity maps a complexity value to its bucket.
func CategorizeComplexity(complexity int) ComplexityCategory {
	switch {
	case complexity <= 5:
		return CategorySimple
	case complexity <= 10:
		return CategoryModerate
	default:
		return CategoryComplex
	}
}

// FunctionUnit is a single analyzed function or method.
type FunctionUnit struct {
	File          string             `json:"file_path"`
	Name          string             `json:"function_name"`
	StartLine     int                `json:"line_number"`
	Lines         int                `json:"lines_of_code"`
	Parameters    int                `json:"parameter_count"`
	HasDoc        bool               `json:"has_documentation"`
	Complexity    int                `json:"complexity_score"`
	Category      ComplexityCategory `json:"complexity_category"`
	NeedsRefactor bool               `json:"needs_refactoring"`
}

// ComplexityDistribution counts functions per complexity bucket.
// The three counts always sum to the total function count.
type ComplexityDistribution struct {
	Simple   int `json:"simple"`
	Moderate int `json:"moderate"`
	Complex  int `json:"complex"`
}

// Add records one function's complexity in the distribution.
func (d *ComplexityDistribution) Add(complexity int) {
	switch CategorizeComplexity(complexity) {
	case CategorySimple:
		d.Simple++
	case CategoryModerate:
		d.Moderate++
	default:
		d.Complex++
	}
}

// Total returns the number of functions recorded.
func (d ComplexityDistribution) Total() int {
	return d.Simple + d.Moderate + d.Complex
}

// ComplexityResult is the standardized complexity report for one language,
// regardless of whether an exact tool or the heuristic tier produced it.
type ComplexityResult struct {
	Average        float64                `json:"complexity_score"`
	Min            float64                `json:"complexity_min"`
	Max            float64                `json:"complexity_max"`
	Distribution   ComplexityDistribution `json:"complexity_distribution"`
	TotalFunctions int                    `json:"total_functions"`

	// TopFunctions lists the most complex functions, highest first.
	TopFunctions []FunctionUnit `json:"high_complexity_functions"`

	// Method names the analysis tier that produced this result,
	// e.g. "tree-sitter (Go)" or "heuristic (rust)".
	Method string `json:"analysis_method"`
}
