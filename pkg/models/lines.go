package models

// DocQuality rates how well a codebase is commented.
type DocQuality string

const (
	DocExcellent DocQuality = "Excellent"
	DocGood      DocQuality = "Good"
	DocFair      DocQuality = "Fair"
	DocPoor      DocQuality = "Poor"
	DocUnknown   DocQuality = "Unknown"
)

// LineMetrics holds the aggregate line breakdown for a tree or single file.
type LineMetrics struct {
	TotalLines   int `json:"total_lines"`
	CodeLines    int `json:"code_lines"`
	CommentLines int `json:"comment_lines"`
	BlankLines   int `json:"blank_lines"`

	CommentRatio      float64 `json:"comment_ratio"`
	CodePercentage    float64 `json:"code_percentage"`
	CommentPercentage float64 `json:"comment_percentage"`
	BlankPercentage   float64 `json:"blank_percentage"`

	DocumentationQuality DocQuality `json:"documentation_quality"`
}
