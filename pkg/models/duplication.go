package models

// Location points at a line in a source file.
type Location struct {
	File string `json:"file"`
	Line int    `json:"line"`
}

// DuplicateBlock records one normalized line that appears in two or more
// places. Locations is capped at five samples; Occurrences carries the
// real count.
type DuplicateBlock struct {
	// ID is a stable BLAKE3 content hash of the normalized line, usable
	// for tracking a block across runs.
	ID          string     `json:"id"`
	Content     string     `json:"content"`
	Occurrences int        `json:"occurrences"`
	Locations   []Location `json:"locations"`
}

// FileDuplication reports the internal duplication of a single file.
type FileDuplication struct {
	File             string  `json:"file"`
	Percentage       float64 `json:"percentage"`
	DuplicatedLines  int     `json:"duplicated_lines"`
	SignificantLines int     `json:"significant_lines"`
}

// DuplicationResult is the repo-wide exact line-duplication report.
type DuplicationResult struct {
	Percentage float64 `json:"duplication_percentage"`

	// Blocks lists the most repeated lines, most frequent first (top 10).
	Blocks []DuplicateBlock `json:"duplicate_blocks"`

	// HighDuplicationFiles lists files above 15% internal duplication,
	// worst first (top 5).
	HighDuplicationFiles []FileDuplication `json:"high_duplication_files"`

	// FilesWithDuplication counts files above 5% internal duplication.
	FilesWithDuplication int `json:"files_with_duplication"`
}
