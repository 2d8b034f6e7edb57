package models

// LanguageShare describes one language's share of the codebase by volume.
// Volume is measured in non-blank lines rather than file count so that a
// small number of dense files outweighs many whitespace-padded ones.
type LanguageShare struct {
	Lines      int     `json:"lines"`
	Percentage float64 `json:"percentage"`
}

// Classification is the output of the file classifier stage.
type Classification struct {
	PrimaryLanguage      string                   `json:"primary_language"`
	LanguageDistribution map[string]LanguageShare `json:"language_distribution"`
	FilesAnalyzed        int                      `json:"files_analyzed"`

	// SourceFiles lists the discovered source files in lexical order.
	// Later pipeline stages reuse this list instead of re-walking the tree.
	SourceFiles []string `json:"-"`

	// FileLanguages maps each source file to its detected language so
	// later stages never re-detect from the extension alone.
	FileLanguages map[string]string `json:"-"`
}
