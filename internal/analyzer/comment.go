package analyzer

import (
	"path/filepath"
	"strings"
)

// Comment prefix sets keyed by file extension. Detection checks only the
// line's leading token; no cross-line block-comment state is tracked, so
// continuation lines inside multi-line comments that lack the token are
// counted as code.

var hashCommentExts = map[string]bool{
	".py": true, ".rb": true, ".sh": true, ".bash": true,
	".r": true, ".pl": true, ".ps1": true,
}

var slashCommentExts = map[string]bool{
	".js": true, ".jsx": true, ".ts": true, ".tsx": true,
	".java": true, ".c": true, ".cpp": true, ".cc": true, ".cxx": true,
	".h": true, ".hpp": true, ".cs": true, ".go": true, ".rs": true,
	".swift": true, ".kt": true, ".scala": true,
}

// isCommentLine reports whether a trimmed line starts with a comment
// token for the file's language.
func isCommentLine(line, path string) bool {
	ext := strings.ToLower(filepath.Ext(path))

	switch {
	case hashCommentExts[ext]:
		return strings.HasPrefix(line, "#")
	case slashCommentExts[ext]:
		return strings.HasPrefix(line, "//") || strings.HasPrefix(line, "/*") || strings.HasPrefix(line, "*")
	case ext == ".php":
		return strings.HasPrefix(line, "//") || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "/*")
	case ext == ".lua":
		return strings.HasPrefix(line, "--")
	}
	return false
}

var importPrefixes = []string{
	"import ", "from ", "#include", "using ", "require ", "require(",
	"package ", "use ",
}

// isImportLine reports whether a trimmed line is an import/include
// statement. Import lines repeat across files by nature and are excluded
// from duplication counting.
func isImportLine(line string) bool {
	for _, p := range importPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}
