package analyzer

import (
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/fathomcode/fathom/pkg/models"
)

// languageProfile drives the heuristic complexity tier for one language
// family: where functions start, which keywords branch, and whether the
// language delimits bodies with braces.
type languageProfile struct {
	signatures []*regexp.Regexp
	keywords   []*regexp.Regexp
	braced     bool
}

func compileAll(patterns ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		res = append(res, regexp.MustCompile(`(?i)`+p))
	}
	return res
}

// cKeywords covers the C-family branching grammar shared by most braced
// languages.
var cKeywords = []string{
	`\bif\b`, `\belse\b`, `\bwhile\b`, `\bfor\b`,
	`\bswitch\b`, `\bcase\b`, `\bcatch\b`, `\btry\b`,
	`\?\s*:`, `\|\|`, `&&`, `\bdo\b`,
}

var languageProfiles = map[string]languageProfile{
	"JavaScript": {
		signatures: compileAll(
			`function\s+(\w+)\s*\(`,
			`(\w+)\s*:\s*function\s*\(`,
			`(\w+)\s*=\s*function\s*\(`,
			`(?:const\s+|let\s+|var\s+)?(\w+)\s*=\s*\([^)]*\)\s*=>`,
		),
		keywords: compileAll(cKeywords...),
		braced:   true,
	},
	"Java": {
		signatures: compileAll(
			`(?:public|private|protected)?\s*(?:static\s+)?\w+\s+(\w+)\s*\([^)]*\)\s*\{`,
		),
		keywords: compileAll(cKeywords...),
		braced:   true,
	},
	"C": {
		signatures: compileAll(`(\w+)\s*\([^)]*\)\s*\{`),
		keywords:   compileAll(cKeywords...),
		braced:     true,
	},
	"C++": {
		signatures: compileAll(`(\w+(?:::\w+)?)\s*\([^)]*\)\s*\{`),
		keywords:   compileAll(cKeywords...),
		braced:     true,
	},
	"C#": {
		signatures: compileAll(
			`(?:public|private|protected|internal)?\s*(?:static\s+)?(?:virtual\s+)?(?:override\s+)?\w+\s+(\w+)\s*\([^)]*\)\s*\{`,
		),
		keywords: compileAll(append([]string{`\bforeach\b`}, cKeywords...)...),
		braced:   true,
	},
	"Go": {
		signatures: compileAll(`func\s+(?:\([^)]*\)\s*)?(\w+)\s*\(`),
		keywords: compileAll(
			`\bif\b`, `\belse\b`, `\bfor\b`, `\bswitch\b`,
			`\bcase\b`, `\bselect\b`, `&&`, `\|\|`,
		),
		braced: true,
	},
	"Rust": {
		signatures: compileAll(`fn\s+(\w+)\s*\(`),
		keywords: compileAll(
			`\bif\b`, `\belse\b`, `\bwhile\b`, `\bfor\b`, `\bloop\b`,
			`\bmatch\b`, `\|\|`, `&&`, `=>`,
		),
		braced: true,
	},
	"PHP": {
		signatures: compileAll(`(?:public|private|protected)?\s*function\s+(\w+)\s*\(`),
		keywords:   compileAll(append([]string{`\bforeach\b`}, cKeywords...)...),
		braced:     true,
	},
	"Ruby": {
		signatures: compileAll(`def\s+([\w?!]+)`),
		keywords: compileAll(
			`\bif\b`, `\belse\b`, `\belsif\b`, `\bwhile\b`, `\bfor\b`,
			`\bcase\b`, `\bwhen\b`, `\band\b`, `\bor\b`, `\bunless\b`,
		),
		braced: false,
	},
	"Python": {
		signatures: compileAll(`def\s+(\w+)\s*\(`),
		keywords: compileAll(
			`\bif\b`, `\belif\b`, `\belse\b`, `\bwhile\b`, `\bfor\b`,
			`\btry\b`, `\bexcept\b`, `\band\b`, `\bor\b`,
		),
		braced: false,
	},
}

// genericProfile is the fallback for languages without a dedicated entry.
var genericProfile = languageProfile{
	signatures: compileAll(`(\w+)\s*\([^)]*\)\s*\{`),
	keywords:   compileAll(`\bif\b`, `\belse\b`, `\bwhile\b`, `\bfor\b`),
	braced:     true,
}

// profileFor returns the heuristic profile for a language tag.
func profileFor(language string) languageProfile {
	switch language {
	case "TypeScript", "TSX", "JSX":
		return languageProfiles["JavaScript"]
	}
	if p, ok := languageProfiles[language]; ok {
		return p
	}
	return genericProfile
}

// HeuristicStrategy estimates complexity from regex signatures and
// keyword counting. It is the universal fallback when no exact tier is
// available for a language.
type HeuristicStrategy struct {
	language string
	profile  languageProfile
}

// NewHeuristicStrategy creates a heuristic strategy for a language tag.
func NewHeuristicStrategy(language string) *HeuristicStrategy {
	return &HeuristicStrategy{language: language, profile: profileFor(language)}
}

// Name identifies the analysis tier in results.
func (h *HeuristicStrategy) Name() string {
	return "heuristic (" + h.language + ")"
}

// bracelessCutoff bounds body extraction for languages without braces:
// once this much text is accumulated without seeing a brace, the next
// newline ends the body.
const bracelessCutoff = 200

// AnalyzeFiles extracts function units from every file. Unreadable files
// are skipped; zero functions found is a valid empty result.
func (h *HeuristicStrategy) AnalyzeFiles(files []string) []models.FunctionUnit {
	var units []models.FunctionUnit
	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		units = append(units, h.analyzeContent(string(content), path)...)
	}
	return units
}

// analyzeContent finds function starts, extracts bodies and counts
// branching constructs.
func (h *HeuristicStrategy) analyzeContent(content, path string) []models.FunctionUnit {
	type match struct {
		start int
		name  string
	}
	var matches []match
	seen := make(map[int]bool)

	for _, sig := range h.profile.signatures {
		for _, m := range sig.FindAllStringSubmatchIndex(content, -1) {
			if seen[m[0]] {
				continue
			}
			seen[m[0]] = true
			name := "anonymous"
			if len(m) >= 4 && m[2] >= 0 {
				name = content[m[2]:m[3]]
			}
			matches = append(matches, match{start: m[0], name: name})
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].start < matches[j].start })

	units := make([]models.FunctionUnit, 0, len(matches))
	for _, m := range matches {
		body := extractBody(content[m.start:], h.profile.braced)
		complexity := 1
		for _, kw := range h.profile.keywords {
			complexity += len(kw.FindAllString(body, -1))
		}

		units = append(units, models.FunctionUnit{
			File:       path,
			Name:       m.name,
			StartLine:  1 + strings.Count(content[:m.start], "\n"),
			Lines:      strings.Count(body, "\n") + 1,
			Complexity: complexity,
			Category:   models.CategorizeComplexity(complexity),
		})
	}
	return units
}

// extractBody returns the function body starting at the signature match.
// Braced languages balance brace depth from the first open brace to its
// matching close; brace-less languages stop at the first newline past the
// length cutoff.
func extractBody(content string, braced bool) string {
	depth := 0
	inBody := false

	for i := 0; i < len(content); i++ {
		switch content[i] {
		case '{':
			if braced {
				depth++
				inBody = true
			}
		case '}':
			if braced && inBody {
				depth--
				if depth == 0 {
					return content[:i+1]
				}
			}
		case '\n':
			if !inBody && i > bracelessCutoff {
				return content[:i]
			}
		}
	}
	return content
}
