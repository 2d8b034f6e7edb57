package analyzer

import (
	"strings"

	"github.com/fathomcode/fathom/internal/fileproc"
	"github.com/fathomcode/fathom/pkg/models"
	"github.com/fathomcode/fathom/pkg/parser"
	sitter "github.com/smacker/go-tree-sitter"
)

// goDecisionTypes are the Go AST node types counted as decision points.
var goDecisionTypes = map[string]bool{
	"if_statement":                true,
	"for_statement":               true,
	"expression_switch_statement": true,
	"type_switch_statement":       true,
	"select_statement":            true,
	"expression_case":             true,
	"type_case":                   true,
	"communication_case":          true,
}

// GoFileAnalysis carries everything the exact tier learns about one Go
// file: its functions, and the per-file figures the maintainability and
// debt stages reuse.
type GoFileAnalysis struct {
	Path      string
	Functions []models.FunctionUnit

	// SourceLines is the physical line count of the file.
	SourceLines int
	// HalsteadVolume is the file-level Halstead volume.
	HalsteadVolume float64
	// QualityDebt accumulates per-line smell minutes (long lines, deep
	// nesting, TODO/FIXME markers).
	QualityDebt int
}

// GoStrategy is the exact-parse tier for Go, built on tree-sitter.
type GoStrategy struct{}

// NewGoStrategy creates the native Go strategy.
func NewGoStrategy() *GoStrategy {
	return &GoStrategy{}
}

// Name identifies the analysis tier in results.
func (g *GoStrategy) Name() string {
	return "tree-sitter (Go)"
}

// AnalyzeFiles parses every file and computes exact per-function
// complexity. Files that fail to read or parse are skipped; results keep
// the input file order.
func (g *GoStrategy) AnalyzeFiles(files []string) []GoFileAnalysis {
	return fileproc.MapFiles(files, func(path string) (GoFileAnalysis, error) {
		psr := parser.New()
		defer psr.Close()
		return analyzeGoFile(psr, path)
	})
}

// AnalyzeFunctions flattens AnalyzeFiles into function units for the
// complexity engine.
func (g *GoStrategy) AnalyzeFunctions(files []string) []models.FunctionUnit {
	var units []models.FunctionUnit
	for _, fa := range g.AnalyzeFiles(files) {
		units = append(units, fa.Functions...)
	}
	return units
}

func analyzeGoFile(psr *parser.Parser, path string) (GoFileAnalysis, error) {
	result, err := psr.ParseFile(path)
	if err != nil {
		return GoFileAnalysis{}, err
	}

	fa := GoFileAnalysis{
		Path:        path,
		SourceLines: strings.Count(string(result.Source), "\n") + 1,
	}

	for _, fn := range parser.GetFunctions(result) {
		complexity := 1
		if fn.Body != nil {
			complexity += countDecisionPoints(fn.Body, result.Source)
		}

		fa.Functions = append(fa.Functions, models.FunctionUnit{
			File:       path,
			Name:       fn.Name,
			StartLine:  int(fn.StartLine),
			Lines:      int(fn.EndLine - fn.StartLine),
			Parameters: fn.Parameters,
			HasDoc:     fn.HasDoc,
			Complexity: complexity,
			Category:   models.CategorizeComplexity(complexity),
		})
	}

	fa.HalsteadVolume = halsteadVolume(result.Tree.RootNode(), result.Source)
	fa.QualityDebt = qualityDebt(result.Source)

	return fa, nil
}

// countDecisionPoints counts branching statements for cyclomatic
// complexity. Logical && and || operators count as additional decision
// points.
func countDecisionPoints(node *sitter.Node, source []byte) int {
	count := 0
	parser.WalkTyped(node, source, func(n *sitter.Node, nodeType string, src []byte) bool {
		if goDecisionTypes[nodeType] {
			count++
		}
		if nodeType == "binary_expression" {
			op := binaryOperator(n)
			if op == "&&" || op == "||" {
				count++
			}
		}
		return true
	})
	return count
}

// binaryOperator extracts the operator token from a binary expression.
func binaryOperator(node *sitter.Node) string {
	for i := range int(node.ChildCount()) {
		child := node.Child(i)
		if !child.IsNamed() {
			return child.Type()
		}
	}
	return ""
}
