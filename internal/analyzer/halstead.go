package analyzer

import (
	"math"

	"github.com/fathomcode/fathom/pkg/parser"
	sitter "github.com/smacker/go-tree-sitter"
)

// Token classification for Halstead volume over Go ASTs. Pre-allocated
// to avoid per-call map construction.

var halsteadOperatorTypes = map[string]bool{
	"binary_expression":           true,
	"unary_expression":            true,
	"assignment_statement":        true,
	"inc_statement":               true,
	"dec_statement":               true,
	"if_statement":                true,
	"for_statement":               true,
	"expression_switch_statement": true,
	"type_switch_statement":       true,
	"select_statement":            true,
	"return_statement":            true,
	"break_statement":             true,
	"continue_statement":          true,
	"go_statement":                true,
	"defer_statement":             true,
	"call_expression":             true,
	"selector_expression":         true,
	"index_expression":            true,
}

var halsteadOperatorSymbols = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true,
	"=": true, ":=": true, "==": true, "!=": true, "<": true, ">": true,
	"<=": true, ">=": true, "&&": true, "||": true, "!": true,
	"&": true, "|": true, "^": true, "<<": true, ">>": true, "&^": true,
	"+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"++": true, "--": true, "<-": true, ".": true,
	"[": true, "]": true, "(": true, ")": true,
}

var halsteadOperandTypes = map[string]bool{
	"identifier":                 true,
	"type_identifier":            true,
	"field_identifier":           true,
	"package_identifier":         true,
	"int_literal":                true,
	"float_literal":              true,
	"imaginary_literal":          true,
	"rune_literal":               true,
	"interpreted_string_literal": true,
	"raw_string_literal":         true,
	"true":                       true,
	"false":                      true,
	"nil":                        true,
	"iota":                       true,
}

// halsteadVolume computes V = N * log2(n) over the distinct and total
// operator/operand tokens of a subtree.
func halsteadVolume(node *sitter.Node, source []byte) float64 {
	operators := make(map[string]int)
	operands := make(map[string]int)

	parser.WalkTyped(node, source, func(n *sitter.Node, nodeType string, src []byte) bool {
		switch {
		case halsteadOperatorTypes[nodeType] || halsteadOperatorSymbols[nodeType]:
			operators[nodeType]++
		case halsteadOperandTypes[nodeType]:
			operands[parser.GetNodeText(n, src)]++
		}
		return true
	})

	vocabulary := len(operators) + len(operands)
	if vocabulary == 0 {
		return 0
	}

	length := 0
	for _, c := range operators {
		length += c
	}
	for _, c := range operands {
		length += c
	}

	return float64(length) * math.Log2(float64(vocabulary))
}
