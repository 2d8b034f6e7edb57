package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// FunctionNode represents a parsed function or method declaration.
type FunctionNode struct {
	Name       string
	StartLine  uint32
	EndLine    uint32
	Parameters int
	HasDoc     bool
	Body       *sitter.Node
}

var functionNodeTypes = map[string]bool{
	"function_declaration": true,
	"method_declaration":   true,
}

// GetFunctions extracts all function and method declarations.
func GetFunctions(result *ParseResult) []FunctionNode {
	var functions []FunctionNode
	root := result.Tree.RootNode()

	WalkTyped(root, result.Source, func(node *sitter.Node, nodeType string, source []byte) bool {
		if functionNodeTypes[nodeType] {
			functions = append(functions, extractFunction(node, source))
		}
		return true
	})

	return functions
}

// extractFunction pulls name, span, parameter count and doc flag from a
// declaration node.
func extractFunction(node *sitter.Node, source []byte) FunctionNode {
	fn := FunctionNode{
		StartLine: node.StartPoint().Row + 1,
		EndLine:   node.EndPoint().Row + 1,
	}

	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		fn.Name = GetNodeText(nameNode, source)
	}
	fn.Parameters = countParameters(node, source)
	fn.HasDoc = hasDocComment(node)
	fn.Body = node.ChildByFieldName("body")

	return fn
}

// countParameters counts declared parameter names. A declaration like
// "a, b int" contributes two.
func countParameters(node *sitter.Node, source []byte) int {
	params := node.ChildByFieldName("parameters")
	if params == nil {
		return 0
	}

	count := 0
	for i := range int(params.NamedChildCount()) {
		decl := params.NamedChild(i)
		if decl.Type() != "parameter_declaration" && decl.Type() != "variadic_parameter_declaration" {
			continue
		}
		names := 0
		for j := range int(decl.NamedChildCount()) {
			if decl.NamedChild(j).Type() == "identifier" {
				names++
			}
		}
		if names == 0 {
			// Unnamed parameter, type only
			names = 1
		}
		count += names
	}
	return count
}

// hasDocComment reports whether a comment ends on the line directly above
// the declaration.
func hasDocComment(node *sitter.Node) bool {
	prev := node.PrevNamedSibling()
	if prev == nil || prev.Type() != "comment" {
		return false
	}
	return prev.EndPoint().Row+1 == node.StartPoint().Row
}
