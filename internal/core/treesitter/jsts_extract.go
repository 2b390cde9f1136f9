//go:build treesitter && cgo

package treesitter

import (
	"unsafe"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"funcfold/internal/core/fold"
)

func jstsRanges(src []byte, langPtr unsafe.Pointer) ([]fold.FunctionRange, error) {
	var out []fold.FunctionRange
	err := parse(src, langPtr, func(root *tree_sitter.Node) {
		walkNamed(root, func(n *tree_sitter.Node) {
			switch n.Kind() {
			case "function_declaration", "generator_function_declaration":
				if r, ok := makeRange(statementStart(n), n, fold.KindFunctionDeclaration, trimNodeText(n.ChildByFieldName("name"), src)); ok {
					out = append(out, r)
				}
			case "method_definition":
				if r, ok := makeRange(n, n, methodKind(n), trimNodeText(n.ChildByFieldName("name"), src)); ok {
					out = append(out, r)
				}
			case "variable_declarator":
				if r, ok := makeBoundFunction(n, src); ok {
					out = append(out, r)
				}
			}
		})
	})
	if err != nil {
		return nil, err
	}
	sortRanges(out)
	return out, nil
}

// makeBoundFunction handles `const f = () => {}` and `const f = function () {}`.
// The range starts on the declaration keyword line.
func makeBoundFunction(decl *tree_sitter.Node, src []byte) (fold.FunctionRange, bool) {
	val := decl.ChildByFieldName("value")
	if val == nil {
		return fold.FunctionRange{}, false
	}

	var kind fold.PatternKind
	switch val.Kind() {
	case "arrow_function":
		kind = fold.KindArrowFunction
		if decl.ChildByFieldName("type") != nil {
			kind = fold.KindTypedArrowFunction
		}
	case "function_expression", "function", "generator_function":
		kind = fold.KindFunctionExpression
	default:
		return fold.FunctionRange{}, false
	}

	from := decl
	if p := decl.Parent(); p != nil {
		from = statementStart(p)
	}
	return makeRange(from, val, kind, trimNodeText(decl.ChildByFieldName("name"), src))
}

// statementStart widens to an enclosing export statement so the range
// starts where the heuristic's signature line does.
func statementStart(n *tree_sitter.Node) *tree_sitter.Node {
	if p := n.Parent(); p != nil && p.Kind() == "export_statement" {
		return p
	}
	return n
}

func methodKind(n *tree_sitter.Node) fold.PatternKind {
	for i := uint(0); i < n.NamedChildCount(); i++ {
		switch n.NamedChild(i).Kind() {
		case "accessibility_modifier", "override_modifier":
			return fold.KindClassMethod
		}
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		switch n.Child(i).Kind() {
		case "static", "readonly", "abstract":
			return fold.KindClassMethod
		}
	}
	return fold.KindMethodShorthand
}
