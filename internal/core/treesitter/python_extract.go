//go:build treesitter && cgo

package treesitter

import (
	"unsafe"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"funcfold/internal/core/fold"
)

func pythonRanges(src []byte, langPtr unsafe.Pointer) ([]fold.FunctionRange, error) {
	var out []fold.FunctionRange
	err := parse(src, langPtr, func(root *tree_sitter.Node) {
		walkNamed(root, func(n *tree_sitter.Node) {
			if n.Kind() != "function_definition" {
				return
			}
			// Decorators belong to the function they wrap.
			from := n
			if p := n.Parent(); p != nil && p.Kind() == "decorated_definition" {
				from = p
			}

			kind := fold.KindPythonDef
			if first := n.Child(0); first != nil && first.Kind() == "async" {
				kind = fold.KindPythonAsyncDef
			}
			if r, ok := makeRange(from, n, kind, trimNodeText(n.ChildByFieldName("name"), src)); ok {
				out = append(out, r)
			}
		})
	})
	if err != nil {
		return nil, err
	}
	sortRanges(out)
	return out, nil
}
