//go:build treesitter && cgo

package treesitter

import (
	"sort"
	"strings"
	"unsafe"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"funcfold/internal/core/fold"
)

// parse runs one grammar over src and hands the root to visit.
func parse(src []byte, langPtr unsafe.Pointer, visit func(root *tree_sitter.Node)) error {
	parser := tree_sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(tree_sitter.NewLanguage(langPtr)); err != nil {
		return err
	}

	tree := parser.Parse(src, nil)
	defer tree.Close()

	if root := tree.RootNode(); root != nil {
		visit(root)
	}
	return nil
}

func walkNamed(n *tree_sitter.Node, fn func(n *tree_sitter.Node)) {
	if n == nil {
		return
	}
	fn(n)
	for i := uint(0); i < n.NamedChildCount(); i++ {
		walkNamed(n.NamedChild(i), fn)
	}
}

// nodeRows returns 0-based first and last rows. A node ending at column 0
// ends on the previous row.
func nodeRows(n *tree_sitter.Node) (start, end int) {
	if n == nil {
		return 0, 0
	}
	sp := n.StartPosition()
	ep := n.EndPosition()

	start = int(sp.Row)
	end = int(ep.Row)
	if ep.Column == 0 && end > start {
		end--
	}
	if end < start {
		end = start
	}
	return start, end
}

func trimNodeText(n *tree_sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}
	return strings.TrimSpace(n.Utf8Text(src))
}

func makeRange(from, to *tree_sitter.Node, kind fold.PatternKind, name string) (fold.FunctionRange, bool) {
	start, _ := nodeRows(from)
	_, end := nodeRows(to)
	if end <= start {
		return fold.FunctionRange{}, false
	}
	return fold.FunctionRange{StartLine: start, EndLine: end, Kind: kind, Name: name}, true
}

func sortRanges(rs []fold.FunctionRange) {
	sort.SliceStable(rs, func(i, j int) bool {
		if rs[i].StartLine != rs[j].StartLine {
			return rs[i].StartLine < rs[j].StartLine
		}
		return rs[i].EndLine > rs[j].EndLine
	})
}
