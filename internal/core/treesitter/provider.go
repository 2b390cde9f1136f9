//go:build treesitter && cgo

package treesitter

import (
	"strings"

	tree_sitter_js "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_ts "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"funcfold/internal/core/fold"
)

const Enabled = true

// Provider derives function ranges from a real parse tree. The results are
// only used to audit the line heuristics.
type Provider struct{}

func NewProvider() *Provider { return &Provider{} }

func (p *Provider) FunctionRanges(languageID string, src []byte) ([]fold.FunctionRange, error) {
	switch strings.ToLower(strings.TrimSpace(languageID)) {
	case "javascript", "javascriptreact":
		return jstsRanges(src, tree_sitter_js.Language())
	case "typescript":
		return jstsRanges(src, tree_sitter_ts.LanguageTypescript())
	case "typescriptreact":
		return jstsRanges(src, tree_sitter_ts.LanguageTSX())
	case "python":
		return pythonRanges(src, tree_sitter_python.Language())
	default:
		return nil, ErrUnsupported
	}
}
