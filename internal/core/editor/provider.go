package editor

import (
	"context"

	"funcfold/internal/core/fold"
)

// FunctionProvider serves detector output as region folding ranges.
type FunctionProvider struct{}

func NewFunctionProvider() *FunctionProvider { return &FunctionProvider{} }

func (p *FunctionProvider) ProvideFoldingRanges(ctx context.Context, doc Document) ([]FoldingRange, error) {
	ranges, err := p.FunctionRanges(ctx, doc)
	if err != nil {
		return nil, err
	}
	out := make([]FoldingRange, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, FoldingRange{Start: r.StartLine, End: r.EndLine, Kind: KindRegion})
	}
	return out, nil
}

// FunctionRanges is the detector result with signature metadata intact.
func (p *FunctionProvider) FunctionRanges(ctx context.Context, doc Document) ([]fold.FunctionRange, error) {
	if doc == nil {
		return nil, nil
	}
	return fold.DetectLanguage(ctx, doc.Text(), doc.LanguageID())
}
