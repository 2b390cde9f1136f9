package editor

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

type TextDocument struct {
	uri        string
	languageID string
	text       string
}

func NewTextDocument(uri, languageID, text string) *TextDocument {
	return &TextDocument{uri: uri, languageID: languageID, text: text}
}

func (d *TextDocument) URI() string        { return d.uri }
func (d *TextDocument) LanguageID() string { return d.languageID }
func (d *TextDocument) Text() string       { return d.text }

// Buffer is an in-memory Editor. Folding a line collapses the provider
// range that starts on it.
type Buffer struct {
	provider FoldingRangeProvider

	mu     sync.Mutex
	doc    *TextDocument
	folded map[int]FoldingRange
}

func NewBuffer(doc *TextDocument, provider FoldingRangeProvider) *Buffer {
	if provider == nil {
		provider = NewFunctionProvider()
	}
	return &Buffer{
		provider: provider,
		doc:      doc,
		folded:   map[int]FoldingRange{},
	}
}

func (b *Buffer) Document() Document {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.doc == nil {
		return nil
	}
	return b.doc
}

// SetText replaces the content. Existing folds are dropped because their
// lines no longer mean anything.
func (b *Buffer) SetText(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.doc == nil {
		b.doc = NewTextDocument("", "", text)
	} else {
		b.doc = NewTextDocument(b.doc.uri, b.doc.languageID, text)
	}
	b.folded = map[int]FoldingRange{}
}

func (b *Buffer) Fold(ctx context.Context, line int) error {
	doc := b.Document()
	if doc == nil {
		return fmt.Errorf("%w: buffer has no document", ErrNoFoldingRange)
	}

	ranges, err := b.provider.ProvideFoldingRanges(ctx, doc)
	if err != nil {
		return err
	}
	for _, r := range ranges {
		if r.Start != line {
			continue
		}
		b.mu.Lock()
		b.folded[line] = r
		b.mu.Unlock()
		return nil
	}
	return fmt.Errorf("%w at line %d", ErrNoFoldingRange, line)
}

func (b *Buffer) UnfoldAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	b.folded = map[int]FoldingRange{}
	b.mu.Unlock()
	return nil
}

// Folded lists collapsed regions by start line.
func (b *Buffer) Folded() []FoldingRange {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]FoldingRange, 0, len(b.folded))
	for _, r := range b.folded {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// Render returns the text as the editor would show it: a collapsed region
// keeps its first line followed by a marker and hides the rest.
func (b *Buffer) Render() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.doc == nil {
		return ""
	}

	lines := strings.Split(b.doc.text, "\n")
	out := make([]string, 0, len(lines))
	for i := 0; i < len(lines); {
		r, ok := b.folded[i]
		if ok && r.End > i {
			first := strings.TrimSuffix(lines[i], "\r")
			out = append(out, fmt.Sprintf("%s ⋯ %d lines", first, r.End-r.Start))
			i = r.End + 1
			continue
		}
		out = append(out, lines[i])
		i++
	}
	return strings.Join(out, "\n")
}
