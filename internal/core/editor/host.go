// Package editor models the host side of function folding: documents,
// editors that can collapse regions, a window that shows messages, and the
// fold-all / unfold-all commands that tie them to the detector.
package editor

import (
	"context"
	"errors"
)

type Document interface {
	URI() string
	LanguageID() string
	Text() string
}

// Editor is an open view of a document that can collapse regions.
type Editor interface {
	Document() Document
	// Fold collapses the region that starts at the given 0-indexed line.
	Fold(ctx context.Context, line int) error
	UnfoldAll(ctx context.Context) error
}

type Window interface {
	// ActiveEditor returns nil when no editor has focus.
	ActiveEditor() Editor
	ShowInformationMessage(msg string)
	ShowErrorMessage(msg string)
}

type FoldingRangeKind string

const KindRegion FoldingRangeKind = "region"

type FoldingRange struct {
	Start int              `json:"start"`
	End   int              `json:"end"`
	Kind  FoldingRangeKind `json:"kind"`
}

type FoldingRangeProvider interface {
	ProvideFoldingRanges(ctx context.Context, doc Document) ([]FoldingRange, error)
}

var ErrNoFoldingRange = errors.New("no folding range")
