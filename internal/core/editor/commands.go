package editor

import (
	"context"
	"fmt"
	"log/slog"

	"funcfold/internal/core/fold"
)

const (
	MsgNoActiveEditor  = "No active editor"
	MsgUnsupportedLang = "Function folding is only supported for JavaScript, TypeScript, and Python files"
	MsgNoFunctions     = "No functions found to fold"
	MsgUnfoldedAll     = "Unfolded all functions"

	errPrefixFolding   = "Error folding functions"
	errPrefixUnfolding = "Error unfolding functions"
)

type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Outcome is what a command showed the user.
type Outcome struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
	Folded  int    `json:"folded"`
}

// Commands implements the fold-all and unfold-all actions. Every failure is
// reported through the window and ends the action; nothing is retried.
type Commands struct {
	window   Window
	provider FoldingRangeProvider
	logger   *slog.Logger
}

func NewCommands(window Window, provider FoldingRangeProvider, logger *slog.Logger) *Commands {
	if provider == nil {
		provider = NewFunctionProvider()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Commands{window: window, provider: provider, logger: logger}
}

func (c *Commands) FoldAll(ctx context.Context) (out Outcome) {
	ed := c.activeEditor()
	if ed == nil {
		return c.info(MsgNoActiveEditor, 0)
	}
	doc := ed.Document()
	if doc == nil {
		return c.info(MsgNoActiveEditor, 0)
	}
	if !fold.Supported(doc.LanguageID()) {
		return c.info(MsgUnsupportedLang, 0)
	}

	defer func() {
		if r := recover(); r != nil {
			out = c.fail(errPrefixFolding, fmt.Errorf("%v", r))
		}
	}()

	ranges, err := c.provider.ProvideFoldingRanges(ctx, doc)
	if err != nil {
		return c.fail(errPrefixFolding, err)
	}
	if len(ranges) == 0 {
		return c.info(MsgNoFunctions, 0)
	}

	for _, r := range ranges {
		if err := ed.Fold(ctx, r.Start); err != nil {
			return c.fail(errPrefixFolding, err)
		}
	}

	c.logger.Debug("folded functions", "uri", doc.URI(), "count", len(ranges))
	return c.info(fmt.Sprintf("Folded %d functions", len(ranges)), len(ranges))
}

// UnfoldAll expands everything in the active editor. It does not consult
// the detector.
func (c *Commands) UnfoldAll(ctx context.Context) (out Outcome) {
	ed := c.activeEditor()
	if ed == nil {
		return c.info(MsgNoActiveEditor, 0)
	}

	defer func() {
		if r := recover(); r != nil {
			out = c.fail(errPrefixUnfolding, fmt.Errorf("%v", r))
		}
	}()

	if err := ed.UnfoldAll(ctx); err != nil {
		return c.fail(errPrefixUnfolding, err)
	}
	return c.info(MsgUnfoldedAll, 0)
}

func (c *Commands) activeEditor() Editor {
	if c == nil || c.window == nil {
		return nil
	}
	return c.window.ActiveEditor()
}

func (c *Commands) info(msg string, folded int) Outcome {
	if c.window != nil {
		c.window.ShowInformationMessage(msg)
	}
	return Outcome{Level: LevelInfo, Message: msg, Folded: folded}
}

func (c *Commands) fail(prefix string, err error) Outcome {
	msg := fmt.Sprintf("%s: %v", prefix, err)
	c.logger.Warn("editor command failed", "error", err)
	if c.window != nil {
		c.window.ShowErrorMessage(msg)
	}
	return Outcome{Level: LevelError, Message: msg}
}
