package foldd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"funcfold/internal/core/cache"
	"funcfold/internal/core/editor"
	"funcfold/internal/core/fold"
	"funcfold/internal/core/lang"
)

var ErrDocumentNotFound = errors.New("document not found")

const DefaultMaxDocuments = 256

// session is one open document with its own window, so messages and folds
// never leak between documents.
type session struct {
	buf  *editor.Buffer
	wb   *editor.Workbench
	cmds *editor.Commands
}

type Handlers struct {
	docs     *cache.LRU[string, *session]
	provider *editor.FunctionProvider
	logger   *slog.Logger
}

func NewHandlers(maxDocuments int, logger *slog.Logger) *Handlers {
	if maxDocuments <= 0 {
		maxDocuments = DefaultMaxDocuments
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	h := &Handlers{
		docs:     cache.NewLRU[string, *session](maxDocuments),
		provider: editor.NewFunctionProvider(),
		logger:   logger,
	}
	h.docs.OnEvict = func(id string, s *session) {
		h.logger.Debug("document evicted", "document_id", id, "uri", s.buf.Document().URI())
	}
	return h
}

func (h *Handlers) DocumentOpen(p DocumentOpenParams) (string, error) {
	if h == nil {
		return "", fmt.Errorf("handlers is nil")
	}
	uri := strings.TrimSpace(p.URI)
	if uri == "" {
		return "", fmt.Errorf("uri is required")
	}
	languageID := lang.Normalize(p.LanguageID)
	if languageID == "" {
		languageID = lang.FromPathAndContent(uri, []byte(p.Text))
	}

	s := &session{
		buf: editor.NewBuffer(editor.NewTextDocument(uri, languageID, p.Text), h.provider),
		wb:  editor.NewWorkbench(),
	}
	s.wb.Activate(s.buf)
	s.cmds = editor.NewCommands(s.wb, h.provider, h.logger)

	id := uuid.NewString()
	h.docs.Put(id, s)
	h.logger.Debug("document opened", "document_id", id, "uri", uri, "language_id", languageID)
	return id, nil
}

func (h *Handlers) DocumentUpdate(p DocumentUpdateParams) (bool, error) {
	s, err := h.session(p.DocumentID)
	if err != nil {
		return false, err
	}
	s.buf.SetText(p.Text)
	return true, nil
}

func (h *Handlers) DocumentClose(p DocumentParams) (bool, error) {
	if h == nil {
		return false, fmt.Errorf("handlers is nil")
	}
	if !h.docs.Remove(strings.TrimSpace(p.DocumentID)) {
		return false, ErrDocumentNotFound
	}
	return true, nil
}

func (h *Handlers) DocumentRender(p DocumentParams) (RenderResult, error) {
	s, err := h.session(p.DocumentID)
	if err != nil {
		return RenderResult{}, err
	}
	return RenderResult{Text: s.buf.Render(), Folded: s.buf.Folded()}, nil
}

// FoldingRange returns the detector ranges for an open document or for
// inline text. A cancelled request yields an empty list, not an error.
func (h *Handlers) FoldingRange(ctx context.Context, p FoldingRangeParams) ([]fold.FunctionRange, error) {
	if h == nil {
		return nil, fmt.Errorf("handlers is nil")
	}

	var doc editor.Document
	if strings.TrimSpace(p.DocumentID) != "" {
		s, err := h.session(p.DocumentID)
		if err != nil {
			return nil, err
		}
		doc = s.buf.Document()
	} else {
		doc = editor.NewTextDocument("", lang.Normalize(p.LanguageID), p.Text)
	}

	ranges, err := h.provider.FunctionRanges(ctx, doc)
	if err != nil {
		return nil, err
	}
	if ranges == nil {
		ranges = []fold.FunctionRange{}
	}
	return ranges, nil
}

func (h *Handlers) FoldAll(ctx context.Context, p DocumentParams) (editor.Outcome, error) {
	s, err := h.session(p.DocumentID)
	if err != nil {
		return editor.Outcome{}, err
	}
	return s.cmds.FoldAll(ctx), nil
}

func (h *Handlers) UnfoldAll(ctx context.Context, p DocumentParams) (editor.Outcome, error) {
	s, err := h.session(p.DocumentID)
	if err != nil {
		return editor.Outcome{}, err
	}
	return s.cmds.UnfoldAll(ctx), nil
}

func (h *Handlers) session(id string) (*session, error) {
	if h == nil {
		return nil, fmt.Errorf("handlers is nil")
	}
	s, ok := h.docs.Get(strings.TrimSpace(id))
	if !ok {
		return nil, ErrDocumentNotFound
	}
	return s, nil
}
