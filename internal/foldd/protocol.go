package foldd

import (
	"encoding/json"

	"funcfold/internal/core/editor"
)

const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeHandlerError   = -32000
)

const (
	MethodPing           = "ping"
	MethodVersion        = "version"
	MethodDocumentOpen   = "document.open"
	MethodDocumentUpdate = "document.update"
	MethodDocumentClose  = "document.close"
	MethodDocumentRender = "document.render"
	MethodFoldingRange   = "textDocument.foldingRange"
	MethodFoldAll        = "fold.all"
	MethodUnfoldAll      = "unfold.all"
	MethodCancelRequest  = "$/cancelRequest"
)

type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  any             `json:"result,omitempty"`
	Error   *ErrorObject    `json:"error,omitempty"`
}

type ErrorObject struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type DocumentOpenParams struct {
	URI        string `json:"uri"`
	LanguageID string `json:"language_id,omitempty"`
	Text       string `json:"text"`
}

type DocumentUpdateParams struct {
	DocumentID string `json:"document_id"`
	Text       string `json:"text"`
}

type DocumentParams struct {
	DocumentID string `json:"document_id"`
}

// FoldingRangeParams names an open document, or carries the text inline.
type FoldingRangeParams struct {
	DocumentID string `json:"document_id,omitempty"`
	LanguageID string `json:"language_id,omitempty"`
	Text       string `json:"text,omitempty"`
}

type CancelParams struct {
	ID json.RawMessage `json:"id"`
}

type RenderResult struct {
	Text   string                `json:"text"`
	Folded []editor.FoldingRange `json:"folded"`
}
