package foldd

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"

	"funcfold/internal/version"
)

const DefaultListen = "127.0.0.1:7347"

type Options struct {
	Listen       string
	MaxDocuments int
	Logger       *slog.Logger
}

type Server struct {
	opts   Options
	h      *Handlers
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	listener  net.Listener
	closeOnce sync.Once
	closed    chan struct{}
	conns     sync.WaitGroup
}

func NewServer(opts Options) *Server {
	if opts.Listen == "" {
		opts.Listen = DefaultListen
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		opts:   opts,
		h:      NewHandlers(opts.MaxDocuments, logger),
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
		closed: make(chan struct{}),
	}
}

func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run accepts connections until Close. It returns nil after a Close.
func (s *Server) Run() error {
	if s == nil {
		return fmt.Errorf("server is nil")
	}

	ln, err := net.Listen("tcp", s.opts.Listen)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()
	s.logger.Info("listening", "addr", ln.Addr().String())

	for {
		conn, err := ln.Accept()
		if err != nil {
			if s.isClosed() {
				s.conns.Wait()
				return nil
			}
			return err
		}
		s.conns.Add(1)
		go func() {
			defer s.conns.Done()
			s.handleConn(conn)
		}()
	}
}

// Close stops accepting and cancels every in-flight request.
func (s *Server) Close() error {
	if s == nil {
		return nil
	}

	s.closeOnce.Do(func() {
		close(s.closed)
		s.cancel()
	})

	s.mu.Lock()
	ln := s.listener
	s.listener = nil
	s.mu.Unlock()

	if ln == nil {
		return nil
	}
	return ln.Close()
}

func (s *Server) isClosed() bool {
	select {
	case <-s.closed:
		return true
	default:
		return false
	}
}

// inflight tracks cancellable requests of one connection by JSON id.
type inflight struct {
	mu      sync.Mutex
	cancels map[string]context.CancelFunc
}

func newInflight() *inflight {
	return &inflight{cancels: map[string]context.CancelFunc{}}
}

func idKey(id json.RawMessage) string {
	return string(bytes.TrimSpace(id))
}

// track registers a request under its id. It reports false when a request
// with the same id is still running on the connection.
func (f *inflight) track(parent context.Context, id json.RawMessage) (context.Context, func(), bool) {
	key := idKey(id)
	f.mu.Lock()
	if _, busy := f.cancels[key]; busy {
		f.mu.Unlock()
		return nil, nil, false
	}
	ctx, cancel := context.WithCancel(parent)
	f.cancels[key] = cancel
	f.mu.Unlock()
	return ctx, func() {
		f.mu.Lock()
		delete(f.cancels, key)
		f.mu.Unlock()
		cancel()
	}, true
}

// cancel reports whether a request with that id was still running.
func (f *inflight) cancel(id json.RawMessage) bool {
	f.mu.Lock()
	c, ok := f.cancels[idKey(id)]
	f.mu.Unlock()
	if ok {
		c()
	}
	return ok
}

func (s *Server) handleConn(conn net.Conn) {
	ctx, cancel := context.WithCancel(s.ctx)
	var wg sync.WaitGroup
	defer func() {
		cancel()
		wg.Wait()
		_ = conn.Close()
	}()

	// Close unblocks the reader below.
	go func() {
		<-ctx.Done()
		_ = conn.SetReadDeadline(aLongTimeAgo)
	}()

	r := bufio.NewReader(conn)
	out := &lineWriter{w: bufio.NewWriter(conn)}
	reqs := newInflight()

	for {
		line, err := ReadOneLine(r)
		if err != nil {
			return
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			_ = out.write(Response{
				JSONRPC: "2.0",
				ID:      json.RawMessage("null"),
				Error:   &ErrorObject{Code: CodeParseError, Message: "parse error"},
			})
			continue
		}

		if req.Method == MethodCancelRequest {
			var p CancelParams
			if err := json.Unmarshal(req.Params, &p); err == nil && len(p.ID) > 0 {
				if reqs.cancel(p.ID) {
					s.logger.Debug("request cancelled", "id", idKey(p.ID))
				}
			}
			continue
		}

		notification := len(req.ID) == 0
		var reqCtx context.Context
		var done func()
		if notification {
			reqCtx, done = context.WithCancel(ctx)
		} else {
			var ok bool
			reqCtx, done, ok = reqs.track(ctx, req.ID)
			if !ok {
				_ = out.write(Response{
					JSONRPC: "2.0",
					ID:      req.ID,
					Error:   &ErrorObject{Code: CodeInvalidRequest, Message: "request id already in flight"},
				})
				continue
			}
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer done()
			resp := s.dispatch(reqCtx, req)
			if notification {
				return
			}
			if err := out.write(resp); err != nil {
				s.logger.Debug("write response", "error", err)
			}
		}()
	}
}

func decodeParams(req Request, v any) *ErrorObject {
	if len(req.Params) == 0 {
		return nil
	}
	if err := json.Unmarshal(req.Params, v); err != nil {
		return &ErrorObject{Code: CodeInvalidParams, Message: "invalid params"}
	}
	return nil
}

func requireDocumentID(id string) *ErrorObject {
	if strings.TrimSpace(id) == "" {
		return &ErrorObject{Code: CodeInvalidParams, Message: "document_id is required"}
	}
	return nil
}

func (s *Server) dispatch(ctx context.Context, req Request) (resp Response) {
	resp = Response{
		JSONRPC: "2.0",
		ID:      req.ID,
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("handler panic", "method", req.Method, "panic", r)
			resp.Result = nil
			resp.Error = &ErrorObject{Code: CodeHandlerError, Message: fmt.Sprintf("internal error: %v", r)}
		}
	}()

	if req.JSONRPC != "" && req.JSONRPC != "2.0" {
		resp.Error = &ErrorObject{Code: CodeInvalidRequest, Message: "invalid jsonrpc version"}
		return resp
	}

	var (
		result any
		err    error
	)
	switch req.Method {
	case MethodPing:
		result = "pong"
	case MethodVersion:
		result = version.String()
	case MethodDocumentOpen:
		var p DocumentOpenParams
		if e := decodeParams(req, &p); e != nil {
			resp.Error = e
			return resp
		}
		if strings.TrimSpace(p.URI) == "" {
			resp.Error = &ErrorObject{Code: CodeInvalidParams, Message: "uri is required"}
			return resp
		}
		result, err = s.h.DocumentOpen(p)
	case MethodDocumentUpdate:
		var p DocumentUpdateParams
		if e := decodeParams(req, &p); e != nil {
			resp.Error = e
			return resp
		}
		if e := requireDocumentID(p.DocumentID); e != nil {
			resp.Error = e
			return resp
		}
		result, err = s.h.DocumentUpdate(p)
	case MethodDocumentClose, MethodDocumentRender, MethodFoldAll, MethodUnfoldAll:
		var p DocumentParams
		if e := decodeParams(req, &p); e != nil {
			resp.Error = e
			return resp
		}
		if e := requireDocumentID(p.DocumentID); e != nil {
			resp.Error = e
			return resp
		}
		switch req.Method {
		case MethodDocumentClose:
			result, err = s.h.DocumentClose(p)
		case MethodDocumentRender:
			result, err = s.h.DocumentRender(p)
		case MethodFoldAll:
			result, err = s.h.FoldAll(ctx, p)
		default:
			result, err = s.h.UnfoldAll(ctx, p)
		}
	case MethodFoldingRange:
		var p FoldingRangeParams
		if e := decodeParams(req, &p); e != nil {
			resp.Error = e
			return resp
		}
		if strings.TrimSpace(p.DocumentID) == "" && strings.TrimSpace(p.LanguageID) == "" {
			resp.Error = &ErrorObject{Code: CodeInvalidParams, Message: "document_id or language_id is required"}
			return resp
		}
		result, err = s.h.FoldingRange(ctx, p)
	default:
		resp.Error = &ErrorObject{Code: CodeMethodNotFound, Message: "method not found"}
		return resp
	}

	if err != nil {
		resp.Error = &ErrorObject{Code: CodeHandlerError, Message: err.Error()}
		return resp
	}
	resp.Result = result
	return resp
}
