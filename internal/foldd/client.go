package foldd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"funcfold/internal/core/editor"
	"funcfold/internal/core/fold"
)

type RPCError struct {
	Code    int
	Message string
}

func (e *RPCError) Error() string { return fmt.Sprintf("rpc error (%d): %s", e.Code, e.Message) }

// Client issues one request at a time and waits for its response.
type Client struct {
	mu     sync.Mutex
	conn   net.Conn
	r      *bufio.Reader
	w      *bufio.Writer
	nextID int64
}

func Dial(addr string) (*Client, error) {
	conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
	if err != nil {
		return nil, err
	}
	return &Client{
		conn: conn,
		r:    bufio.NewReader(conn),
		w:    bufio.NewWriter(conn),
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

type rawResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *ErrorObject    `json:"error,omitempty"`
}

func (c *Client) send(req Request, params any) error {
	if params != nil {
		b, err := json.Marshal(params)
		if err != nil {
			return err
		}
		req.Params = b
	}
	if err := WriteOneLine(c.w, req); err != nil {
		return err
	}
	return c.w.Flush()
}

func (c *Client) call(method string, params any, out any) error {
	if c == nil || c.conn == nil {
		return fmt.Errorf("client is nil")
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	id := json.RawMessage(strconv.FormatInt(c.nextID, 10))
	if err := c.send(Request{JSONRPC: "2.0", Method: method, ID: id}, params); err != nil {
		return err
	}

	line, err := ReadOneLine(c.r)
	if err != nil {
		return err
	}
	var resp rawResponse
	if err := json.Unmarshal(line, &resp); err != nil {
		return err
	}
	if resp.Error != nil {
		return &RPCError{Code: resp.Error.Code, Message: resp.Error.Message}
	}
	if out == nil || len(resp.Result) == 0 {
		return nil
	}
	return json.Unmarshal(resp.Result, out)
}

// Notify sends a request without an id; the server never answers it.
func (c *Client) Notify(method string, params any) error {
	if c == nil || c.conn == nil {
		return fmt.Errorf("client is nil")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.send(Request{JSONRPC: "2.0", Method: method}, params)
}

func (c *Client) Ping() error {
	var out string
	if err := c.call(MethodPing, nil, &out); err != nil {
		return err
	}
	if out != "pong" {
		return fmt.Errorf("unexpected ping result: %q", out)
	}
	return nil
}

func (c *Client) Version() (string, error) {
	var out string
	if err := c.call(MethodVersion, nil, &out); err != nil {
		return "", err
	}
	return out, nil
}

func (c *Client) DocumentOpen(p DocumentOpenParams) (string, error) {
	var out string
	if err := c.call(MethodDocumentOpen, p, &out); err != nil {
		return "", err
	}
	return out, nil
}

func (c *Client) DocumentUpdate(documentID, text string) error {
	return c.call(MethodDocumentUpdate, DocumentUpdateParams{DocumentID: documentID, Text: text}, nil)
}

func (c *Client) DocumentClose(documentID string) error {
	return c.call(MethodDocumentClose, DocumentParams{DocumentID: documentID}, nil)
}

func (c *Client) DocumentRender(documentID string) (RenderResult, error) {
	var out RenderResult
	err := c.call(MethodDocumentRender, DocumentParams{DocumentID: documentID}, &out)
	return out, err
}

func (c *Client) FoldingRange(p FoldingRangeParams) ([]fold.FunctionRange, error) {
	var out []fold.FunctionRange
	if err := c.call(MethodFoldingRange, p, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) FoldAll(documentID string) (editor.Outcome, error) {
	var out editor.Outcome
	err := c.call(MethodFoldAll, DocumentParams{DocumentID: documentID}, &out)
	return out, err
}

func (c *Client) UnfoldAll(documentID string) (editor.Outcome, error) {
	var out editor.Outcome
	err := c.call(MethodUnfoldAll, DocumentParams{DocumentID: documentID}, &out)
	return out, err
}

// Cancel asks the server to abandon the request with the given id.
func (c *Client) Cancel(id int64) error {
	return c.Notify(MethodCancelRequest, CancelParams{ID: json.RawMessage(strconv.FormatInt(id, 10))})
}
