package jsonrpc

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/chaitanya2108/Google-Workspace/internal/apperrors"
	"github.com/chaitanya2108/Google-Workspace/internal/logging"
	"github.com/chaitanya2108/Google-Workspace/internal/tools"
)

const (
	// ProtocolVersion is the MCP revision announced by initialize.
	ProtocolVersion = "2024-11-05"
	// ServerName is announced as serverInfo.name.
	ServerName = "google-workspace-mcp"
	// DefaultMaxLineSize bounds a single request line.
	DefaultMaxLineSize = 10 << 20

	notificationPrefix = "notifications/"
)

// Dispatcher lists and invokes operations by name.
type Dispatcher interface {
	Tools() []mcp.Tool
	Invoke(ctx context.Context, name string, args map[string]any) (*tools.Result, error)
}

// Server is the line-protocol adapter.
type Server struct {
	dispatcher  Dispatcher
	version     string
	logger      *slog.Logger
	maxLineSize int
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the diagnostics logger. Output must not go to stdout.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMaxLineSize overrides DefaultMaxLineSize.
func WithMaxLineSize(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxLineSize = n
		}
	}
}

// NewServer creates a Server announcing version.
func NewServer(d Dispatcher, version string, opts ...Option) *Server {
	s := &Server{
		dispatcher:  d,
		version:     version,
		logger:      logging.Discard(),
		maxLineSize: DefaultMaxLineSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type line struct {
	data    []byte
	tooLong bool
	err     error
}

// Serve reads requests from r and writes responses to w until r is
// exhausted or ctx is cancelled. Reaching end of input is not an error.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	ctx = tools.WithTransport(ctx, tools.TransportStdio)
	out := bufio.NewWriter(w)

	lines := make(chan line)
	readCtx, stop := context.WithCancel(ctx)
	defer stop()
	go s.readLines(readCtx, r, lines)

	for {
		var l line
		var ok bool
		select {
		case <-ctx.Done():
			return nil
		case l, ok = <-lines:
		}
		if !ok {
			return nil
		}
		if l.err != nil {
			return fmt.Errorf("reading request: %w", l.err)
		}

		var resp []byte
		if l.tooLong {
			s.logger.Warn("request line exceeds limit", slog.Int("limit", s.maxLineSize))
			resp = encode(response{JSONRPC: jsonrpcVersion, Error: parseError(fmt.Sprintf("line exceeds %d bytes", s.maxLineSize))})
		} else {
			resp = s.Handle(ctx, l.data)
		}
		if resp == nil {
			continue
		}
		if _, err := out.Write(append(resp, '\n')); err != nil {
			return fmt.Errorf("writing response: %w", err)
		}
		if err := out.Flush(); err != nil {
			return fmt.Errorf("writing response: %w", err)
		}
	}
}

func (s *Server) readLines(ctx context.Context, r io.Reader, lines chan<- line) {
	defer close(lines)
	br := bufio.NewReaderSize(r, 64<<10)
	for {
		data, tooLong, err := readLine(br, s.maxLineSize)
		if err == io.EOF {
			return
		}
		if err == nil && !tooLong && len(bytes.TrimSpace(data)) == 0 {
			continue
		}
		select {
		case lines <- line{data: data, tooLong: tooLong, err: err}:
		case <-ctx.Done():
			return
		}
		if err != nil {
			return
		}
	}
}

// readLine returns the next line without its terminator. A line longer
// than max is consumed and reported as tooLong without being buffered.
func readLine(br *bufio.Reader, max int) ([]byte, bool, error) {
	var (
		buf     []byte
		size    int
		tooLong bool
	)
	for {
		chunk, err := br.ReadSlice('\n')
		size += len(chunk)
		if !tooLong {
			if size > max+2 {
				tooLong, buf = true, nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		switch {
		case err == bufio.ErrBufferFull:
			continue
		case err == io.EOF:
			if size == 0 {
				return nil, false, io.EOF
			}
		case err != nil:
			return nil, false, err
		}
		if tooLong {
			return nil, true, nil
		}
		buf = bytes.TrimRight(buf, "\r\n")
		if len(buf) > max {
			return nil, true, nil
		}
		return buf, false, nil
	}
}

// Handle processes one request line and returns the encoded response, or
// nil when the request is a notification. Only an id-less message under
// notifications/ is one; with an id it is answered like any other method.
func (s *Server) Handle(ctx context.Context, data []byte) (out []byte) {
	var req request
	if err := json.Unmarshal(data, &req); err != nil {
		s.logger.Warn("unparseable request", logging.Err(err))
		return encode(response{JSONRPC: jsonrpcVersion, Error: parseError(err.Error())})
	}

	if len(req.ID) == 0 && strings.HasPrefix(req.Method, notificationPrefix) {
		s.logger.Debug("notification", slog.String("method", req.Method))
		return nil
	}

	resp := response{JSONRPC: jsonrpcVersion, ID: req.ID}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("request handler panicked",
				slog.String("method", req.Method),
				slog.Any("panic", r))
			resp.Result = nil
			resp.Error = internalError(fmt.Sprintf("Internal error: %v", r))
			out = encode(resp)
		}
	}()

	result, rpcErr := s.dispatch(ctx, req)
	if rpcErr != nil {
		resp.Error = rpcErr
	} else {
		resp.Result = result
	}
	return encode(resp)
}

func (s *Server) dispatch(ctx context.Context, req request) (any, *Error) {
	switch req.Method {
	case "initialize":
		return initializeResult{
			ProtocolVersion: ProtocolVersion,
			Capabilities:    map[string]any{"tools": map[string]any{}},
			ServerInfo:      mcp.Implementation{Name: ServerName, Version: s.version},
		}, nil
	case "tools/list":
		return mcp.ListToolsResult{Tools: s.dispatcher.Tools()}, nil
	case "tools/call":
		return s.call(ctx, req.Params)
	case "ping":
		return map[string]any{}, nil
	default:
		return nil, methodNotFound(req.Method)
	}
}

// call runs tools/call. An unknown tool is a client mistake and gets
// -32602 "Unknown tool: X" rather than the -32603 some servers use, so it
// stays distinct from internal failures. A failing tool is not an RPC
// error: it is a result with isError set.
func (s *Server) call(ctx context.Context, raw json.RawMessage) (any, *Error) {
	var p callParams
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, invalidParams("Invalid params: " + err.Error())
		}
	}
	if p.Name == "" {
		return nil, invalidParams("Missing tool name")
	}
	if p.Arguments == nil {
		p.Arguments = map[string]any{}
	}

	res, err := s.dispatcher.Invoke(ctx, p.Name, p.Arguments)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindProtocol) {
			return nil, invalidParams(err.Error())
		}
		return nil, internalError(err.Error())
	}
	return res.CallToolResult(), nil
}

func encode(resp response) []byte {
	b, err := json.Marshal(resp)
	if err != nil {
		b, _ = json.Marshal(response{
			JSONRPC: jsonrpcVersion,
			ID:      resp.ID,
			Error:   internalError("failed to encode response: " + err.Error()),
		})
	}
	return b
}
