package lsp

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/cybersorcerer/cmtwidth/internal/logger"
)

// Server represents the LSP server
type Server struct {
	reader  *bufio.Reader
	writer  io.Writer
	writeMu sync.Mutex
	handler Handler

	shutdown bool
}

// Handler interface for handling LSP requests
type Handler interface {
	Initialize(params InitializeParams) (*InitializeResult, error)
	TextDocumentDidOpen(params DidOpenTextDocumentParams) error
	TextDocumentDidChange(params DidChangeTextDocumentParams) error
	TextDocumentDidClose(params DidCloseTextDocumentParams) error
	TextDocumentFormatting(params DocumentFormattingParams) ([]TextEdit, error)
	WorkspaceDidChangeConfiguration(params DidChangeConfigurationParams) error
}

// errExit ends the read loop after the exit notification
var errExit = errors.New("exit")

// NewServer creates a new LSP server
func NewServer(reader io.Reader, writer io.Writer, handler Handler) *Server {
	return &Server{
		reader:  bufio.NewReader(reader),
		writer:  writer,
		handler: handler,
	}
}

// Start serves requests until the client disconnects or sends exit
func (s *Server) Start() error {
	for {
		msg, err := s.readMessage()
		if err != nil {
			if errors.Is(err, io.EOF) {
				logger.Info("Client disconnected")
				return nil
			}
			logger.Error("Error reading message: %v", err)
			return err
		}

		if err := s.handleMessage(msg); err != nil {
			if errors.Is(err, errExit) {
				logger.Info("Received exit notification")
				return nil
			}
			logger.Error("Error handling message: %v", err)
		}
	}
}

// readMessage reads a message from the client
func (s *Server) readMessage() ([]byte, error) {
	contentLength := -1
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return nil, err
		}

		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}

		name, value, ok := strings.Cut(line, ":")
		if !ok || !strings.EqualFold(strings.TrimSpace(name), "Content-Length") {
			continue
		}
		contentLength, err = strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("invalid Content-Length: %w", err)
		}
	}

	if contentLength < 0 {
		return nil, fmt.Errorf("missing Content-Length header")
	}

	content := make([]byte, contentLength)
	if _, err := io.ReadFull(s.reader, content); err != nil {
		return nil, err
	}

	logger.Debug("Received message: %s", string(content))
	return content, nil
}

// handleMessage handles a message from the client
func (s *Server) handleMessage(msg []byte) error {
	var req Request
	if err := json.Unmarshal(msg, &req); err != nil {
		return s.sendError(nil, ParseError, "Parse error")
	}

	if req.IsNotification() {
		return s.handleNotification(&req)
	}
	return s.handleRequest(&req)
}

// handleRequest handles a request from the client
func (s *Server) handleRequest(req *Request) error {
	logger.Debug("Handling request: method=%s, id=%s", req.Method, string(req.ID))

	if s.shutdown && req.Method != "shutdown" {
		return s.sendError(req.ID, InvalidRequest, "Server is shutting down")
	}

	switch req.Method {
	case "initialize":
		var params InitializeParams
		if err := unmarshalParams(req.Params, &params); err != nil {
			return s.sendError(req.ID, InvalidParams, "Invalid params")
		}

		result, err := s.handler.Initialize(params)
		if err != nil {
			return s.sendError(req.ID, InternalError, err.Error())
		}
		return s.sendResponse(req.ID, result)

	case "textDocument/formatting":
		var params DocumentFormattingParams
		if err := unmarshalParams(req.Params, &params); err != nil {
			return s.sendError(req.ID, InvalidParams, "Invalid params")
		}

		edits, err := s.handler.TextDocumentFormatting(params)
		if err != nil {
			return s.sendError(req.ID, InternalError, err.Error())
		}
		if edits == nil {
			edits = []TextEdit{}
		}
		return s.sendResponse(req.ID, edits)

	case "shutdown":
		s.shutdown = true
		return s.sendResponse(req.ID, nil)

	default:
		logger.Debug("Unknown method: %s", req.Method)
		return s.sendError(req.ID, MethodNotFound, "Method not found")
	}
}

// handleNotification handles a notification from the client
func (s *Server) handleNotification(notif *Request) error {
	logger.Debug("Handling notification: %s", notif.Method)

	switch notif.Method {
	case "textDocument/didOpen":
		var params DidOpenTextDocumentParams
		if err := unmarshalParams(notif.Params, &params); err != nil {
			return err
		}
		return s.handler.TextDocumentDidOpen(params)

	case "textDocument/didChange":
		var params DidChangeTextDocumentParams
		if err := unmarshalParams(notif.Params, &params); err != nil {
			return err
		}
		return s.handler.TextDocumentDidChange(params)

	case "textDocument/didClose":
		var params DidCloseTextDocumentParams
		if err := unmarshalParams(notif.Params, &params); err != nil {
			return err
		}
		return s.handler.TextDocumentDidClose(params)

	case "workspace/didChangeConfiguration":
		var params DidChangeConfigurationParams
		if err := unmarshalParams(notif.Params, &params); err != nil {
			return err
		}
		return s.handler.WorkspaceDidChangeConfiguration(params)

	case "exit":
		return errExit

	case "initialized":
		return nil

	default:
		logger.Debug("Unhandled notification: %s", notif.Method)
		return nil
	}
}

func unmarshalParams(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, v)
}

// sendResponse sends a response to the client
func (s *Server) sendResponse(id json.RawMessage, result any) error {
	return s.writeMessage(NewResponse(id, result))
}

// sendError sends an error response to the client
func (s *Server) sendError(id json.RawMessage, code int, message string) error {
	return s.writeMessage(NewErrorResponse(id, code, message))
}

// SendNotification sends a notification to the client
func (s *Server) SendNotification(method string, params any) error {
	return s.writeMessage(NewNotification(method, params))
}

// writeMessage writes a message to the client
func (s *Server) writeMessage(msg any) error {
	data, err := EncodeMessage(msg)
	if err != nil {
		return err
	}

	logger.Debug("Sending message: %s", string(data))
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_, err = s.writer.Write(data)
	return err
}
