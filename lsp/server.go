// Package lsp serves token consistency diagnostics to editors over the
// Language Server Protocol.
package lsp

import (
	"fmt"
	"hash/maphash"
	"sync"

	"bennypowers.dev/tokenlint/internal/config"
	"bennypowers.dev/tokenlint/internal/documents"
	"bennypowers.dev/tokenlint/internal/log"
	"bennypowers.dev/tokenlint/internal/parser/css"
	"bennypowers.dev/tokenlint/internal/parser/html"
	"bennypowers.dev/tokenlint/internal/validator"
	"bennypowers.dev/tokenlint/internal/version"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

// Name is reported to clients in serverInfo and as the diagnostic source
const Name = "tokenlint"

// reportCacheSize bounds the number of cached document diagnostics
const reportCacheSize = 256

// docKey identifies the content of one document as validated under one
// configuration. Clients may reuse a version number after a close and
// reopen, so the content hash is part of the key.
type docKey struct {
	uri        string
	version    int
	content    uint64
	generation uint64
}

// Server is the tokenlint language server
type Server struct {
	documents  *documents.Manager
	reports    *lru.Cache[docKey, []protocol.Diagnostic]
	hashSeed   maphash.Seed
	glspServer *server.Server

	mu                 sync.RWMutex // protects the fields below
	context            *glsp.Context
	config             config.Config
	validator          *validator.Validator
	generation         uint64 // bumped by every SetConfig
	rootPath           string
	clientSupportsPull *bool
	usePullDiagnostics bool
}

// NewServer creates a server validating with cfg until a workspace
// configuration replaces it
func NewServer(cfg config.Config) (*Server, error) {
	reports, err := lru.New[docKey, []protocol.Diagnostic](reportCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create report cache: %w", err)
	}

	s := &Server{
		documents: documents.NewManager(),
		reports:   reports,
		hashSeed:  maphash.MakeSeed(),
	}
	if err := s.SetConfig(cfg); err != nil {
		return nil, err
	}

	protocolHandler := protocol.Handler{
		Initialize:            method(s, "initialize", initialize),
		Initialized:           notify(s, "initialized", initialized),
		Shutdown:              noParam(s, "shutdown", shutdown),
		SetTrace:              notify(s, "$/setTrace", setTrace),
		TextDocumentDidOpen:   notify(s, "textDocument/didOpen", didOpen),
		TextDocumentDidChange: notify(s, "textDocument/didChange", didChange),
		TextDocumentDidClose:  notify(s, "textDocument/didClose", didClose),
	}
	handler := &CustomHandler{Handler: &protocolHandler, server: s}

	s.glspServer = server.NewServer(handler, Name, false)
	return s, nil
}

// RunStdio serves the protocol on stdin and stdout until the client exits
func (s *Server) RunStdio() error {
	log.Info("Starting %s %s", Name, version.Get().Version)
	return s.glspServer.RunStdio()
}

// Close releases the parser pools. It is safe to call more than once.
func (s *Server) Close() error {
	css.ClosePool()
	html.ClosePool()
	return nil
}

// Config returns the active configuration
func (s *Server) Config() config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// SetConfig replaces the configuration and drops cached diagnostics.
// Diagnostics always check every token of a category so that they do not
// change between edits that leave the tokens alone.
func (s *Server) SetConfig(cfg config.Config) error {
	opts := cfg.ValidatorOptions()
	opts.Exhaustive = true
	if opts.Seed == nil {
		opts.Seed = validator.Seed(0)
	}
	v, err := validator.New(opts)
	if err != nil {
		return fmt.Errorf("failed to configure validator: %w", err)
	}

	s.mu.Lock()
	s.config = cfg
	s.validator = v
	s.generation++
	s.mu.Unlock()

	// entries of earlier generations can no longer be hit
	s.reports.Purge()
	return nil
}

// validation returns the configuration, validator and generation that a
// single Diagnostics call works with
func (s *Server) validation() (config.Config, *validator.Validator, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config, s.validator, s.generation
}

// forget drops the cached diagnostics of every version of uri
func (s *Server) forget(uri string) {
	for _, key := range s.reports.Keys() {
		if key.uri == uri {
			s.reports.Remove(key)
		}
	}
}

// RootPath returns the workspace root path
func (s *Server) RootPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rootPath
}

// SetRootPath sets the workspace root path
func (s *Server) SetRootPath(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rootPath = path
}

// GLSPContext returns the client context saved on initialized
func (s *Server) GLSPContext() *glsp.Context {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.context
}

// SetGLSPContext saves the client context
func (s *Server) SetGLSPContext(ctx *glsp.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.context = ctx
}

// SetClientDiagnosticCapability records whether the client announced pull
// diagnostics in its raw initialize params
func (s *Server) SetClientDiagnosticCapability(supported bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clientSupportsPull = &supported
}

// ClientDiagnosticCapability returns the detected pull capability, or nil
// before initialize
func (s *Server) ClientDiagnosticCapability() *bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clientSupportsPull
}

// UsePullDiagnostics reports whether the client requests diagnostics
// itself rather than receiving them on publish
func (s *Server) UsePullDiagnostics() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.usePullDiagnostics
}

// SetUsePullDiagnostics selects the diagnostics model
func (s *Server) SetUsePullDiagnostics(use bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usePullDiagnostics = use
}
