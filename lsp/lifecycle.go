package lsp

import (
	"bennypowers.dev/tokenlint/internal/config"
	"bennypowers.dev/tokenlint/internal/log"
	"bennypowers.dev/tokenlint/internal/uriutil"
	"bennypowers.dev/tokenlint/internal/version"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func initialize(s *Server, ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	clientName := "unknown"
	if params.ClientInfo != nil {
		clientName = params.ClientInfo.Name
	}
	log.Info("Initializing for client: %s", clientName)

	supportsPull := false
	if detected := s.ClientDiagnosticCapability(); detected != nil {
		supportsPull = *detected
	}
	s.SetUsePullDiagnostics(supportsPull)

	var root string
	if params.RootURI != nil {
		root, _ = uriutil.ToPath(*params.RootURI)
	} else if params.RootPath != nil {
		root = *params.RootPath
	}
	if root != "" {
		s.SetRootPath(root)
		loadWorkspaceConfig(s, ctx, root)
	}

	syncKind := protocol.TextDocumentSyncKindIncremental
	capabilities := map[string]any{
		"textDocumentSync": protocol.TextDocumentSyncOptions{
			OpenClose: boolPtr(true),
			Change:    &syncKind,
		},
	}
	if supportsPull {
		capabilities["diagnosticProvider"] = DiagnosticOptions{Identifier: Name}
	}

	serverVersion := version.Get().Version
	return struct {
		Capabilities any                                  `json:"capabilities"`
		ServerInfo   *protocol.InitializeResultServerInfo `json:"serverInfo,omitempty"`
	}{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    Name,
			Version: &serverVersion,
		},
	}, nil
}

// loadWorkspaceConfig applies the workspace's tokenlint configuration, if
// any. A broken configuration is reported and the previous one kept.
func loadWorkspaceConfig(s *Server, ctx *glsp.Context, root string) {
	cfg, path, err := config.Discover(root)
	if err != nil {
		logWarning(ctx, "Ignoring workspace configuration: %v", err)
		return
	}
	if path == "" {
		return
	}
	if err := s.SetConfig(cfg); err != nil {
		logWarning(ctx, "Ignoring workspace configuration %s: %v", path, err)
		return
	}
	log.Info("Loaded configuration from %s", path)
}

func initialized(s *Server, ctx *glsp.Context, _ *protocol.InitializedParams) error {
	s.SetGLSPContext(ctx)
	log.Info("Server initialized")
	return nil
}

func shutdown(s *Server, _ *glsp.Context) error {
	log.Info("Server shutting down")
	return s.Close()
}

func setTrace(_ *Server, _ *glsp.Context, params *protocol.SetTraceParams) error {
	log.Debug("Trace level set to: %s", params.Value)
	return nil
}

func boolPtr(b bool) *bool {
	return &b
}
