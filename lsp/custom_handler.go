package lsp

import (
	"encoding/json"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// CustomHandler adds the LSP 3.17 pull diagnostics request on top of the
// 3.16 protocol.Handler that glsp provides
type CustomHandler struct {
	*protocol.Handler
	server *Server
}

// Handle implements glsp.Handler
func (h *CustomHandler) Handle(ctx *glsp.Context) (r any, validMethod bool, validParams bool, err error) {
	switch ctx.Method {
	case "initialize":
		// the parsed 3.16 params have no diagnostic capability field
		h.server.SetClientDiagnosticCapability(DetectPullDiagnosticsSupport(ctx.Params))

	case "textDocument/diagnostic":
		var params DocumentDiagnosticParams
		if err := json.Unmarshal(ctx.Params, &params); err != nil {
			return nil, true, false, err
		}
		result, err := method(h.server, "textDocument/diagnostic", documentDiagnostic)(ctx, &params)
		if err != nil {
			return nil, true, true, err
		}
		return result, true, true, nil
	}

	return h.Handler.Handle(ctx)
}

// DetectPullDiagnosticsSupport reports whether raw initialize params declare
// capabilities.textDocument.diagnostic
func DetectPullDiagnosticsSupport(rawParams json.RawMessage) bool {
	var initParams struct {
		Capabilities struct {
			TextDocument *struct {
				Diagnostic *json.RawMessage `json:"diagnostic"`
			} `json:"textDocument"`
		} `json:"capabilities"`
	}
	if err := json.Unmarshal(rawParams, &initParams); err != nil {
		return false
	}
	return initParams.Capabilities.TextDocument != nil &&
		initParams.Capabilities.TextDocument.Diagnostic != nil
}

// DocumentDiagnosticParams are the params of textDocument/diagnostic
type DocumentDiagnosticParams struct {
	TextDocument     protocol.TextDocumentIdentifier `json:"textDocument"`
	Identifier       string                          `json:"identifier,omitempty"`
	PreviousResultID string                          `json:"previousResultId,omitempty"`
}

// FullDocumentDiagnosticReport is the "full" textDocument/diagnostic result
type FullDocumentDiagnosticReport struct {
	Kind     string                `json:"kind"`
	ResultID string                `json:"resultId,omitempty"`
	Items    []protocol.Diagnostic `json:"items"`
}

// DiagnosticOptions advertises pull diagnostics
type DiagnosticOptions struct {
	Identifier            string `json:"identifier,omitempty"`
	InterFileDependencies bool   `json:"interFileDependencies"`
	WorkspaceDiagnostics  bool   `json:"workspaceDiagnostics"`
}
