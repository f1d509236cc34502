package lsp

import (
	"bennypowers.dev/tokenlint/internal/log"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func didOpen(s *Server, ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	doc := params.TextDocument
	log.Debug("Document opened: %s (language: %s, version: %d)", doc.URI, doc.LanguageID, doc.Version)

	s.documents.DidOpen(doc.URI, doc.LanguageID, int(doc.Version), doc.Text)
	s.forget(doc.URI)
	if err := s.publishDiagnostics(ctx, doc.URI); err != nil {
		logWarning(ctx, "Failed to publish diagnostics for %s: %v", doc.URI, err)
	}
	return nil
}

func didChange(s *Server, ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	log.Debug("Document changed: %s (version: %d, changes: %d)", uri, params.TextDocument.Version, len(params.ContentChanges))

	if _, err := s.documents.DidChange(uri, int(params.TextDocument.Version), params.ContentChanges); err != nil {
		return err
	}
	if err := s.publishDiagnostics(ctx, uri); err != nil {
		logWarning(ctx, "Failed to publish diagnostics for %s: %v", uri, err)
	}
	return nil
}

func didClose(s *Server, ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	log.Debug("Document closed: %s", uri)

	if err := s.documents.DidClose(uri); err != nil {
		return err
	}
	s.forget(uri)
	if !s.UsePullDiagnostics() {
		// clear what was published for the closed document
		if err := s.notifyDiagnostics(ctx, uri, []protocol.Diagnostic{}); err != nil {
			log.Debug("Not clearing diagnostics for %s: %v", uri, err)
		}
	}
	return nil
}
