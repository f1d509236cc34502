package lsp

import (
	"fmt"
	"hash/maphash"

	"bennypowers.dev/tokenlint/internal/log"
	"bennypowers.dev/tokenlint/internal/position"
	"bennypowers.dev/tokenlint/internal/source"
	"bennypowers.dev/tokenlint/internal/tokens"
	"bennypowers.dev/tokenlint/internal/validator"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Diagnostics validates the open document at uri. Documents that are not
// CSS or HTML, or that declare no root tokens, have none. Results are
// cached per document content and configuration.
func (s *Server) Diagnostics(uri string) ([]protocol.Diagnostic, error) {
	doc := s.documents.Get(uri)
	if doc == nil {
		return []protocol.Diagnostic{}, nil
	}

	cfg, v, generation := s.validation()
	key := docKey{
		uri:        uri,
		version:    doc.Version(),
		content:    maphash.String(s.hashSeed, doc.Content()),
		generation: generation,
	}
	if cached, ok := s.reports.Get(key); ok {
		return cached, nil
	}

	kind, ok := source.KindForLanguage(doc.LanguageID())
	if !ok {
		return []protocol.Diagnostic{}, nil
	}

	set, err := source.Parse([]byte(doc.Content()), kind, uri, cfg.SourceOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to read tokens from %s: %w", uri, err)
	}

	diagnostics := []protocol.Diagnostic{}
	if set.Len() > 0 {
		report := v.Validate(set)
		diagnostics = toDiagnostics(report, set)
	}

	log.Debug("%d diagnostics for %s (version %d)", len(diagnostics), uri, doc.Version())
	s.reports.Add(key, diagnostics)
	return diagnostics, nil
}

// toDiagnostics places each failure on the declaration of its token, or at
// the start of the document when the token is not declared there
func toDiagnostics(report *validator.Report, set *tokens.Set) []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, 0, len(report.Failures))
	for _, f := range report.Failures {
		var r protocol.Range
		if tok := set.Get(f.Token); tok != nil {
			r = protocol.Range{
				Start: protocol.Position{Line: tok.Line, Character: tok.Character},
				End: protocol.Position{
					Line:      tok.Line,
					Character: tok.Character + uint32(position.UTF16Len(tok.CSSVariableName())),
				},
			}
		}

		severity := severityOf(f.Rule)
		src := Name
		out = append(out, protocol.Diagnostic{
			Range:    r,
			Severity: &severity,
			Source:   &src,
			Message:  fmt.Sprintf("%s: %s", f.Rule, f.Detail),
		})
	}
	return out
}

// severityOf reports missing tokens as warnings and broken ones as errors
func severityOf(rule validator.FailureRule) protocol.DiagnosticSeverity {
	switch rule {
	case validator.RuleMissingSubcategory, validator.RuleKeyAbsent:
		return protocol.DiagnosticSeverityWarning
	default:
		return protocol.DiagnosticSeverityError
	}
}

// publishDiagnostics pushes the diagnostics of uri unless the client pulls
func (s *Server) publishDiagnostics(ctx *glsp.Context, uri string) error {
	if s.UsePullDiagnostics() {
		return nil
	}
	diagnostics, err := s.Diagnostics(uri)
	if err != nil {
		return err
	}
	return s.notifyDiagnostics(ctx, uri, diagnostics)
}

func (s *Server) notifyDiagnostics(ctx *glsp.Context, uri string, diagnostics []protocol.Diagnostic) error {
	if ctx == nil || ctx.Notify == nil {
		ctx = s.GLSPContext()
	}
	if ctx == nil || ctx.Notify == nil {
		return fmt.Errorf("cannot publish diagnostics: no client context available")
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
	return nil
}

func documentDiagnostic(s *Server, _ *glsp.Context, params *DocumentDiagnosticParams) (any, error) {
	diagnostics, err := s.Diagnostics(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	return FullDocumentDiagnosticReport{
		Kind:  "full",
		Items: diagnostics,
	}, nil
}
