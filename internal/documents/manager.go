// Package documents tracks the stylesheets and pages an editor has open.
package documents

import (
	"fmt"
	"sort"
	"sync"

	"bennypowers.dev/tokenlint/internal/position"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Manager holds the current snapshot of each open document. Updates swap
// snapshots, so a Document obtained from Get never changes underneath its
// reader.
type Manager struct {
	documents map[string]*Document
	mu        sync.RWMutex
}

// NewManager creates a new document manager
func NewManager() *Manager {
	return &Manager{
		documents: make(map[string]*Document),
	}
}

// Get retrieves a document by URI
func (m *Manager) Get(uri string) *Document {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.documents[uri]
}

// URIs returns the URIs of all open documents, sorted
func (m *Manager) URIs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	uris := make([]string, 0, len(m.documents))
	for uri := range m.documents {
		uris = append(uris, uri)
	}
	sort.Strings(uris)
	return uris
}

// DidOpen records a newly opened document
func (m *Manager) DidOpen(uri, languageID string, version int, content string) *Document {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc := NewDocument(uri, languageID, version, content)
	m.documents[uri] = doc
	return doc
}

// DidClose forgets a document
func (m *Manager) DidClose(uri string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.documents[uri]; !exists {
		return fmt.Errorf("document not found: %s", uri)
	}
	delete(m.documents, uri)
	return nil
}

// DidChange applies changes in order and stores the result as version.
// Events are protocol.TextDocumentContentChangeEvent (a nil Range replaces
// the whole text) or protocol.TextDocumentContentChangeEventWhole.
func (m *Manager) DidChange(uri string, version int, changes []any) (*Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, exists := m.documents[uri]
	if !exists {
		return nil, fmt.Errorf("document not found: %s", uri)
	}
	if version < doc.version {
		return nil, fmt.Errorf("rejected stale update: document version is %d but update version is %d", doc.version, version)
	}

	content := doc.content
	for _, change := range changes {
		var err error
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEvent:
			if c.Range == nil {
				content = c.Text
				continue
			}
			content, err = applyIncrementalChange(content, *c.Range, c.Text)
		case protocol.TextDocumentContentChangeEventWhole:
			content = c.Text
		default:
			err = fmt.Errorf("unexpected change event %T", change)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to apply changes: %w", err)
		}
	}

	next := NewDocument(uri, doc.languageID, version, content)
	m.documents[uri] = next
	return next, nil
}

// applyIncrementalChange replaces the UTF-16 range r of content with text.
// A range may end one line past the last, which appends.
func applyIncrementalChange(content string, r protocol.Range, text string) (string, error) {
	index := position.NewIndex(content)
	start, err := offset(index, content, r.Start)
	if err != nil {
		return "", fmt.Errorf("start: %w", err)
	}
	end, err := offset(index, content, r.End)
	if err != nil {
		return "", fmt.Errorf("end: %w", err)
	}
	if end < start {
		return "", fmt.Errorf("range end %d:%d precedes start %d:%d", r.End.Line, r.End.Character, r.Start.Line, r.Start.Character)
	}
	return content[:start] + text + content[end:], nil
}

func offset(index *position.Index, content string, p protocol.Position) (int, error) {
	if int(p.Line) == index.Lines() && p.Character == 0 {
		return len(content), nil
	}
	return index.Offset(p.Line, p.Character)
}
