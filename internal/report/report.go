// Package report renders validation results for people and for machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"bennypowers.dev/tokenlint/internal/rules"
	"bennypowers.dev/tokenlint/internal/validator"
	"github.com/charmbracelet/lipgloss"
)

// Result is the outcome of checking one input
type Result struct {
	Path   string
	Tokens int
	Report *validator.Report
	// Err is set when the input could not be read or validated
	Err error
}

// Failed reports whether the result carries an error or any failure
func (r Result) Failed() bool {
	return r.Err != nil || r.Report == nil || !r.Report.OK
}

// OK reports whether every result passed
func OK(results []Result) bool {
	for _, r := range results {
		if r.Failed() {
			return false
		}
	}
	return true
}

var (
	colorSuccess = lipgloss.Color("#2CD7C7")
	colorWarning = lipgloss.Color("#F4D03F")
	colorError   = lipgloss.Color("#E74C3C")
	colorMuted   = lipgloss.Color("#6C7A89")
)

// palette holds the styles for one rendering. The plain palette renders
// text unchanged.
type palette struct {
	title   lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	err     lipgloss.Style
	muted   lipgloss.Style
	token   lipgloss.Style
	styled  bool
}

func newPalette(styled bool) palette {
	return palette{
		title:   lipgloss.NewStyle().Bold(true),
		success: lipgloss.NewStyle().Foreground(colorSuccess),
		warning: lipgloss.NewStyle().Foreground(colorWarning),
		err:     lipgloss.NewStyle().Foreground(colorError),
		muted:   lipgloss.NewStyle().Foreground(colorMuted),
		token:   lipgloss.NewStyle().Bold(true),
		styled:  styled,
	}
}

func (p palette) render(s lipgloss.Style, text string) string {
	if !p.styled {
		return text
	}
	return s.Render(text)
}

// Text writes a human readable report. styled enables terminal colors.
func Text(w io.Writer, results []Result, styled bool) error {
	p := newPalette(styled)
	var b strings.Builder

	failures, failedFiles := 0, 0
	for _, r := range results {
		if r.Failed() {
			failedFiles++
		}
		if r.Err != nil {
			fmt.Fprintf(&b, "%s %s: %s\n", p.render(p.err, "✗"), p.render(p.title, r.Path), r.Err)
			continue
		}
		if r.Report == nil {
			continue
		}
		failures += len(r.Report.Failures)

		icon := p.render(p.success, "✓")
		if !r.Report.OK {
			icon = p.render(p.err, "✗")
		}
		fmt.Fprintf(&b, "%s %s %s\n", icon, p.render(p.title, r.Path),
			p.render(p.muted, fmt.Sprintf("(%d tokens, %d checks, seed %d)", r.Tokens, r.Report.Checks, r.Report.Seed)))

		for _, f := range r.Report.Failures {
			fmt.Fprintf(&b, "    %s %s %s: %s%s\n",
				p.render(p.err, "•"),
				p.render(p.muted, f.Category),
				p.render(p.token, f.Token),
				f.Rule,
				p.render(p.muted, " ("+f.Detail+colorHint(f)+")"))
		}
		for _, s := range r.Report.Skipped {
			fmt.Fprintf(&b, "    %s %s\n", p.render(p.warning, "○"),
				p.render(p.muted, fmt.Sprintf("%s skipped: %s", s.Category, s.Reason)))
		}
	}

	summary := fmt.Sprintf("%d files checked, %d failed, %d failures", len(results), failedFiles, failures)
	if failedFiles == 0 {
		b.WriteString(p.render(p.success, summary))
	} else {
		b.WriteString(p.render(p.err, summary))
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// colorHint names the canonical hex of a color value that parses but was
// still rejected
func colorHint(f validator.Failure) string {
	if f.Category != "color" || f.Rule != validator.RuleValue || len(f.Values) == 0 {
		return ""
	}
	if hex, ok := rules.NormalizeColor(f.Values[0]); ok {
		return ", parses as " + hex
	}
	return ""
}

type fileJSON struct {
	Path     string              `json:"path"`
	Tokens   int                 `json:"tokens"`
	OK       bool                `json:"ok"`
	Seed     uint64              `json:"seed"`
	Checks   int                 `json:"checks"`
	Failures []validator.Failure `json:"failures"`
	Skipped  []validator.Skip    `json:"skipped,omitempty"`
	Error    string              `json:"error,omitempty"`
}

type documentJSON struct {
	OK    bool       `json:"ok"`
	Files []fileJSON `json:"files"`
}

// JSON writes the results as one indented JSON document
func JSON(w io.Writer, results []Result) error {
	doc := documentJSON{OK: OK(results), Files: make([]fileJSON, 0, len(results))}
	for _, r := range results {
		f := fileJSON{Path: r.Path, Tokens: r.Tokens, Failures: []validator.Failure{}}
		if r.Err != nil {
			f.Error = r.Err.Error()
		}
		if r.Report != nil {
			f.OK = r.Report.OK && r.Err == nil
			f.Seed = r.Report.Seed
			f.Checks = r.Report.Checks
			f.Failures = r.Report.Failures
			f.Skipped = r.Report.Skipped
		}
		doc.Files = append(doc.Files, f)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
