// Package diag defines the diagnostic value type emitted by lang/check and
// the collector that sorts, dedupes, and renders them, exactly the role
// go/scanner.ErrorList plays for the Go compiler's own diagnostics.
package diag

import (
	"fmt"
	"sort"

	"github.com/cbellis/pyrint/lang/token"
)

// Severity classifies a Diagnostic. The checker registry only ever produces
// SeverityError today; the field exists so a future rule-configuration layer
// can downgrade individual codes without changing the wire format.
type Severity string

const (
	SeverityError      Severity = "error"
	SeverityWarning    Severity = "warning"
	SeverityConvention Severity = "convention"
	SeverityRefactor   Severity = "refactor"
)

// SeverityForCode derives the severity from a code's leading letter: E is an
// error, W a warning, C a convention, R a refactor suggestion.
func SeverityForCode(code string) Severity {
	if code == "" {
		return SeverityError
	}
	switch code[0] {
	case 'W':
		return SeverityWarning
	case 'C':
		return SeverityConvention
	case 'R':
		return SeverityRefactor
	default:
		return SeverityError
	}
}

// Diagnostic is one reported issue.
type Diagnostic struct {
	Code     string
	Symbol   string
	Message  string
	Severity Severity
	Pos      token.Position
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d: %s: %s (%s)", d.Pos.Filename, d.Pos.Line, d.Pos.Column, d.Code, d.Message, d.Symbol)
}

// key identifies a diagnostic for dedup purposes: (code, position). The
// collector intentionally does not dedupe by position alone, since more
// than one code can legitimately fire at the same (file, line, column) -
// E0103 and E0116 both firing on one bare "continue" outside a loop is the
// documented example.
type key struct {
	code string
	pos  token.Position
}

// Collector accumulates diagnostics from every rule during one traversal and
// produces the final, stably-sorted, deduped list.
type Collector struct {
	diags []Diagnostic
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add appends one diagnostic. An empty Severity is derived from the code
// prefix via SeverityForCode.
func (c *Collector) Add(d Diagnostic) {
	if d.Severity == "" {
		d.Severity = SeverityForCode(d.Code)
	}
	c.diags = append(c.diags, d)
}

// Addf is a convenience wrapper around Add that formats Message.
func (c *Collector) Addf(code, symbol string, pos token.Position, format string, args ...any) {
	c.Add(Diagnostic{Code: code, Symbol: symbol, Message: fmt.Sprintf(format, args...), Pos: pos})
}

// Finalize sorts the collected diagnostics by (file, line, column, code) and
// drops exact (code, position) duplicates, returning the final slice. The
// Collector itself is left unchanged so tests can inspect the raw, unsorted
// emission order if they need to.
func (c *Collector) Finalize() []Diagnostic {
	out := make([]Diagnostic, len(c.diags))
	copy(out, c.diags)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Pos.Filename != b.Pos.Filename {
			return a.Pos.Filename < b.Pos.Filename
		}
		if a.Pos.Line != b.Pos.Line {
			return a.Pos.Line < b.Pos.Line
		}
		if a.Pos.Column != b.Pos.Column {
			return a.Pos.Column < b.Pos.Column
		}
		return a.Code < b.Code
	})

	seen := make(map[key]bool, len(out))
	deduped := out[:0]
	for _, d := range out {
		k := key{code: d.Code, pos: d.Pos}
		if seen[k] {
			continue
		}
		seen[k] = true
		deduped = append(deduped, d)
	}
	return deduped
}

// Len reports how many diagnostics have been added so far (pre-Finalize).
func (c *Collector) Len() int { return len(c.diags) }
