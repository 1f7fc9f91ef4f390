package diag

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteText renders diags as one line per diagnostic in the canonical
// "<path>:<line>:<column>: <code>: <message> (<symbol>)" form.
func WriteText(w io.Writer, diags []Diagnostic) error {
	for _, d := range diags {
		if _, err := fmt.Fprintln(w, d.String()); err != nil {
			return err
		}
	}
	return nil
}

// issueJSON is the wire shape of one JSON issue: code, message, file, line,
// column, severity, symbol, in that order.
type issueJSON struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	Symbol   string `json:"symbol"`
}

type reportJSON struct {
	Issues []issueJSON `json:"issues"`
}

// WriteJSON renders diags as a single {"issues": [...]} object.
func WriteJSON(w io.Writer, diags []Diagnostic) error {
	report := reportJSON{Issues: make([]issueJSON, len(diags))}
	for i, d := range diags {
		report.Issues[i] = issueJSON{
			Code:     d.Code,
			Message:  d.Message,
			File:     d.Pos.Filename,
			Line:     d.Pos.Line,
			Column:   d.Pos.Column,
			Severity: string(d.Severity),
			Symbol:   d.Symbol,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
