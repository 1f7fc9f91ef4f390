package scanner

import (
	"fmt"
	"io"
	"sort"

	"github.com/cbellis/pyrint/lang/token"
)

// Error is a scan/parse error at a single position, the same role
// go/scanner.Error plays for the Go compiler's own tokenizer, but keyed off
// this module's own token.Position rather than go/token.Position.
type Error struct {
	Pos token.Position
	Msg string
}

func (e Error) Error() string {
	if e.Pos.Filename != "" || e.Pos.IsValid() {
		return e.Pos.String() + ": " + e.Msg
	}
	return e.Msg
}

// ErrorList is a list of *Error, sortable by position, the same role
// go/scanner.ErrorList plays for the Go compiler's own diagnostics.
type ErrorList []*Error

// Add appends an Error with the given position and message.
func (p *ErrorList) Add(pos token.Position, msg string) {
	*p = append(*p, &Error{Pos: pos, Msg: msg})
}

// Reset clears the list.
func (p *ErrorList) Reset() { *p = (*p)[0:0] }

func (p ErrorList) Len() int      { return len(p) }
func (p ErrorList) Swap(i, j int) { p[i], p[j] = p[j], p[i] }

func (p ErrorList) Less(i, j int) bool {
	a, b := p[i].Pos, p[j].Pos
	if a.Filename != b.Filename {
		return a.Filename < b.Filename
	}
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Column < b.Column
}

// Sort sorts the list in place by source position.
func (p ErrorList) Sort() { sort.Sort(p) }

// Error implements the error interface, reporting the first error and a
// count of any remaining ones.
func (p ErrorList) Error() string {
	switch len(p) {
	case 0:
		return "no errors"
	case 1:
		return p[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", p[0], len(p)-1)
}

// Err returns an error equivalent to this error list, or nil if the list is
// empty.
func (p ErrorList) Err() error {
	if len(p) == 0 {
		return nil
	}
	return p
}

// PrintError is a utility function that prints a list of errors to w, one
// error per line, if the err parameter is an ErrorList; otherwise it prints
// the err string.
func PrintError(w io.Writer, err error) {
	if list, ok := err.(ErrorList); ok {
		for _, e := range list {
			fmt.Fprintf(w, "%s\n", e)
		}
		return
	}
	fmt.Fprintf(w, "%s\n", err)
}
