package diag_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cbellis/pyrint/lang/diag"
	"github.com/cbellis/pyrint/lang/token"
)

func pos(file string, line, col int) token.Position {
	return token.Position{Filename: file, Line: line, Column: col}
}

func TestFinalizeSortsAndDedupes(t *testing.T) {
	c := diag.NewCollector()
	c.Add(diag.Diagnostic{Code: "E0602", Pos: pos("b.py", 1, 1), Message: "m"})
	c.Add(diag.Diagnostic{Code: "E0103", Pos: pos("a.py", 2, 5), Message: "m"})
	c.Add(diag.Diagnostic{Code: "E0103", Pos: pos("a.py", 2, 5), Message: "m"}) // exact dup
	c.Add(diag.Diagnostic{Code: "E0116", Pos: pos("a.py", 2, 5), Message: "m"}) // same pos, different code

	out := c.Finalize()
	require.Len(t, out, 3)
	require.Equal(t, "a.py", out[0].Pos.Filename)
	require.Equal(t, "E0103", out[0].Code)
	require.Equal(t, "E0116", out[1].Code)
	require.Equal(t, "b.py", out[2].Pos.Filename)
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	diags := []diag.Diagnostic{
		{Code: "E0602", Symbol: "y", Message: "undefined name 'y'", Pos: pos("f.py", 3, 8)},
	}
	require.NoError(t, diag.WriteText(&buf, diags))
	require.Equal(t, "f.py:3:8: E0602: undefined name 'y' (y)\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	diags := []diag.Diagnostic{
		{Code: "E0602", Symbol: "y", Severity: diag.SeverityError, Message: "undefined name 'y'", Pos: pos("f.py", 3, 8)},
	}
	require.NoError(t, diag.WriteJSON(&buf, diags))
	require.Contains(t, buf.String(), `"code": "E0602"`)
	require.Contains(t, buf.String(), `"issues"`)
}
