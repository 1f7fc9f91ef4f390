package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cbellis/pyrint/lang/scanner"
	"github.com/cbellis/pyrint/lang/token"
)

func scanAll(t *testing.T, src string) []token.Token {
	t.Helper()
	fs := token.NewFileSet()
	f := fs.AddFile("test.py", len(src))

	var s scanner.Scanner
	var errs []string
	s.Init(f, []byte(src), func(pos token.Position, msg string) {
		errs = append(errs, msg)
	})

	var toks []token.Token
	var val token.Value
	for {
		tok := s.Scan(&val)
		toks = append(toks, tok)
		if tok == token.EOF {
			break
		}
	}
	require.Empty(t, errs, "unexpected scan errors: %v", errs)
	return toks
}

func TestScanSimpleAssignment(t *testing.T) {
	toks := scanAll(t, "x = 1\n")
	require.Equal(t, []token.Token{token.IDENT, token.ASSIGN, token.INT, token.NEWLINE, token.EOF}, toks)
}

func TestScanIndentation(t *testing.T) {
	src := "def f():\n    x = 1\n    y = 2\nz = 3\n"
	toks := scanAll(t, src)
	require.Equal(t, []token.Token{
		token.DEF, token.IDENT, token.LPAREN, token.RPAREN, token.COLON, token.NEWLINE,
		token.INDENT,
		token.IDENT, token.ASSIGN, token.INT, token.NEWLINE,
		token.IDENT, token.ASSIGN, token.INT, token.NEWLINE,
		token.DEDENT,
		token.IDENT, token.ASSIGN, token.INT, token.NEWLINE,
		token.EOF,
	}, toks)
}

func TestScanNestedIndentationEmitsMultipleDedents(t *testing.T) {
	src := "if a:\n    if b:\n        x = 1\nz = 2\n"
	toks := scanAll(t, src)
	require.Equal(t, []token.Token{
		token.IF, token.IDENT, token.COLON, token.NEWLINE,
		token.INDENT,
		token.IF, token.IDENT, token.COLON, token.NEWLINE,
		token.INDENT,
		token.IDENT, token.ASSIGN, token.INT, token.NEWLINE,
		token.DEDENT, token.DEDENT,
		token.IDENT, token.ASSIGN, token.INT, token.NEWLINE,
		token.EOF,
	}, toks)
}

func TestScanBlankAndCommentLinesDoNotAffectIndentation(t *testing.T) {
	src := "def f():\n    # a comment\n\n    x = 1\n"
	toks := scanAll(t, src)
	require.Equal(t, []token.Token{
		token.DEF, token.IDENT, token.LPAREN, token.RPAREN, token.COLON, token.NEWLINE,
		token.INDENT,
		token.IDENT, token.ASSIGN, token.INT, token.NEWLINE,
		token.DEDENT,
		token.EOF,
	}, toks)
}

func TestScanBracketsSuppressNewline(t *testing.T) {
	src := "x = (1,\n     2)\n"
	toks := scanAll(t, src)
	require.Equal(t, []token.Token{
		token.IDENT, token.ASSIGN, token.LPAREN, token.INT, token.COMMA, token.INT, token.RPAREN,
		token.NEWLINE, token.EOF,
	}, toks)
}

func TestScanKeywordsVsIdentifiers(t *testing.T) {
	toks := scanAll(t, "classy = 1\nclass C:\n    pass\n")
	require.Equal(t, token.IDENT, toks[0], "identifier with keyword prefix must not be misrecognized")
	// "class" at index 4 (after NEWLINE)
	require.Contains(t, toks, token.CLASS)
}

func TestScanString(t *testing.T) {
	fs := token.NewFileSet()
	f := fs.AddFile("t.py", len(`s = "hi\n"` + "\n"))
	var s scanner.Scanner
	s.Init(f, []byte(`s = "hi\n"`+"\n"), nil)
	var val token.Value
	require.Equal(t, token.IDENT, s.Scan(&val))
	require.Equal(t, token.ASSIGN, s.Scan(&val))
	require.Equal(t, token.STRING, s.Scan(&val))
	require.Equal(t, "hi\n", val.String)
}

func TestScanFloatAndInt(t *testing.T) {
	fs := token.NewFileSet()
	src := "1.5e2 0x1F 10\n"
	f := fs.AddFile("t.py", len(src))
	var s scanner.Scanner
	s.Init(f, []byte(src), nil)
	var val token.Value
	require.Equal(t, token.FLOAT, s.Scan(&val))
	require.Equal(t, token.INT, s.Scan(&val))
	require.Equal(t, token.INT, s.Scan(&val))
	require.Equal(t, int64(10), val.Int)
}

func TestScanOperators(t *testing.T) {
	toks := scanAll(t, "a += 1\nb //= 2\nc **= 3\n")
	require.Contains(t, toks, token.PLUS_EQ)
	require.Contains(t, toks, token.SLASHSLASH_EQ)
	require.Contains(t, toks, token.STARSTAR_EQ)
}

func TestScanUnindentMismatchReportsError(t *testing.T) {
	fs := token.NewFileSet()
	src := "if a:\n    x = 1\n  y = 2\n"
	f := fs.AddFile("t.py", len(src))
	var s scanner.Scanner
	var errs []string
	s.Init(f, []byte(src), func(pos token.Position, msg string) { errs = append(errs, msg) })
	var val token.Value
	for {
		tok := s.Scan(&val)
		if tok == token.EOF {
			break
		}
	}
	require.NotEmpty(t, errs)
}
