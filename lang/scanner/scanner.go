// Package scanner tokenizes source files for lang/parser to consume. It
// implements the indentation-sensitive tokenization the target language
// requires: logical lines are terminated by a synthesized NEWLINE token
// (suppressed inside brackets), and a change in leading whitespace between
// logical lines is synthesized as INDENT/DEDENT tokens, the same way the
// reference interpreter's own tokenizer behaves.
package scanner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cbellis/pyrint/lang/token"
)

// TokenAndValue combines the token type with the token value type in the
// same struct.
type TokenAndValue struct {
	Token token.Token
	Value token.Value
}

// ScanFiles tokenizes the source files and returns the list of tokens,
// grouped by the file at the same index, and produces any error encountered.
func ScanFiles(files ...string) (*token.FileSet, [][]TokenAndValue, error) {
	if len(files) == 0 {
		return nil, nil, nil
	}

	var (
		s      Scanner
		tokVal token.Value
		el     ErrorList
	)

	fs := token.NewFileSet()
	tokensByFile := make([][]TokenAndValue, len(files))
	for i, file := range files {
		b, err := os.ReadFile(file)
		if err != nil {
			el.Add(token.Position{Filename: file}, err.Error())
			continue
		}

		f := fs.AddFile(file, len(b))
		s.Init(f, b, el.Add)
		for {
			tok := s.Scan(&tokVal)
			tokensByFile[i] = append(tokensByFile[i], TokenAndValue{Token: tok, Value: tokVal})
			if tok == token.EOF {
				break
			}
		}
	}
	el.Sort()
	return fs, tokensByFile, el.Err()
}

// Scanner tokenizes a single source file.
type Scanner struct {
	file *token.File
	src  []byte
	err  func(pos token.Position, msg string)

	cur rune // current character, -1 at EOF
	off int  // byte offset of cur
	roff int // byte offset right after cur

	parenDepth  int
	atLineStart bool
	pending     []TokenAndValue
	indents     []int // indentation stack, indents[0] == 0
	sawAnyToken bool   // whether a real (non-NEWLINE/INDENT/DEDENT) token has been emitted yet
}

// Init initializes the scanner to tokenize a new file.
func (s *Scanner) Init(file *token.File, src []byte, errHandler func(token.Position, string)) {
	s.file = file
	s.src = src
	s.err = errHandler
	s.cur = ' '
	s.off = 0
	s.roff = 0
	s.parenDepth = 0
	s.atLineStart = true
	s.pending = nil
	s.indents = []int{0}
	s.sawAnyToken = false
	s.advance()
}

func (s *Scanner) advance() {
	if s.cur == '\n' {
		s.file.AddLine(s.roff)
	}
	if s.roff >= len(s.src) {
		s.off = len(s.src)
		s.cur = -1
		return
	}
	s.off = s.roff
	r, w := rune(s.src[s.roff]), 1
	if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRune(s.src[s.roff:])
		if r == utf8.RuneError && w == 1 {
			s.error(s.off, "illegal UTF-8 encoding")
		}
	}
	s.roff += w
	s.cur = r
}

func (s *Scanner) peekByte() byte {
	if s.roff < len(s.src) {
		return s.src[s.roff]
	}
	return 0
}

func (s *Scanner) error(off int, msg string) {
	if s.err != nil {
		s.err(s.file.Position(s.file.Pos(off)), msg)
	}
}

func (s *Scanner) errorf(off int, format string, args ...any) {
	s.error(off, fmt.Sprintf(format, args...))
}

func (s *Scanner) advanceIf(b byte) bool {
	if s.cur == rune(b) {
		s.advance()
		return true
	}
	return false
}

// Scan returns the next token in the source file.
func (s *Scanner) Scan(tokVal *token.Value) token.Token {
	if len(s.pending) > 0 {
		tv := s.pending[0]
		s.pending = s.pending[1:]
		*tokVal = tv.Value
		return tv.Token
	}

	if s.atLineStart && s.parenDepth == 0 {
		if tok, ok := s.scanIndentation(tokVal); ok {
			return tok
		}
	}

	s.skipHorizontalSpace()

	pos := s.file.Pos(s.off)
	start := s.off

	switch cur := s.cur; {
	case isLetter(cur):
		lit := s.ident()
		// string/bytes prefixes: r, b, f, rb, br, etc. followed immediately by a quote.
		if (s.cur == '"' || s.cur == '\'') && isStringPrefix(lit) {
			quote := byte(s.cur)
			s.advance()
			raw, val, isBytes := s.stringLiteral(quote, lit)
			tok := token.STRING
			if isBytes {
				tok = token.BYTES
			}
			*tokVal = token.Value{Raw: lit + raw, Pos: pos, String: val}
			s.sawAnyToken = true
			return tok
		}
		tok := token.IDENT
		if len(lit) > 1 {
			tok = token.LookupKw(lit)
		}
		*tokVal = token.Value{Raw: lit, Pos: pos}
		s.sawAnyToken = true
		return tok

	case isDigit(cur) || (cur == '.' && isDigit(rune(s.peekByte()))):
		tok, lit := s.number()
		*tokVal = token.Value{Raw: lit, Pos: pos}
		if tok == token.INT {
			v, err := strconv.ParseInt(strings.ReplaceAll(lit, "_", ""), 0, 64)
			if err != nil && errors.Is(err, strconv.ErrRange) {
				s.error(start, "integer literal out of range")
			}
			tokVal.Int = v
		} else {
			v, err := strconv.ParseFloat(strings.ReplaceAll(lit, "_", ""), 64)
			if err != nil && errors.Is(err, strconv.ErrRange) {
				s.error(start, "float literal out of range")
			}
			tokVal.Float = v
		}
		s.sawAnyToken = true
		return tok

	case cur == '"' || cur == '\'':
		quote := byte(cur)
		s.advance()
		raw, val, isBytes := s.stringLiteral(quote, "")
		tok := token.STRING
		if isBytes {
			tok = token.BYTES
		}
		*tokVal = token.Value{Raw: raw, Pos: pos, String: val}
		s.sawAnyToken = true
		return tok

	case cur == -1:
		return s.scanEOF(tokVal, pos)
	}

	s.advance() // always make progress
	var tok token.Token
	switch cur := s.src[start]; cur {
	case '(', '[', '{':
		s.parenDepth++
		tok = token.LookupPunct(string(cur))
	case ')', ']', '}':
		if s.parenDepth > 0 {
			s.parenDepth--
		}
		tok = token.LookupPunct(string(cur))
	case ',', ';':
		tok = token.LookupPunct(string(cur))
	case ':':
		tok = token.COLON
	case '~':
		tok = token.TILDE
	case '@':
		tok = token.ATSIGN
	case '+', '%', '^':
		if s.advanceIf('=') {
			tok = token.LookupPunct(string(cur) + "=")
		} else {
			tok = token.LookupPunct(string(cur))
		}
	case '&':
		if s.advanceIf('=') {
			tok = token.AMP_EQ
		} else {
			tok = token.AMP
		}
	case '|':
		if s.advanceIf('=') {
			tok = token.PIPE_EQ
		} else {
			tok = token.PIPE
		}
	case '*':
		if s.advanceIf('*') {
			if s.advanceIf('=') {
				tok = token.STARSTAR_EQ
			} else {
				tok = token.DOUBLESTAR
			}
		} else if s.advanceIf('=') {
			tok = token.STAR_EQ
		} else {
			tok = token.STAR
		}
	case '/':
		if s.advanceIf('/') {
			if s.advanceIf('=') {
				tok = token.SLASHSLASH_EQ
			} else {
				tok = token.SLASHSLASH
			}
		} else if s.advanceIf('=') {
			tok = token.SLASH_EQ
		} else {
			tok = token.SLASH
		}
	case '-':
		if s.advanceIf('>') {
			tok = token.ARROW
		} else if s.advanceIf('=') {
			tok = token.MINUS_EQ
		} else {
			tok = token.MINUS
		}
	case '<':
		if s.advanceIf('<') {
			if s.advanceIf('=') {
				tok = token.LTLT_EQ
			} else {
				tok = token.LTLT
			}
		} else if s.advanceIf('=') {
			tok = token.LE
		} else if s.advanceIf('>') {
			tok = token.NEQ_OLD
		} else {
			tok = token.LT
		}
	case '>':
		if s.advanceIf('>') {
			if s.advanceIf('=') {
				tok = token.GTGT_EQ
			} else {
				tok = token.GTGT
			}
		} else if s.advanceIf('=') {
			tok = token.GE
		} else {
			tok = token.GT
		}
	case '=':
		if s.advanceIf('=') {
			tok = token.EQ
		} else {
			tok = token.ASSIGN
		}
	case '!':
		if s.advanceIf('=') {
			tok = token.NEQ
		} else {
			s.error(start, "illegal character '!'")
			tok = token.ILLEGAL
		}
	case '.':
		tok = token.DOT
	case '\\':
		// explicit line continuation
		if s.cur == '\n' {
			s.advance()
		}
		return s.Scan(tokVal)
	case '\n':
		if s.parenDepth > 0 {
			return s.Scan(tokVal)
		}
		if !s.sawAnyToken {
			// blank/comment-only leading lines produce no NEWLINE token
			s.atLineStart = true
			return s.Scan(tokVal)
		}
		s.atLineStart = true
		s.sawAnyToken = false
		*tokVal = token.Value{Raw: "\\n", Pos: pos}
		return token.NEWLINE
	case '#':
		for s.cur != '\n' && s.cur != -1 {
			s.advance()
		}
		return s.Scan(tokVal)
	case ' ', '\t', '\r':
		return s.Scan(tokVal)
	default:
		s.errorf(start, "illegal character %#U", rune(cur))
		*tokVal = token.Value{Raw: string(cur), Pos: pos}
		return token.ILLEGAL
	}

	*tokVal = token.Value{Raw: tok.String(), Pos: pos}
	s.sawAnyToken = true
	return tok
}

func (s *Scanner) scanEOF(tokVal *token.Value, pos token.Pos) token.Token {
	if s.sawAnyToken {
		s.sawAnyToken = false
		*tokVal = token.Value{Raw: "\\n", Pos: pos}
		return token.NEWLINE
	}
	for len(s.indents) > 1 {
		s.indents = s.indents[:len(s.indents)-1]
		s.pending = append(s.pending, TokenAndValue{Token: token.DEDENT, Value: token.Value{Pos: pos}})
	}
	if len(s.pending) > 0 {
		tv := s.pending[0]
		s.pending = s.pending[1:]
		*tokVal = tv.Value
		return tv.Token
	}
	*tokVal = token.Value{Raw: "", Pos: pos}
	return token.EOF
}

// scanIndentation measures the leading whitespace of a new logical line and
// synthesizes INDENT/DEDENT tokens as needed. It returns ok=false when the
// line is blank or comment-only (no indentation change to report) and the
// regular scan loop should continue.
func (s *Scanner) scanIndentation(tokVal *token.Value) (token.Token, bool) {
	start := s.off
	col := 0
	for {
		switch s.cur {
		case ' ':
			col++
			s.advance()
			continue
		case '\t':
			col += 8 - col%8
			s.advance()
			continue
		}
		break
	}
	pos := s.file.Pos(s.off)

	if s.cur == '\n' || s.cur == '#' || s.cur == -1 {
		// blank or comment-only line: no indentation change, fall through to
		// the normal scan to consume the comment/newline/EOF.
		s.atLineStart = false
		return 0, false
	}

	s.atLineStart = false
	top := s.indents[len(s.indents)-1]
	switch {
	case col > top:
		s.indents = append(s.indents, col)
		*tokVal = token.Value{Raw: "", Pos: pos}
		return token.INDENT, true
	case col < top:
		for len(s.indents) > 1 && s.indents[len(s.indents)-1] > col {
			s.indents = s.indents[:len(s.indents)-1]
			s.pending = append(s.pending, TokenAndValue{Token: token.DEDENT, Value: token.Value{Pos: pos}})
		}
		if s.indents[len(s.indents)-1] != col {
			s.errorf(start, "unindent does not match any outer indentation level")
		}
		tv := s.pending[0]
		s.pending = s.pending[1:]
		*tokVal = tv.Value
		return tv.Token, true
	default:
		return 0, false
	}
}

func (s *Scanner) ident() string {
	start := s.off
	for isLetter(s.cur) || isDigit(s.cur) {
		s.advance()
	}
	return string(s.src[start:s.off])
}

func (s *Scanner) skipHorizontalSpace() {
	for s.cur == ' ' || s.cur == '\t' || s.cur == '\r' {
		s.advance()
	}
}

func isStringPrefix(lit string) bool {
	switch strings.ToLower(lit) {
	case "r", "b", "f", "rb", "br", "rf", "fr", "u":
		return true
	}
	return false
}

func isLetter(rn rune) bool {
	return 'a' <= rn && rn <= 'z' || 'A' <= rn && rn <= 'Z' || rn == '_' ||
		rn >= utf8.RuneSelf && unicode.IsLetter(rn)
}

func isDigit(rn rune) bool {
	return '0' <= rn && rn <= '9'
}

