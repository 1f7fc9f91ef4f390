package scanner

import (
	"strconv"
	"strings"
)

// stringLiteral scans the remainder of a string or bytes literal, with the
// opening quote already consumed. prefix is the prefix letters seen before
// the quote, in any case (e.g. "r", "Rb", "f"), used to select raw/bytes
// handling; it does not affect f-string interpolation, which this scanner
// does not parse (the text between braces is kept verbatim, matching how
// checkers only need the literal's decoded text for message formatting).
func (s *Scanner) stringLiteral(quote byte, prefix string) (raw string, decoded string, isBytes bool) {
	start := s.off - 1 // include opening quote
	triple := false
	if s.peekQuote(quote) == quote {
		s.advance()
		s.advance()
		triple = true
	}

	lower := strings.ToLower(prefix)
	isRaw := strings.ContainsAny(lower, "r")
	isBytes = strings.ContainsAny(lower, "b")

	var sb strings.Builder
	for {
		if s.cur == -1 {
			s.error(start, "unterminated string literal")
			break
		}
		if s.cur == '\n' && !triple {
			s.error(start, "unterminated string literal")
			break
		}
		if s.cur == rune(quote) {
			if !triple {
				s.advance()
				break
			}
			s.advance()
			n := 1
			if s.cur == rune(quote) {
				s.advance()
				n++
				if s.cur == rune(quote) {
					s.advance()
					break
				}
			}
			// not a closing triple-quote; treat the quote(s) as literal text.
			sb.WriteString(strings.Repeat(string(quote), n))
			continue
		}
		if s.cur == '\\' && !isRaw {
			s.advance()
			sb.WriteString(s.escape(quote))
			continue
		}
		if s.cur == '\\' && isRaw {
			sb.WriteRune(s.cur)
			s.advance()
			if s.cur != -1 {
				sb.WriteRune(s.cur)
				s.advance()
			}
			continue
		}
		sb.WriteRune(s.cur)
		s.advance()
	}

	raw = string(s.src[start:s.off])
	return raw, sb.String(), isBytes
}

func (s *Scanner) peekQuote(quote byte) byte {
	if s.cur == rune(quote) && s.peekByte() == quote {
		return quote
	}
	return 0
}

// escape decodes a backslash escape sequence, with '\\' already consumed.
func (s *Scanner) escape(quote byte) string {
	off := s.off
	switch s.cur {
	case 'n':
		s.advance()
		return "\n"
	case 't':
		s.advance()
		return "\t"
	case 'r':
		s.advance()
		return "\r"
	case '\\':
		s.advance()
		return "\\"
	case '\'':
		s.advance()
		return "'"
	case '"':
		s.advance()
		return "\""
	case '0':
		s.advance()
		return "\x00"
	case 'a':
		s.advance()
		return "\a"
	case 'b':
		s.advance()
		return "\b"
	case 'f':
		s.advance()
		return "\f"
	case 'v':
		s.advance()
		return "\v"
	case '\n':
		s.advance() // line continuation inside string
		return ""
	case 'x':
		s.advance()
		start := s.off
		for i := 0; i < 2 && isHexDigit(s.cur); i++ {
			s.advance()
		}
		v, err := strconv.ParseUint(string(s.src[start:s.off]), 16, 8)
		if err != nil {
			s.error(off, "invalid \\x escape")
			return ""
		}
		return string(rune(v))
	case 'u':
		s.advance()
		return s.unicodeEscape(4, off)
	case 'U':
		s.advance()
		return s.unicodeEscape(8, off)
	default:
		if s.cur == rune(quote) {
			s.advance()
			return string(quote)
		}
		// unrecognized escape: keep backslash and character literally, matching
		// the reference language's lenient behavior.
		r := s.cur
		s.advance()
		return "\\" + string(r)
	}
}

func (s *Scanner) unicodeEscape(n int, off int) string {
	start := s.off
	for i := 0; i < n && isHexDigit(s.cur); i++ {
		s.advance()
	}
	v, err := strconv.ParseUint(string(s.src[start:s.off]), 16, 32)
	if err != nil {
		s.error(off, "invalid unicode escape")
		return ""
	}
	return string(rune(v))
}

func isHexDigit(r rune) bool {
	return '0' <= r && r <= '9' || 'a' <= r && r <= 'f' || 'A' <= r && r <= 'F'
}
