package scanner

import "github.com/cbellis/pyrint/lang/token"

// number scans an integer or floating-point literal, returning the token
// kind and its exact source text (including any '_' digit separators,
// which the caller strips before parsing).
func (s *Scanner) number() (token.Token, string) {
	start := s.off

	if s.cur == '0' && (s.peekLower() == 'x' || s.peekLower() == 'o' || s.peekLower() == 'b') {
		s.advance()
		s.advance()
		for isHexDigit(s.cur) || s.cur == '_' {
			s.advance()
		}
		return token.INT, string(s.src[start:s.off])
	}

	isFloat := false
	for isDigit(s.cur) || s.cur == '_' {
		s.advance()
	}
	if s.cur == '.' {
		isFloat = true
		s.advance()
		for isDigit(s.cur) || s.cur == '_' {
			s.advance()
		}
	}
	if s.cur == 'e' || s.cur == 'E' {
		save := s.off
		s.advance()
		if s.cur == '+' || s.cur == '-' {
			s.advance()
		}
		if isDigit(s.cur) {
			isFloat = true
			for isDigit(s.cur) {
				s.advance()
			}
		} else {
			// not an exponent after all; rewind is unnecessary since 'e'/sign
			// without digits is invalid here, report and continue.
			s.errorf(save, "malformed exponent in number literal")
		}
	}
	if s.cur == 'j' || s.cur == 'J' {
		// complex literal suffix: treated as a float for E-code purposes, the
		// imaginary unit itself is not modeled.
		isFloat = true
		s.advance()
	}

	lit := string(s.src[start:s.off])
	if isFloat {
		return token.FLOAT, lit
	}
	return token.INT, lit
}

func (s *Scanner) peekLower() rune {
	b := s.peekByte()
	if 'A' <= b && b <= 'Z' {
		b += 'a' - 'A'
	}
	return rune(b)
}
