package cjs

import (
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

// scanString scans a '...' or "..." literal at the cursor. With capture set
// it returns the decoded value. A raw line break or a fatal escape fails the
// literal; the cursor is left where scanning stopped.
func (s *Scanner) scanString(capture bool) (string, bool) {
	quote := s.cursor.Peek()
	if s.cursor.EOF() || (quote != '\'' && quote != '"') {
		return "", false
	}
	s.cursor.Bump()

	var buf []byte
	if capture {
		buf = make([]byte, 0, 16)
	}
	for !s.cursor.EOF() {
		c := s.cursor.Peek()
		switch {
		case c == quote:
			s.cursor.Bump()
			s.expectExpr = false
			return string(buf), true
		case c == '\\':
			out, ok := s.scanEscape(buf)
			if !ok {
				return "", false
			}
			if capture {
				buf = out
			}
		case isBreak(c):
			// незакрытая строка: без диагностики
			return "", false
		default:
			s.cursor.Bump()
			if capture {
				buf = append(buf, c)
			}
		}
	}
	return "", false
}

// scanEscape decodes one escape sequence starting at `\` and appends it to dst.
func (s *Scanner) scanEscape(dst []byte) ([]byte, bool) {
	s.cursor.Bump() // '\'
	if s.cursor.EOF() {
		return dst, false
	}
	pos := s.cursor.Off
	c := s.cursor.Peek()
	switch c {
	case '\\':
		dst = append(dst, '\\')
	case 'n':
		dst = append(dst, '\n')
	case 'r':
		dst = append(dst, '\r')
	case 't':
		dst = append(dst, '\t')
	case 'b':
		dst = append(dst, '\b')
	case 'v':
		dst = append(dst, '\v')
	case 'f':
		dst = append(dst, '\f')
	case '\n':
		// продолжение строки
	case '\r':
		s.cursor.Bump()
		if s.cursor.Eat('\n') {
			return append(dst, '\r', '\n'), true
		}
		return append(dst, '\r'), true
	case '0':
		if isDec(s.cursor.PeekAt(1)) {
			s.errorAt(UnexpectedEscapeCharacter, pos, c, "legacy octal escape sequences are not supported")
			return dst, false
		}
		s.result.Errors = append(s.result.Errors, Error{
			Kind:        UnexpectedEscapeCharacter,
			Pos:         pos,
			Char:        c,
			Message:     `\0 in a string literal is kept as the raw escape`,
			Recoverable: true,
		})
		dst = append(dst, '\\', 0)
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		s.errorAt(UnexpectedEscapeCharacter, pos, c, "legacy octal escape sequences are not supported")
		return dst, false
	case 'u':
		s.cursor.Bump()
		return s.scanUnicodeEscape(dst, pos-1)
	default:
		if c >= utf8.RuneSelf {
			r, sz := s.cursor.PeekRune()
			s.cursor.Advance(sz)
			if r == '\u2028' || r == '\u2029' {
				return dst, true
			}
			return utf8.AppendRune(dst, r), true
		}
		dst = append(dst, c)
	}
	s.cursor.Bump()
	return dst, true
}

// scanUnicodeEscape decodes the part after `\u`. start is the offset of the
// backslash. A high surrogate directly followed by a `\u` low surrogate is
// combined into one scalar.
func (s *Scanner) scanUnicodeEscape(dst []byte, start uint32) ([]byte, bool) {
	cp, ok := s.codePoint()
	if !ok {
		return dst, false
	}
	if cp >= 0xD800 && cp <= 0xDBFF && s.cursor.HasPrefix(`\u`) {
		s.cursor.Advance(2)
		lo, ok := s.codePoint()
		if !ok {
			return dst, false
		}
		if lo >= 0xDC00 && lo <= 0xDFFF {
			cp = utf16.DecodeRune(cp, lo)
		}
	}
	if utf16.IsSurrogate(cp) || cp > unicode.MaxRune {
		s.errorAt(UnexpectedUnicodeEscapeSequence, start, 'u', "unicode escape is not a valid scalar value")
		return dst, false
	}
	return utf8.AppendRune(dst, cp), true
}

// codePoint reads XXXX or {X...} after `\u`. EOF fails without a diagnostic.
func (s *Scanner) codePoint() (rune, bool) {
	var cp rune
	if s.cursor.Eat('{') {
		n := 0
		for !s.cursor.EOF() && isHex(s.cursor.Peek()) {
			if cp <= unicode.MaxRune {
				cp = cp<<4 | hexVal(s.cursor.Peek())
			}
			s.cursor.Bump()
			n++
		}
		if s.cursor.EOF() {
			return 0, false
		}
		if n == 0 || s.cursor.Peek() != '}' {
			s.errorAt(UnexpectedUnicodeEscapeSequence, s.cursor.Off, s.cursor.Peek(), "expected a hex digit or '}' in unicode escape sequence")
			return 0, false
		}
		s.cursor.Bump()
		return cp, true
	}
	for range 4 {
		if s.cursor.EOF() {
			return 0, false
		}
		c := s.cursor.Peek()
		if !isHex(c) {
			s.errorAt(UnexpectedUnicodeEscapeSequence, s.cursor.Off, c, "expected a hex digit in unicode escape sequence")
			return 0, false
		}
		cp = cp<<4 | hexVal(c)
		s.cursor.Bump()
	}
	return cp, true
}
