package cjs

// scanRegex consumes /body/flags. Only called when an expression is expected.
// A line break inside the body reports UnterminatedRegExp at the opening '/'
// and scanning resumes after the break.
func (s *Scanner) scanRegex() {
	start := s.cursor.Off
	s.cursor.Bump() // '/'
	inClass, escaped := false, false
	for !s.cursor.EOF() {
		c := s.cursor.Bump()
		if isBreak(c) {
			s.errorAt(UnterminatedRegExp, start, 0, "regular expression ends with a line break")
			s.expectExpr = false
			return
		}
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			escaped = true
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '/':
			if !inClass {
				s.identifier() // flags
				s.expectExpr = false
				return
			}
		}
	}
	s.expectExpr = false
}
