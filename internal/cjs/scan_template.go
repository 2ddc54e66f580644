package cjs

// scanTemplate scans a template literal from its opening backtick, or with
// resume set, from right after the `}` that closed an interpolation.
// `${` pushes a template entry and hands control back to the main loop.
func (s *Scanner) scanTemplate(resume bool) {
	if !resume {
		s.cursor.Bump() // '`'
	}
	for !s.cursor.EOF() {
		switch s.cursor.Peek() {
		case '`':
			s.cursor.Bump()
			s.expectExpr = false
			return
		case '\\':
			s.cursor.Advance(2)
		case '$':
			if s.cursor.PeekAt(1) == '{' {
				s.push(bracketTemplate)
				s.cursor.Advance(2)
				s.expectExpr = true
				return
			}
			s.cursor.Bump()
		default:
			s.cursor.Bump()
		}
	}
	s.errorAt(UnexpectedEOF, s.cursor.Off, 0, "unterminated template literal")
}
