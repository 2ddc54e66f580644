package cjs

// skipTrivia skips whitespace, line breaks and comments. An unterminated
// block comment runs to EOF silently.
func (s *Scanner) skipTrivia() {
	for !s.cursor.EOF() {
		switch s.cursor.Peek() {
		case '\t', '\v', '\f', ' ', '\r', '\n':
			s.cursor.Bump()
		case '/':
			switch s.cursor.PeekAt(1) {
			case '/':
				s.lineComment()
			case '*':
				s.blockComment()
			default:
				return
			}
		default:
			return
		}
	}
}

// //... включая перевод строки
func (s *Scanner) lineComment() {
	for !s.cursor.EOF() {
		if isBreak(s.cursor.Bump()) {
			return
		}
	}
}

// /* ... */ (без вложенности)
func (s *Scanner) blockComment() {
	s.cursor.Advance(2)
	for !s.cursor.EOF() {
		if s.cursor.Peek() == '*' && s.cursor.PeekAt(1) == '/' {
			s.cursor.Advance(2)
			return
		}
		s.cursor.Bump()
	}
}

// skipShebang skips a leading `#!` line including its line break.
func (s *Scanner) skipShebang() {
	if s.cursor.Off != 0 || !s.cursor.HasPrefix("#!") {
		return
	}
	s.lineComment()
}
