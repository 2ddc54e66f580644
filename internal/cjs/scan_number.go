package cjs

// scanNumber consumes a number-shaped run: digits, '_', '.', ASCII letters.
// It only has to recognise that a literal sits in an object property slot.
func (s *Scanner) scanNumber() bool {
	if s.cursor.EOF() {
		return false
	}
	if c := s.cursor.Peek(); !isDec(c) && c != '.' {
		return false
	}
	for !s.cursor.EOF() {
		c := s.cursor.Peek()
		if !isDec(c) && !isASCIILetter(c) && c != '_' && c != '.' {
			break
		}
		s.cursor.Bump()
	}
	s.expectExpr = false
	return true
}
