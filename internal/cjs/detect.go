package cjs

const (
	kwExports = "exports"
	kwRequire = "require"
	kwModule  = "module"
)

// checkpoint is the state a speculative detector rolls back to. Exports
// recorded by the object literal enumeration survive a rollback.
type checkpoint struct {
	mark   Mark
	errs   int
	expect bool
}

func (s *Scanner) checkpoint() checkpoint {
	return checkpoint{mark: s.cursor.Mark(), errs: len(s.result.Errors), expect: s.expectExpr}
}

func (s *Scanner) rollback(cp checkpoint) {
	s.cursor.Reset(cp.mark)
	s.result.Errors = s.result.Errors[:cp.errs]
	s.expectExpr = cp.expect
}

// atWord reports whether word starts at the cursor on a keyword boundary.
func (s *Scanner) atWord(word string) bool {
	return s.cursor.HasPrefix(word) && s.keywordStart()
}

// keywordStart: начало файла или граница перед курсором.
func (s *Scanner) keywordStart() bool {
	r, size := s.cursor.LastRune()
	return size == 0 || isBoundaryRune(r)
}

// wordEnds reports whether the identifier ends at the cursor.
func (s *Scanner) wordEnds() bool {
	r, size := s.cursor.PeekRune()
	return size == 0 || !isIdentContinueRune(r)
}

// eatAssign consumes a plain `=`; `==` and `=>` are left alone.
func (s *Scanner) eatAssign() bool {
	if s.cursor.EOF() || s.cursor.Peek() != '=' {
		return false
	}
	if next := s.cursor.PeekAt(1); next == '=' || next == '>' {
		return false
	}
	s.cursor.Bump()
	return true
}

// tryRequire matches require ( 'module' ) and records the import.
func (s *Scanner) tryRequire() (string, bool) {
	cp := s.checkpoint()
	if !s.cursor.HasPrefix(kwRequire) {
		return "", false
	}
	s.cursor.Advance(len(kwRequire))
	s.skipTrivia()
	if !s.cursor.Eat('(') {
		s.rollback(cp)
		return "", false
	}
	s.skipTrivia()
	mod, ok := s.scanString(true)
	if !ok {
		s.rollback(cp)
		return "", false
	}
	s.skipTrivia()
	if !s.cursor.Eat(')') {
		s.rollback(cp)
		return "", false
	}
	s.expectExpr = false
	s.result.Imports = append(s.result.Imports, mod)
	return mod, true
}

// tryExports matches the assignment forms that follow `exports`:
//
//	exports.name =
//	exports['name'] =
//	module.exports = { ... }       (bare set)
//	module.exports = require(...)  (bare set)
//
// `exports = ...` alone does not change what a module exports, so the bare
// forms are only tried after `module.`.
func (s *Scanner) tryExports(bare bool) bool {
	cp := s.checkpoint()
	s.cursor.Advance(len(kwExports))
	if !s.wordEnds() {
		s.rollback(cp)
		return false
	}
	s.skipTrivia()

	switch s.cursor.Peek() {
	case '.':
		s.cursor.Bump()
		s.skipTrivia()
		name, ok := s.identifier()
		if !ok {
			break
		}
		s.skipTrivia()
		if s.eatAssign() {
			s.result.Exports = append(s.result.Exports, name)
			s.expectExpr = true
			return true
		}
	case '[':
		s.cursor.Bump()
		s.skipTrivia()
		key, ok := s.scanString(true)
		if !ok {
			break
		}
		s.skipTrivia()
		if !s.cursor.Eat(']') {
			break
		}
		s.skipTrivia()
		if s.eatAssign() {
			s.result.Exports = append(s.result.Exports, key)
			s.expectExpr = true
			return true
		}
	case '=':
		if !bare || !s.eatAssign() {
			break
		}
		s.expectExpr = true
		s.skipTrivia()
		switch {
		case s.cursor.Peek() == '{':
			s.objectLiteralExports()
			return true
		case s.cursor.HasPrefix(kwRequire):
			if mod, ok := s.tryRequire(); ok {
				s.result.Reexports = []string{mod}
				return true
			}
		}
	}
	s.rollback(cp)
	return false
}

// tryModuleExports matches `module . exports` and continues as tryExports
// with the bare assignment forms enabled.
func (s *Scanner) tryModuleExports() bool {
	cp := s.checkpoint()
	s.cursor.Advance(len(kwModule))
	s.skipTrivia()
	if !s.cursor.Eat('.') {
		s.rollback(cp)
		return false
	}
	s.skipTrivia()
	if !s.cursor.HasPrefix(kwExports) || !s.tryExports(true) {
		s.rollback(cp)
		return false
	}
	return true
}

// objectLiteralExports enumerates the property names of { a, b: x, c: 'y' }.
// Only identifier keys with identifier, string or number values are
// understood. On anything else the cursor goes back to the `{` so the main
// loop scans the object normally; names collected so far are kept.
func (s *Scanner) objectLiteralExports() bool {
	cp := s.checkpoint()
	s.cursor.Bump() // '{'
	for {
		s.skipTrivia()
		if s.cursor.Eat('}') {
			// {} или висячая запятая
			s.expectExpr = false
			return true
		}
		name, ok := s.identifier()
		if !ok {
			s.rollback(cp)
			return false
		}
		s.skipTrivia()
		if s.cursor.Eat(':') {
			s.skipTrivia()
			if !s.propertyValue() {
				s.rollback(cp)
				return false
			}
			s.skipTrivia()
		}
		s.result.Exports = append(s.result.Exports, name)

		switch {
		case s.cursor.Eat(','):
		case s.cursor.Eat('}'):
			s.expectExpr = false
			return true
		default:
			s.rollback(cp)
			return false
		}
	}
}

func (s *Scanner) propertyValue() bool {
	if _, ok := s.identifier(); ok {
		return true
	}
	if c := s.cursor.Peek(); c == '\'' || c == '"' {
		_, ok := s.scanString(false)
		return ok
	}
	return s.scanNumber()
}

// identifier reads an identifier at the cursor. On failure the cursor does
// not move.
func (s *Scanner) identifier() (string, bool) {
	start := s.cursor.Off
	r, size := s.cursor.PeekRune()
	if size == 0 || !isIdentStartRune(r) {
		return "", false
	}
	s.cursor.Advance(size)
	for {
		r, size = s.cursor.PeekRune()
		if size == 0 || !isIdentContinueRune(r) {
			break
		}
		s.cursor.Advance(size)
	}
	s.expectExpr = false
	return string(s.file.Content[start:s.cursor.Off]), true
}
