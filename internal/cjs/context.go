package cjs

import "fmt"

type bracketKind uint8

const (
	bracketParen bracketKind = iota
	// скобка после if/while/for
	bracketKeywordParen
	bracketSquare
	bracketCurly
	// `${` внутри шаблонной строки
	bracketTemplate
)

type bracket struct {
	kind bracketKind
	pos  uint32
}

func (b bracket) closer() byte {
	switch b.kind {
	case bracketParen, bracketKeywordParen:
		return ')'
	case bracketSquare:
		return ']'
	default:
		return '}'
	}
}

// openBracket pushes the entry for `(`, `[` or `{` at the cursor.
func (s *Scanner) openBracket(ch byte) {
	kind := bracketCurly
	switch ch {
	case '(':
		kind = bracketParen
		if s.pendingParen {
			kind = bracketKeywordParen
		}
	case '[':
		kind = bracketSquare
	}
	s.push(kind)
	s.cursor.Bump()
	s.expectExpr = true
}

func (s *Scanner) push(kind bracketKind) {
	s.stack = append(s.stack, bracket{kind: kind, pos: s.cursor.Off})
	s.pendingParen = false
}

// closeBracket pops the stack at `)`, `]` or `}`.
func (s *Scanner) closeBracket() {
	pos := s.cursor.Off
	ch := s.cursor.Bump()
	if len(s.stack) == 0 {
		s.errorAt(UnexpectedBracket, pos, ch, "closing bracket has no matching opening bracket")
		s.expectExpr = false
		return
	}
	top := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	if top.closer() != ch {
		s.errorAt(IncorrectClosingBracket, pos, ch, fmt.Sprintf("expected %q to close the bracket at %d, found %q", top.closer(), top.pos, ch))
		s.expectExpr = false
		return
	}
	switch top.kind {
	case bracketKeywordParen:
		// if (...) /re/
		s.expectExpr = true
	case bracketTemplate:
		s.scanTemplate(true)
	default:
		s.expectExpr = false
	}
}
