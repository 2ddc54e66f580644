package cjs

import (
	"errors"
	"fmt"

	"cjslex/internal/source"
)

// Scanner runs one scan over one file.
type Scanner struct {
	file   *source.File
	cursor Cursor
	opts   Options

	stack []bracket
	// pendingParen is set by if/while/for and consumed by the next push.
	pendingParen bool
	// expectExpr decides whether `/` starts a regex or is a division.
	expectExpr bool

	result ParseResult
	done   bool
}

// New prepares a scan of file. Files that failed UTF-8 validation when they
// were added to the FileSet are refused with ErrInvalidUTF8.
func New(file *source.File, opts Options) (*Scanner, error) {
	if file == nil {
		return nil, errors.New("cjs: nil file")
	}
	if !file.ValidUTF8() {
		return nil, fmt.Errorf("%s: %w", file.Path, ErrInvalidUTF8)
	}
	return &Scanner{
		file:       file,
		cursor:     NewCursor(file),
		opts:       opts,
		stack:      make([]bracket, 0, 8),
		expectExpr: true,
	}, nil
}

// Parse scans an in-memory buffer; label only names it in diagnostics.
func Parse(src []byte, label string) (*ParseResult, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(label, src)
	sc, err := New(fs.Get(id), Options{})
	if err != nil {
		return nil, err
	}
	return sc.Scan(), nil
}

// Scan runs the scan to the end of input. It never fails: problems are
// collected in ParseResult.Errors. Repeated calls return the same result.
func (s *Scanner) Scan() *ParseResult {
	if s.done {
		return &s.result
	}
	s.done = true

	s.skipShebang()
	for !s.cursor.EOF() {
		s.step()
	}
	if len(s.stack) > 0 && !s.lastErrorIs(UnexpectedEOF, s.cursor.Off) {
		s.errorAt(UnexpectedEOF, s.cursor.Off, 0, "unexpected end of input, a closing bracket is missing")
	}

	s.report()
	return &s.result
}

// step consumes at least one byte.
func (s *Scanner) step() {
	ch := s.cursor.Peek()
	if ch == ' ' || (ch > 8 && ch < 14) {
		s.cursor.Bump()
		return
	}

	switch {
	case ch == 'e' && s.atWord(kwExports):
		if !s.tryExports(false) {
			s.plain()
		}
	case ch == 'r' && s.atWord(kwRequire):
		if _, ok := s.tryRequire(); !ok {
			s.plain()
		}
	case isKeywordLead(ch) && s.keywordStart():
		switch kind, n := MatchKeyword(s.cursor.Rest()); kind {
		case KeywordExpression:
			s.cursor.Advance(n)
			s.expectExpr = true
		case KeywordParen:
			s.cursor.Advance(n)
			s.pendingParen = true
			s.expectExpr = false
		default:
			s.plain()
		}
	case ch == '\'' || ch == '"':
		s.scanString(false)
	case ch == '`':
		s.scanTemplate(false)
	case ch == 'm' && s.atWord(kwModule):
		if !s.tryModuleExports() {
			s.plain()
		}
	case ch == '/':
		switch next := s.cursor.PeekAt(1); {
		case next == '/' || next == '*':
			s.skipTrivia()
		case s.expectExpr:
			s.scanRegex()
		default:
			// деление
			s.cursor.Bump()
			s.expectExpr = true
		}
	case ch == '(' || ch == '[' || ch == '{':
		s.openBracket(ch)
	case ch == ')' || ch == ']' || ch == '}':
		s.closeBracket()
	case isPunctuator(ch):
		if ch != '.' {
			s.expectExpr = true
		}
		s.cursor.Bump()
	default:
		s.plain()
	}
}

// plain consumes one rune of an identifier, number or other token.
func (s *Scanner) plain() {
	_, size := s.cursor.PeekRune()
	s.cursor.Advance(max(size, 1))
	s.expectExpr = false
}

func (s *Scanner) errorAt(kind ErrorKind, pos uint32, ch byte, msg string) {
	s.result.Errors = append(s.result.Errors, Error{Kind: kind, Pos: pos, Char: ch, Message: msg})
}

func (s *Scanner) lastErrorIs(kind ErrorKind, pos uint32) bool {
	n := len(s.result.Errors)
	return n > 0 && s.result.Errors[n-1].Kind == kind && s.result.Errors[n-1].Pos == pos
}
