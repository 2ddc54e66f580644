package cjs

import "unicode/utf8"

// KeywordKind classifies a keyword by the state it leaves the scanner in.
type KeywordKind uint8

const (
	// KeywordNone means no keyword matched.
	KeywordNone KeywordKind = iota
	// KeywordExpression keywords are followed by an expression: `/` after
	// them starts a regular expression.
	KeywordExpression
	// KeywordParen keywords (if, while, for) own the next parenthesis; the
	// byte after its closing `)` starts a statement.
	KeywordParen
)

func (k KeywordKind) String() string {
	switch k {
	case KeywordExpression:
		return "expression"
	case KeywordParen:
		return "paren"
	}
	return "none"
}

type keyword struct {
	text string
	kind KeywordKind
}

// keywordTable is ordered longest first so that instanceof wins over in.
var keywordTable = [...]keyword{
	{"instanceof", KeywordExpression},
	{"typeof", KeywordExpression},
	{"delete", KeywordExpression},
	{"return", KeywordExpression},
	{"await", KeywordExpression},
	{"throw", KeywordExpression},
	{"yield", KeywordExpression},
	{"while", KeywordParen},
	{"case", KeywordExpression},
	{"else", KeywordExpression},
	{"void", KeywordExpression},
	{"new", KeywordExpression},
	{"for", KeywordParen},
	{"do", KeywordExpression},
	{"in", KeywordExpression},
	{"if", KeywordParen},
}

// isKeywordLead is a cheap filter on the first byte of keywordTable entries.
func isKeywordLead(b byte) bool {
	switch b {
	case 'i', 'w', 'f', 'c', 'd', 'e', 'n', 'r', 't', 'v', 'y', 'a':
		return true
	}
	return false
}

// MatchKeyword matches a keyword at the start of b. A match counts only when
// the keyword is followed by a boundary or by the end of b, so `doSomething`
// does not match `do`.
func MatchKeyword(b []byte) (KeywordKind, int) {
	for i := range keywordTable {
		kw := &keywordTable[i]
		n := len(kw.text)
		if len(b) < n || string(b[:n]) != kw.text {
			continue
		}
		if n == len(b) {
			return kw.kind, n
		}
		if r, _ := utf8.DecodeRune(b[n:]); isBoundaryRune(r) {
			return kw.kind, n
		}
	}
	return KeywordNone, 0
}
