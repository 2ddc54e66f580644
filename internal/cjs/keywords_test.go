package cjs_test

import (
	"testing"

	"cjslex/internal/cjs"
)

func TestMatchKeyword(t *testing.T) {
	tests := []struct {
		input string
		kind  cjs.KeywordKind
		n     int
	}{
		{"case", cjs.KeywordExpression, 4},
		{"caseButNotKeyword", cjs.KeywordNone, 0},
		{"case with space", cjs.KeywordExpression, 4},
		{"case.but not keyword", cjs.KeywordNone, 0},
		{"delete", cjs.KeywordExpression, 6},
		{"do", cjs.KeywordExpression, 2},
		{"doSomething", cjs.KeywordNone, 0},
		{"do{", cjs.KeywordExpression, 2},
		{"in", cjs.KeywordExpression, 2},
		{"in x", cjs.KeywordExpression, 2},
		{"inx", cjs.KeywordNone, 0},
		{"instanceof", cjs.KeywordExpression, 10},
		{"instanceof(", cjs.KeywordExpression, 10},
		{"new", cjs.KeywordExpression, 3},
		{"return", cjs.KeywordExpression, 6},
		{"throw", cjs.KeywordExpression, 5},
		{"th", cjs.KeywordNone, 0},
		{"typeof x", cjs.KeywordExpression, 6},
		{"void", cjs.KeywordExpression, 4},
		{"yield", cjs.KeywordExpression, 5},
		{"await", cjs.KeywordExpression, 5},
		{"else\n", cjs.KeywordExpression, 4},
		{"if(", cjs.KeywordParen, 2},
		{"while (", cjs.KeywordParen, 5},
		{"for", cjs.KeywordParen, 3},
		{"format", cjs.KeywordNone, 0},
		{"return x", cjs.KeywordExpression, 6},
		{"returnα", cjs.KeywordNone, 0},
		{"", cjs.KeywordNone, 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			kind, n := cjs.MatchKeyword([]byte(tt.input))
			if kind != tt.kind || n != tt.n {
				t.Errorf("MatchKeyword(%q) = %v, %d; want %v, %d", tt.input, kind, n, tt.kind, tt.n)
			}
		})
	}
}
