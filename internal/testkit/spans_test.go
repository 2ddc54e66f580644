package testkit

import (
	"testing"

	"cjslex/internal/diag"
	"cjslex/internal/source"
)

func TestCheckDiagnosticSpans(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("a.js", []byte("abc")))
	other := fs.AddVirtual("b.js", []byte("x"))

	span := func(id source.FileID, start, end uint32) source.Span {
		return source.Span{File: id, Start: start, End: end}
	}
	tests := []struct {
		name    string
		span    source.Span
		wantErr bool
	}{
		{"byte", span(file.ID, 1, 2), false},
		{"eof", span(file.ID, 3, 3), false},
		{"start", span(file.ID, 0, 0), false},
		{"other file", span(other, 0, 1), true},
		{"past end", span(file.ID, 2, 4), true},
		{"reversed", span(file.ID, 2, 1), true},
		{"empty inside", span(file.ID, 1, 1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := diag.NewError(diag.LexUnexpectedBracket, tt.span, "x")
			err := CheckDiagnosticSpans([]diag.Diagnostic{d}, file)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	noted := diag.NewError(diag.LexUnexpectedEOF, span(file.ID, 3, 3), "eof").WithNote(span(file.ID, 5, 6), "bad")
	if err := CheckDiagnosticSpans([]diag.Diagnostic{noted}, file); err == nil {
		t.Fatal("note spans must be checked")
	}
}
