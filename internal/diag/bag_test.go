package diag

import (
	"testing"

	"cjslex/internal/source"
)

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	for i := range 3 {
		ok := b.Add(New(SevWarning, LexUnexpectedEscape, source.At(0, uint32(i)), "w"))
		if want := i < 2; ok != want {
			t.Fatalf("Add #%d: got %v, want %v", i, ok, want)
		}
	}
	if b.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", b.Len())
	}
	if b.HasErrors() {
		t.Fatalf("bag must not report errors")
	}
	if !b.HasWarnings() {
		t.Fatalf("bag must report warnings")
	}
}

func TestBagClampsLimit(t *testing.T) {
	if got := NewBag(-5).Cap(); got != 0 {
		t.Fatalf("negative limit: got %d", got)
	}
	if got := NewBag(1 << 20).Cap(); got != 65535 {
		t.Fatalf("oversized limit: got %d", got)
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(10)
	b.Add(New(SevWarning, LexUnexpectedEscape, source.At(1, 4), "b"))
	b.Add(New(SevError, LexUnexpectedEOF, source.At(0, 9), "a"))
	b.Add(New(SevError, LexUnexpectedEOF, source.At(0, 9), "a again"))
	b.Add(New(SevError, LexUnexpectedBracket, source.At(0, 2), "c"))

	b.Sort()
	b.Dedup()

	items := b.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 items after dedup, got %d", len(items))
	}
	wantCodes := []Code{LexUnexpectedBracket, LexUnexpectedEOF, LexUnexpectedEscape}
	for i, want := range wantCodes {
		if items[i].Code != want {
			t.Fatalf("item %d: got %s, want %s", i, items[i].Code.ID(), want.ID())
		}
	}
}

func TestBagMergeGrows(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(LexUnexpectedEOF, source.At(0, 0), "x"))
	other := NewBag(4)
	other.Add(NewError(LexUnexpectedEOF, source.At(0, 1), "y"))
	other.Add(NewError(LexUnexpectedEOF, source.At(0, 2), "z"))

	a.Merge(other)
	if a.Len() != 3 {
		t.Fatalf("expected 3 items after merge, got %d", a.Len())
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(4)
	r := BagReporter{Bag: bag}

	b := ReportError(r, LexIncorrectClosingBracket, source.At(0, 3), "mismatch").
		WithNote(source.At(0, 0), "opened here")
	b.Emit()
	b.Emit()

	if bag.Len() != 1 {
		t.Fatalf("expected single diagnostic, got %d", bag.Len())
	}
	d := bag.Items()[0]
	if d.Severity != SevError || len(d.Notes) != 1 {
		t.Fatalf("unexpected diagnostic: %+v", d)
	}
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		LexUnexpectedEOF: "LEX1001",
		IOInvalidUTF8:    "IO4002",
		ObsTimings:       "OBS6001",
		UnknownCode:      "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Fatalf("%d: got %s, want %s", code, got, want)
		}
	}
}
