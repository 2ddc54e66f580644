package cjs

import (
	"testing"

	"cjslex/internal/source"
)

// helper function to create a file
func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.js", []byte(content))
	return fs.Get(id)
}

func TestCursorPeekAndBump(t *testing.T) {
	c := NewCursor(createFile("ab"))
	if c.Peek() != 'a' || c.PeekAt(1) != 'b' || c.PeekAt(2) != 0 {
		t.Fatalf("unexpected peeks: %q %q %q", c.Peek(), c.PeekAt(1), c.PeekAt(2))
	}
	if b := c.Bump(); b != 'a' {
		t.Errorf("Expected bump 'a', got %c", b)
	}
	c.Bump()
	if !c.EOF() {
		t.Error("Expected EOF at end")
	}
	if c.Bump() != 0 || c.Off != 2 {
		t.Errorf("Bump past EOF must not move, off=%d", c.Off)
	}
}

func TestCursorAdvanceClamps(t *testing.T) {
	c := NewCursor(createFile("abc"))
	c.Advance(2)
	if c.Off != 2 {
		t.Fatalf("Expected off 2, got %d", c.Off)
	}
	c.Advance(10)
	if c.Off != 3 {
		t.Fatalf("Advance must stop at limit, got %d", c.Off)
	}
}

func TestCursorHasPrefixAndRest(t *testing.T) {
	c := NewCursor(createFile("exports.a"))
	if !c.HasPrefix("exports") {
		t.Error("Expected prefix exports")
	}
	if c.HasPrefix("exports.a.b") {
		t.Error("prefix longer than input must not match")
	}
	c.Advance(7)
	if string(c.Rest()) != ".a" {
		t.Errorf("unexpected rest %q", c.Rest())
	}
}

func TestCursorRunes(t *testing.T) {
	c := NewCursor(createFile("ж1"))
	r, sz := c.PeekRune()
	if r != 'ж' || sz != 2 {
		t.Fatalf("PeekRune: got %q/%d", r, sz)
	}
	if _, sz := c.LastRune(); sz != 0 {
		t.Errorf("LastRune at start must be empty")
	}
	c.Advance(sz)
	if r, _ := c.LastRune(); r != 'ж' {
		t.Errorf("LastRune: got %q", r)
	}
}

func TestCursorMarkReset(t *testing.T) {
	c := NewCursor(createFile("require"))
	m := c.Mark()
	c.Advance(3)
	sp := c.SpanFrom(m)
	if sp.Start != 0 || sp.End != 3 {
		t.Errorf("unexpected span %s", sp)
	}
	c.Reset(m)
	if c.Off != 0 || !c.Eat('r') || c.Eat('r') {
		t.Errorf("Reset/Eat misbehaved, off=%d", c.Off)
	}
}

func TestBoundaryClassification(t *testing.T) {
	for _, b := range []byte{' ', '\t', '\n', '\r', '\v', '\f', '(', ';', '=', '!', '}', 0xA0} {
		if !isBoundaryByte(b) {
			t.Errorf("%q must be a boundary", b)
		}
	}
	for _, b := range []byte{'.', 'a', '_', '$', '0', '"', '\'', '`', '#', '@', '\\'} {
		if isBoundaryByte(b) {
			t.Errorf("%q must not be a boundary", b)
		}
	}
	if !isBoundaryRune('\u00A0') || isBoundaryRune('à') {
		t.Error("rune boundary check misclassifies non-ASCII input")
	}
}

func TestIdentifierClassification(t *testing.T) {
	for _, r := range []rune{'a', 'Z', '_', '$', 'ж', '漢', 'ǅ', '℮'} {
		if !isIdentStartRune(r) {
			t.Errorf("%q must start an identifier", r)
		}
	}
	for _, r := range []rune{'1', '-', ' ', '\u200C', '\u00B7'} {
		if isIdentStartRune(r) {
			t.Errorf("%q must not start an identifier", r)
		}
	}
	for _, r := range []rune{'1', '\u200C', '\u200D', '\u0301', '\u00B7'} {
		if !isIdentContinueRune(r) {
			t.Errorf("%q must continue an identifier", r)
		}
	}
}
