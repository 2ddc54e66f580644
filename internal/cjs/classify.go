package cjs

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/rangetable"
)

const (
	nbsp = '\u00A0'
	zwnj = '\u200C'
	zwj  = '\u200D'
)

// ECMAScript ID_Start / ID_Continue.
var (
	idStartTable    = rangetable.Merge(unicode.L, unicode.Nl, unicode.Other_ID_Start)
	idContinueTable = rangetable.Merge(
		idStartTable,
		unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc,
		unicode.Other_ID_Continue,
	)
)

// isPunctuator: !%&[]^ ( ) * + , - . / : ; < = > ? { | } ~
func isPunctuator(b byte) bool {
	switch {
	case b == '!' || b == '%' || b == '&' || b == '[' || b == ']' || b == '^':
		return true
	case b >= 0x28 && b <= 0x2F:
		return true
	case b >= 0x3A && b <= 0x3F:
		return true
	case b >= 0x7B && b <= 0x7E:
		return true
	}
	return false
}

func isBreak(b byte) bool { return b == '\r' || b == '\n' }

// isBoundaryByte reports whether b cannot continue an identifier or keyword.
func isBoundaryByte(b byte) bool {
	return (b > 8 && b < 14) || b == ' ' || b == 0xA0 || (isPunctuator(b) && b != '.')
}

// isBoundaryRune is isBoundaryByte over decoded input: U+00A0 is two bytes
// in UTF-8, so the raw 0xA0 test alone would misfire on continuation bytes.
func isBoundaryRune(r rune) bool {
	if r < utf8.RuneSelf {
		return isBoundaryByte(byte(r))
	}
	return r == nbsp
}

func isIdentStartRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_', r == '$':
		return true
	case r < utf8.RuneSelf:
		return false
	}
	return unicode.Is(idStartTable, r)
}

func isIdentContinueRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '$':
		return true
	case r < utf8.RuneSelf:
		return false
	case r == zwnj, r == zwj:
		return true
	}
	return unicode.Is(idContinueTable, r)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isHex(b byte) bool {
	return (b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'f') ||
		(b >= 'A' && b <= 'F')
}

func hexVal(b byte) rune {
	switch {
	case b >= '0' && b <= '9':
		return rune(b - '0')
	case b >= 'a' && b <= 'f':
		return rune(b-'a') + 10
	default:
		return rune(b-'A') + 10
	}
}
