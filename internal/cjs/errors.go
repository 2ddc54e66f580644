package cjs

import (
	"errors"
	"fmt"

	"cjslex/internal/diag"
)

// ErrInvalidUTF8 is returned when the source fails UTF-8 validation.
var ErrInvalidUTF8 = errors.New("source is not valid UTF-8")

// ErrorKind tags a scan diagnostic.
type ErrorKind uint8

const (
	UnexpectedEOF ErrorKind = iota + 1
	UnexpectedEscapeCharacter
	UnexpectedUnicodeEscapeSequence
	UnexpectedBracket
	IncorrectClosingBracket
	UnterminatedRegExp
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedEOF:
		return "UnexpectedEOF"
	case UnexpectedEscapeCharacter:
		return "UnexpectedEscapeCharacter"
	case UnexpectedUnicodeEscapeSequence:
		return "UnexpectedUnicodeEscapeSequence"
	case UnexpectedBracket:
		return "UnexpectedBracket"
	case IncorrectClosingBracket:
		return "IncorrectClosingBracket"
	case UnterminatedRegExp:
		return "UnterminatedRegExp"
	}
	return "Unknown"
}

// Code maps the kind onto the LEX range of diag codes.
func (k ErrorKind) Code() diag.Code {
	switch k {
	case UnexpectedEOF:
		return diag.LexUnexpectedEOF
	case UnexpectedEscapeCharacter:
		return diag.LexUnexpectedEscape
	case UnexpectedUnicodeEscapeSequence:
		return diag.LexUnexpectedUnicodeEscape
	case UnexpectedBracket:
		return diag.LexUnexpectedBracket
	case IncorrectClosingBracket:
		return diag.LexIncorrectClosingBracket
	case UnterminatedRegExp:
		return diag.LexUnterminatedRegExp
	}
	return diag.UnknownCode
}

// Error is a non-fatal scan diagnostic.
type Error struct {
	Kind ErrorKind
	// Pos is the byte offset where the problem was detected.
	Pos uint32
	// Char is the offending byte; zero when the kind has none (EOF, regex).
	Char    byte
	Message string
	// Recoverable is set when the construct was still decoded (`\0`).
	Recoverable bool
}

func (e Error) Error() string {
	return fmt.Sprintf("%s at %d: %s", e.Kind, e.Pos, e.Message)
}

// Severity returns the diag severity used when the error is reported.
func (e Error) Severity() diag.Severity {
	if e.Recoverable {
		return diag.SevWarning
	}
	return diag.SevError
}
