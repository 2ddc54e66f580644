package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Лексические: сканер CommonJS
	LexInfo                    Code = 1000
	LexUnexpectedEOF           Code = 1001
	LexUnexpectedEscape        Code = 1002
	LexUnexpectedUnicodeEscape Code = 1003
	LexUnexpectedBracket       Code = 1004
	LexIncorrectClosingBracket Code = 1005
	LexUnterminatedRegExp      Code = 1006

	// Ввод/вывод
	IOInfo          Code = 4000
	IOLoadFileError Code = 4001
	IOInvalidUTF8   Code = 4002
	IOCacheError    Code = 4003

	// Наблюдаемость
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                "Unknown error",
		LexInfo:                    "Lexical information",
		LexUnexpectedEOF:           "Unexpected end of input",
		LexUnexpectedEscape:        "Unsupported escape sequence in string literal",
		LexUnexpectedUnicodeEscape: "Malformed unicode escape sequence",
		LexUnexpectedBracket:       "Closing bracket without an opening one",
		LexIncorrectClosingBracket: "Closing bracket does not match the opening one",
		LexUnterminatedRegExp:      "Unterminated regular expression literal",
		IOInfo:                     "I/O information",
		IOLoadFileError:            "I/O load file error",
		IOInvalidUTF8:              "Source is not valid UTF-8",
		IOCacheError:               "Result cache error",
		ObsInfo:                    "Observability information",
		ObsTimings:                 "Scan timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
