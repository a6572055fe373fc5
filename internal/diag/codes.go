package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1004
	LexBadEscape          Code = 1005

	// Парсерные
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynUnclosedParen     Code = 2006
	SynExpectSemicolon   Code = 2012
	SynExpectIdentifier  Code = 2102
	SynExpectExpression  Code = 2203
	SynExpectAssign      Code = 2208
	SynChainedComparison Code = 2209
	SynNestingTooDeep    Code = 2300

	// Ввод-вывод и конфигурация (driver / rule sets)
	IOLoadFileError  Code = 4001
	IORuleSetInvalid Code = 4002
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	LexInfo:               "Lexical information",
	LexUnknownChar:        "Unknown character",
	LexUnterminatedString: "Unterminated string",
	LexBadNumber:          "Bad number",
	LexBadEscape:          "Bad escape sequence",
	SynInfo:               "Syntax information",
	SynUnexpectedToken:    "Unexpected token",
	SynUnclosedParen:      "Unclosed parenthesis",
	SynExpectSemicolon:    "Expect semicolon",
	SynExpectIdentifier:   "Expect identifier",
	SynExpectExpression:   "Expect expression",
	SynExpectAssign:       "Expect '='",
	SynChainedComparison:  "Chained comparison",
	SynNestingTooDeep:     "Nesting too deep",
	IOLoadFileError:       "Failed to load file",
	IORuleSetInvalid:      "Invalid rule set",
}

// ID returns the stable machine-readable identifier, e.g. "SYN2012".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// IsLexical reports whether the code belongs to the lexer range.
func (c Code) IsLexical() bool { return c >= 1000 && c < 2000 }

// IsSyntax reports whether the code belongs to the parser range.
func (c Code) IsSyntax() bool { return c >= 2000 && c < 3000 }
