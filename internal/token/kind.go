package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token. The lexer has already reported it.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident

	// KwVar represents the 'var' keyword.
	KwVar // var
	// KwAnd represents the 'and' keyword.
	KwAnd // and
	// KwOr represents the 'or' keyword.
	KwOr // or
	// KwTrue represents the 'true' keyword.
	KwTrue // true
	// KwFalse represents the 'false' keyword.
	KwFalse // false

	// NumberLit represents a numeric literal token.
	NumberLit
	// StringLit represents a string literal token (Text keeps the quotes).
	StringLit

	// Assign represents the assign operator token.
	Assign // =
	// EqEq represents the eq eq operator token.
	EqEq // ==
	// BangEq represents the bang eq operator token.
	BangEq // !=
	// Lt represents the lt operator token.
	Lt // <
	// LtEq represents the lt eq operator token.
	LtEq // <=
	// Gt represents the gt operator token.
	Gt // >
	// GtEq represents the gt eq operator token.
	GtEq // >=
	// Plus represents the plus operator token.
	Plus // +
	// Minus represents the minus operator token.
	Minus // -
	// Star represents the star operator token.
	Star // *
	// Slash represents the slash operator token.
	Slash // /
	// Bang represents the bang operator token.
	Bang // !

	// Semicolon represents the semicolon punctuation token.
	Semicolon // ;
	// Comma represents the comma punctuation token.
	Comma // ,
	// LParen represents the left parenthesis punctuation token.
	LParen // (
	// RParen represents the right parenthesis punctuation token.
	RParen // )

	kindCount
)

var kindNames = [...]string{
	Invalid:   "Invalid",
	EOF:       "EOF",
	Ident:     "Ident",
	KwVar:     "KwVar",
	KwAnd:     "KwAnd",
	KwOr:      "KwOr",
	KwTrue:    "KwTrue",
	KwFalse:   "KwFalse",
	NumberLit: "NumberLit",
	StringLit: "StringLit",
	Assign:    "Assign",
	EqEq:      "EqEq",
	BangEq:    "BangEq",
	Lt:        "Lt",
	LtEq:      "LtEq",
	Gt:        "Gt",
	GtEq:      "GtEq",
	Plus:      "Plus",
	Minus:     "Minus",
	Star:      "Star",
	Slash:     "Slash",
	Bang:      "Bang",
	Semicolon: "Semicolon",
	Comma:     "Comma",
	LParen:    "LParen",
	RParen:    "RParen",
}

// fixed source text of operators, punctuation and keywords
var kindText = [...]string{
	KwVar:     "var",
	KwAnd:     "and",
	KwOr:      "or",
	KwTrue:    "true",
	KwFalse:   "false",
	Assign:    "=",
	EqEq:      "==",
	BangEq:    "!=",
	Lt:        "<",
	LtEq:      "<=",
	Gt:        ">",
	GtEq:      ">=",
	Plus:      "+",
	Minus:     "-",
	Star:      "*",
	Slash:     "/",
	Bang:      "!",
	Semicolon: ";",
	Comma:     ",",
	LParen:    "(",
	RParen:    ")",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Text returns the fixed spelling of keyword, operator and punctuation kinds,
// and "" for kinds whose text varies (identifiers, literals, EOF, Invalid).
func (k Kind) Text() string {
	if int(k) < len(kindText) {
		return kindText[k]
	}
	return ""
}

// Category groups kinds the way diagnostics and formatters talk about them.
type Category uint8

const (
	CatInvalid Category = iota
	CatEOF
	CatIdent
	CatKeyword
	CatLiteral
	CatOperator
	CatPunct
)

func (c Category) String() string {
	switch c {
	case CatEOF:
		return "end of input"
	case CatIdent:
		return "identifier"
	case CatKeyword:
		return "keyword"
	case CatLiteral:
		return "literal"
	case CatOperator:
		return "operator"
	case CatPunct:
		return "punctuation"
	default:
		return "invalid"
	}
}

// Category returns the group k belongs to.
func (k Kind) Category() Category {
	switch {
	case k == EOF:
		return CatEOF
	case k == Ident:
		return CatIdent
	case k >= KwVar && k <= KwFalse:
		return CatKeyword
	case k == NumberLit || k == StringLit:
		return CatLiteral
	case k >= Assign && k <= Bang:
		return CatOperator
	case k >= Semicolon && k <= RParen:
		return CatPunct
	default:
		return CatInvalid
	}
}
