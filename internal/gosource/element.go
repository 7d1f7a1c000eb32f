package gosource

import "go/token"

// Element categories. Delimiters such as ( ) , ; have none and only ever
// match exactly.
const (
	CategoryName     = "Name"
	CategoryLiteral  = "Literal"
	CategoryKeyword  = "Keyword"
	CategoryOperator = "Operator"
)

// Element is one scanner token of a Go or Gno source file.
type Element struct {
	Tok token.Token
	Lit string
	// Offset and EndOffset are the byte range of the token in the source.
	// Automatically inserted semicolons are zero-width.
	Offset    int
	EndOffset int
}

// Kind is the token kind: "IDENT", "INT", "return", "+=", ";" and so on.
func (e Element) Kind() string { return e.Tok.String() }

// Value is the literal text of identifiers and basic literals.
func (e Element) Value() string {
	if e.Tok == token.IDENT || e.Tok.IsLiteral() {
		return e.Lit
	}
	return ""
}

func (e Element) Category() string {
	switch {
	case e.Tok == token.IDENT:
		return CategoryName
	case e.Tok.IsLiteral():
		return CategoryLiteral
	case e.Tok.IsKeyword():
		return CategoryKeyword
	case isDelimiter(e.Tok):
		return ""
	case e.Tok.IsOperator():
		return CategoryOperator
	default:
		return ""
	}
}

// Implicit reports whether the scanner inserted the token.
func (e Element) Implicit() bool { return e.Tok == token.SEMICOLON && e.Lit == "\n" }

func isDelimiter(tok token.Token) bool {
	switch tok {
	case token.LPAREN, token.RPAREN,
		token.LBRACK, token.RBRACK,
		token.LBRACE, token.RBRACE,
		token.COMMA, token.PERIOD, token.SEMICOLON, token.COLON, token.ELLIPSIS:
		return true
	}
	return false
}

func width(tok token.Token, lit string) int {
	switch {
	case tok == token.SEMICOLON && lit == "\n":
		return 0
	case tok == token.IDENT || tok.IsLiteral():
		return len(lit)
	default:
		return len(tok.String())
	}
}
