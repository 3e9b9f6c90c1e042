package asm

// TokenType enumerates the lexical categories of a ".air" file.
//
// ORGANIZATION mirrors what a recursive-descent parser actually
// branches on: after EOF/invalid/newline come the three name shapes
// (%local, @global, bare identifier/keyword), then literals, then
// punctuation.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenInvalid
	TokenNewline

	TokenLocal  // %name or %t3
	TokenGlobal // @name
	TokenIdent  // keyword, opcode mnemonic, type name, or label
	TokenNumber
	TokenTrue
	TokenFalse

	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenComma
	TokenColon
	TokenEqual
	TokenArrow // ->
	TokenStar  // * (pointer type prefix)
)

func (tt TokenType) String() string {
	switch tt {
	case TokenEOF:
		return "EOF"
	case TokenInvalid:
		return "INVALID"
	case TokenNewline:
		return "NEWLINE"
	case TokenLocal:
		return "LOCAL"
	case TokenGlobal:
		return "GLOBAL"
	case TokenIdent:
		return "IDENT"
	case TokenNumber:
		return "NUMBER"
	case TokenTrue:
		return "TRUE"
	case TokenFalse:
		return "FALSE"
	case TokenLParen:
		return "LPAREN"
	case TokenRParen:
		return "RPAREN"
	case TokenLBrace:
		return "LBRACE"
	case TokenRBrace:
		return "RBRACE"
	case TokenComma:
		return "COMMA"
	case TokenColon:
		return "COLON"
	case TokenEqual:
		return "EQUAL"
	case TokenArrow:
		return "ARROW"
	case TokenStar:
		return "STAR"
	default:
		return "UNKNOWN"
	}
}

// Token is a single lexical token: a value type, cheap to copy and
// carry through the parser's lookahead slots.
type Token struct {
	Type     TokenType
	Lexeme   string
	Position Position
}

func (t Token) String() string {
	return t.Type.String() + "(" + t.Lexeme + ") at " + t.Position.String()
}
