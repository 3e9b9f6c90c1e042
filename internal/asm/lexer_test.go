package asm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lexAll(t *testing.T, src string) []Token {
	t.Helper()
	lx := newLexer(src, "t.air")
	var toks []Token
	for {
		tok, err := lx.next()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok.Type == TokenEOF {
			break
		}
	}
	return toks
}

func TestLexer_SigilNamesExcludeSigil(t *testing.T) {
	toks := lexAll(t, "%p @f")
	require.Len(t, toks, 3) // LOCAL, GLOBAL, EOF
	assert.Equal(t, TokenLocal, toks[0].Type)
	assert.Equal(t, "p", toks[0].Lexeme)
	assert.Equal(t, TokenGlobal, toks[1].Type)
	assert.Equal(t, "f", toks[1].Lexeme)
}

func TestLexer_ArrowAndStar(t *testing.T) {
	toks := lexAll(t, "-> *")
	assert.Equal(t, TokenArrow, toks[0].Type)
	assert.Equal(t, TokenStar, toks[1].Type)
}

func TestLexer_KeywordsTrueFalse(t *testing.T) {
	toks := lexAll(t, "true false other")
	assert.Equal(t, TokenTrue, toks[0].Type)
	assert.Equal(t, TokenFalse, toks[1].Type)
	assert.Equal(t, TokenIdent, toks[2].Type)
}

func TestLexer_CommentsSkippedNewlineKept(t *testing.T) {
	toks := lexAll(t, "ret ; a comment\nbr")
	require.Len(t, toks, 4) // IDENT(ret), NEWLINE, IDENT(br), EOF
	assert.Equal(t, TokenIdent, toks[0].Type)
	assert.Equal(t, TokenNewline, toks[1].Type)
	assert.Equal(t, TokenIdent, toks[2].Type)
}

func TestLexer_LineAndColumnTracking(t *testing.T) {
	toks := lexAll(t, "ret\n  br")
	require.Len(t, toks, 4)
	assert.Equal(t, 1, toks[0].Position.Line)
	assert.Equal(t, 2, toks[2].Position.Line)
	assert.Equal(t, 3, toks[2].Position.Column)
}

func TestLexer_UnexpectedCharacterReportsError(t *testing.T) {
	lx := newLexer("#", "t.air")
	_, err := lx.next()
	assert.Error(t, err)
}

func TestLexer_UnterminatedSigilReportsError(t *testing.T) {
	lx := newLexer("%", "t.air")
	_, err := lx.next()
	assert.Error(t, err)
}
