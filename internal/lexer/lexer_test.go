package lexer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/ollang/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `x = 2 ** 3 << 1 >= y && !z # comment
name != "a\tb\"c\q"; arr[0].k ~ 1.5 % 2`

	tests := []struct {
		expectedType   token.TokenType
		expectedLexeme string
	}{
		{token.IDENT, "x"},
		{token.ASSIGN, "="},
		{token.NUMBER, "2"},
		{token.POWER, "**"},
		{token.NUMBER, "3"},
		{token.LSHIFT, "<<"},
		{token.NUMBER, "1"},
		{token.GTE, ">="},
		{token.IDENT, "y"},
		{token.AND, "&&"},
		{token.BANG, "!"},
		{token.IDENT, "z"},
		{token.IDENT, "name"},
		{token.NOT_EQ, "!="},
		{token.STRING, `"a\tb\"c\q"`},
		{token.SEMICOLON, ";"},
		{token.IDENT, "arr"},
		{token.LBRACKET, "["},
		{token.NUMBER, "0"},
		{token.RBRACKET, "]"},
		{token.DOT, "."},
		{token.IDENT, "k"},
		{token.TILDE, "~"},
		{token.NUMBER, "1.5"},
		{token.PERCENT, "%"},
		{token.NUMBER, "2"},
		{token.EOF, ""},
	}

	toks := Tokenize(input, true)
	require.Len(t, toks, len(tests))
	for i, tt := range tests {
		assert.Equal(t, tt.expectedType, toks[i].Type, "token %d", i)
		assert.Equal(t, tt.expectedLexeme, toks[i].Lexeme, "token %d", i)
	}

	assert.Equal(t, "a\tb\"cq", toks[14].Literal)
	assert.Equal(t, 1.5, toks[23].Literal)
	assert.Equal(t, 2, toks[12].Line)
	assert.Equal(t, 1, toks[12].Column)
}

func TestKeywordsAreClosed(t *testing.T) {
	toks := Tokenize("func async await ImportDLL importdll Func", true)
	types := []token.TokenType{token.FUNC, token.ASYNC, token.AWAIT, token.IMPORTDLL, token.IDENT, token.IDENT, token.EOF}
	require.Len(t, toks, len(types))
	for i, tt := range types {
		assert.Equal(t, tt, toks[i].Type, toks[i].Lexeme)
	}
}

func TestUnknownCharacters(t *testing.T) {
	strict := Tokenize("a @ b", true)
	require.Len(t, strict, 4)
	assert.Equal(t, token.ILLEGAL, strict[1].Type)
	assert.Equal(t, "@", strict[1].Lexeme)

	permissive := Tokenize("a @ b", false)
	require.Len(t, permissive, 3)
	assert.Equal(t, token.IDENT, permissive[1].Type)
	assert.Equal(t, "b", permissive[1].Lexeme)

	long := Tokenize("a "+strings.Repeat("@$`", 1<<18)+" b", false)
	require.Len(t, long, 3)
	assert.Equal(t, "b", long[1].Lexeme)
	assert.Equal(t, token.EOF, long[2].Type)
}

func TestMalformedLiterals(t *testing.T) {
	toks := Tokenize("1.2.3", true)
	assert.Equal(t, token.ILLEGAL, toks[0].Type)
	assert.Equal(t, "malformed number 1.2.3", toks[0].Literal)

	toks = Tokenize(`"abc`, true)
	assert.Equal(t, token.ILLEGAL, toks[0].Type)
	assert.Equal(t, "unterminated string", toks[0].Literal)

	toks = Tokenize(`"abc`, false)
	assert.Equal(t, token.STRING, toks[0].Type)
	assert.Equal(t, "abc", toks[0].Literal)
}

func TestTokenKind(t *testing.T) {
	toks := Tokenize(`1 "s" id while + (`, true)
	kinds := []string{"number", "string", "identifier", "keyword", "operator", "punctuation", "eof"}
	for i, k := range kinds {
		assert.Equal(t, k, toks[i].Kind())
	}
}
