package token

import (
	"fmt"
	"sort"
)

type TokenType string

type Token struct {
	Type    TokenType
	Lexeme  string      // raw source text of the token
	Literal interface{} // string for identifiers/strings/operators, float64 for numbers
	Line    int
	Column  int
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q at %d:%d", t.Type, t.Lexeme, t.Line, t.Column)
}

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	IDENT  TokenType = "IDENT"
	NUMBER TokenType = "NUMBER"
	STRING TokenType = "STRING"

	// Operators
	ASSIGN   TokenType = "="
	PLUS     TokenType = "+"
	MINUS    TokenType = "-"
	ASTERISK TokenType = "*"
	SLASH    TokenType = "/"
	PERCENT  TokenType = "%"
	POWER    TokenType = "**"
	BANG     TokenType = "!"
	TILDE    TokenType = "~"
	AMPER    TokenType = "&"
	PIPE     TokenType = "|"
	CARET    TokenType = "^"
	LSHIFT   TokenType = "<<"
	RSHIFT   TokenType = ">>"
	LT       TokenType = "<"
	GT       TokenType = ">"
	LTE      TokenType = "<="
	GTE      TokenType = ">="
	EQ       TokenType = "=="
	NOT_EQ   TokenType = "!="
	AND      TokenType = "&&"
	OR       TokenType = "||"

	// Punctuation
	LPAREN    TokenType = "("
	RPAREN    TokenType = ")"
	LBRACE    TokenType = "{"
	RBRACE    TokenType = "}"
	LBRACKET  TokenType = "["
	RBRACKET  TokenType = "]"
	COMMA     TokenType = ","
	COLON     TokenType = ":"
	SEMICOLON TokenType = ";"
	DOT       TokenType = "."

	// Keywords
	FUNC      TokenType = "FUNC"
	IF        TokenType = "IF"
	ELSE      TokenType = "ELSE"
	WHILE     TokenType = "WHILE"
	FOR       TokenType = "FOR"
	IN        TokenType = "IN"
	RETURN    TokenType = "RETURN"
	TRUE      TokenType = "TRUE"
	FALSE     TokenType = "FALSE"
	NULL      TokenType = "NULL"
	ALLOC     TokenType = "ALLOC"
	FREE      TokenType = "FREE"
	READ      TokenType = "READ"
	WRITE     TokenType = "WRITE"
	SYSCALL   TokenType = "SYSCALL"
	IMPORT    TokenType = "IMPORT"
	IMPORTDLL TokenType = "IMPORTDLL"
	TRY       TokenType = "TRY"
	CATCH     TokenType = "CATCH"
	ASYNC     TokenType = "ASYNC"
	AWAIT     TokenType = "AWAIT"
	THROW     TokenType = "THROW"
	NAMESPACE TokenType = "NAMESPACE"
	PROCESS   TokenType = "PROCESS"
	INJECT    TokenType = "INJECT"
	HOOK      TokenType = "HOOK"
	SCAN      TokenType = "SCAN"
	WINDOW    TokenType = "WINDOW"
	THREAD    TokenType = "THREAD"
)

// keywords is the closed keyword set. Anything else made of letters,
// digits and underscores is an identifier.
var keywords = map[string]TokenType{
	"func":      FUNC,
	"if":        IF,
	"else":      ELSE,
	"while":     WHILE,
	"for":       FOR,
	"in":        IN,
	"return":    RETURN,
	"true":      TRUE,
	"false":     FALSE,
	"null":      NULL,
	"alloc":     ALLOC,
	"free":      FREE,
	"read":      READ,
	"write":     WRITE,
	"syscall":   SYSCALL,
	"import":    IMPORT,
	"ImportDLL": IMPORTDLL,
	"try":       TRY,
	"catch":     CATCH,
	"async":     ASYNC,
	"await":     AWAIT,
	"throw":     THROW,
	"namespace": NAMESPACE,
	"process":   PROCESS,
	"inject":    INJECT,
	"hook":      HOOK,
	"scan":      SCAN,
	"window":    WINDOW,
	"thread":    THREAD,
}

func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// Keywords returns the reserved words in sorted order.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for k := range keywords {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// IsKeyword reports whether t is one of the reserved words.
func IsKeyword(t TokenType) bool {
	for _, k := range keywords {
		if k == t {
			return true
		}
	}
	return false
}

// Kind returns the coarse category used in diagnostics:
// number, string, identifier, keyword, operator, punctuation.
func (t Token) Kind() string {
	switch t.Type {
	case NUMBER:
		return "number"
	case STRING:
		return "string"
	case IDENT:
		return "identifier"
	case EOF:
		return "eof"
	case ILLEGAL:
		return "illegal"
	case LPAREN, RPAREN, LBRACE, RBRACE, LBRACKET, RBRACKET, COMMA, COLON, SEMICOLON, DOT:
		return "punctuation"
	}
	if IsKeyword(t.Type) {
		return "keyword"
	}
	return "operator"
}
