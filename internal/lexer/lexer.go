package lexer

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/funvibe/ollang/internal/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number

	// Permissive skips characters that start no token instead of
	// returning ILLEGAL for them.
	Permissive bool
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

// Tokenize runs the lexer to the end of input. The returned slice always
// ends with an EOF token.
func Tokenize(input string, strict bool) []token.Token {
	l := New(input)
	l.Permissive = !strict
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens
		}
	}
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.readPosition++
		l.column++
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

func (l *Lexer) NextToken() token.Token {
	for {
		if tok := l.scan(); tok.Type != skipped {
			return tok
		}
	}
}

// skipped marks a character dropped in permissive mode.
const skipped token.TokenType = ""

func (l *Lexer) scan() token.Token {
	var tok token.Token

	l.skipWhitespace()

	line, col := l.line, l.column

	switch l.ch {
	case '*':
		if l.peekChar() == '*' {
			l.readChar()
			tok = operator(token.POWER, "**", line, col)
		} else {
			tok = newToken(token.ASTERISK, l.ch, line, col)
		}
	case '<':
		switch l.peekChar() {
		case '<':
			l.readChar()
			tok = operator(token.LSHIFT, "<<", line, col)
		case '=':
			l.readChar()
			tok = operator(token.LTE, "<=", line, col)
		default:
			tok = newToken(token.LT, l.ch, line, col)
		}
	case '>':
		switch l.peekChar() {
		case '>':
			l.readChar()
			tok = operator(token.RSHIFT, ">>", line, col)
		case '=':
			l.readChar()
			tok = operator(token.GTE, ">=", line, col)
		default:
			tok = newToken(token.GT, l.ch, line, col)
		}
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			tok = operator(token.EQ, "==", line, col)
		} else {
			tok = newToken(token.ASSIGN, l.ch, line, col)
		}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = operator(token.NOT_EQ, "!=", line, col)
		} else {
			tok = newToken(token.BANG, l.ch, line, col)
		}
	case '&':
		if l.peekChar() == '&' {
			l.readChar()
			tok = operator(token.AND, "&&", line, col)
		} else {
			tok = newToken(token.AMPER, l.ch, line, col)
		}
	case '|':
		if l.peekChar() == '|' {
			l.readChar()
			tok = operator(token.OR, "||", line, col)
		} else {
			tok = newToken(token.PIPE, l.ch, line, col)
		}
	case '+':
		tok = newToken(token.PLUS, l.ch, line, col)
	case '-':
		tok = newToken(token.MINUS, l.ch, line, col)
	case '/':
		tok = newToken(token.SLASH, l.ch, line, col)
	case '%':
		tok = newToken(token.PERCENT, l.ch, line, col)
	case '^':
		tok = newToken(token.CARET, l.ch, line, col)
	case '~':
		tok = newToken(token.TILDE, l.ch, line, col)
	case '(':
		tok = newToken(token.LPAREN, l.ch, line, col)
	case ')':
		tok = newToken(token.RPAREN, l.ch, line, col)
	case '{':
		tok = newToken(token.LBRACE, l.ch, line, col)
	case '}':
		tok = newToken(token.RBRACE, l.ch, line, col)
	case '[':
		tok = newToken(token.LBRACKET, l.ch, line, col)
	case ']':
		tok = newToken(token.RBRACKET, l.ch, line, col)
	case ',':
		tok = newToken(token.COMMA, l.ch, line, col)
	case ':':
		tok = newToken(token.COLON, l.ch, line, col)
	case ';':
		tok = newToken(token.SEMICOLON, l.ch, line, col)
	case '.':
		tok = newToken(token.DOT, l.ch, line, col)
	case '"':
		return l.readString(line, col)
	case 0:
		return token.Token{Type: token.EOF, Lexeme: "", Literal: "", Line: line, Column: col}
	default:
		if isLetter(l.ch) {
			ident := l.readIdentifier()
			return token.Token{Type: token.LookupIdent(ident), Lexeme: ident, Literal: ident, Line: line, Column: col}
		}
		if isDigit(l.ch) {
			return l.readNumber(line, col)
		}
		if l.Permissive {
			l.readChar()
			return token.Token{Type: skipped}
		}
		tok = newToken(token.ILLEGAL, l.ch, line, col)
	}

	l.readChar()
	return tok
}

// readString consumes a double-quoted literal starting at the opening quote.
// Unknown escapes pass the escaped character through unchanged.
func (l *Lexer) readString(line, col int) token.Token {
	start := l.position
	var out strings.Builder
	escaped := false
	for {
		l.readChar()
		if l.ch == 0 {
			lexeme := l.input[start:l.position]
			if l.Permissive {
				return token.Token{Type: token.STRING, Lexeme: lexeme, Literal: out.String(), Line: line, Column: col}
			}
			return token.Token{Type: token.ILLEGAL, Lexeme: lexeme, Literal: "unterminated string", Line: line, Column: col}
		}
		if escaped {
			escaped = false
			switch l.ch {
			case 'n':
				out.WriteRune('\n')
			case 't':
				out.WriteRune('\t')
			case 'r':
				out.WriteRune('\r')
			default:
				out.WriteRune(l.ch)
			}
			continue
		}
		if l.ch == '\\' {
			escaped = true
			continue
		}
		if l.ch == '"' {
			break
		}
		out.WriteRune(l.ch)
	}
	l.readChar() // closing quote
	return token.Token{Type: token.STRING, Lexeme: l.input[start:l.position], Literal: out.String(), Line: line, Column: col}
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

// readNumber reads decimal literals. There is no exponent or base prefix
// syntax; a second dot makes the literal malformed.
func (l *Lexer) readNumber(line, col int) token.Token {
	position := l.position
	for isDigit(l.ch) || l.ch == '.' {
		l.readChar()
	}
	lexeme := l.input[position:l.position]

	val, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		return token.Token{Type: token.ILLEGAL, Lexeme: lexeme, Literal: "malformed number " + lexeme, Line: line, Column: col}
	}
	return token.Token{Type: token.NUMBER, Lexeme: lexeme, Literal: val, Line: line, Column: col}
}

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func newToken(tokenType token.TokenType, ch rune, line, col int) token.Token {
	literal := string(ch)
	return token.Token{Type: tokenType, Lexeme: literal, Literal: literal, Line: line, Column: col}
}

func operator(tokenType token.TokenType, lexeme string, line, col int) token.Token {
	return token.Token{Type: tokenType, Lexeme: lexeme, Literal: lexeme, Line: line, Column: col}
}

func (l *Lexer) skipWhitespace() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
			l.readChar()
		}
		if l.ch == '#' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}
		break
	}
}
