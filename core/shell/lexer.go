package shell

import (
	"strings"
	"unicode"
)

// Lex splits a line of input into tokens.
//
//   - Unquoted runs of whitespace become a single FieldDelimiter.
//   - Text in single quotes is a verbatim Literal.
//   - Text in double quotes is literal except for $NAME references and the
//     escapes \", \\ and \$.
//   - Outside of quotes a backslash escapes the following character.
//   - $NAME and $? become a VariableReference, any other $ is literal.
//   - An unquoted | is a Pipe.
//   - NAME= at the start of a command emits Literal(NAME) then an
//     AssignmentMarker.
//
// An unterminated quote extends to the end of the input.
func Lex(input string) []Token {
	l := &lexer{input: []rune(input)}
	l.startCommand()

	for l.pos < len(l.input) {
		r := l.input[l.pos]
		switch {
		case unicode.IsSpace(r):
			l.lexDelimiter()
		case r == '|':
			l.flush()
			l.emit(Pipe, "|")
			l.pos++
			l.startCommand()
		case r == '\'':
			l.lexSingleQuoted()
		case r == '"':
			l.lexDoubleQuoted()
		case r == '\\':
			l.lexEscape()
		case r == '$':
			l.lexVariable()
		case r == '=' && l.canAssign():
			l.flush()
			l.emit(AssignmentMarker, "=")
			l.pos++
			l.assigned = true
			l.firstWord = false
			l.wordStarted = false
		default:
			l.lit.WriteRune(r)
			l.markContent(isIdentStart(r) || (l.wordStarted && isIdentPart(r)))
			l.pos++
		}
	}

	l.flush()
	return l.tokens
}

type lexer struct {
	input  []rune
	pos    int
	tokens []Token
	lit    strings.Builder

	// wordStarted is set once the current word has content.
	wordStarted bool
	// wordIdent is set while the current word is unquoted identifier text.
	wordIdent bool
	// firstWord is set while lexing the first word of a command.
	firstWord bool
	// assigned is set once the command has an assignment marker.
	assigned bool
}

func (l *lexer) startCommand() {
	l.wordStarted = false
	l.wordIdent = false
	l.firstWord = true
	l.assigned = false
}

func (l *lexer) emit(kind TokenKind, payload string) {
	l.tokens = append(l.tokens, Token{Kind: kind, Payload: payload})
}

// flush emits pending literal text.
func (l *lexer) flush() {
	if l.lit.Len() == 0 {
		return
	}
	l.emit(Literal, l.lit.String())
	l.lit.Reset()
}

// markContent records that the current word got content, ident is whether
// that content could still be part of an identifier.
func (l *lexer) markContent(ident bool) {
	if !l.wordStarted {
		l.wordStarted = true
		l.wordIdent = ident
		return
	}
	l.wordIdent = l.wordIdent && ident
}

func (l *lexer) canAssign() bool {
	return l.firstWord && !l.assigned && l.wordStarted && l.wordIdent
}

func (l *lexer) lexDelimiter() {
	l.flush()

	start := l.pos
	for l.pos < len(l.input) && unicode.IsSpace(l.input[l.pos]) {
		l.pos++
	}
	l.emit(FieldDelimiter, string(l.input[start:l.pos]))

	if l.wordStarted {
		l.firstWord = false
	}
	l.wordStarted = false
	l.wordIdent = false
}

func (l *lexer) lexSingleQuoted() {
	l.flush()
	l.pos++ // opening quote

	start := l.pos
	for l.pos < len(l.input) && l.input[l.pos] != '\'' {
		l.pos++
	}
	l.lit.WriteString(string(l.input[start:l.pos]))
	l.flush()
	l.markContent(false)

	if l.pos < len(l.input) {
		l.pos++ // closing quote
	}
}

func (l *lexer) lexDoubleQuoted() {
	l.flush()
	l.pos++ // opening quote

	for l.pos < len(l.input) && l.input[l.pos] != '"' {
		r := l.input[l.pos]
		switch {
		case r == '\\' && l.pos+1 < len(l.input) && strings.ContainsRune(`"\$`, l.input[l.pos+1]):
			l.lit.WriteRune(l.input[l.pos+1])
			l.pos += 2
		case r == '$' && l.variableFollows():
			l.pos++
			l.emitVariable()
		default:
			l.lit.WriteRune(r)
			l.pos++
		}
	}
	l.flush()
	l.markContent(false)

	if l.pos < len(l.input) {
		l.pos++ // closing quote
	}
}

func (l *lexer) lexEscape() {
	l.pos++ // backslash
	if l.pos < len(l.input) {
		l.lit.WriteRune(l.input[l.pos])
		l.pos++
	} else {
		l.lit.WriteRune('\\')
	}
	l.markContent(false)
}

func (l *lexer) lexVariable() {
	if !l.variableFollows() {
		l.lit.WriteRune('$')
		l.pos++
		l.markContent(false)
		return
	}

	l.pos++ // sigil
	l.emitVariable()
	l.markContent(false)
}

// variableFollows reports whether the $ at the current position starts a
// variable reference.
func (l *lexer) variableFollows() bool {
	next := l.pos + 1
	if next >= len(l.input) {
		return false
	}
	return l.input[next] == '?' || isIdentStart(l.input[next])
}

// emitVariable emits the reference starting at the current position, which
// is just past the sigil.
func (l *lexer) emitVariable() {
	l.flush()

	if l.input[l.pos] == '?' {
		l.pos++
		l.emit(VariableReference, "?")
		return
	}

	start := l.pos
	for l.pos < len(l.input) && isIdentPart(l.input[l.pos]) {
		l.pos++
	}
	l.emit(VariableReference, string(l.input[start:l.pos]))
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9')
}
