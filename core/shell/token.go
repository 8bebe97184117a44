package shell

import "fmt"

// TokenKind is the kind of a lexical token.
type TokenKind int

const (
	// Literal is verbatim text.
	Literal TokenKind = iota
	// VariableReference names a variable to substitute.
	VariableReference
	// FieldDelimiter separates two words.
	FieldDelimiter
	// AssignmentMarker follows the name of a NAME=VALUE assignment.
	AssignmentMarker
	// Pipe separates two commands of a pipeline.
	Pipe
)

func (k TokenKind) String() string {
	switch k {
	case Literal:
		return "Literal"
	case VariableReference:
		return "VariableReference"
	case FieldDelimiter:
		return "FieldDelimiter"
	case AssignmentMarker:
		return "AssignmentMarker"
	case Pipe:
		return "Pipe"
	default:
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
}

// Token is a single lexical token, Payload holds the text for literals,
// the variable name for references and the source text otherwise.
type Token struct {
	Kind    TokenKind
	Payload string
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Kind, t.Payload)
}
