package shell

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrEmptyPipeSegment is returned when a pipeline has a command with no words.
var ErrEmptyPipeSegment = errors.New("empty command in pipeline")

// Kind identifies the command a Description will become.
type Kind int

const (
	// External runs a program from the host.
	External Kind = iota
	LiteralPrint
	LineWordByteCount
	PrintArgs
	Terminate
	WorkingDirectoryPrint
	PatternSearch
	Assign
	ChangeDirectory
	ListDirectory
)

var builtinKinds = map[string]Kind{
	"cat":  LiteralPrint,
	"wc":   LineWordByteCount,
	"echo": PrintArgs,
	"exit": Terminate,
	"pwd":  WorkingDirectoryPrint,
	"grep": PatternSearch,
	"cd":   ChangeDirectory,
	"ls":   ListDirectory,
}

// KindOf returns the kind of the command named by a first word.
func KindOf(name string) Kind {
	if kind, ok := builtinKinds[name]; ok {
		return kind
	}
	return External
}

// Builtins returns the sorted names of the built-in commands.
func Builtins() []string {
	var out []string
	for name := range builtinKinds {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

var kindNames = [...]string{
	External:              "External",
	LiteralPrint:          "LiteralPrint",
	LineWordByteCount:     "LineWordByteCount",
	PrintArgs:             "PrintArgs",
	Terminate:             "Terminate",
	WorkingDirectoryPrint: "WorkingDirectoryPrint",
	PatternSearch:         "PatternSearch",
	Assign:                "Assign",
	ChangeDirectory:       "ChangeDirectory",
	ListDirectory:         "ListDirectory",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Description is a parsed command: its kind and the words typed for it.
// For Assign the words are exactly the name and the value.
type Description struct {
	Kind  Kind
	Words []string
}

func (d Description) String() string {
	return fmt.Sprintf("%s%q", d.Kind, d.Words)
}

// Variables supplies values for variable references.
type Variables interface {
	Getenv(name string) string
}

// Parse groups tokens into words and commands, substituting variables as it
// goes. Substituted values are never split or re-scanned.
//
// An input without words yields no descriptions.
func Parse(tokens []Token, vars Variables) ([]Description, error) {
	var (
		out     []Description
		p       = &parser{}
		piped   bool
		segment int
	)

	for _, tok := range tokens {
		switch tok.Kind {
		case Literal:
			p.write(tok.Payload)
		case VariableReference:
			p.write(vars.Getenv(tok.Payload))
		case FieldDelimiter:
			p.closeWord()
		case AssignmentMarker:
			p.closeWord()
			p.assign = true
		case Pipe:
			desc, ok := p.finish()
			if !ok {
				return nil, emptySegmentError(segment)
			}
			out = append(out, desc)
			p = &parser{}
			piped = true
			segment++
		}
	}

	desc, ok := p.finish()
	switch {
	case ok:
		out = append(out, desc)
	case piped:
		return nil, emptySegmentError(segment)
	}

	return out, nil
}

func emptySegmentError(segment int) error {
	return fmt.Errorf("%w: command %d", ErrEmptyPipeSegment, segment+1)
}

type parser struct {
	words   []string
	current strings.Builder
	assign  bool
}

func (p *parser) write(s string) {
	p.current.WriteString(s)
}

// closeWord pushes the current word if it is non-empty.
func (p *parser) closeWord() {
	if p.current.Len() > 0 {
		p.words = append(p.words, p.current.String())
	}
	p.current.Reset()
}

// finish closes the command, ok is false when it has no words.
func (p *parser) finish() (Description, bool) {
	p.closeWord()

	if p.assign {
		words := p.words
		if len(words) == 1 {
			words = append(words, "")
		}
		return Description{Kind: Assign, Words: words}, true
	}

	if len(p.words) == 0 {
		return Description{}, false
	}
	return Description{Kind: KindOf(p.words[0]), Words: p.words}, true
}
