// Package commands implements the commands the interpreter can run.
package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/josephlewis42/lish/core/stream"
	getopt "github.com/pborman/getopt/v2"
)

var errTooManyArgs = errors.New("too many arguments")

// success is the result of a command that ran without problems.
var success = Result{}

// fail reports err on the error stream and returns a failed result.
func fail(ctx *Context, name string, err error) Result {
	// Nothing else can be done if the error stream is broken.
	_ = ctx.Stderr.WriteLine(fmt.Sprintf("%s: %v", name, err))
	return Result{ReturnCode: ExitFailure}
}

// openInput resolves the input of commands that take at most one FILE
// operand: the named file relative to the working directory or, without
// operands, the inherited input. The returned close function is never nil
// and must be called once the input is consumed.
func openInput(ctx *Context, args []string) (stream.Reader, func() error, error) {
	switch len(args) {
	case 0:
		return ctx.Stdin, func() error { return nil }, nil
	case 1:
		fd, err := ctx.OS.Open(args[0])
		if err != nil {
			return nil, nil, err
		}
		return stream.NewReader(fd), fd.Close, nil
	default:
		return nil, nil, errTooManyArgs
	}
}

// readInput reads every line of the input described by args.
func readInput(ctx *Context, args []string) ([]string, error) {
	in, closer, err := openInput(ctx, args)
	if err != nil {
		return nil, err
	}
	defer closer()

	return stream.ReadAll(in)
}

// SimpleCommand decodes getopt style flags for a command.
type SimpleCommand struct {
	// Use holds a one line usage string
	Use string
	// Short holds a one line description of the command.
	Short string

	flags *getopt.Set
}

// Flags gets the command's flag set.
func (s *SimpleCommand) Flags() *getopt.Set {
	if s.flags == nil {
		s.flags = getopt.New()
	}

	return s.flags
}

// PrintHelp writes help for the command to the given writer.
func (s *SimpleCommand) PrintHelp(w io.Writer) {
	fmt.Fprint(w, "usage: ")
	fmt.Fprintln(w, s.Use)
	fmt.Fprintln(w, s.Short)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	s.Flags().PrintOptions(w)
}

// Help renders PrintHelp to a string.
func (s *SimpleCommand) Help() string {
	var sb strings.Builder
	s.PrintHelp(&sb)
	return sb.String()
}

// Parse decodes args, which must not include the command name. Positional
// arguments are available through Flags().Args() afterwards.
func (s *SimpleCommand) Parse(name string, args []string) error {
	argv := append([]string{name}, args...)
	return s.Flags().Getopt(argv, nil)
}
