package shell

import (
	"io"

	"github.com/josephlewis42/lish/commands"
	"github.com/josephlewis42/lish/core/stream"
	"github.com/josephlewis42/lish/core/vos"
)

// Stdio holds the real streams of a session.
type Stdio struct {
	In  stream.Reader
	Out io.Writer
	Err io.Writer
}

// Stage is a command ready to run with its streams attached.
type Stage struct {
	Command commands.Command
	Context *commands.Context
}

// Build turns descriptions into runnable stages. Stage i reads what stage i-1
// wrote to a shared buffer, the first stage reads the session input and the
// last writes to the session output. All stages report errors on the session
// error stream.
func Build(descriptions []Description, virtOS vos.VOS, stdio Stdio) []Stage {
	if len(descriptions) == 0 {
		return nil
	}

	stdin := stdio.In
	if stdin == nil {
		stdin = stream.Empty
	}
	stderr := stream.NewWriter(stdio.Err)

	stages := make([]Stage, len(descriptions))
	for i, desc := range descriptions {
		ctx := &commands.Context{
			OS:          virtOS,
			Stdin:       stdin,
			Stderr:      stderr,
			TerminalOut: writerOrDiscard(stdio.Out),
			TerminalErr: writerOrDiscard(stdio.Err),
		}

		if i == len(descriptions)-1 {
			ctx.Stdout = stream.NewWriter(stdio.Out)
		} else {
			buf := stream.NewBuffer()
			ctx.Stdout = buf
			stdin = buf
		}

		stages[i] = Stage{
			Command: newCommand(desc, i > 0),
			Context: ctx,
		}
	}

	return stages
}

// newCommand creates the command for a description. Every kind except
// External and Assign drops the command name from its arguments.
func newCommand(desc Description, piped bool) commands.Command {
	args := append([]string(nil), desc.Words...)
	if desc.Kind != External && desc.Kind != Assign && len(args) > 0 {
		args = args[1:]
	}

	switch desc.Kind {
	case LiteralPrint:
		return &commands.Cat{Args: args}
	case LineWordByteCount:
		return &commands.Wc{Args: args}
	case PrintArgs:
		return &commands.Echo{Args: args}
	case Terminate:
		return &commands.Exit{Args: args}
	case WorkingDirectoryPrint:
		return &commands.Pwd{}
	case PatternSearch:
		return commands.NewGrep(args)
	case Assign:
		return &commands.Assign{Args: args}
	case ChangeDirectory:
		return &commands.Cd{Args: args}
	case ListDirectory:
		return &commands.Ls{Args: args}
	default:
		return &commands.External{Argv: args, Piped: piped}
	}
}

func writerOrDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}
