package commands

import (
	"fmt"
	"io"

	"github.com/josephlewis42/lish/core/stream"
	"github.com/josephlewis42/lish/core/vos"
)

// ExitFailure is the return code of a command that failed internally.
const ExitFailure = -1

// Result is the outcome of running a single command.
type Result struct {
	// ReturnCode is 0 on success, negative on internal failure or the exit
	// status of an external program.
	ReturnCode int
	// Terminate asks the session to shut down cleanly, it isn't an error.
	Terminate bool
}

// Context holds everything a command can touch while it runs.
type Context struct {
	OS vos.VOS

	Stdin  stream.Reader
	Stdout stream.Writer
	Stderr stream.Writer

	// TerminalOut and TerminalErr are the session's real output streams.
	// External programs write to them directly rather than through Stdout
	// and Stderr.
	TerminalOut io.Writer
	TerminalErr io.Writer
}

// Command is the closed set of commands the interpreter can run. Each
// variant holds only the data it needs.
type Command interface {
	// Name is the name the command reports errors under.
	Name() string

	isCommand()
}

// Execute runs cmd to completion. It never panics or returns an error,
// failures are reported on ctx.Stderr and in the result code.
func Execute(cmd Command, ctx *Context) Result {
	switch c := cmd.(type) {
	case *Cat:
		return runCat(c, ctx)
	case *Wc:
		return runWc(c, ctx)
	case *Echo:
		return runEcho(c, ctx)
	case *Exit:
		return runExit(c, ctx)
	case *Pwd:
		return runPwd(c, ctx)
	case *Grep:
		return runGrep(c, ctx)
	case *Assign:
		return runAssign(c, ctx)
	case *Cd:
		return runCd(c, ctx)
	case *Ls:
		return runLs(c, ctx)
	case *External:
		return runExternal(c, ctx)
	default:
		return fail(ctx, cmd.Name(), fmt.Errorf("unsupported command"))
	}
}

// Cat prints the lines of a file or of its input.
type Cat struct{ Args []string }

// Wc counts the lines, words and bytes of a file or of its input.
type Wc struct{ Args []string }

// Echo prints its arguments separated by spaces.
type Echo struct{ Args []string }

// Exit asks the session to terminate.
type Exit struct{ Args []string }

// Pwd prints the working directory.
type Pwd struct{}

// Assign sets a variable, Args holds the name and the value.
type Assign struct{ Args []string }

// Cd changes the working directory.
type Cd struct{ Args []string }

// Ls lists a directory.
type Ls struct{ Args []string }

// External runs a program outside of the interpreter, Argv[0] is the program.
type External struct {
	Argv []string
	// Piped is set when an earlier stage feeds this one, the program then
	// reads that stage's output on its standard input.
	Piped bool
}

func (*Cat) Name() string    { return "cat" }
func (*Wc) Name() string     { return "wc" }
func (*Echo) Name() string   { return "echo" }
func (*Exit) Name() string   { return "exit" }
func (*Pwd) Name() string    { return "pwd" }
func (*Grep) Name() string   { return "grep" }
func (*Assign) Name() string { return "assign" }
func (*Cd) Name() string     { return "cd" }
func (*Ls) Name() string     { return "ls" }

func (e *External) Name() string {
	if len(e.Argv) == 0 {
		return "exec"
	}
	return e.Argv[0]
}

func (*Cat) isCommand()      {}
func (*Wc) isCommand()       {}
func (*Echo) isCommand()     {}
func (*Exit) isCommand()     {}
func (*Pwd) isCommand()      {}
func (*Grep) isCommand()     {}
func (*Assign) isCommand()   {}
func (*Cd) isCommand()       {}
func (*Ls) isCommand()       {}
func (*External) isCommand() {}
