package commands

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/josephlewis42/lish/core/stream"
)

// runExternal spawns a program and waits for it to exit. The program writes
// straight to the terminal, its output never passes through later stages.
func runExternal(c *External, ctx *Context) Result {
	if len(c.Argv) == 0 {
		return fail(ctx, c.Name(), errors.New("missing program name"))
	}

	program := c.Argv[0]
	if strings.Contains(program, "/") {
		program = ctx.OS.Abs(program)
	}

	cmd := exec.Command(program, c.Argv[1:]...)
	cmd.Dir = ctx.OS.Getwd()
	cmd.Env = ctx.OS.Environ()
	cmd.Stdout = ctx.TerminalOut
	cmd.Stderr = ctx.TerminalErr
	if c.Piped {
		cmd.Stdin = stream.NewIOReader(ctx.Stdin)
	}

	err := cmd.Run()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return success
	case errors.As(err, &exitErr):
		// Killed processes report -1, keep the code in the 0-255 range.
		return Result{ReturnCode: exitErr.ExitCode() & 0xff}
	case errors.Is(err, exec.ErrNotFound):
		return fail(ctx, c.Name(), fmt.Errorf("command not found"))
	default:
		return fail(ctx, c.Name(), err)
	}
}
