package commands

import "fmt"

// runAssign sets Args[0] to Args[1] in the environment.
func runAssign(c *Assign, ctx *Context) Result {
	if len(c.Args) != 2 {
		return fail(ctx, c.Name(), fmt.Errorf("expected NAME=VALUE, got %d words", len(c.Args)))
	}

	if err := ctx.OS.Setenv(c.Args[0], c.Args[1]); err != nil {
		return fail(ctx, c.Name(), err)
	}
	return success
}
