package commands

import "strings"

func runEcho(c *Echo, ctx *Context) Result {
	if err := ctx.Stdout.WriteLine(strings.Join(c.Args, " ")); err != nil {
		return fail(ctx, c.Name(), err)
	}
	return success
}
