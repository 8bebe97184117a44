package commands

import (
	"github.com/josephlewis42/lish/core/stream"
)

// runCat copies a file, or the input when no file is given, to the output.
func runCat(c *Cat, ctx *Context) Result {
	in, closer, err := openInput(ctx, c.Args)
	if err != nil {
		return fail(ctx, c.Name(), err)
	}
	defer closer()

	if _, err := stream.Copy(ctx.Stdout, in); err != nil {
		return fail(ctx, c.Name(), err)
	}

	return success
}
