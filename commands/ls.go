package commands

import (
	"fmt"
)

// runLs prints the names of the entries of a directory, the working
// directory by default.
func runLs(c *Ls, ctx *Context) Result {
	dir := "."
	switch len(c.Args) {
	case 0:
	case 1:
		dir = c.Args[0]
	default:
		return fail(ctx, c.Name(), errTooManyArgs)
	}

	fi, err := ctx.OS.Stat(dir)
	if err != nil {
		return fail(ctx, c.Name(), err)
	}
	if !fi.IsDir() {
		return fail(ctx, c.Name(), fmt.Errorf("%s: not a directory", dir))
	}

	entries, err := ctx.OS.ReadDir(dir)
	if err != nil {
		return fail(ctx, c.Name(), err)
	}

	for _, entry := range entries {
		if err := ctx.Stdout.WriteLine(entry.Name()); err != nil {
			return fail(ctx, c.Name(), err)
		}
	}

	return success
}
