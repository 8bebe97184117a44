package commands

// runCd changes the working directory, without arguments it moves to the
// user's home directory.
func runCd(c *Cd, ctx *Context) Result {
	var target string
	switch len(c.Args) {
	case 0:
		home, err := ctx.OS.UserHomeDir()
		if err != nil {
			return fail(ctx, c.Name(), err)
		}
		target = home
	case 1:
		target = c.Args[0]
	default:
		return fail(ctx, c.Name(), errTooManyArgs)
	}

	if err := ctx.OS.Chdir(target); err != nil {
		return fail(ctx, c.Name(), err)
	}
	return success
}
