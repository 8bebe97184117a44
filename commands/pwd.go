package commands

// runPwd prints the name of the current working directory.
func runPwd(c *Pwd, ctx *Context) Result {
	if err := ctx.Stdout.WriteLine(ctx.OS.Getwd()); err != nil {
		return fail(ctx, c.Name(), err)
	}
	return success
}
