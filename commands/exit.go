package commands

import (
	"fmt"
	"strconv"
)

// runExit requests the session to end whatever its arguments. An optional
// numeric argument becomes the return code.
func runExit(c *Exit, ctx *Context) Result {
	switch len(c.Args) {
	case 0:
		return Result{Terminate: true}
	case 1:
		code, err := strconv.Atoi(c.Args[0])
		if err != nil {
			res := fail(ctx, c.Name(), fmt.Errorf("%s: numeric argument required", c.Args[0]))
			res.Terminate = true
			return res
		}
		return Result{ReturnCode: code, Terminate: true}
	default:
		res := fail(ctx, c.Name(), errTooManyArgs)
		res.Terminate = true
		return res
	}
}
