package commands

import (
	"fmt"
	"io"
	"strings"
)

type wcCount struct {
	lines int
	words int
	bytes int
	name  string
}

// Add counts a single line, the line terminator isn't part of the line.
func (w *wcCount) Add(line string) {
	w.lines++
	w.words += len(strings.Fields(line))
	w.bytes += len(line)
}

// String formats the counts as fixed width columns followed by the name, if
// any.
func (w *wcCount) String() string {
	out := fmt.Sprintf("%6d%6d%6d", w.lines, w.words, w.bytes)
	if w.name != "" {
		out += " " + w.name
	}
	return out
}

// runWc writes the number of lines, words and bytes of a file or of the
// input.
func runWc(c *Wc, ctx *Context) Result {
	in, closer, err := openInput(ctx, c.Args)
	if err != nil {
		return fail(ctx, c.Name(), err)
	}
	defer closer()

	count := &wcCount{}
	if len(c.Args) == 1 {
		count.name = c.Args[0]
	}

	for {
		line, err := in.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fail(ctx, c.Name(), err)
		}
		count.Add(line)
	}

	if err := ctx.Stdout.WriteLine(count.String()); err != nil {
		return fail(ctx, c.Name(), err)
	}
	return success
}
