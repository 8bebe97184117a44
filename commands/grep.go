package commands

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/josephlewis42/lish/core/stream"
)

// GrepOptions holds the decoded flags and operands of grep.
type GrepOptions struct {
	Pattern string
	// File is the file to search, empty to search the input.
	File string

	IgnoreCase bool
	// Word matches the pattern against whole whitespace delimited words.
	Word bool
	// After is the number of context lines printed after each match.
	After int
	Help  bool
}

// Grep searches lines for a regular expression. A Grep whose flags couldn't
// be decoded keeps the decoding error and fails when run.
type Grep struct {
	Options GrepOptions
	Err     error

	help string
}

// NewGrep decodes grep's arguments. Decoding never fails outright, errors
// are kept in the returned command.
func NewGrep(args []string) *Grep {
	cmd := &SimpleCommand{
		Use:   "grep [-iw] [-A NUM] PATTERN [FILE]",
		Short: "Search a file, or the input, for lines matching a regular expression.",
	}

	flags := cmd.Flags()
	ignoreCase := flags.BoolLong("ignore-case", 'i', "ignore case distinctions")
	word := flags.BoolLong("word-regexp", 'w', "match only whole words")
	after := flags.IntLong("after-context", 'A', 0, "print NUM lines of trailing context", "NUM")
	help := flags.BoolLong("help", 'h', "show this help and exit")

	out := &Grep{help: cmd.Help()}
	if err := cmd.Parse("grep", args); err != nil {
		out.Err = err
		return out
	}

	opts := GrepOptions{
		IgnoreCase: *ignoreCase,
		Word:       *word,
		After:      *after,
		Help:       *help,
	}

	positional := flags.Args()
	switch {
	case opts.Help:
		// Operands don't matter.
	case len(positional) == 0:
		out.Err = errors.New("missing argument PATTERN")
		return out
	case len(positional) > 2:
		out.Err = errTooManyArgs
		return out
	case opts.After < 0:
		out.Err = fmt.Errorf("%d: invalid context length argument", opts.After)
		return out
	default:
		opts.Pattern = positional[0]
		if len(positional) == 2 {
			opts.File = positional[1]
		}
	}

	out.Options = opts
	return out
}

func runGrep(c *Grep, ctx *Context) Result {
	if c.Err != nil {
		res := fail(ctx, c.Name(), c.Err)
		// Best effort, the failure is already reported.
		_ = stream.WriteString(ctx.Stderr, c.help)
		return res
	}

	opts := c.Options
	if opts.Help {
		if err := stream.WriteString(ctx.Stdout, c.help); err != nil {
			return fail(ctx, c.Name(), err)
		}
		return success
	}

	regex, err := compileGrepPattern(opts)
	if err != nil {
		return fail(ctx, c.Name(), err)
	}

	var operands []string
	if opts.File != "" {
		operands = append(operands, opts.File)
	}
	lines, err := readInput(ctx, operands)
	if err != nil {
		return fail(ctx, c.Name(), err)
	}

	matches := MatchLines(lines, regex, opts.Word)
	for _, line := range SelectContext(lines, matches, opts.After) {
		if err := ctx.Stdout.WriteLine(line); err != nil {
			return fail(ctx, c.Name(), err)
		}
	}

	return success
}

func compileGrepPattern(opts GrepOptions) (*regexp.Regexp, error) {
	pattern := opts.Pattern
	if opts.Word {
		pattern = "^(?:" + pattern + ")$"
	}
	if opts.IgnoreCase {
		pattern = "(?i)" + pattern
	}
	return regexp.Compile(pattern)
}

// MatchLines returns the sorted indices of the lines matching regex. In word
// mode regex must match one of the whitespace delimited words of a line,
// otherwise it may match anywhere in the line.
func MatchLines(lines []string, regex *regexp.Regexp, word bool) []int {
	var out []int
	for i, line := range lines {
		if lineMatches(line, regex, word) {
			out = append(out, i)
		}
	}
	return out
}

func lineMatches(line string, regex *regexp.Regexp, word bool) bool {
	if !word {
		return regex.MatchString(line)
	}

	for _, w := range strings.Fields(line) {
		if regex.MatchString(w) {
			return true
		}
	}
	return false
}

// Window is an inclusive range of matched line indices printed as a single
// block.
type Window struct {
	Lo int
	Hi int
}

// MergeWindows groups sorted match indices into windows. A match starts a new
// window when it is more than after lines past the right edge of the current
// one, otherwise it extends the current window.
func MergeWindows(matches []int, after int) []Window {
	if len(matches) == 0 {
		return nil
	}

	var out []Window
	current := Window{Lo: matches[0], Hi: matches[0]}
	for _, idx := range matches[1:] {
		// Subtract rather than add so huge context lengths can't overflow.
		if idx-current.Hi > after {
			out = append(out, current)
			current = Window{Lo: idx, Hi: idx}
			continue
		}
		current.Hi = idx
	}

	return append(out, current)
}

// SelectContext returns the lines of each window followed by up to after
// lines of trailing context, clamped to the end of lines.
func SelectContext(lines []string, matches []int, after int) []string {
	var out []string
	for _, w := range MergeWindows(matches, after) {
		last := len(lines) - 1
		if after < last-w.Hi {
			last = w.Hi + after
		}
		out = append(out, lines[w.Lo:last+1]...)
	}
	return out
}
