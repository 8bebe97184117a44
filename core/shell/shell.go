// Package shell reads lines of input, turns them into pipelines of commands
// and runs them.
package shell

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/josephlewis42/lish/commands"
	"github.com/josephlewis42/lish/core/logger"
	"github.com/josephlewis42/lish/core/stream"
	"github.com/josephlewis42/lish/core/vos"
)

const (
	EnvPrompt   = "PS1"
	EnvHostname = "HOSTNAME"

	DefaultPrompt = `\u@\h:\w\$ `

	// ErrorPrefix is written before errors the interpreter reports itself.
	ErrorPrefix = "lish:"
)

// Shell is a single interpreter session.
type Shell struct {
	OS    vos.VOS
	Stdio Stdio

	// Interactive shells write a prompt before reading each line.
	Interactive bool
	// Prompt is the prompt template used when PS1 isn't set.
	Prompt string
	// Hostname is substituted for \h, it defaults to HOSTNAME or the host's
	// name.
	Hostname string
	// RemoteAddr is recorded with the session start when set.
	RemoteAddr string

	Log *logger.SessionLogger

	lastRet int
	palette palette
}

// New creates a session reading from stdio.In. Colors start disabled.
func New(virtOS vos.VOS, stdio Stdio) *Shell {
	if stdio.In == nil {
		stdio.In = stream.Empty
	}
	stdio.Out = writerOrDiscard(stdio.Out)
	stdio.Err = writerOrDiscard(stdio.Err)

	return &Shell{
		OS:      virtOS,
		Stdio:   stdio,
		Prompt:  DefaultPrompt,
		Log:     logger.NewNopLogger().Sessionless(),
		palette: newPalette(false),
	}
}

// SetColor enables or disables colored prompts and errors.
func (s *Shell) SetColor(enabled bool) {
	s.palette = newPalette(enabled)
}

// LastReturnCode is the result code of the most recent line, the value of $?.
func (s *Shell) LastReturnCode() int {
	return s.lastRet
}

// Getenv resolves variables for substitution, including $?.
func (s *Shell) Getenv(name string) string {
	if name == "?" {
		return strconv.Itoa(s.lastRet)
	}
	return s.OS.Getenv(name)
}

// Run reads and runs lines until the input ends or a command asks to
// terminate. It returns the session's exit code.
func (s *Shell) Run() int {
	s.recordStart()

	ret := s.loop()

	s.record(&logger.SessionEnd{ReturnCode: ret})
	return ret
}

// RunCommand runs a single line as a whole session, like sh -c. Commands
// still read their input from the session input.
func (s *Shell) RunCommand(line string) int {
	s.recordStart()

	result := s.RunLine(line)

	s.record(&logger.SessionEnd{ReturnCode: result.ReturnCode})
	return result.ReturnCode
}

func (s *Shell) recordStart() {
	s.record(&logger.SessionStart{
		User:        s.OS.Getenv(vos.EnvUser),
		RemoteAddr:  s.RemoteAddr,
		Dir:         s.OS.Getwd(),
		Interactive: s.Interactive,
	})
}

func (s *Shell) loop() int {
	for {
		if s.Interactive {
			io.WriteString(s.Stdio.Out, s.prompt())
		}

		line, err := s.Stdio.In.ReadLine()
		switch {
		case err == io.EOF:
			return s.lastRet
		case err != nil:
			s.errorf("read error: %v", err)
			return s.lastRet
		}

		if result := s.RunLine(line); result.Terminate {
			return result.ReturnCode
		}
	}
}

// RunLine runs a single line of input. A line without commands does
// nothing and returns a zero result.
func (s *Shell) RunLine(line string) commands.Result {
	descriptions, err := Parse(Lex(line), s)
	if err != nil {
		s.errorf("syntax error: %v", err)
		s.record(&logger.SyntaxError{Line: line, Error: err.Error()})
		s.lastRet = commands.ExitFailure
		return commands.Result{ReturnCode: commands.ExitFailure}
	}
	if len(descriptions) == 0 {
		return commands.Result{}
	}

	stages := Build(descriptions, s.OS, s.Stdio)
	s.recordInvalidInvocations(descriptions, stages)

	result := Execute(stages)
	s.lastRet = result.ReturnCode

	kinds := make([]string, len(descriptions))
	for i, desc := range descriptions {
		kinds[i] = desc.Kind.String()
	}
	s.record(&logger.Command{
		Line:       line,
		Kinds:      kinds,
		ReturnCode: result.ReturnCode,
		Terminate:  result.Terminate,
	})

	return result
}

func (s *Shell) recordInvalidInvocations(descriptions []Description, stages []Stage) {
	for i, stage := range stages {
		grep, ok := stage.Command.(*commands.Grep)
		if !ok || grep.Err == nil {
			continue
		}
		s.record(&logger.InvalidInvocation{
			Command: descriptions[i].Words,
			Error:   grep.Err.Error(),
		})
	}
}

func (s *Shell) record(event logger.LogType) {
	if s.Log == nil {
		return
	}
	_ = s.Log.Record(event)
}

func (s *Shell) errorf(format string, args ...interface{}) {
	fmt.Fprintf(s.Stdio.Err, "%s %s\n", s.palette.err.Sprint(ErrorPrefix), fmt.Sprintf(format, args...))
}

func (s *Shell) hostname() string {
	if s.Hostname != "" {
		return s.Hostname
	}
	if host := s.OS.Getenv(EnvHostname); host != "" {
		return host
	}
	host, _ := os.Hostname()
	return host
}

// prompt expands \u, \h, \w and \$ in the prompt template.
func (s *Shell) prompt() string {
	prompt := s.OS.Getenv(EnvPrompt)
	if prompt == "" {
		prompt = s.Prompt
	}

	user := s.OS.Getenv(vos.EnvUser)

	pwd := s.OS.Getwd()
	if home, err := s.OS.UserHomeDir(); err == nil && home != "" && home != "/" {
		if pwd == home || strings.HasPrefix(pwd, strings.TrimSuffix(home, "/")+"/") {
			pwd = "~" + strings.TrimPrefix(pwd, home)
		}
	}

	sigil := "$"
	if user == "root" {
		sigil = "#"
	}

	return strings.NewReplacer(
		`\u`, s.palette.user.Sprint(user),
		`\h`, s.palette.user.Sprint(s.hostname()),
		`\w`, s.palette.dir.Sprint(pwd),
		`\$`, sigil,
	).Replace(prompt)
}

type palette struct {
	user *color.Color
	dir  *color.Color
	err  *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		user: color.New(color.FgGreen, color.Bold),
		dir:  color.New(color.FgBlue, color.Bold),
		err:  color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.user, p.dir, p.err} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}
