package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type unknownCommand struct{}

func (unknownCommand) Name() string { return "unknown" }
func (unknownCommand) isCommand()   {}

func TestExecute_unknownCommand(t *testing.T) {
	tr := newTestRun(t)

	res := tr.Run(unknownCommand{})

	assert.Equal(t, Result{ReturnCode: ExitFailure}, res)
	assert.Len(t, tr.Err(t), 1)
}

func TestNames(t *testing.T) {
	cases := map[string]Command{
		"cat":    &Cat{},
		"wc":     &Wc{},
		"echo":   &Echo{},
		"exit":   &Exit{},
		"pwd":    &Pwd{},
		"grep":   &Grep{},
		"assign": &Assign{},
		"cd":     &Cd{},
		"ls":     &Ls{},
		"git":    &External{Argv: []string{"git", "status"}},
		"exec":   &External{},
	}

	for expected, cmd := range cases {
		t.Run(expected, func(t *testing.T) {
			assert.Equal(t, expected, cmd.Name())
		})
	}
}

func TestEcho(t *testing.T) {
	tr := newTestRun(t)

	res := tr.Run(&Echo{Args: []string{"hello", "world"}})

	assert.Equal(t, Result{}, res)
	assert.Equal(t, []string{"hello world"}, tr.Out(t))
}

func TestEcho_noArgs(t *testing.T) {
	tr := newTestRun(t)

	assert.Equal(t, Result{}, tr.Run(&Echo{}))
	assert.Equal(t, []string{""}, tr.Out(t))
}

func TestPwd(t *testing.T) {
	tr := newTestRun(t)

	assert.Equal(t, Result{}, tr.Run(&Pwd{}))
	assert.Equal(t, []string{"/home/user"}, tr.Out(t))
}

func TestExit(t *testing.T) {
	cases := map[string]struct {
		args     []string
		expected Result
		errLines int
	}{
		"no-args":     {nil, Result{ReturnCode: 0, Terminate: true}, 0},
		"code":        {[]string{"3"}, Result{ReturnCode: 3, Terminate: true}, 0},
		"non-numeric": {[]string{"x"}, Result{ReturnCode: ExitFailure, Terminate: true}, 1},
		"too-many":    {[]string{"1", "2"}, Result{ReturnCode: ExitFailure, Terminate: true}, 1},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			tr := newTestRun(t)

			assert.Equal(t, tc.expected, tr.Run(&Exit{Args: tc.args}))
			assert.Len(t, tr.Err(t), tc.errLines)
		})
	}
}

func TestAssign(t *testing.T) {
	tr := newTestRun(t)

	assert.Equal(t, Result{}, tr.Run(&Assign{Args: []string{"x", "v"}}))
	assert.Equal(t, "v", tr.OS.Getenv("x"))
	assert.Equal(t, "", tr.OS.Getenv("unset"))

	assert.Equal(t, Result{}, tr.Run(&Assign{Args: []string{"x", ""}}))
	val, ok := tr.OS.LookupEnv("x")
	assert.True(t, ok)
	assert.Equal(t, "", val)
}

func TestAssign_wrongShape(t *testing.T) {
	for tn, args := range map[string][]string{
		"empty":     nil,
		"name-only": {"x"},
		"too-many":  {"x", "a", "b"},
	} {
		t.Run(tn, func(t *testing.T) {
			tr := newTestRun(t)

			assert.Equal(t, ExitFailure, tr.Run(&Assign{Args: args}).ReturnCode)
			assert.Equal(t, []string{"HOME=/home/user"}, tr.OS.Environ())
			assert.Empty(t, tr.Out(t))
		})
	}
}
