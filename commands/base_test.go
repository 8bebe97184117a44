package commands

import (
	"bytes"
	"testing"

	"github.com/josephlewis42/lish/core/stream"
	"github.com/josephlewis42/lish/core/vos"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// testRun holds a command context backed by an in-memory filesystem.
type testRun struct {
	Fs     afero.Fs
	OS     *vos.OS
	Stdout *stream.Buffer
	Stderr *stream.Buffer
	// Terminal collects the output of external programs.
	Terminal *bytes.Buffer

	ctx *Context
}

// newTestRun creates a context in /home/user whose input holds stdin.
func newTestRun(t *testing.T, stdin ...string) *testRun {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.Nil(t, fs.MkdirAll("/home/user", 0755))

	virtOS := vos.NewOS(fs, "/home/user", nil)
	virtOS.Setenv(vos.EnvHome, "/home/user")

	tr := &testRun{
		Fs:       fs,
		OS:       virtOS,
		Stdout:   stream.NewBuffer(),
		Stderr:   stream.NewBuffer(),
		Terminal: &bytes.Buffer{},
	}
	tr.ctx = &Context{
		OS:          virtOS,
		Stdin:       stream.NewBuffer(stdin...),
		Stdout:      tr.Stdout,
		Stderr:      tr.Stderr,
		TerminalOut: tr.Terminal,
		TerminalErr: tr.Terminal,
	}

	return tr
}

// WriteFile creates a file relative to the filesystem root.
func (tr *testRun) WriteFile(t *testing.T, name, contents string) {
	t.Helper()
	require.Nil(t, afero.WriteFile(tr.Fs, name, []byte(contents), 0644))
}

// Run executes cmd and returns its result.
func (tr *testRun) Run(cmd Command) Result {
	return Execute(cmd, tr.ctx)
}

// Out returns every line written to the output.
func (tr *testRun) Out(t *testing.T) []string {
	t.Helper()
	lines, err := stream.ReadAll(tr.Stdout)
	require.Nil(t, err)
	return lines
}

// Err returns every line written to the error stream.
func (tr *testRun) Err(t *testing.T) []string {
	t.Helper()
	lines, err := stream.ReadAll(tr.Stderr)
	require.Nil(t, err)
	return lines
}
