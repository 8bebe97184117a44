package shell

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/josephlewis42/lish/commands"
	"github.com/josephlewis42/lish/core/logger"
	"github.com/josephlewis42/lish/core/stream"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestShell creates a session that reads script and writes both of its
// output streams to the session's Out buffer.
func newTestShell(t *testing.T, script string) (*Shell, *testSession) {
	t.Helper()

	ts := newTestSession(t)
	sh := New(ts.OS, Stdio{
		In:  stream.NewReader(strings.NewReader(script)),
		Out: ts.Out,
		Err: ts.Out,
	})
	sh.Hostname = "box"

	return sh, ts
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(
		t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithDiffEngine(goldie.ColoredDiff),
		goldie.WithTestNameForDir(true),
	)
}

const transcriptScript = `echo hello world
pwd
cd docs
pwd
cd
greeting="hi there"
echo $greeting
echo $?
cat missing.txt
echo $?
cat notes.txt | grep -A 1 alpha
cat notes.txt | wc
grep -w alpha notes.txt
ls
| wc
echo $?
exit 7
echo never
`

func TestShellInteractiveTranscript(t *testing.T) {
	sh, ts := newTestShell(t, transcriptScript)
	sh.Interactive = true

	assert.Equal(t, 7, sh.Run())

	newGoldie(t).Assert(t, "transcript", ts.Out.Bytes())
}

func TestShellScriptTranscript(t *testing.T) {
	sh, ts := newTestShell(t, transcriptScript)

	assert.Equal(t, 7, sh.Run())

	newGoldie(t).Assert(t, "transcript", ts.Out.Bytes())
}

func TestShell_Run(t *testing.T) {
	cases := map[string]struct {
		script string
		want   int
	}{
		"empty input":          {script: "", want: 0},
		"last line's code":     {script: "echo a\ncat missing", want: commands.ExitFailure},
		"exit without code":    {script: "cat missing\nexit", want: 0},
		"exit with code":       {script: "exit 3\nexit 4", want: 3},
		"bad exit code":        {script: "exit nope\necho a", want: commands.ExitFailure},
		"exit in a pipeline":   {script: "echo a | exit 2 | echo b", want: 2},
		"syntax errors go on":  {script: "a |\necho ok", want: 0},
		"too many exit args":   {script: "exit 1 2\necho never", want: commands.ExitFailure},
		"no trailing newline":  {script: "exit 9", want: 9},
		"trailing blank lines": {script: "exit 5\n\n", want: 5},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			sh, _ := newTestShell(t, tc.script)
			assert.Equal(t, tc.want, sh.Run())
		})
	}
}

func TestShell_RunLine(t *testing.T) {
	sh, ts := newTestShell(t, "")

	assert.Equal(t, commands.Result{}, sh.RunLine("x=1 | echo $x"))
	assert.Equal(t, "\n", ts.Out.String(), "variables expand before the line runs")
	ts.Out.Reset()

	assert.Equal(t, commands.Result{}, sh.RunLine("echo $x"))
	assert.Equal(t, "1\n", ts.Out.String())
}

func TestShell_RunLine_maxGrepContext(t *testing.T) {
	sh, ts := newTestShell(t, "")

	assert.Equal(t, commands.Result{}, sh.RunLine("grep -A 9223372036854775807 beta notes.txt"))
	assert.Equal(t, "beta\ngamma\nalphabet\n", ts.Out.String())
}

func TestShell_returnCode(t *testing.T) {
	sh, ts := newTestShell(t, "")

	sh.RunLine("cat missing")
	assert.Equal(t, commands.ExitFailure, sh.LastReturnCode())

	// Lines without commands leave $? alone.
	assert.Equal(t, commands.Result{}, sh.RunLine("   "))
	assert.Equal(t, commands.ExitFailure, sh.LastReturnCode())

	ts.Out.Reset()
	sh.RunLine("echo $?")
	assert.Equal(t, "-1\n", ts.Out.String())
	assert.Equal(t, "0", sh.Getenv("?"))
}

func TestShell_syntaxError(t *testing.T) {
	sh, ts := newTestShell(t, "")

	res := sh.RunLine("echo a || echo b")

	assert.Equal(t, commands.Result{ReturnCode: commands.ExitFailure}, res)
	assert.Equal(t, "lish: syntax error: empty command in pipeline: command 2\n", ts.Out.String())
	assert.Equal(t, commands.ExitFailure, sh.LastReturnCode())
}

func TestShell_prompt(t *testing.T) {
	cases := map[string]struct {
		env  map[string]string
		dir  string
		want string
	}{
		"default": {
			want: "user@box:~$ ",
		},
		"below home": {
			dir:  "/home/user/docs",
			want: "user@box:~/docs$ ",
		},
		"outside home": {
			dir:  "/home",
			want: "user@box:/home$ ",
		},
		"root": {
			env:  map[string]string{"USER": "root"},
			want: "root@box:~# ",
		},
		"PS1": {
			env:  map[string]string{"PS1": `[\w]\$ `},
			want: "[~]$ ",
		},
		"similar prefix isn't home": {
			env:  map[string]string{"HOME": "/home/us"},
			want: "user@box:/home/user$ ",
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			sh, ts := newTestShell(t, "")
			for k, v := range tc.env {
				require.NoError(t, ts.OS.Setenv(k, v))
			}
			if tc.dir != "" {
				require.NoError(t, ts.OS.Chdir(tc.dir))
			}

			assert.Equal(t, tc.want, sh.prompt())
		})
	}
}

func TestShell_color(t *testing.T) {
	sh, ts := newTestShell(t, "")
	sh.SetColor(true)

	assert.Contains(t, sh.prompt(), "\x1b[")

	sh.RunLine("|")
	assert.True(t, strings.HasPrefix(ts.Out.String(), "\x1b["), ts.Out.String())

	sh.SetColor(false)
	assert.Equal(t, "user@box:~$ ", sh.prompt())
}

func TestShell_events(t *testing.T) {
	sh, _ := newTestShell(t, "echo a | wc\n| x\ngrep --bogus\nexit 4\n")
	var logBuf bytes.Buffer
	sh.Log = logger.NewJsonLinesLogRecorder(&logBuf).NewSession()

	assert.Equal(t, 4, sh.Run())

	var entries []*logger.LogEntry
	require.NoError(t, logger.ReadJSONLinesLog(&logBuf, func(le *logger.LogEntry) {
		entries = append(entries, le)
	}))

	require.Len(t, entries, 7)

	var events []logger.LogType
	for _, entry := range entries {
		assert.Equal(t, sh.Log.SessionID(), entry.SessionID)
		events = append(events, entry.Event())
	}

	assert.Equal(t, []logger.LogType{
		&logger.SessionStart{User: "user", Dir: "/home/user"},
		&logger.Command{
			Line:  "echo a | wc",
			Kinds: []string{"PrintArgs", "LineWordByteCount"},
		},
		&logger.SyntaxError{Line: "| x", Error: "empty command in pipeline: command 1"},
		&logger.InvalidInvocation{
			Command: []string{"grep", "--bogus"},
			Error:   events[3].(*logger.InvalidInvocation).Error,
		},
		&logger.Command{
			Line:       "grep --bogus",
			Kinds:      []string{"PatternSearch"},
			ReturnCode: commands.ExitFailure,
		},
		&logger.Command{
			Line:       "exit 4",
			Kinds:      []string{"Terminate"},
			ReturnCode: 4,
			Terminate:  true,
		},
		&logger.SessionEnd{ReturnCode: 4},
	}, events)
}

func TestShell_RunCommand(t *testing.T) {
	sh, ts := newTestShell(t, "from input\n")

	assert.Equal(t, 0, sh.RunCommand("cat | wc"))
	assert.Equal(t, "     1     2    10\n", ts.Out.String())

	assert.Equal(t, 3, sh.RunCommand("exit 3"))
	assert.Equal(t, commands.ExitFailure, sh.RunCommand("|"))
}
