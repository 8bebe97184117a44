package shell

import (
	"testing"

	"github.com/anmitsu/go-shlex"
	"github.com/josephlewis42/lish/core/vos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testVariables(t *testing.T) *vos.MapEnv {
	t.Helper()

	env := vos.NewMapEnvFromEnvList([]string{
		"HOME=/home/user",
		"SPACED=a  b",
		"CMD=pwd",
		"INDIRECT=$HOME",
	})
	return env
}

func parseLine(t *testing.T, line string) ([]Description, error) {
	t.Helper()
	return Parse(Lex(line), testVariables(t))
}

func TestParse(t *testing.T) {
	cases := map[string]struct {
		line string
		want []Description
	}{
		"blank": {
			line: "",
			want: nil,
		},
		"only whitespace": {
			line: "   \t",
			want: nil,
		},
		"only empty quotes": {
			line: `'' ""`,
			want: nil,
		},
		"builtin": {
			line: "echo hello  world",
			want: []Description{{Kind: PrintArgs, Words: []string{"echo", "hello", "world"}}},
		},
		"external": {
			line: "foo -l",
			want: []Description{{Kind: External, Words: []string{"foo", "-l"}}},
		},
		"substitution isn't split": {
			line: "echo $SPACED",
			want: []Description{{Kind: PrintArgs, Words: []string{"echo", "a  b"}}},
		},
		"substitution isn't rescanned": {
			line: "echo $INDIRECT",
			want: []Description{{Kind: PrintArgs, Words: []string{"echo", "$HOME"}}},
		},
		"unset variable drops the word": {
			line: "echo $UNSET x",
			want: []Description{{Kind: PrintArgs, Words: []string{"echo", "x"}}},
		},
		"substitution joins text": {
			line: "cat $HOME/notes",
			want: []Description{{Kind: LiteralPrint, Words: []string{"cat", "/home/user/notes"}}},
		},
		"empty quotes are dropped": {
			line: `echo ""`,
			want: []Description{{Kind: PrintArgs, Words: []string{"echo"}}},
		},
		"quoted command name": {
			line: `'ec'ho hi`,
			want: []Description{{Kind: PrintArgs, Words: []string{"echo", "hi"}}},
		},
		"substituted command name": {
			line: "$CMD",
			want: []Description{{Kind: WorkingDirectoryPrint, Words: []string{"pwd"}}},
		},
		"assignment": {
			line: "x=1",
			want: []Description{{Kind: Assign, Words: []string{"x", "1"}}},
		},
		"empty assignment": {
			line: "x=",
			want: []Description{{Kind: Assign, Words: []string{"x", ""}}},
		},
		"assignment of substitution": {
			line: "x=$HOME",
			want: []Description{{Kind: Assign, Words: []string{"x", "/home/user"}}},
		},
		"assignment with extra words": {
			line: "x=a b",
			want: []Description{{Kind: Assign, Words: []string{"x", "a", "b"}}},
		},
		"pipeline": {
			line: "cat f | grep -i x|wc",
			want: []Description{
				{Kind: LiteralPrint, Words: []string{"cat", "f"}},
				{Kind: PatternSearch, Words: []string{"grep", "-i", "x"}},
				{Kind: LineWordByteCount, Words: []string{"wc"}},
			},
		},
		"assignment in pipeline": {
			line: "x= | ls",
			want: []Description{
				{Kind: Assign, Words: []string{"x", ""}},
				{Kind: ListDirectory, Words: []string{"ls"}},
			},
		},
		"every builtin": {
			line: "cat|wc|echo|exit|pwd|grep|cd|ls",
			want: []Description{
				{Kind: LiteralPrint, Words: []string{"cat"}},
				{Kind: LineWordByteCount, Words: []string{"wc"}},
				{Kind: PrintArgs, Words: []string{"echo"}},
				{Kind: Terminate, Words: []string{"exit"}},
				{Kind: WorkingDirectoryPrint, Words: []string{"pwd"}},
				{Kind: PatternSearch, Words: []string{"grep"}},
				{Kind: ChangeDirectory, Words: []string{"cd"}},
				{Kind: ListDirectory, Words: []string{"ls"}},
			},
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			got, err := parseLine(t, tc.line)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParse_emptyPipeSegment(t *testing.T) {
	for _, line := range []string{
		"| a",
		"a |",
		"a || b",
		"a | | b",
		"a | '' | b",
		"|",
	} {
		t.Run(line, func(t *testing.T) {
			got, err := parseLine(t, line)
			assert.ErrorIs(t, err, ErrEmptyPipeSegment)
			assert.Nil(t, got)
		})
	}
}

// Word splitting without variables, pipes or assignments matches a POSIX
// shell lexer.
func TestParse_matchesShlex(t *testing.T) {
	for _, line := range []string{
		"a b c",
		"  leading and trailing  ",
		"'a b' c",
		`"a b"   c`,
		`a\ b c`,
		`a'b'c "d"e`,
		`"it's" 'say "hi"'`,
		`one\\two`,
		"tab\tseparated",
	} {
		t.Run(line, func(t *testing.T) {
			want, err := shlex.Split(line, true)
			require.NoError(t, err)

			got, err := parseLine(t, line)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, want, got[0].Words)
		})
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, PatternSearch, KindOf("grep"))
	assert.Equal(t, External, KindOf("assign"))
	assert.Equal(t, External, KindOf("/bin/ls"))
}

func TestBuiltins(t *testing.T) {
	assert.Equal(t, []string{"cat", "cd", "echo", "exit", "grep", "ls", "pwd", "wc"}, Builtins())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "LiteralPrint", LiteralPrint.String())
	assert.Equal(t, "Assign", Assign.String())
	assert.Equal(t, "Kind(99)", Kind(99).String())
}
