package cmd

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/josephlewis42/lish/core/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"
)

func runRoot(t *testing.T, stdin string, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)

	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestRootCommand(t *testing.T) {
	out := runRoot(t, "", "--config", t.TempDir(), "-c", "echo hi | wc")

	assert.Equal(t, "     1     1     2\n", out)
	assert.Equal(t, 0, exitCode)
}

func TestBuiltinsCommand(t *testing.T) {
	out := runRoot(t, "", "builtins")

	assert.Equal(t, "cat\ncd\necho\nexit\ngrep\nls\npwd\nwc\nNAME=VALUE\n", out)
}

func TestHashPasswordCommand(t *testing.T) {
	out := runRoot(t, "from stdin\n", "hash-password", "--username", "bob")

	var users []config.User
	require.NoError(t, yaml.UnmarshalStrict([]byte(out), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "bob", users[0].Username)

	cfg := config.Default(t.TempDir())
	cfg.SSH.Users = users
	assert.True(t, cfg.CheckPassword("bob", "from stdin"))
}

func TestRecordingsCommands(t *testing.T) {
	dir := t.TempDir()
	recordings := filepath.Join(dir, "recordings")
	require.NoError(t, os.MkdirAll(recordings, 0700))

	cast := `{"version": 2, "width": 80, "height": 24}
[0.0, "i", "pwd\r"]
[0.1, "o", "pwd\r\n/tmp\r\n"]
`
	require.NoError(t, ioutil.WriteFile(filepath.Join(recordings, "1234.cast"), []byte(cast), 0600))
	_ = runRoot(t, "", "init", "--config", dir)

	t.Run("list", func(t *testing.T) {
		out := runRoot(t, "", "recordings", "list", "--config", dir)
		assert.Equal(t, "1234\n", out)
	})

	t.Run("play by session", func(t *testing.T) {
		out := runRoot(t, "", "recordings", "play", "--config", dir, "--max-sleep", "0", "1234")
		assert.Equal(t, "pwd\r\n/tmp\r\n", out)
	})

	t.Run("play by path", func(t *testing.T) {
		out := runRoot(t, "", "recordings", "play", "--max-sleep", "0", filepath.Join(recordings, "1234.cast"))
		assert.Equal(t, "pwd\r\n/tmp\r\n", out)
	})
}
