package config

import (
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gossh "golang.org/x/crypto/ssh"
)

func TestInitialize(t *testing.T) {
	tempDir := t.TempDir()
	if _, err := Initialize(tempDir, log.New(ioutil.Discard, "", 0)); err != nil {
		t.Fatal(err)
	}

	// Check that the config is valid
	cfg, err := Load(tempDir)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("Load config.yaml path", func(t *testing.T) {
		_, err := Load(filepath.Join(tempDir, ConfigurationName))
		assert.Nil(t, err)
	})

	t.Run("OpenAppLog", func(t *testing.T) {
		fd, err := cfg.OpenAppLog()
		require.Nil(t, err)
		_, err = fd.WriteString("{}\n")
		assert.Nil(t, err)
		fd.Close()

		fd, err = cfg.ReadAppLog()
		require.Nil(t, err)
		fd.Close()
	})

	t.Run("PrivateKeyPem", func(t *testing.T) {
		keyPem, err := cfg.PrivateKeyPem()
		require.Nil(t, err)

		_, err = gossh.ParsePrivateKey(keyPem)
		assert.Nil(t, err)
	})

	t.Run("Initialize twice", func(t *testing.T) {
		before, err := cfg.PrivateKeyPem()
		require.Nil(t, err)

		_, err = Initialize(tempDir, log.New(ioutil.Discard, "", 0))
		require.Nil(t, err)

		after, err := cfg.PrivateKeyPem()
		require.Nil(t, err)
		assert.Equal(t, before, after, "existing key must be kept")
	})
}

func TestLoad_missing(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_invalid(t *testing.T) {
	cases := map[string]string{
		"unknown field": "prompt: x\ncolor: auto\nbogus: 1\n",
		"bad value":     "color: rainbow\n",
		"not yaml":      "{{{",
	}

	for tn, contents := range cases {
		t.Run(tn, func(t *testing.T) {
			dir := t.TempDir()
			require.Nil(t, os.WriteFile(filepath.Join(dir, ConfigurationName), []byte(contents), 0600))

			_, err := Load(dir)
			assert.Error(t, err)
		})
	}
}
