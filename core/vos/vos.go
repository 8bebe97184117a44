// Package vos holds the environment an interpreter session runs in: its
// variables, working directory and view of the filesystem.
package vos

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	EnvHome = "HOME"
	EnvPWD  = "PWD"
	EnvUser = "USER"
)

// ErrNotDirectory is returned when changing into something other than a
// directory.
var ErrNotDirectory = errors.New("not a directory")

// VFS is the read side of the filesystem that commands use. Relative names
// are resolved against the current working directory.
type VFS interface {
	Open(name string) (afero.File, error)
	Stat(name string) (os.FileInfo, error)
	ReadDir(name string) ([]os.FileInfo, error)
}

// VOS provides a virtual OS interface to commands.
type VOS interface {
	VEnv
	VFS

	// Getwd returns the absolute current working directory.
	Getwd() string
	// Chdir changes the working directory, the target must be an existing
	// directory.
	Chdir(dir string) error
	// UserHomeDir returns the session user's home directory.
	UserHomeDir() (string, error)
	// Abs resolves name against the working directory.
	Abs(name string) string
}

// OS is a VOS backed by an afero filesystem.
type OS struct {
	*MapEnv

	fs   afero.Fs
	dir  string
	home string
}

var _ VOS = (*OS)(nil)

// NewOS creates an environment rooted at dir on the given filesystem. If env
// is nil an empty environment is used.
func NewOS(fs afero.Fs, dir string, env *MapEnv) *OS {
	if env == nil {
		env = NewMapEnv()
	}

	return &OS{
		MapEnv: env,
		fs:     fs,
		dir:    filepath.Clean(dir),
	}
}

// NewHostOS creates an environment over the real filesystem starting in the
// process working directory and seeded with environ.
func NewHostOS(environ []string) (*OS, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("couldn't get working directory: %w", err)
	}

	wd, err = filepath.Abs(wd)
	if err != nil {
		return nil, err
	}

	return NewOS(afero.NewOsFs(), wd, NewMapEnvFromEnvList(environ)), nil
}

// SetHome sets the fallback home directory used when $HOME isn't set.
func (o *OS) SetHome(home string) {
	o.home = home
}

// Abs implements VOS.Abs.
func (o *OS) Abs(name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(o.dir, name)
}

// Getwd implements VOS.Getwd.
func (o *OS) Getwd() string {
	return o.dir
}

// Chdir implements VOS.Chdir.
func (o *OS) Chdir(dir string) error {
	target := o.Abs(dir)

	fi, err := o.fs.Stat(target)
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return &os.PathError{Op: "chdir", Path: target, Err: ErrNotDirectory}
	}

	o.dir = target
	return o.Setenv(EnvPWD, target)
}

// UserHomeDir implements VOS.UserHomeDir.
func (o *OS) UserHomeDir() (string, error) {
	if home := o.Getenv(EnvHome); home != "" {
		return home, nil
	}
	if o.home != "" {
		return o.home, nil
	}
	return os.UserHomeDir()
}

// Open implements VFS.Open.
func (o *OS) Open(name string) (afero.File, error) {
	return o.fs.Open(o.Abs(name))
}

// Stat implements VFS.Stat.
func (o *OS) Stat(name string) (os.FileInfo, error) {
	return o.fs.Stat(o.Abs(name))
}

// ReadDir implements VFS.ReadDir, entries are sorted by name.
func (o *OS) ReadDir(name string) ([]os.FileInfo, error) {
	return afero.ReadDir(o.fs, o.Abs(name))
}
