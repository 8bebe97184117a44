package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"golang.org/x/crypto/bcrypt"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"
	PrivateKeyName    = "host_key"

	ColorAlways = "always"
	ColorAuto   = "auto"
	ColorNever  = "never"
)

// ErrAppLogDisabled is returned when opening the event log without a path.
var ErrAppLogDisabled = errors.New("app_log isn't set")

// ErrRecordingsDisabled is returned when creating a recording without a
// recordings directory.
var ErrRecordingsDisabled = errors.New("recordings_dir isn't set")

type Configuration struct {
	configFs         afero.Fs
	configurationDir string

	Prompt   string `json:"prompt"`
	Color    string `json:"color" validate:"oneof=always auto never"`
	Home     string `json:"home"`
	StartDir string `json:"start_dir"`
	AppLog   string `json:"app_log"`

	SSH SSH `json:"ssh"`
}

type SSH struct {
	Address         string `json:"address"`
	Port            int    `json:"port" validate:"gte=0,lte=65535"`
	HostKeyPath     string `json:"host_key_path"`
	OutputRateLimit int64  `json:"output_rate_limit" validate:"gte=0"`
	RecordingsDir   string `json:"recordings_dir"`

	Users []User `json:"users" validate:"unique=Username,dive"`
}

type User struct {
	Username     string `json:"username" validate:"required"`
	PasswordHash string `json:"password_hash" validate:"required"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

// Dir is the directory the configuration was loaded from.
func (c *Configuration) Dir() string {
	return c.configurationDir
}

func (c *Configuration) fs() afero.Fs {
	if c.configFs == nil {
		c.configFs = afero.NewBasePathFs(afero.NewOsFs(), c.configurationDir)
	}
	return c.configFs
}

// path resolves a configured path against the configuration directory.
func (c *Configuration) path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.configurationDir, name)
}

// appLog returns the filesystem and name of the event log.
func (c *Configuration) appLog() (afero.Fs, string, error) {
	switch {
	case c.AppLog == "":
		return nil, "", ErrAppLogDisabled
	case filepath.IsAbs(c.AppLog):
		return afero.NewOsFs(), c.AppLog, nil
	default:
		return c.fs(), c.AppLog, nil
	}
}

// OpenAppLog opens the event log in an append only state.
func (c *Configuration) OpenAppLog() (afero.File, error) {
	fs, name, err := c.appLog()
	if err != nil {
		return nil, err
	}
	return fs.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// ReadAppLog opens the event log for reading.
func (c *Configuration) ReadAppLog() (afero.File, error) {
	fs, name, err := c.appLog()
	if err != nil {
		return nil, err
	}
	return fs.OpenFile(name, os.O_RDONLY, 0600)
}

// RecordingsPath is the directory session recordings are written to or "" if
// recording is disabled.
func (c *Configuration) RecordingsPath() string {
	if c.SSH.RecordingsDir == "" {
		return ""
	}
	return c.path(c.SSH.RecordingsDir)
}

// CreateRecording creates a new recording file called name in the recordings
// directory, creating the directory if needed.
func (c *Configuration) CreateRecording(name string) (afero.File, error) {
	dir := c.RecordingsPath()
	if dir == "" {
		return nil, ErrRecordingsDisabled
	}

	fs := afero.NewOsFs()
	if err := fs.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	return fs.OpenFile(filepath.Join(dir, filepath.Base(name)), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
}

// HostKeyFile returns the path of the SSH host key or "" if none is set.
func (c *Configuration) HostKeyFile() string {
	if c.SSH.HostKeyPath == "" {
		return ""
	}
	return c.path(c.SSH.HostKeyPath)
}

// ListenAddress is the host:port the SSH server listens on.
func (c *Configuration) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.SSH.Address, c.SSH.Port)
}

// ColorEnabled decides whether to color output, isTerminal is used for the
// auto setting.
func (c *Configuration) ColorEnabled(isTerminal bool) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return isTerminal
	}
}

// CheckPassword reports whether password matches the hash configured for
// username.
func (c *Configuration) CheckPassword(username, password string) bool {
	for _, user := range c.SSH.Users {
		if user.Username != username {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil {
			return true
		}
	}
	return false
}

// HashPassword hashes a password for use in the users list.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Default returns the built-in configuration rooted at dir.
func Default(dir string) *Configuration {
	cfg := defaultConfig()
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	cfg.configurationDir = dir
	return cfg
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
