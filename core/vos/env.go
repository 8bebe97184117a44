package vos

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// VEnv holds the variables of an interpreter session.
type VEnv interface {
	// Unsetenv unsets a single variable.
	Unsetenv(key string) error

	// Setenv sets the value of the variable named by the key, replacing any
	// previous value.
	Setenv(key, value string) error

	// LookupEnv retrieves the value of the variable named by the key.
	// If the variable is present the value (which may be empty) is returned
	// and the boolean is true. Otherwise the returned value will be empty and
	// the boolean will be false.
	LookupEnv(key string) (string, bool)

	// Getenv retrieves the value of the variable named by the key.
	// It returns the value, which will be empty if the variable is not set.
	Getenv(key string) string

	// Environ returns a copy of strings representing the environment, in the
	// form "key=value", sorted by key.
	Environ() []string
}

// NewMapEnv creates a new environment backed by a map.
func NewMapEnv() *MapEnv {
	return &MapEnv{}
}

// NewMapEnvFromEnvList creates a new environment from a list of "key=value"
// pairs. Entries without a "=" are set to the empty string, later entries win.
func NewMapEnvFromEnvList(environ []string) *MapEnv {
	out := &MapEnv{}

	for _, e := range environ {
		split := strings.SplitN(e, "=", 2)
		key, value := split[0], ""
		if len(split) > 1 {
			value = split[1]
		}
		// Ignore error, it will never be set for MapEnv.
		_ = out.Setenv(key, value)
	}

	return out
}

// MapEnv implemnts an in-memory VEnv.
type MapEnv struct {
	rw  sync.RWMutex
	env map[string]string
}

var _ VEnv = (*MapEnv)(nil)

// Unsetenv implements VEnv.Unsetenv.
func (m *MapEnv) Unsetenv(key string) error {
	m.rw.Lock()
	defer m.rw.Unlock()
	if m.env != nil {
		delete(m.env, key)
	}
	return nil
}

// Setenv implements VEnv.Setenv.
func (m *MapEnv) Setenv(key, value string) error {
	if key == "" {
		return fmt.Errorf("setenv: empty variable name")
	}

	m.rw.Lock()
	defer m.rw.Unlock()

	if m.env == nil {
		m.env = make(map[string]string)
	}
	m.env[key] = value
	return nil
}

// LookupEnv implements VEnv.LookupEnv.
func (m *MapEnv) LookupEnv(key string) (string, bool) {
	m.rw.RLock()
	defer m.rw.RUnlock()

	val, ok := m.env[key]
	return val, ok
}

// Getenv implements VEnv.Getenv.
func (m *MapEnv) Getenv(key string) string {
	val, _ := m.LookupEnv(key)
	return val
}

// Environ implements VEnv.Environ.
func (m *MapEnv) Environ() []string {
	m.rw.RLock()
	defer m.rw.RUnlock()

	var env []string
	for k, v := range m.env {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(env)

	return env
}
