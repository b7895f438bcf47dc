package dotenv

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
)

// Environment is a writable variable table.
type Environment interface {
	Lookup(key string) (string, bool)
	Set(key, value string) error
	// Environ returns the table as KEY=VALUE strings.
	Environ() []string
}

// OSEnvironment is the environment of the current process.
type OSEnvironment struct{}

// NewOSEnvironment returns the process environment.
func NewOSEnvironment() Environment {
	return OSEnvironment{}
}

func (OSEnvironment) Lookup(key string) (string, bool) { return os.LookupEnv(key) }
func (OSEnvironment) Set(key, value string) error { return os.Setenv(key, value) }
func (OSEnvironment) Environ() []string { return os.Environ() }

// MapEnvironment is an in-memory Environment.
type MapEnvironment struct {
	mu   sync.RWMutex
	vars map[string]string
}

// NewMapEnvironment returns a MapEnvironment seeded with initial.
func NewMapEnvironment(initial map[string]string) *MapEnvironment {
	vars := make(map[string]string, len(initial))
	for k, v := range initial {
		vars[k] = v
	}
	return &MapEnvironment{vars: vars}
}

func (m *MapEnvironment) Lookup(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.vars[key]
	return v, ok
}

// Set rejects the same keys the operating system does.
func (m *MapEnvironment) Set(key, value string) error {
	if key == "" || strings.ContainsAny(key, "=\x00") || strings.Contains(value, "\x00") {
		return fmt.Errorf("setenv %q: invalid argument", key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vars[key] = value
	return nil
}

func (m *MapEnvironment) Environ() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.vars))
	for k, v := range m.vars {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}
