// Package config holds the launcher configuration structures and their defaults.
package config

import (
	"time"
)

// EmbeddedConfig holds the default YAML compiled into the binary (cmd/dotlaunch/resources).
type EmbeddedConfig []byte

// Launch modes.
const (
	LaunchModeWait   = "wait"
	LaunchModeDetach = "detach"
)

// Console pause policies.
const (
	PauseAuto   = "auto"
	PauseAlways = "always"
	PauseNever  = "never"
)

// InterpreterAuto selects python3/python (python/py on Windows); InterpreterNone executes the entry point itself.
const (
	InterpreterAuto = "auto"
	InterpreterNone = "none"
)

// LauncherConfig controls where the launcher runs.
type LauncherConfig struct {
	// Dir overrides the launcher directory. Empty means the directory of the executable.
	Dir string `yaml:"dir"`
}

// EnvFileConfig controls how the .env file is read and applied.
type EnvFileConfig struct {
	// Path is the env file, relative to the launcher directory unless absolute.
	Path string `yaml:"path"`
	// Required turns a missing env file into a fatal error.
	Required bool `yaml:"required"`
	// Override lets assignments replace variables already present in the environment.
	Override bool `yaml:"override"`
}

// EntryPointConfig names the program handed off to.
type EntryPointConfig struct {
	File        string `yaml:"file"`
	Interpreter string `yaml:"interpreter"`
}

// LaunchConfig controls the child process lifecycle.
type LaunchConfig struct {
	// Mode is "wait" (block until the child exits) or "detach" (start and return).
	Mode string `yaml:"mode"`
	// StopGrace is how long an interrupted child gets before it is killed.
	StopGrace time.Duration `yaml:"stop_grace"`
}

// ConsoleConfig controls banners and the closing pause.
type ConsoleConfig struct {
	Locale string `yaml:"locale"`
	Pause  string `yaml:"pause"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the diagnostic log level (DEBUG, INFO, WARN, ERROR, SILENT).
	Level string `yaml:"level"`
}

// HistoryConfig selects the launch history store.
type HistoryConfig struct {
	// Driver is "memory", "sqlite", "postgres" or "mysql".
	Driver string `yaml:"driver"`
	// DSN is the connection string; for sqlite a file path relative to the launcher directory.
	DSN string `yaml:"dsn"`
	// Migrate applies the embedded schema migrations on startup.
	Migrate bool `yaml:"migrate"`
}

// MetricsConfig selects the metrics exporter.
type MetricsConfig struct {
	// Exporter is "none", "prometheus" or "otlp".
	Exporter string `yaml:"exporter"`
	// Textfile is where the Prometheus exposition is written on shutdown.
	Textfile string `yaml:"textfile"`
	Endpoint string `yaml:"endpoint"`
	// Protocol is "grpc" or "http" for the OTLP exporter.
	Protocol string `yaml:"protocol"`
	Insecure bool   `yaml:"insecure"`
}

// TracingConfig selects the trace exporter.
type TracingConfig struct {
	// Exporter is "none" or "otlp".
	Exporter    string `yaml:"exporter"`
	Endpoint    string `yaml:"endpoint"`
	Protocol    string `yaml:"protocol"`
	Insecure    bool   `yaml:"insecure"`
	ServiceName string `yaml:"service_name"`
}

// SecurityConfig holds masking rules.
type SecurityConfig struct {
	// MaskedKeys are case-insensitive substrings; matching keys have their values masked in output.
	MaskedKeys []string `yaml:"masked_keys"`
}

// Config is the root of the launcher configuration.
type Config struct {
	Launcher   LauncherConfig   `yaml:"launcher"`
	EnvFile    EnvFileConfig    `yaml:"envfile"`
	EntryPoint EntryPointConfig `yaml:"entrypoint"`
	Launch     LaunchConfig     `yaml:"launch"`
	Console    ConsoleConfig    `yaml:"console"`
	Logging    LoggingConfig    `yaml:"logging"`
	History    HistoryConfig    `yaml:"history"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Tracing    TracingConfig    `yaml:"tracing"`
	Security   SecurityConfig   `yaml:"security"`
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		EnvFile: EnvFileConfig{
			Path:     ".env",
			Override: true,
		},
		EntryPoint: EntryPointConfig{
			File:        "app.py",
			Interpreter: InterpreterAuto,
		},
		Launch: LaunchConfig{
			Mode:      LaunchModeWait,
			StopGrace: 10 * time.Second,
		},
		Console: ConsoleConfig{
			Locale: "en",
			Pause:  PauseAuto,
		},
		Logging: LoggingConfig{
			Level: "WARN",
		},
		History: HistoryConfig{
			Driver:  "memory",
			DSN:     ".dotlaunch/history.db",
			Migrate: true,
		},
		Metrics: MetricsConfig{
			Exporter: "none",
			Protocol: "grpc",
		},
		Tracing: TracingConfig{
			Exporter:    "none",
			Protocol:    "grpc",
			ServiceName: "dotlaunch",
		},
		Security: SecurityConfig{
			MaskedKeys: []string{"password", "secret", "token", "api_key", "private_key"},
		},
	}
}
