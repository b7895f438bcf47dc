package config

import "go.uber.org/fx"

// NewLauncherConfigProvider extracts the launcher section.
func NewLauncherConfigProvider(cfg *Config) *LauncherConfig {
	return &cfg.Launcher
}

// NewConsoleConfigProvider extracts the console section.
func NewConsoleConfigProvider(cfg *Config) *ConsoleConfig {
	return &cfg.Console
}

// NewLoggingConfigProvider extracts the logging section.
func NewLoggingConfigProvider(cfg *Config) *LoggingConfig {
	return &cfg.Logging
}

// NewHistoryConfigProvider extracts the history section.
func NewHistoryConfigProvider(cfg *Config) *HistoryConfig {
	return &cfg.History
}

// NewMetricsConfigProvider extracts the metrics section.
func NewMetricsConfigProvider(cfg *Config) *MetricsConfig {
	return &cfg.Metrics
}

// NewTracingConfigProvider extracts the tracing section.
func NewTracingConfigProvider(cfg *Config) *TracingConfig {
	return &cfg.Tracing
}

// Module provides the configuration sections and the EnvironmentExpander.
// The *Config itself is supplied by the caller.
var Module = fx.Options(
	fx.Provide(NewLauncherConfigProvider),
	fx.Provide(NewConsoleConfigProvider),
	fx.Provide(NewLoggingConfigProvider),
	fx.Provide(NewHistoryConfigProvider),
	fx.Provide(NewMetricsConfigProvider),
	fx.Provide(NewTracingConfigProvider),
	fx.Provide(func() EnvironmentExpander {
		return NewOsEnvironmentExpander()
	}),
)
