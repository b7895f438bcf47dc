package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/tigerroll/dotlaunch/pkg/launcher/support/util/configbinder"
	"github.com/tigerroll/dotlaunch/pkg/launcher/support/util/exception"
	"github.com/tigerroll/dotlaunch/pkg/launcher/support/util/logger"
)

const moduleName = "config"

// EnvPrefix prefixes every environment override, e.g. DOTLAUNCH_CONSOLE_PAUSE.
const EnvPrefix = "DOTLAUNCH_"

// LoadOptions describes the configuration sources, lowest precedence first.
type LoadOptions struct {
	// Embedded is the default YAML compiled into the binary.
	Embedded EmbeddedConfig
	// Path is an optional YAML file. A missing file is an error when set.
	Path string
	// Overrides are "key.path=value" assignments applied last.
	Overrides []string
	// Expander expands placeholders in YAML sources. Nil means OsEnvironmentExpander.
	Expander EnvironmentExpander
}

// LoadConfig builds the configuration from defaults, embedded YAML, the optional config
// file, DOTLAUNCH_* environment variables and finally the overrides, then validates it.
func LoadConfig(opts LoadOptions) (*Config, error) {
	expander := opts.Expander
	if expander == nil {
		expander = NewOsEnvironmentExpander()
	}

	cfg := NewConfig()

	if len(bytes.TrimSpace(opts.Embedded)) > 0 {
		if err := decodeYAML(expander, opts.Embedded, cfg); err != nil {
			return nil, exception.NewLaunchError(moduleName, exception.KindInvalidConfig, "failed to decode embedded config", err)
		}
	}

	if opts.Path != "" {
		data, err := os.ReadFile(opts.Path)
		if err != nil {
			return nil, exception.NewLaunchErrorf(moduleName, exception.KindInvalidConfig, "failed to read config file %s", opts.Path, err)
		}
		if err := decodeYAML(expander, data, cfg); err != nil {
			return nil, exception.NewLaunchErrorf(moduleName, exception.KindInvalidConfig, "failed to decode config file %s", opts.Path, err)
		}
		logger.Debugf("Loaded config file %s", opts.Path)
	}

	if err := loadStructFromEnv(reflect.ValueOf(cfg).Elem(), EnvPrefix); err != nil {
		return nil, exception.NewLaunchError(moduleName, exception.KindInvalidConfig, "failed to load config from environment variables", err)
	}

	if len(opts.Overrides) > 0 {
		props, err := configbinder.ParseAssignments(opts.Overrides)
		if err != nil {
			return nil, exception.NewLaunchError(moduleName, exception.KindInvalidConfig, "invalid override", err)
		}
		if err := configbinder.BindProperties(props, cfg); err != nil {
			return nil, exception.NewLaunchError(moduleName, exception.KindInvalidConfig, "failed to apply overrides", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, exception.NewLaunchError(moduleName, exception.KindInvalidConfig, "invalid configuration", err)
	}
	return cfg, nil
}

func decodeYAML(expander EnvironmentExpander, data []byte, cfg *Config) error {
	expanded, err := expander.Expand(data)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(expanded))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

// Validate checks enumerations and required fields, reporting every problem at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	oneOf := func(field, value string, allowed ...string) {
		for _, a := range allowed {
			if value == a {
				return
			}
		}
		result = multierror.Append(result, fmt.Errorf("%s must be one of %s, got %q", field, strings.Join(allowed, ","), value))
	}

	if strings.TrimSpace(c.EnvFile.Path) == "" {
		result = multierror.Append(result, fmt.Errorf("envfile.path is required"))
	}
	if strings.TrimSpace(c.EntryPoint.File) == "" {
		result = multierror.Append(result, fmt.Errorf("entrypoint.file is required"))
	}
	if c.Launch.StopGrace < 0 {
		result = multierror.Append(result, fmt.Errorf("launch.stop_grace must be >= 0"))
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		result = multierror.Append(result, fmt.Errorf("logging.level: %w", err))
	}

	oneOf("launch.mode", c.Launch.Mode, LaunchModeWait, LaunchModeDetach)
	oneOf("console.pause", c.Console.Pause, PauseAuto, PauseAlways, PauseNever)
	oneOf("console.locale", c.Console.Locale, "en", "fa")
	oneOf("history.driver", c.History.Driver, "memory", "sqlite", "postgres", "mysql")
	oneOf("metrics.exporter", c.Metrics.Exporter, "none", "prometheus", "otlp")
	oneOf("metrics.protocol", c.Metrics.Protocol, "grpc", "http")
	oneOf("tracing.exporter", c.Tracing.Exporter, "none", "otlp")
	oneOf("tracing.protocol", c.Tracing.Protocol, "grpc", "http")

	if c.History.Driver != "memory" && strings.TrimSpace(c.History.DSN) == "" {
		result = multierror.Append(result, fmt.Errorf("history.dsn is required for driver %q", c.History.Driver))
	}
	if c.Metrics.Exporter == "prometheus" && strings.TrimSpace(c.Metrics.Textfile) == "" {
		result = multierror.Append(result, fmt.Errorf("metrics.textfile is required for the prometheus exporter"))
	}

	return result.ErrorOrNil()
}

// loadStructFromEnv walks val and sets every field whose environment variable
// (prefix + upper-cased yaml tag path joined with '_') is present.
func loadStructFromEnv(val reflect.Value, prefix string) error {
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)
		yamlTag := strings.Split(fieldType.Tag.Get("yaml"), ",")[0]
		if yamlTag == "" || yamlTag == "-" {
			continue
		}
		envVarName := strings.ToUpper(prefix + yamlTag)

		if field.Kind() == reflect.Struct {
			if err := loadStructFromEnv(field, envVarName+"_"); err != nil {
				return err
			}
			continue
		}

		envValue, exists := os.LookupEnv(envVarName)
		if !exists {
			continue
		}
		if err := setField(field, envValue); err != nil {
			return fmt.Errorf("failed to set field '%s' from env var '%s': %w", fieldType.Name, envVarName, err)
		}
	}
	return nil
}

// setField converts value to the field's kind. Durations accept time.ParseDuration syntax,
// string slices are comma separated.
func setField(field reflect.Value, value string) error {
	if !field.CanSet() {
		return nil
	}
	if field.Type() == reflect.TypeOf(time.Duration(0)) {
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		field.SetInt(int64(d))
		return nil
	}
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(intValue)
	case reflect.Bool:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(boolValue)
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type %s", field.Type())
		}
		var items []string
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		field.Set(reflect.ValueOf(items))
	}
	return nil
}
