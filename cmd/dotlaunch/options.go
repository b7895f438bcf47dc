package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	config "github.com/tigerroll/dotlaunch/pkg/launcher/core/config"
)

// stringList collects a repeatable flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}

// cliOptions are the flags shared by every subcommand.
type cliOptions struct {
	configPath  string
	dir         string
	envFile     string
	entryPoint  string
	interpreter string
	locale      string
	logLevel    string
	detach      bool
	noPause     bool
	sets        stringList
	limit       int
	// id is the optional launch ID given to history.
	id          string
}

func newFlagSet(name string, opts *cliOptions, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("dotlaunch "+name, flag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVar(&opts.configPath, "config", "", "YAML config file")
	fs.StringVar(&opts.dir, "dir", "", "launcher directory (default: directory of the executable)")
	fs.StringVar(&opts.envFile, "env-file", "", "env file, relative to the launcher directory")
	fs.StringVar(&opts.logLevel, "log-level", "", "diagnostic log level (DEBUG, INFO, WARN, ERROR, SILENT)")
	fs.Var(&opts.sets, "set", "config override key.path=value (repeatable)")

	switch name {
	case "run":
		fs.StringVar(&opts.entryPoint, "entrypoint", "", "entry-point file, relative to the launcher directory")
		fs.StringVar(&opts.interpreter, "interpreter", "", `interpreter command, "auto" or "none"`)
		fs.StringVar(&opts.locale, "locale", "", "console language (en, fa)")
		fs.BoolVar(&opts.detach, "detach", false, "start the application and return without waiting")
		fs.BoolVar(&opts.noPause, "no-pause", false, "do not wait for Enter before exiting")
	case "history":
		fs.IntVar(&opts.limit, "n", 20, "number of launches to show")
	}
	return fs
}

// parseOptions parses args for the named subcommand.
func parseOptions(name string, args []string, out io.Writer) (*cliOptions, error) {
	opts := &cliOptions{}
	fs := newFlagSet(name, opts, out)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	rest := fs.Args()
	if name == "history" && len(rest) > 0 {
		opts.id, rest = rest[0], rest[1:]
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("unexpected argument %q", rest[0])
	}
	return opts, nil
}

// overrides turns the dedicated flags into key.path assignments applied after --set.
func (o *cliOptions) overrides() []string {
	out := append([]string(nil), o.sets...)
	add := func(key, value string) {
		if value != "" {
			out = append(out, key+"="+value)
		}
	}
	add("launcher.dir", o.dir)
	add("envfile.path", o.envFile)
	add("entrypoint.file", o.entryPoint)
	add("entrypoint.interpreter", o.interpreter)
	add("console.locale", o.locale)
	add("logging.level", o.logLevel)
	if o.detach {
		add("launch.mode", config.LaunchModeDetach)
	}
	if o.noPause {
		add("console.pause", config.PauseNever)
	}
	return out
}

func (o *cliOptions) loadConfig() (*config.Config, error) {
	return config.LoadConfig(config.LoadOptions{
		Embedded:  embeddedConfig,
		Path:      o.configPath,
		Overrides: o.overrides(),
	})
}
