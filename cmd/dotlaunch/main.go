// Command dotlaunch loads the .env file next to it into the environment and starts app.py.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	_ "embed"

	"go.uber.org/fx"

	port "github.com/tigerroll/dotlaunch/pkg/launcher/core/application/port"
	usecase "github.com/tigerroll/dotlaunch/pkg/launcher/core/application/usecase"
	config "github.com/tigerroll/dotlaunch/pkg/launcher/core/config"
	model "github.com/tigerroll/dotlaunch/pkg/launcher/core/domain/model"
	dotenv "github.com/tigerroll/dotlaunch/pkg/launcher/core/dotenv"
	workdir "github.com/tigerroll/dotlaunch/pkg/launcher/core/workdir"
	listener "github.com/tigerroll/dotlaunch/pkg/launcher/listener"
	logger "github.com/tigerroll/dotlaunch/pkg/launcher/support/util/logger"
)

// embeddedConfig holds the default configuration.
//
//go:embed resources/launcher.yaml
var embeddedConfig []byte

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run dispatches to a subcommand and returns the process exit status.
// Without a subcommand, or when the first argument is a flag, it launches.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	name := "run"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		name, args = args[0], args[1:]
	}

	switch name {
	case "run":
		return runLaunch(ctx, args, stderr)
	case "env":
		return runEnv(args, stdout, stderr)
	case "history":
		return runHistory(ctx, args, stdout, stderr)
	case "version":
		fmt.Fprintf(stdout, "dotlaunch %s\n", version)
		return usecase.ExitOK
	case "help":
		usage(stdout)
		return usecase.ExitOK
	default:
		fmt.Fprintf(stderr, "unknown command: %s\n\n", name)
		usage(stderr)
		return usecase.ExitUsage
	}
}

// setup parses flags and loads the configuration. A non-negative code means the caller
// should return it immediately.
func setup(name string, args []string, stderr io.Writer) (*cliOptions, *config.Config, int) {
	opts, err := parseOptions(name, args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, usecase.ExitOK
		}
		fmt.Fprintf(stderr, "dotlaunch %s: %v\n", name, err)
		return nil, nil, usecase.ExitUsage
	}
	cfg, err := opts.loadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "dotlaunch: %v\n", err)
		return nil, nil, usecase.ExitUsage
	}
	logger.SetLogLevel(cfg.Logging.Level)
	return opts, cfg, -1
}

func runLaunch(ctx context.Context, args []string, stderr io.Writer) int {
	_, cfg, code := setup("run", args, stderr)
	if code >= 0 {
		return code
	}

	// Interrupts are caught only while the launch is in progress; signalRelease gives them
	// back before the closing pause.
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var launcher usecase.Launcher
	options := append(GetApplicationOptions(cfg),
		fx.Provide(fx.Annotate(
			func() port.LaunchListener { return newSignalRelease(stop) },
			fx.ResultTags(listener.GroupTag),
		)),
		fx.Populate(&launcher),
	)
	app := fx.New(options...)
	if err := app.Err(); err != nil {
		fmt.Fprintf(stderr, "dotlaunch: %v\n", err)
		return usecase.ExitFailure
	}

	startCtx, cancel := context.WithTimeout(ctx, app.StartTimeout())
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		fmt.Fprintf(stderr, "dotlaunch: %v\n", err)
		return usecase.ExitFailure
	}

	code = launcher.Run(ctx)

	stopCtx, cancelStop := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancelStop()
	if err := app.Stop(stopCtx); err != nil {
		logger.Warnf("Application shutdown: %v", err)
	}
	return code
}

// runEnv prints what the launcher would export, with sensitive values masked.
func runEnv(args []string, stdout, stderr io.Writer) int {
	_, cfg, code := setup("env", args, stderr)
	if code >= 0 {
		return code
	}

	dir, err := workdir.Resolve(cfg.Launcher.Dir)
	if err != nil {
		fmt.Fprintf(stderr, "dotlaunch: %v\n", err)
		return usecase.ExitFailure
	}
	result, err := dotenv.ParseFile(workdir.Path(dir, cfg.EnvFile.Path))
	if err != nil {
		fmt.Fprintf(stderr, "dotlaunch: %v\n", err)
		return usecase.ExitFailure
	}
	out, err := dotenv.Marshal(result.Assignments, dotenv.NewMasker(cfg.Security.MaskedKeys))
	if err != nil {
		fmt.Fprintf(stderr, "dotlaunch: %v\n", err)
		return usecase.ExitFailure
	}
	if out != "" {
		fmt.Fprintln(stdout, out)
	}
	if result.Skipped > 0 {
		fmt.Fprintf(stderr, "%d line(s) skipped\n", result.Skipped)
	}
	return usecase.ExitOK
}

// runHistory prints the most recent launches from the configured history store.
func runHistory(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, cfg, code := setup("history", args, stderr)
	if code >= 0 {
		return code
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var explorer usecase.LaunchExplorer
	app := fx.New(append(GetApplicationOptions(cfg), fx.Populate(&explorer))...)
	if err := app.Err(); err != nil {
		fmt.Fprintf(stderr, "dotlaunch: %v\n", err)
		return usecase.ExitFailure
	}
	startCtx, cancelStart := context.WithTimeout(ctx, app.StartTimeout())
	defer cancelStart()
	if err := app.Start(startCtx); err != nil {
		fmt.Fprintf(stderr, "dotlaunch: %v\n", err)
		return usecase.ExitFailure
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), app.StopTimeout())
		defer cancel()
		if err := app.Stop(stopCtx); err != nil {
			logger.Warnf("Application shutdown: %v", err)
		}
	}()

	if opts.id != "" {
		execution, err := explorer.GetLaunchExecution(ctx, opts.id)
		if err != nil {
			fmt.Fprintf(stderr, "dotlaunch: %v\n", err)
			return usecase.ExitFailure
		}
		printLaunchExecution(stdout, execution)
		return usecase.ExitOK
	}

	executions, err := explorer.GetRecentLaunchExecutions(ctx, opts.limit)
	if err != nil {
		fmt.Fprintf(stderr, "dotlaunch: %v\n", err)
		return usecase.ExitFailure
	}
	if len(executions) == 0 {
		fmt.Fprintf(stdout, "No launches recorded (history.driver=%s)\n", cfg.History.Driver)
		return usecase.ExitOK
	}

	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTARTED\tSTATUS\tEXIT\tPID\tDURATION\tCOMMAND")
	for _, e := range executions {
		exit := "-"
		if e.ExitCode >= 0 {
			exit = strconv.Itoa(e.ExitCode)
		}
		command := e.CommandLine()
		if command == "" {
			command = e.EntryPoint
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			e.ID, e.StartTime.Local().Format(time.DateTime), e.Status, exit, e.PID,
			e.Duration().Round(time.Millisecond), command)
	}
	if err := w.Flush(); err != nil {
		fmt.Fprintf(stderr, "dotlaunch: %v\n", err)
		return usecase.ExitFailure
	}
	return usecase.ExitOK
}

// printLaunchExecution writes one execution as aligned "field: value" lines followed by
// its masked env snapshot.
func printLaunchExecution(w io.Writer, e *model.LaunchExecution) {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	field := func(name string, value interface{}) {
		fmt.Fprintf(tw, "%s:\t%v\n", name, value)
	}
	field("ID", e.ID)
	field("Status", e.Status)
	field("Mode", e.Mode)
	field("Entry point", e.EntryPoint)
	field("Directory", e.WorkDir)
	field("Command", e.CommandLine())
	field("PID", e.PID)
	field("Exit code", e.ExitCode)
	field("Started", e.StartTime.Local().Format(time.DateTime))
	if e.EndTime != nil {
		field("Ended", e.EndTime.Local().Format(time.DateTime))
		field("Duration", e.Duration().Round(time.Millisecond))
	}
	field("Assignments", e.AssignmentCount)
	field("Skipped lines", e.SkippedLines)
	if e.ErrorMessage != "" {
		field("Error", e.ErrorMessage)
	}
	tw.Flush()
	if e.EnvSnapshot != "" {
		fmt.Fprintf(w, "\n%s\n", e.EnvSnapshot)
	}
}

func usage(w io.Writer) {
	fmt.Fprint(w, `dotlaunch - load .env and start app.py

Usage:
  dotlaunch [run] [flags]
  dotlaunch <command> [flags]

Commands:
  run      Load the env file and start the entry point (default)
  env      Print the env file assignments, sensitive values masked
  history  List recent launches, or show one: history [flags] [ID]
  version  Print the version
  help     Show this help

Flags:
  --config PATH        YAML config file
  --dir DIR            launcher directory (default: directory of the executable)
  --env-file PATH      env file (default .env)
  --entrypoint FILE    entry point (default app.py)
  --interpreter CMD    interpreter command, "auto" or "none"
  --detach             start the application and return without waiting
  --no-pause           do not wait for Enter before exiting
  --locale en|fa       console language
  --log-level LEVEL    diagnostic log level
  --set key.path=value config override (repeatable)
  -n N                 (history) number of launches to show
`)
}
