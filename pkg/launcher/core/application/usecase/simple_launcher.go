package usecase

import (
	"context"
	"errors"
	"io"
	"os"

	"go.uber.org/fx"

	port "github.com/tigerroll/dotlaunch/pkg/launcher/core/application/port"
	config "github.com/tigerroll/dotlaunch/pkg/launcher/core/config"
	model "github.com/tigerroll/dotlaunch/pkg/launcher/core/domain/model"
	repository "github.com/tigerroll/dotlaunch/pkg/launcher/core/domain/repository"
	dotenv "github.com/tigerroll/dotlaunch/pkg/launcher/core/dotenv"
	entrypoint "github.com/tigerroll/dotlaunch/pkg/launcher/core/entrypoint"
	metrics "github.com/tigerroll/dotlaunch/pkg/launcher/core/metrics"
	process "github.com/tigerroll/dotlaunch/pkg/launcher/core/process"
	workdir "github.com/tigerroll/dotlaunch/pkg/launcher/core/workdir"
	exception "github.com/tigerroll/dotlaunch/pkg/launcher/support/util/exception"
	logger "github.com/tigerroll/dotlaunch/pkg/launcher/support/util/logger"
)

// SimpleLauncherParams are the dependencies of SimpleLauncher.
type SimpleLauncherParams struct {
	fx.In
	Config      *config.Config
	Console     port.Console
	Runner      process.Runner
	Environment dotenv.Environment
	Repository  repository.LaunchRepository
	Recorder    metrics.MetricRecorder
	Tracer      metrics.Tracer
	Listeners   []port.LaunchListener `group:"launchListeners"`
}

// SimpleLauncher enters the launcher directory, applies the env file and hands off to the entry point.
type SimpleLauncher struct {
	cfg       *config.Config
	console   port.Console
	runner    process.Runner
	env       dotenv.Environment
	repo      repository.LaunchRepository
	recorder  metrics.MetricRecorder
	tracer    metrics.Tracer
	listeners []port.LaunchListener
	masker    *dotenv.Masker
	stdin     io.Reader
	stdout    io.Writer
	stderr    io.Writer
}

var _ Launcher = (*SimpleLauncher)(nil)

// NewSimpleLauncher creates a SimpleLauncher wired to the process stdio.
func NewSimpleLauncher(p SimpleLauncherParams) *SimpleLauncher {
	return &SimpleLauncher{
		cfg:       p.Config,
		console:   p.Console,
		runner:    p.Runner,
		env:       p.Environment,
		repo:      p.Repository,
		recorder:  p.Recorder,
		tracer:    p.Tracer,
		listeners: p.Listeners,
		masker:    dotenv.NewMasker(p.Config.Security.MaskedKeys),
		stdin:     os.Stdin,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
	}
}

// Run performs one launch and returns the exit status for the launcher process.
// The console pause happens last, after every outcome.
func (l *SimpleLauncher) Run(ctx context.Context) int {
	execution := model.NewLaunchExecution(l.cfg.EntryPoint.File, l.cfg.Launch.Mode)

	ctx, endSpan := l.tracer.StartLaunchSpan(ctx, execution)
	defer endSpan()

	for _, listener := range l.listeners {
		listener.BeforeLaunch(ctx, execution)
	}
	if err := l.repo.SaveLaunchExecution(ctx, execution); err != nil {
		logger.Warnf("Failed to save LaunchExecution (ID: %s): %v", execution.ID, err)
	}

	code := l.launch(ctx, execution)

	// An interrupted launch still records its outcome.
	ctx = context.WithoutCancel(ctx)
	if err := l.repo.UpdateLaunchExecution(ctx, execution); err != nil {
		logger.Warnf("Failed to update LaunchExecution (ID: %s): %v", execution.ID, err)
	}
	for _, listener := range l.listeners {
		listener.AfterLaunch(ctx, execution)
	}
	if execution.Status != model.LaunchStatusFailed {
		l.console.Done()
	}
	l.console.Pause()
	return code
}

func (l *SimpleLauncher) launch(ctx context.Context, execution *model.LaunchExecution) int {
	const op = "SimpleLauncher.launch"

	dir, err := l.enterWorkDir(ctx)
	if err != nil {
		return l.fail(ctx, execution, "workdir", err)
	}
	execution.WorkDir = dir
	l.console.Starting(l.cfg.EntryPoint.File, dir)

	if err := l.loadEnv(ctx, execution, dir); err != nil {
		return l.fail(ctx, execution, "dotenv", err)
	}

	argv, err := l.resolveCommand(ctx, dir)
	if err != nil {
		return l.fail(ctx, execution, "entrypoint", err)
	}
	execution.Command = argv
	l.console.Launching(execution.CommandLine())

	ctx, endSpan := l.tracer.StartPhaseSpan(ctx, metrics.SpanRunProcess)
	defer endSpan()

	spec := process.Spec{
		Argv:      argv,
		Dir:       dir,
		Env:       l.env.Environ(),
		Stdout:    l.stdout,
		Stderr:    l.stderr,
		StopGrace: l.cfg.Launch.StopGrace,
	}

	if l.cfg.Launch.Mode == config.LaunchModeDetach {
		pid, err := l.runner.Detach(spec)
		if err != nil {
			return l.fail(ctx, execution, "process", err)
		}
		execution.MarkDetached(pid)
		logger.Infof("%s: detached %s (pid %d)", op, execution.CommandLine(), pid)
		l.console.Running(pid)
		return ExitOK
	}

	spec.Stdin = l.stdin
	code, err := l.runner.Run(ctx, spec, func(pid int) {
		execution.MarkRunning(pid)
		l.tracer.RecordEvent(ctx, "process.started", map[string]interface{}{"pid": pid})
		if err := l.repo.UpdateLaunchExecution(ctx, execution); err != nil {
			logger.Warnf("Failed to update LaunchExecution (ID: %s) to RUNNING: %v", execution.ID, err)
		}
	})
	if err != nil {
		return l.fail(ctx, execution, "process", err)
	}
	execution.MarkExited(code)
	logger.Infof("%s: %s exited with code %d after %s", op, execution.CommandLine(), code, execution.Duration())
	l.console.Exited(code)
	return code
}

func (l *SimpleLauncher) enterWorkDir(ctx context.Context) (string, error) {
	_, end := l.tracer.StartPhaseSpan(ctx, metrics.SpanWorkDir)
	defer end()
	return workdir.Enter(l.cfg.Launcher.Dir)
}

// loadEnv parses the env file and applies it to the environment.
// A missing file is only fatal when envfile.required is set. Individual assignments that
// cannot be applied are logged and skipped.
func (l *SimpleLauncher) loadEnv(ctx context.Context, execution *model.LaunchExecution, dir string) error {
	ctx, end := l.tracer.StartPhaseSpan(ctx, metrics.SpanLoadEnv)
	defer end()

	path := workdir.Path(dir, l.cfg.EnvFile.Path)
	result, err := dotenv.ParseFile(path)
	if err != nil {
		if errors.Is(err, exception.ErrMissingEnvFile) && !l.cfg.EnvFile.Required {
			logger.Infof("Env file %s not found, continuing with the inherited environment", path)
			l.console.EnvMissing(l.cfg.EnvFile.Path)
			l.recorder.RecordEnvLoaded(ctx, 0, 0)
			return nil
		}
		return err
	}

	applied, err := dotenv.Apply(result.Assignments, l.env, l.cfg.EnvFile.Override, l.masker)
	if err != nil {
		logger.Warnf("Some assignments from %s were not applied: %v", path, err)
		l.tracer.RecordError(ctx, "dotenv", err)
	}
	if applied.Kept > 0 {
		logger.Infof("Kept %d existing variable(s) from the inherited environment", applied.Kept)
	}

	execution.AssignmentCount = applied.Applied
	execution.SkippedLines = result.Skipped
	if snapshot, err := dotenv.Marshal(result.Assignments, l.masker); err != nil {
		logger.Warnf("Failed to render env snapshot: %v", err)
	} else {
		execution.EnvSnapshot = snapshot
	}

	l.recorder.RecordEnvLoaded(ctx, applied.Applied, result.Skipped)
	l.console.EnvLoaded(applied.Applied, l.cfg.EnvFile.Path)
	return nil
}

func (l *SimpleLauncher) resolveCommand(ctx context.Context, dir string) ([]string, error) {
	_, end := l.tracer.StartPhaseSpan(ctx, metrics.SpanCheckEntryPoint)
	defer end()

	path, err := entrypoint.Check(dir, l.cfg.EntryPoint.File)
	if err != nil {
		return nil, err
	}
	return entrypoint.Command(path, l.cfg.EntryPoint.Interpreter)
}

// fail records err on the execution, reports it on the console and returns ExitFailure.
func (l *SimpleLauncher) fail(ctx context.Context, execution *model.LaunchExecution, module string, err error) int {
	execution.MarkFailed(err)
	l.tracer.RecordError(ctx, module, err)
	logger.Infof("Launch %s failed in %s: %v", execution.ID, module, err)
	var launchErr *exception.LaunchError
	if errors.As(err, &launchErr) {
		logger.Debugf("Launch %s failure raised at:\n%s", execution.ID, launchErr.StackTrace)
	}

	switch exception.KindOf(err) {
	case exception.KindMissingEntryPoint:
		l.console.MissingEntryPoint(l.cfg.EntryPoint.File)
	case exception.KindStartFailure:
		l.console.StartFailure(err)
	default:
		l.console.Failure(err)
	}
	return ExitFailure
}
