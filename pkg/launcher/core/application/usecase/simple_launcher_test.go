package usecase_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tigerroll/dotlaunch/pkg/launcher/core/application/port"
	"github.com/tigerroll/dotlaunch/pkg/launcher/core/application/usecase"
	"github.com/tigerroll/dotlaunch/pkg/launcher/core/config"
	"github.com/tigerroll/dotlaunch/pkg/launcher/core/console"
	"github.com/tigerroll/dotlaunch/pkg/launcher/core/domain/model"
	"github.com/tigerroll/dotlaunch/pkg/launcher/core/dotenv"
	"github.com/tigerroll/dotlaunch/pkg/launcher/core/metrics"
	"github.com/tigerroll/dotlaunch/pkg/launcher/core/process"
	"github.com/tigerroll/dotlaunch/pkg/launcher/infrastructure/repository/inmemory"
	"github.com/tigerroll/dotlaunch/pkg/launcher/support/util/exception"
	"github.com/tigerroll/dotlaunch/pkg/launcher/support/util/logger"
)

type fakeRunner struct {
	specs    []process.Spec
	detached []process.Spec
	code     int
	pid      int
	err      error
}

func (r *fakeRunner) Run(ctx context.Context, spec process.Spec, started func(pid int)) (int, error) {
	r.specs = append(r.specs, spec)
	if r.err != nil {
		return -1, r.err
	}
	if started != nil {
		started(r.pid)
	}
	return r.code, nil
}

func (r *fakeRunner) Detach(spec process.Spec) (int, error) {
	r.detached = append(r.detached, spec)
	if r.err != nil {
		return -1, r.err
	}
	return r.pid, nil
}

type recordingListener struct {
	before []string
	after  []model.LaunchStatus
}

func (l *recordingListener) BeforeLaunch(ctx context.Context, execution *model.LaunchExecution) {
	l.before = append(l.before, execution.ID)
}

func (l *recordingListener) AfterLaunch(ctx context.Context, execution *model.LaunchExecution) {
	l.after = append(l.after, execution.Status)
}

type fixture struct {
	dir      string
	cfg      *config.Config
	out      *bytes.Buffer
	runner   *fakeRunner
	env      *dotenv.MapEnvironment
	repo     *inmemory.InMemoryLaunchRepository
	listener *recordingListener
}

// newFixture creates a launcher directory. The working directory is restored after the test.
func newFixture(t *testing.T, files map[string]string) *fixture {
	t.Helper()
	t.Chdir(t.TempDir())

	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	cfg := config.NewConfig()
	cfg.Launcher.Dir = dir
	cfg.EntryPoint.Interpreter = config.InterpreterNone
	cfg.Console.Pause = config.PauseNever

	return &fixture{
		dir:      dir,
		cfg:      cfg,
		out:      &bytes.Buffer{},
		runner:   &fakeRunner{pid: 4242},
		env:      dotenv.NewMapEnvironment(map[string]string{"PATH": "/usr/bin", "PORT": "1"}),
		repo:     inmemory.NewInMemoryLaunchRepository(),
		listener: &recordingListener{},
	}
}

func (f *fixture) launcher(t *testing.T) *usecase.SimpleLauncher {
	t.Helper()
	c, err := console.New(f.out, nil, f.cfg.Console.Locale, f.cfg.Console.Pause, false)
	require.NoError(t, err)
	return usecase.NewSimpleLauncher(usecase.SimpleLauncherParams{
		Config:      f.cfg,
		Console:     c,
		Runner:      f.runner,
		Environment: f.env,
		Repository:  f.repo,
		Recorder:    metrics.NewNoOpMetricRecorder(),
		Tracer:      metrics.NewNoOpTracer(),
		Listeners:   []port.LaunchListener{f.listener},
	})
}

func (f *fixture) lastExecution(t *testing.T) *model.LaunchExecution {
	t.Helper()
	executions, err := f.repo.FindRecentLaunchExecutions(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, executions, 1)
	return executions[0]
}

func TestRun_AppliesEnvAndStartsOneChild(t *testing.T) {
	f := newFixture(t, map[string]string{
		".env":   "PORT=5000\nURL=http://host:5000/path?a=b\n# comment\nnot an assignment\n",
		"app.py": "print('hi')\n",
	})
	f.runner.code = 3

	code := f.launcher(t).Run(context.Background())

	assert.Equal(t, 3, code)
	require.Len(t, f.runner.specs, 1)
	spec := f.runner.specs[0]
	assert.Equal(t, f.dir, spec.Dir)
	assert.Equal(t, []string{filepath.Join(f.dir, "app.py")}, spec.Argv)
	assert.Contains(t, spec.Env, "PORT=5000")
	assert.Contains(t, spec.Env, "URL=http://host:5000/path?a=b")
	assert.Contains(t, spec.Env, "PATH=/usr/bin")

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, f.dir, wd)

	execution := f.lastExecution(t)
	assert.Equal(t, model.LaunchStatusExited, execution.Status)
	assert.Equal(t, 3, execution.ExitCode)
	assert.Equal(t, 4242, execution.PID)
	assert.Equal(t, 2, execution.AssignmentCount)
	assert.Equal(t, 1, execution.SkippedLines)

	out := f.out.String()
	assert.Contains(t, out, "=== dotlaunch: starting app.py in "+f.dir+" ===")
	assert.Contains(t, out, "Loaded 2 variable(s) from .env")
	assert.Contains(t, out, "The application exited with code 3")
	assert.Contains(t, out, "=== dotlaunch finished ===")

	assert.Len(t, f.listener.before, 1)
	assert.Equal(t, []model.LaunchStatus{model.LaunchStatusExited}, f.listener.after)
}

func TestRun_MissingEntryPointStartsNothing(t *testing.T) {
	f := newFixture(t, map[string]string{".env": "PORT=5000\n"})

	code := f.launcher(t).Run(context.Background())

	assert.Equal(t, usecase.ExitFailure, code)
	assert.Empty(t, f.runner.specs)
	assert.Empty(t, f.runner.detached)
	assert.Contains(t, f.out.String(), "Error: app.py not found. Nothing was started.")
	assert.NotContains(t, f.out.String(), "=== dotlaunch finished ===")

	execution := f.lastExecution(t)
	assert.Equal(t, model.LaunchStatusFailed, execution.Status)
	assert.NotEmpty(t, execution.ErrorMessage)
}

func TestRun_EntryPointIsADirectory(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, os.Mkdir(filepath.Join(f.dir, "app.py"), 0o755))

	code := f.launcher(t).Run(context.Background())

	assert.Equal(t, usecase.ExitFailure, code)
	assert.Empty(t, f.runner.specs)
}

func TestRun_MissingEnvFileIsAWarning(t *testing.T) {
	f := newFixture(t, map[string]string{"app.py": ""})

	code := f.launcher(t).Run(context.Background())

	assert.Equal(t, 0, code)
	require.Len(t, f.runner.specs, 1)
	assert.Contains(t, f.runner.specs[0].Env, "PORT=1")
	assert.Contains(t, f.out.String(), "Warning: .env not found, continuing without it")
	assert.Equal(t, 0, f.lastExecution(t).AssignmentCount)
}

func TestRun_MissingEnvFileRequired(t *testing.T) {
	f := newFixture(t, map[string]string{"app.py": ""})
	f.cfg.EnvFile.Required = true

	code := f.launcher(t).Run(context.Background())

	assert.Equal(t, usecase.ExitFailure, code)
	assert.Empty(t, f.runner.specs)
	assert.Equal(t, model.LaunchStatusFailed, f.lastExecution(t).Status)
}

func TestRun_NoOverrideKeepsInheritedValues(t *testing.T) {
	f := newFixture(t, map[string]string{".env": "PORT=5000\nNEW=yes\n", "app.py": ""})
	f.cfg.EnvFile.Override = false

	f.launcher(t).Run(context.Background())

	require.Len(t, f.runner.specs, 1)
	assert.Contains(t, f.runner.specs[0].Env, "PORT=1")
	assert.Contains(t, f.runner.specs[0].Env, "NEW=yes")
}

func TestRun_EnvSnapshotIsMasked(t *testing.T) {
	f := newFixture(t, map[string]string{".env": "API_TOKEN=abc\nPORT=5000\n", "app.py": ""})

	f.launcher(t).Run(context.Background())

	execution := f.lastExecution(t)
	assert.Contains(t, execution.EnvSnapshot, `API_TOKEN="******"`)
	assert.NotContains(t, execution.EnvSnapshot, "abc")
	assert.Contains(t, f.runner.specs[0].Env, "API_TOKEN=abc")
}

func TestRun_Detach(t *testing.T) {
	f := newFixture(t, map[string]string{"app.py": ""})
	f.cfg.Launch.Mode = config.LaunchModeDetach

	code := f.launcher(t).Run(context.Background())

	assert.Equal(t, 0, code)
	assert.Empty(t, f.runner.specs)
	require.Len(t, f.runner.detached, 1)
	assert.Nil(t, f.runner.detached[0].Stdin)
	assert.Contains(t, f.out.String(), "The application is now running (pid 4242)")

	execution := f.lastExecution(t)
	assert.Equal(t, model.LaunchStatusDetached, execution.Status)
	assert.Equal(t, 4242, execution.PID)
}

func TestRun_StartFailure(t *testing.T) {
	f := newFixture(t, map[string]string{"app.py": ""})
	f.runner.err = exception.NewLaunchError("process", exception.KindStartFailure, "failed to start app.py", os.ErrPermission)

	code := f.launcher(t).Run(context.Background())

	assert.Equal(t, usecase.ExitFailure, code)
	assert.Contains(t, f.out.String(), "Error: the application could not be started: failed to start app.py")
	assert.Equal(t, model.LaunchStatusFailed, f.lastExecution(t).Status)
}

func TestRun_BadWorkDir(t *testing.T) {
	f := newFixture(t, nil)
	f.cfg.Launcher.Dir = filepath.Join(f.dir, "missing")

	code := f.launcher(t).Run(context.Background())

	assert.Equal(t, usecase.ExitFailure, code)
	assert.Empty(t, f.runner.specs)
	assert.Contains(t, f.out.String(), "Error:")
}

func TestRun_BannersInOrder(t *testing.T) {
	f := newFixture(t, map[string]string{".env": "DEBUG=1\n", "app.py": "print('hi')\n"})

	code := f.launcher(t).Run(context.Background())

	assert.Equal(t, 0, code)
	assert.Equal(t, strings.Join([]string{
		"=== dotlaunch: starting app.py in " + f.dir + " ===",
		"Loaded 1 variable(s) from .env",
		"Launching: " + filepath.Join(f.dir, "app.py"),
		"The application exited with code 0",
		"=== dotlaunch finished ===",
	}, "\n")+"\n", f.out.String())
}

// eventLog records the order in which launch events and the closing pause happen.
type eventLog struct {
	events []string
}

func (l *eventLog) BeforeLaunch(ctx context.Context, execution *model.LaunchExecution) {
	l.events = append(l.events, "before")
}

func (l *eventLog) AfterLaunch(ctx context.Context, execution *model.LaunchExecution) {
	l.events = append(l.events, "after")
}

// Read is the console input; reaching it means the launcher is pausing.
func (l *eventLog) Read(p []byte) (int, error) {
	l.events = append(l.events, "pause")
	return 0, io.EOF
}

func TestRun_ListenersFinishBeforePause(t *testing.T) {
	f := newFixture(t, map[string]string{"app.py": ""})
	events := &eventLog{}
	c, err := console.New(f.out, events, "en", config.PauseAlways, false)
	require.NoError(t, err)

	launcher := usecase.NewSimpleLauncher(usecase.SimpleLauncherParams{
		Config:      f.cfg,
		Console:     c,
		Runner:      f.runner,
		Environment: f.env,
		Repository:  f.repo,
		Recorder:    metrics.NewNoOpMetricRecorder(),
		Tracer:      metrics.NewNoOpTracer(),
		Listeners:   []port.LaunchListener{events},
	})
	launcher.Run(context.Background())

	assert.Equal(t, []string{"before", "after", "pause"}, events.events)
	assert.True(t, strings.HasSuffix(f.out.String(), "Press Enter to continue...\n"))
}

func TestRun_FailureStackTraceAtDebug(t *testing.T) {
	var buf bytes.Buffer
	previous := logger.GetLogLevel()
	logger.SetOutput(&buf)
	logger.SetLogLevel("DEBUG")
	t.Cleanup(func() {
		logger.SetOutput(os.Stderr)
		logger.SetLevel(previous)
	})

	f := newFixture(t, nil)
	f.launcher(t).Run(context.Background())

	assert.Contains(t, buf.String(), "failure raised at:")
	assert.Contains(t, buf.String(), "entrypoint.Check")
}
