package logging_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tigerroll/dotlaunch/pkg/launcher/core/domain/model"
	"github.com/tigerroll/dotlaunch/pkg/launcher/listener/logging"
	"github.com/tigerroll/dotlaunch/pkg/launcher/support/util/logger"
)

func TestLoggingLaunchListener(t *testing.T) {
	var buf bytes.Buffer
	previous := logger.GetLogLevel()
	logger.SetOutput(&buf)
	logger.SetLogLevel("INFO")
	t.Cleanup(func() {
		logger.SetOutput(os.Stderr)
		logger.SetLevel(previous)
	})

	l := logging.NewLoggingLaunchListener()
	ctx := context.Background()

	ok := model.NewLaunchExecution("app.py", "wait")
	l.BeforeLaunch(ctx, ok)
	ok.MarkExited(0)
	l.AfterLaunch(ctx, ok)

	failed := model.NewLaunchExecution("app.py", "wait")
	failed.MarkFailed(errors.New("app.py not found"))
	l.AfterLaunch(ctx, failed)

	out := buf.String()
	assert.Contains(t, out, "BeforeLaunch - EntryPoint: app.py, ID: "+ok.ID)
	assert.Contains(t, out, "Status: EXITED, ExitCode: 0")
	assert.Contains(t, out, "Status: FAILED, Error: app.py not found")
}
