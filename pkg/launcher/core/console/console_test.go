package console_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tigerroll/dotlaunch/pkg/launcher/core/console"
	"github.com/tigerroll/dotlaunch/pkg/launcher/support/util/exception"
)

func TestBannersEnglish(t *testing.T) {
	var out bytes.Buffer
	c, err := console.New(&out, nil, "en", "never", false)
	require.NoError(t, err)

	c.Starting("app.py", "/srv/app")
	c.EnvLoaded(2, ".env")
	c.Running(42)
	c.Exited(3)
	c.MissingEntryPoint("/srv/app/app.py")
	c.StartFailure(exception.NewLaunchError("process", exception.KindStartFailure, "failed to start python3", errors.New("boom")))
	c.Done()

	assert.Equal(t, strings.Join([]string{
		"=== dotlaunch: starting app.py in /srv/app ===",
		"Loaded 2 variable(s) from .env",
		"The application is now running (pid 42)",
		"The application exited with code 3",
		"Error: /srv/app/app.py not found. Nothing was started.",
		"Error: the application could not be started: failed to start python3",
		"=== dotlaunch finished ===",
	}, "\n")+"\n", out.String())
}

func TestLocalesShareArguments(t *testing.T) {
	assert.Equal(t, []string{"en", "fa"}, console.Locales())
	for _, locale := range console.Locales() {
		var out bytes.Buffer
		c, err := console.New(&out, nil, locale, "never", false)
		require.NoError(t, err)

		c.EnvLoaded(7, ".env")
		c.Exited(5)
		assert.Contains(t, out.String(), "7", locale)
		assert.Contains(t, out.String(), ".env", locale)
		assert.Contains(t, out.String(), "5", locale)
		assert.NotContains(t, out.String(), "%!", locale)
	}
}

func TestNewRejectsBadSettings(t *testing.T) {
	_, err := console.New(&bytes.Buffer{}, nil, "de", "auto", false)
	assert.True(t, errors.Is(err, exception.ErrInvalidConfig))

	_, err = console.New(&bytes.Buffer{}, nil, "en", "sometimes", false)
	assert.True(t, errors.Is(err, exception.ErrInvalidConfig))
}

func TestPausePolicy(t *testing.T) {
	cases := []struct {
		pause    string
		terminal bool
		want     bool
	}{
		{"always", false, true},
		{"never", true, false},
		{"auto", true, true},
		{"auto", false, false},
	}
	for _, tc := range cases {
		c, err := console.New(&bytes.Buffer{}, nil, "en", tc.pause, tc.terminal)
		require.NoError(t, err)
		assert.Equal(t, tc.want, c.ShouldPause(), "%s/%v", tc.pause, tc.terminal)
	}
}

func TestPauseReadsOneLine(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("\nleftover\n")
	c, err := console.New(&out, in, "en", "always", false)
	require.NoError(t, err)

	c.Pause()
	assert.Equal(t, "Press Enter to continue...\n", out.String())

	// End of input also ends the pause.
	c2, err := console.New(&bytes.Buffer{}, strings.NewReader(""), "en", "always", false)
	require.NoError(t, err)
	c2.Pause()
}

func TestPauseNeverPrintsNothing(t *testing.T) {
	var out bytes.Buffer
	c, err := console.New(&out, strings.NewReader("\n"), "en", "never", true)
	require.NoError(t, err)
	c.Pause()
	assert.Empty(t, out.String())
}
