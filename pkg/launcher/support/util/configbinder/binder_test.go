package configbinder_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tigerroll/dotlaunch/pkg/launcher/support/util/configbinder"
)

type consoleSection struct {
	Locale string `yaml:"locale"`
	Pause  string `yaml:"pause"`
}

type launchSection struct {
	Mode      string        `yaml:"mode"`
	StopGrace time.Duration `yaml:"stop_grace"`
}

type sample struct {
	Console consoleSection `yaml:"console"`
	Launch  launchSection  `yaml:"launch"`
	Masked  []string       `yaml:"masked"`
	Retries int            `yaml:"retries"`
}

func TestParseAssignments(t *testing.T) {
	props, err := configbinder.ParseAssignments([]string{
		"console.pause=never",
		"console.locale=fa",
		"launch.mode=detach",
		"url=http://host:5000/path?a=b",
	})
	require.NoError(t, err)

	console, ok := props["console"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "never", console["pause"])
	assert.Equal(t, "fa", console["locale"])
	assert.Equal(t, "http://host:5000/path?a=b", props["url"])
}

func TestParseAssignments_Invalid(t *testing.T) {
	for _, bad := range []string{"novalue", "=x", "a..b=1"} {
		_, err := configbinder.ParseAssignments([]string{bad})
		assert.Error(t, err, bad)
	}

	_, err := configbinder.ParseAssignments([]string{"launch=1", "launch.mode=wait"})
	assert.Error(t, err)
}

func TestBindProperties_KeepsUntouchedFields(t *testing.T) {
	target := sample{
		Console: consoleSection{Locale: "en", Pause: "auto"},
		Launch:  launchSection{Mode: "wait", StopGrace: time.Second},
		Retries: 1,
	}

	props, err := configbinder.ParseAssignments([]string{
		"console.pause=never",
		"launch.stop_grace=5s",
		"masked=token,secret",
		"retries=3",
	})
	require.NoError(t, err)
	require.NoError(t, configbinder.BindProperties(props, &target))

	assert.Equal(t, "en", target.Console.Locale)
	assert.Equal(t, "never", target.Console.Pause)
	assert.Equal(t, "wait", target.Launch.Mode)
	assert.Equal(t, 5*time.Second, target.Launch.StopGrace)
	assert.Equal(t, []string{"token", "secret"}, target.Masked)
	assert.Equal(t, 3, target.Retries)
}

func TestBindProperties_UnknownKey(t *testing.T) {
	var target sample
	props, err := configbinder.ParseAssignments([]string{"console.colour=red"})
	require.NoError(t, err)
	assert.Error(t, configbinder.BindProperties(props, &target))
}
