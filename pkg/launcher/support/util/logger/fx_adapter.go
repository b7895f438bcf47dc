package logger

import (
	"strings"
	"time"

	"go.uber.org/fx/fxevent"
)

// modulePrefix is trimmed from constructor and hook names to keep log lines short.
const modulePrefix = "github.com/tigerroll/dotlaunch/pkg/launcher/"

// slowHook is the hook runtime above which a lifecycle hook is reported at WARN.
// Shutdown hooks flush exporters and close the history database; a slow one delays the exit.
const slowHook = 2 * time.Second

// FxLoggerAdapter writes Fx events to the diagnostic log.
// Wiring details go to DEBUG, slow lifecycle hooks to WARN and failures to ERROR.
type FxLoggerAdapter struct{}

// NewFxLoggerAdapter returns the adapter installed by Module.
func NewFxLoggerAdapter() fxevent.Logger {
	return &FxLoggerAdapter{}
}

func (l *FxLoggerAdapter) LogEvent(event fxevent.Event) {
	switch e := event.(type) {
	case *fxevent.OnStartExecuted:
		logHook("start", e.FunctionName, e.CallerName, e.Runtime, e.Err)
	case *fxevent.OnStopExecuted:
		logHook("stop", e.FunctionName, e.CallerName, e.Runtime, e.Err)
	case *fxevent.Provided:
		if e.Err != nil {
			Errorf("fx: provide %s: %v", shortName(e.ConstructorName), e.Err)
			return
		}
		Debugf("fx: %s provides %s", shortName(e.ConstructorName), strings.Join(e.OutputTypeNames, ", "))
	case *fxevent.Supplied:
		if e.Err != nil {
			Errorf("fx: supply %s: %v", e.TypeName, e.Err)
			return
		}
		Debugf("fx: supplied %s", e.TypeName)
	case *fxevent.Invoked:
		if e.Err != nil {
			Errorf("fx: invoke %s: %v", shortName(e.FunctionName), e.Err)
		}
	case *fxevent.Started:
		if e.Err != nil {
			Errorf("fx: start: %v", e.Err)
			return
		}
		Debugf("fx: started")
	case *fxevent.Stopped:
		if e.Err != nil {
			Errorf("fx: stop: %v", e.Err)
		}
	case *fxevent.RollingBack:
		Errorf("fx: start failed, rolling back: %v", e.StartErr)
	case *fxevent.RolledBack:
		if e.Err != nil {
			Errorf("fx: rollback: %v", e.Err)
		}
	case *fxevent.LoggerInitialized:
		if e.Err != nil {
			Errorf("fx: logger: %v", e.Err)
		}
	}
}

func logHook(phase, function, caller string, runtime time.Duration, err error) {
	name := shortName(function)
	switch {
	case err != nil:
		Errorf("fx: %s hook %s (registered by %s) failed: %v", phase, name, shortName(caller), err)
	case runtime > slowHook:
		Warnf("fx: %s hook %s took %s", phase, name, runtime)
	default:
		Debugf("fx: %s hook %s took %s", phase, name, runtime)
	}
}

// shortName drops the module prefix and anonymous-function suffixes such as ".func1".
func shortName(name string) string {
	name = strings.TrimPrefix(name, modulePrefix)
	if idx := strings.LastIndex(name, ".func"); idx != -1 {
		return name[:idx]
	}
	return name
}
