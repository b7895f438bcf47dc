// Package exception provides the error type shared by the launcher packages.
// Each LaunchError carries the module it came from and a Kind that maps onto a
// registered sentinel, so callers can branch with errors.Is.
package exception

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
)

// Kind classifies a LaunchError.
type Kind string

const (
	// KindMissingEntryPoint is raised when the entry-point file does not exist.
	KindMissingEntryPoint Kind = "MissingEntryPoint"
	// KindMissingEnvFile is raised when a required .env file does not exist.
	KindMissingEnvFile Kind = "MissingEnvFile"
	// KindStartFailure is raised when the child process cannot be started.
	KindStartFailure Kind = "StartFailure"
	// KindWorkDir is raised when the launcher directory cannot be resolved or entered.
	KindWorkDir Kind = "WorkDir"
	// KindInvalidConfig is raised for configuration problems.
	KindInvalidConfig Kind = "InvalidConfig"
	// KindInternal covers everything else.
	KindInternal Kind = "Internal"
)

var (
	ErrMissingEntryPoint = errors.New(string(KindMissingEntryPoint))
	ErrMissingEnvFile    = errors.New(string(KindMissingEnvFile))
	ErrStartFailure      = errors.New(string(KindStartFailure))
	ErrWorkDir           = errors.New(string(KindWorkDir))
	ErrInvalidConfig     = errors.New(string(KindInvalidConfig))
)

var (
	errorRegistry = make(map[string]error)
	registryMutex sync.RWMutex
)

// RegisterErrorType registers the sentinel a LaunchError of Kind name matches with errors.Is.
// It panics when name is empty or prototype is nil.
func RegisterErrorType(name string, prototype error) {
	registryMutex.Lock()
	defer registryMutex.Unlock()

	if name == "" {
		panic("error type name cannot be empty")
	}
	if prototype == nil {
		panic(fmt.Sprintf("cannot register nil prototype for name: %s", name))
	}
	errorRegistry[name] = prototype
}

// LaunchError is an error raised by one of the launcher steps.
type LaunchError struct {
	// Module is the step that failed (e.g. "workdir", "dotenv", "entrypoint", "process").
	Module string
	// Message is a short description of the failure.
	Message string
	// Kind selects the sentinel this error matches with errors.Is.
	Kind Kind
	// OriginalErr is the wrapped cause, if any.
	OriginalErr error
	// StackTrace is captured at construction time and logged at DEBUG when a launch fails.
	StackTrace string
}

// NewLaunchError creates a LaunchError and captures the current stack.
func NewLaunchError(module string, kind Kind, message string, originalErr error) *LaunchError {
	buf := make([]byte, 2048)
	n := runtime.Stack(buf, false)

	return &LaunchError{
		Module:      module,
		Message:     message,
		Kind:        kind,
		OriginalErr: originalErr,
		StackTrace:  string(buf[:n]),
	}
}

// NewLaunchErrorf is NewLaunchError with a formatted message.
// A trailing error argument is taken as the wrapped cause and removed from the format arguments.
func NewLaunchErrorf(module string, kind Kind, format string, a ...interface{}) *LaunchError {
	var originalErr error
	if len(a) > 0 {
		if err, ok := a[len(a)-1].(error); ok {
			originalErr = err
			a = a[:len(a)-1]
		}
	}
	return NewLaunchError(module, kind, fmt.Sprintf(format, a...), originalErr)
}

// Error implements the error interface.
func (e *LaunchError) Error() string {
	if e.OriginalErr != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Module, e.Message, e.OriginalErr)
	}
	return fmt.Sprintf("[%s] %s", e.Module, e.Message)
}

// Unwrap returns the original error for errors.Unwrap.
func (e *LaunchError) Unwrap() error {
	return e.OriginalErr
}

// Is matches the sentinel registered for the error's Kind.
func (e *LaunchError) Is(target error) bool {
	registryMutex.RLock()
	sentinel, ok := errorRegistry[string(e.Kind)]
	registryMutex.RUnlock()
	return ok && sentinel == target
}

// KindOf returns the Kind of the first LaunchError in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var le *LaunchError
	if errors.As(err, &le) {
		return le.Kind
	}
	return KindInternal
}

// ExtractErrorMessage returns the Message of a LaunchError, or err.Error() otherwise.
func ExtractErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var le *LaunchError
	if errors.As(err, &le) {
		return le.Message
	}
	return err.Error()
}

func init() {
	RegisterErrorType(string(KindMissingEntryPoint), ErrMissingEntryPoint)
	RegisterErrorType(string(KindMissingEnvFile), ErrMissingEnvFile)
	RegisterErrorType(string(KindStartFailure), ErrStartFailure)
	RegisterErrorType(string(KindWorkDir), ErrWorkDir)
	RegisterErrorType(string(KindInvalidConfig), ErrInvalidConfig)
}
