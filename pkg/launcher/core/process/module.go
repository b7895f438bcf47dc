package process

import "go.uber.org/fx"

// Module provides the os/exec Runner.
var Module = fx.Options(
	fx.Provide(NewExecRunner),
)
