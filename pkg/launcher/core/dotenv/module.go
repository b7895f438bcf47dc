package dotenv

import "go.uber.org/fx"

// Module provides the process environment as the Environment assignments are applied to.
var Module = fx.Options(
	fx.Provide(NewOSEnvironment),
)
