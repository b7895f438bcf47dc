package console

import (
	"go.uber.org/fx"

	"github.com/tigerroll/dotlaunch/pkg/launcher/core/application/port"
)

// Module provides the stdio Console as a port.Console.
var Module = fx.Options(
	fx.Provide(fx.Annotate(
		NewStdConsole,
		fx.As(new(port.Console)),
	)),
)
