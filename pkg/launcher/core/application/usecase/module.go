package usecase

import (
	"go.uber.org/fx"
)

// Module is the Fx module for the Launcher and LaunchExplorer.
var Module = fx.Options(
	fx.Provide(fx.Annotate(
		NewSimpleLaunchExplorer,
		fx.As(new(LaunchExplorer)),
	)),
	fx.Provide(NewSimpleLauncher),
	fx.Provide(func(launcher *SimpleLauncher) Launcher { return launcher }),
)
