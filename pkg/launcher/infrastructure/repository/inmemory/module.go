package inmemory

import (
	"go.uber.org/fx"

	repository "github.com/tigerroll/dotlaunch/pkg/launcher/core/domain/repository"
)

// Module provides InMemoryLaunchRepository as a repository.LaunchRepository.
var Module = fx.Options(
	fx.Provide(
		fx.Annotate(
			NewInMemoryLaunchRepository,
			fx.As(new(repository.LaunchRepository)),
		),
	),
)
