package main

import (
	"go.uber.org/fx"

	usecase "github.com/tigerroll/dotlaunch/pkg/launcher/core/application/usecase"
	config "github.com/tigerroll/dotlaunch/pkg/launcher/core/config"
	console "github.com/tigerroll/dotlaunch/pkg/launcher/core/console"
	dotenv "github.com/tigerroll/dotlaunch/pkg/launcher/core/dotenv"
	process "github.com/tigerroll/dotlaunch/pkg/launcher/core/process"
	metrics "github.com/tigerroll/dotlaunch/pkg/launcher/infrastructure/metrics"
	repository "github.com/tigerroll/dotlaunch/pkg/launcher/infrastructure/repository"
	listener "github.com/tigerroll/dotlaunch/pkg/launcher/listener"
	logger "github.com/tigerroll/dotlaunch/pkg/launcher/support/util/logger"
)

// GetApplicationOptions builds the fx options for cfg.
// Components are constructed lazily, so subcommands only pay for what they populate.
func GetApplicationOptions(cfg *config.Config) []fx.Option {
	var options []fx.Option

	options = append(options, fx.Supply(cfg))
	options = append(options, logger.Module)
	options = append(options, config.Module)
	options = append(options, console.Module)
	options = append(options, dotenv.Module)
	options = append(options, process.Module)
	options = append(options, metrics.Module)
	options = append(options, repository.Module)
	options = append(options, listener.Module)
	options = append(options, usecase.Module)

	return options
}
