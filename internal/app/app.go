package app

import (
	"time"

	"go.uber.org/fx"

	"exusiai.dev/mapbook/internal/app/appconfig"
	"exusiai.dev/mapbook/internal/app/appcontext"
	"exusiai.dev/mapbook/internal/modconfig"
	"exusiai.dev/mapbook/internal/pkg/logger"
	"exusiai.dev/mapbook/internal/repo"
	"exusiai.dev/mapbook/internal/service"
	"exusiai.dev/mapbook/internal/util/verifs"
)

func Options(ctx appcontext.Ctx, additionalOpts ...fx.Option) []fx.Option {
	conf, err := appconfig.Parse(ctx)
	if err != nil {
		panic(err)
	}

	// logger and configuration are the only two things that are not in the fx graph
	// because some other packages need them to be initialized before fx starts
	logger.Configure(conf)

	baseOpts := []fx.Option{
		// fx meta
		fx.WithLogger(logger.Fx),

		// Misc
		fx.Supply(conf),

		// Catalog and mod configuration. Both are only loaded when a command asks for them.
		fx.Provide(repo.OpenDatabase),
		fx.Provide(modconfig.Provide),

		// Verifiers
		verifs.Module(),

		// Repositories
		repo.Module(),

		// Services
		service.Module(),

		// fx Extra Options
		fx.StartTimeout(30 * time.Second),
	}

	return append(baseOpts, additionalOpts...)
}

func New(ctx appcontext.Ctx, additionalOpts ...fx.Option) *fx.App {
	return fx.New(Options(ctx, additionalOpts...)...)
}
