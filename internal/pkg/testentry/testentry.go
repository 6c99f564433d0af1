package testentry

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	"exusiai.dev/mapbook/internal/app/appconfig"
	"exusiai.dev/mapbook/internal/app/appcontext"
	"exusiai.dev/mapbook/internal/repo"
	"exusiai.dev/mapbook/internal/service"
	"exusiai.dev/mapbook/internal/util/verifs"
)

// Populate builds the service graph around db and fills targets from it.
func Populate(t testing.TB, db *repo.Database, conf *appconfig.Config, targets ...any) {
	t.Helper()

	if conf == nil {
		conf = AppConfig()
	}

	// for testing, the fx event log is too noisy. therefore, we use a NopLogger here
	app := fx.New(
		fx.NopLogger,
		fx.Supply(db, conf),
		repo.Module(),
		service.Module(),
		verifs.Module(),
		fx.Populate(targets...),
	)

	require.NoError(t, app.Start(context.Background()))
	t.Cleanup(func() {
		_ = app.Stop(context.Background())
	})
}

// Context returns a context carrying a logger that writes through t.
func Context(t testing.TB) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)
	log.Logger = logger
	return logger.WithContext(context.Background())
}

func AppConfig() *appconfig.Config {
	return &appconfig.Config{
		ConfigSpec: appconfig.ConfigSpec{
			CatalogDir:   "database",
			ModConfigDir: "config",
			LogLevel:     "debug",
		},
		AppContext: appcontext.Declare(appcontext.EnvTest),
	}
}
