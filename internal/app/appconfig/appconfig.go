package appconfig

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"

	"exusiai.dev/mapbook/internal/app/appcontext"
)

func Parse(ctx appcontext.Ctx) (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Warn().Err(err).Msg("failed to load .env file")
	}

	var config ConfigSpec
	err = envconfig.Process("mapbook", &config)
	if err != nil {
		_ = envconfig.Usage("mapbook", &config)
		return nil, fmt.Errorf("failed to parse configuration: %w. More info on how to configure mapbook is located at https://pkg.go.dev/exusiai.dev/mapbook/internal/app/appconfig#ConfigSpec", err)
	}

	if config.OutputDir == "" {
		config.OutputDir = config.CatalogDir
	}

	return &Config{
		ConfigSpec: config,
		AppContext: ctx,
	}, nil
}
