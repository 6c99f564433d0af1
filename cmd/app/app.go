package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	cliapp "exusiai.dev/mapbook/cmd/app/cli"
	"exusiai.dev/mapbook/cmd/app/cli/apply"
	"exusiai.dev/mapbook/cmd/app/cli/configset"
	"exusiai.dev/mapbook/cmd/app/cli/verify"
	"exusiai.dev/mapbook/internal/pkg/bininfo"
)

func Run() {
	app := &cli.App{
		Name:        "mapbook",
		Description: "Adds the secure mapbook container to an item catalog dump: synthesizes the item, lists it with a vendor, spreads it into world loot and lets secure containers hold it.",
		Version:     bininfo.Describe(),
		Commands: []*cli.Command{
			apply.Command(cliapp.DepsFn[apply.CommandDeps]()),
			verify.Command(cliapp.DepsFn[verify.CommandDeps]()),
			configset.Command(cliapp.DepsFn[configset.CommandDeps]()),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run app")
	}
}
