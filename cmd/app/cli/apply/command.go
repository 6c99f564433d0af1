package apply

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	"exusiai.dev/mapbook/internal/app/appconfig"
	"exusiai.dev/mapbook/internal/modconfig"
	"exusiai.dev/mapbook/internal/repo"
	"exusiai.dev/mapbook/internal/service"
)

type CommandDeps struct {
	fx.In

	Config    *appconfig.Config
	ModConfig *modconfig.Config
	Database  *repo.Database
	Pipeline  *service.Pipeline
}

func Command(depsFn func() (CommandDeps, error)) *cli.Command {
	return &cli.Command{
		Name:  "apply",
		Usage: "add the mapbook to the catalog and persist the patched catalog",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "run the pipeline without writing the catalog",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print the run result as JSON to stdout",
			},
		},
		Action: func(c *cli.Context) error {
			deps, err := depsFn()
			if err != nil {
				return err
			}
			return run(c.Context, deps, options{
				DryRun: c.Bool("dry-run"),
				JSON:   c.Bool("json"),
			})
		},
	}
}
