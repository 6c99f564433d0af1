package verify

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	"exusiai.dev/mapbook/internal/app/appconfig"
	"exusiai.dev/mapbook/internal/modconfig"
	"exusiai.dev/mapbook/internal/pkg/observability"
	"exusiai.dev/mapbook/internal/service"
)

type CommandDeps struct {
	fx.In

	Config    *appconfig.Config
	ModConfig *modconfig.Config
	Pipeline  *service.Pipeline
}

func Command(depsFn func() (CommandDeps, error)) *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "validate an already patched catalog without changing it",
		Action: func(c *cli.Context) error {
			deps, err := depsFn()
			if err != nil {
				return err
			}

			report := deps.Pipeline.Verify(c.Context, deps.ModConfig)
			if deps.Config.MetricsTextfile != "" {
				if err := observability.WriteTextfile(deps.Config.MetricsTextfile); err != nil {
					return err
				}
			}
			if !report.Passed {
				return cli.Exit(report.Summary, 1)
			}
			return nil
		},
	}
}
