package configset

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	"exusiai.dev/mapbook/internal/app/appconfig"
)

type CommandDeps struct {
	fx.In

	Config *appconfig.Config
}

func Command(depsFn func() (CommandDeps, error)) *cli.Command {
	return &cli.Command{
		Name:  "config-set",
		Usage: "set a single key of a mod config file, keeping the rest of the file as is",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "file",
				Usage: "config file name, relative to the mod config directory",
				Value: "config.json",
			},
			&cli.StringFlag{
				Name:     "key",
				Usage:    "path of the key to set, e.g. price or maps.Customs",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "value",
				Usage:    "new value; parsed as JSON when valid, stored as a string otherwise",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			deps, err := depsFn()
			if err != nil {
				return err
			}
			return run(deps.Config.ModConfigDir, c.String("file"), c.String("key"), c.String("value"))
		},
	}
}
