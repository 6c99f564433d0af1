package repo

import (
	"go.uber.org/fx"
)

// Module provides the typed repositories. The *Database they wrap is provided by the caller,
// usually through OpenDatabase.
func Module() fx.Option {
	return fx.Module("repo", fx.Provide(
		NewItem,
		NewTrader,
		NewLocale,
		NewLocation,
	))
}
