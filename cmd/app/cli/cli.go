package cli

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/fx"

	"exusiai.dev/mapbook/internal/app"
	"exusiai.dev/mapbook/internal/app/appcontext"
)

func Start(module fx.Option) error {
	a := app.New(appcontext.Declare(appcontext.EnvCLI), module)
	if err := a.Err(); err != nil {
		return errors.Wrap(err, "failed to build application")
	}
	return a.Start(context.Background())
}

// DepsFn returns a function resolving T from the application graph. Nothing is built until the
// returned function is called, so commands only load what they ask for.
func DepsFn[T any]() func() (T, error) {
	return func() (T, error) {
		var deps T
		err := Start(fx.Populate(&deps))
		return deps, err
	}
}
