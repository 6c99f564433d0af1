package apply

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"exusiai.dev/mapbook/internal/model/types"
	"exusiai.dev/mapbook/internal/pkg/observability"
)

type options struct {
	DryRun bool
	JSON   bool
}

func run(ctx context.Context, deps CommandDeps, opts options) error {
	result, err := deps.Pipeline.Run(ctx, deps.ModConfig)
	if err != nil {
		return errors.Wrap(err, "failed to apply mapbook")
	}

	log.Info().
		Str("evt.name", "apply.result").
		Str("run.id", result.RunID).
		Int("containers.failed", result.Containers.Count(types.TargetFailed)).
		Int("slots.failed", result.Slots.Count(types.TargetFailed)).
		Int("insurance.failed", result.Insurance.Count(types.TargetFailed)).
		Strs("validation.failed", result.Report.Failed()).
		Msg("pipeline finished")

	if opts.DryRun {
		log.Info().Msg("dry run: catalog not written")
	} else {
		if err := deps.Database.Save(ctx, deps.Config.OutputDir); err != nil {
			return errors.Wrap(err, "failed to persist catalog")
		}
		log.Info().
			Str("evt.name", "apply.saved").
			Str("dir", deps.Config.OutputDir).
			Msg("catalog written")
	}

	if deps.Config.MetricsTextfile != "" {
		if err := observability.WriteTextfile(deps.Config.MetricsTextfile); err != nil {
			log.Warn().Err(err).Msg("failed to flush metrics")
		}
	}

	if opts.JSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to encode run result")
		}
		fmt.Fprintln(os.Stdout, string(data))
	}

	return nil
}
