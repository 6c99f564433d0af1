package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"exusiai.dev/mapbook/internal/app/appconfig"
	"exusiai.dev/mapbook/internal/modconfig"
	"exusiai.dev/mapbook/internal/model"
	"exusiai.dev/mapbook/internal/model/types"
	"exusiai.dev/mapbook/internal/pkg/observability"
	"exusiai.dev/mapbook/internal/repo"
)

type Loot struct {
	Config       *appconfig.Config
	LocationRepo *repo.Location
}

func NewLoot(conf *appconfig.Config, locationRepo *repo.Location) *Loot {
	return &Loot{
		Config:       conf,
		LocationRepo: locationRepo,
	}
}

// Propagate appends itemID to the spawn table of every static loot container of every location.
// Locations without static loot are skipped.
func (s *Loot) Propagate(ctx context.Context, conf *modconfig.Config, itemID string) types.LootOutcome {
	l := log.Ctx(ctx)
	weight := conf.SpawnWeight()

	var outcome types.LootOutcome
	for _, location := range s.LocationRepo.GetLocations() {
		if location.StaticLoot == nil {
			outcome.SkippedLocations++
			l.Debug().
				Str("evt.name", "loot.location.skipped").
				Str("location", location.Name).
				Msg("location has no static loot")
			continue
		}

		outcome.Locations++
		for containerID, container := range location.StaticLoot {
			if container == nil {
				outcome.SkippedContainers++
				continue
			}
			if s.Config.IdempotentRerun && container.Lists(itemID) {
				outcome.SkippedContainers++
				continue
			}

			container.ItemDistribution = append(container.ItemDistribution, &model.LootEntry{
				Tpl:                 itemID,
				RelativeProbability: weight,
			})
			outcome.Containers++
			observability.LootEntriesAppended.Inc()

			l.Trace().
				Str("evt.name", "loot.container.patched").
				Str("location", location.Name).
				Str("container", containerID).
				Msg("added loot entry")
		}
	}

	l.Info().
		Str("evt.name", "loot.done").
		Int("locations", outcome.Locations).
		Int("containers", outcome.Containers).
		Int("skippedLocations", outcome.SkippedLocations).
		Msg("loot propagated")

	return outcome
}
