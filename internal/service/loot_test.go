package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/guregu/null.v3"

	"exusiai.dev/mapbook/internal/model/types"
	"exusiai.dev/mapbook/internal/pkg/testentry"
	"exusiai.dev/mapbook/internal/service"
)

func TestPropagate(t *testing.T) {
	ctx := testentry.Context(t)
	db := testentry.Catalog()

	var loot *service.Loot
	testentry.Populate(t, db, nil, &loot)

	outcome := loot.Propagate(ctx, testentry.ModConfig(), testentry.ItemID)
	assert.Equal(t, types.LootOutcome{Locations: 2, SkippedLocations: 1, Containers: 3}, outcome)

	for _, name := range []string{"bigmap", "woods"} {
		for id, container := range db.Locations[name].StaticLoot {
			assert.Equal(t, 1, container.Count(testentry.ItemID), "%s/%s", name, id)
			last := container.ItemDistribution[len(container.ItemDistribution)-1]
			assert.Equal(t, 1.0, last.RelativeProbability)
		}
	}
	assert.Nil(t, db.Locations["hideout"].StaticLoot)
}

func TestPropagateWeight(t *testing.T) {
	ctx := testentry.Context(t)
	db := testentry.Catalog()

	var loot *service.Loot
	testentry.Populate(t, db, nil, &loot)

	conf := testentry.ModConfig()
	conf.LootWeight = null.FloatFrom(0.25)
	loot.Propagate(ctx, conf, testentry.ItemID)

	entries := db.Locations["woods"].StaticLoot["578f87a3245977356274f2cb"].ItemDistribution
	assert.Equal(t, 0.25, entries[0].RelativeProbability)
}

func TestPropagateRerun(t *testing.T) {
	ctx := testentry.Context(t)

	t.Run("duplicates without guard", func(t *testing.T) {
		db := testentry.Catalog()
		var loot *service.Loot
		testentry.Populate(t, db, nil, &loot)

		loot.Propagate(ctx, testentry.ModConfig(), testentry.ItemID)
		loot.Propagate(ctx, testentry.ModConfig(), testentry.ItemID)

		for _, container := range db.Locations["bigmap"].StaticLoot {
			assert.Equal(t, 2, container.Count(testentry.ItemID))
		}
	})

	t.Run("skips with guard", func(t *testing.T) {
		db := testentry.Catalog()
		appConf := testentry.AppConfig()
		appConf.IdempotentRerun = true

		var loot *service.Loot
		testentry.Populate(t, db, appConf, &loot)

		loot.Propagate(ctx, testentry.ModConfig(), testentry.ItemID)
		outcome := loot.Propagate(ctx, testentry.ModConfig(), testentry.ItemID)
		assert.Equal(t, 3, outcome.SkippedContainers)
		assert.Zero(t, outcome.Containers)

		for _, container := range db.Locations["bigmap"].StaticLoot {
			assert.Equal(t, 1, container.Count(testentry.ItemID))
		}
	})
}
