package service_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exusiai.dev/mapbook/internal/modconfig"
	"exusiai.dev/mapbook/internal/model/types"
	"exusiai.dev/mapbook/internal/pkg/mberr"
	"exusiai.dev/mapbook/internal/pkg/testentry"
	"exusiai.dev/mapbook/internal/service"
)

func TestDiscoverSecureContainers(t *testing.T) {
	ctx := testentry.Context(t)

	var patcher *service.Patcher
	testentry.Populate(t, testentry.Catalog(), nil, &patcher)

	found := patcher.DiscoverSecureContainers(ctx)
	assert.Equal(t, []string{testentry.GammaID, testentry.KappaID}, found.Keys())
	assert.Equal(t, []string{"item_container_gamma", "item_container_kappa"}, found.Values())
}

func TestDiscoverSpecialSlots(t *testing.T) {
	ctx := testentry.Context(t)

	var patcher *service.Patcher
	testentry.Populate(t, testentry.Catalog(), nil, &patcher)

	slots := patcher.DiscoverSpecialSlots(ctx)
	assert.Equal(t, []service.SpecialSlot{
		{SlotID: testentry.SpecialSlot1ID, Name: "SpecialSlot1", OwnerID: testentry.PocketsID},
		{SlotID: testentry.SpecialSlot2ID, Name: "specialslot2", OwnerID: testentry.PocketsID},
	}, slots)
}

func TestAllowInContainers(t *testing.T) {
	ctx := testentry.Context(t)
	db := testentry.Catalog()

	var patcher *service.Patcher
	testentry.Populate(t, db, nil, &patcher)

	conf := testentry.ModConfig()
	conf.Pouches = conf.Pouches.Set("000000000000000000000000", "Missing pouch")

	outcomes := patcher.AllowInContainers(ctx, conf, testentry.ItemID)
	require.Len(t, outcomes, 4)

	tests := []struct {
		id     string
		status types.TargetStatus
	}{
		{testentry.GammaID, types.TargetPatched},
		{testentry.EmptyCaseID, types.TargetSkipped},
		{testentry.PouchID, types.TargetPatched},
		{"000000000000000000000000", types.TargetFailed},
	}
	for i, tt := range tests {
		assert.Equal(t, tt.id, outcomes[i].TargetID)
		assert.Equal(t, tt.status, outcomes[i].Status, tt.id)
	}
	assert.True(t, errors.Is(outcomes[3].Err, mberr.ErrNotFound))
	assert.Equal(t, "Gamma", outcomes[0].Label)

	gamma := db.Items[testentry.GammaID].Props
	assert.Equal(t, []string{testentry.ItemID}, gamma.Grids[0].Props.Filters[0].Filter)
	assert.Empty(t, gamma.Grids[1].Props.Filters[0].Filter)
	assert.Empty(t, db.Items[testentry.EmptyCaseID].Props.Grids)
	assert.True(t, db.Items[testentry.PouchID].Props.Grids[0].Accepts(testentry.ItemID))

	// patching again keeps the filter a set
	patcher.AllowInContainers(ctx, conf, testentry.ItemID)
	assert.Len(t, gamma.Grids[0].Props.Filters[0].Filter, 1)
}

func TestAllowInSpecialSlots(t *testing.T) {
	ctx := testentry.Context(t)

	t.Run("scan", func(t *testing.T) {
		db := testentry.Catalog()
		var patcher *service.Patcher
		testentry.Populate(t, db, nil, &patcher)

		conf := testentry.ModConfig()
		conf.SpecialSlots = []string{testentry.SpecialSlot1ID, testentry.SpecialSlot2ID, "000000000000000000000000"}

		outcomes := patcher.AllowInSpecialSlots(ctx, conf, patcher.DiscoverSpecialSlots(ctx), testentry.ItemID)
		assert.Equal(t, 3, outcomes.Count(types.TargetPatched))
		assert.Equal(t, 1, outcomes.Count(types.TargetFailed))

		pockets := db.Items[testentry.PocketsID].Props.Slots
		assert.Equal(t, []string{"5991b51486f77447b112d44f", testentry.ItemID}, pockets[0].Props.Filters[0].Filter)
		assert.Equal(t, []string{testentry.ItemID}, pockets[1].Props.Filters[0].Filter)
		assert.Nil(t, pockets[2].Props.Filters)
		assert.True(t, db.Items[testentry.AltPocketsID].Props.Slots[0].EnsureFilter().Contains(testentry.ItemID))
	})

	t.Run("owner", func(t *testing.T) {
		db := testentry.Catalog()
		var patcher *service.Patcher
		testentry.Populate(t, db, nil, &patcher)

		conf := testentry.ModConfig()
		conf.SpecialSlotStrategy = modconfig.SpecialSlotStrategyOwner
		conf.SpecialSlots = []string{testentry.SpecialSlot1ID, testentry.SpecialSlot2ID, "000000000000000000000000"}

		outcomes := patcher.AllowInSpecialSlots(ctx, conf, patcher.DiscoverSpecialSlots(ctx), testentry.ItemID)
		require.Len(t, outcomes, 3)
		assert.Equal(t, 2, outcomes.Count(types.TargetPatched))

		failed, ok := outcomes.Of("000000000000000000000000")
		require.True(t, ok)
		assert.Equal(t, types.TargetFailed, failed.Status)

		assert.True(t, db.Items[testentry.PocketsID].Props.Slots[0].EnsureFilter().Contains(testentry.ItemID))
		assert.Nil(t, db.Items[testentry.AltPocketsID].Props.Slots[0].Props.Filters)
	})
}
