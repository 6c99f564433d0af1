package service_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exusiai.dev/mapbook/internal/model"
	"exusiai.dev/mapbook/internal/pkg/mberr"
	"exusiai.dev/mapbook/internal/pkg/mongoid"
	"exusiai.dev/mapbook/internal/pkg/testentry"
	"exusiai.dev/mapbook/internal/repo"
	"exusiai.dev/mapbook/internal/service"
)

func TestSynthesize(t *testing.T) {
	ctx := testentry.Context(t)
	db := testentry.Catalog()

	var (
		synthesizer *service.Synthesizer
		itemRepo    *repo.Item
		localeRepo  *repo.Locale
	)
	testentry.Populate(t, db, nil, &synthesizer, &itemRepo, &localeRepo)

	conf := testentry.ModConfig()
	tpl, offers, err := synthesizer.Synthesize(ctx, conf)
	require.NoError(t, err)
	assert.Len(t, offers, 2)

	got, err := itemRepo.GetItemByID(testentry.ItemID)
	require.NoError(t, err)
	assert.Same(t, tpl, got)
	assert.Equal(t, testentry.ParentID, got.Parent)
	assert.Equal(t, "item_container_magbox", got.Name)

	props := got.Props
	assert.Equal(t, "Secure Mapbook", props.Name)
	assert.Equal(t, "Mapbook", props.ShortName)
	assert.Equal(t, 1, props.Width)
	assert.Equal(t, 2, props.Height)
	assert.True(t, props.RaidModdable)
	assert.True(t, props.CanPutIntoDuringTheRaid)
	assert.True(t, props.InsuranceDisabled)
	assert.False(t, props.CanSellOnRagfair)
	assert.False(t, props.ExaminedByDefault)
	assert.Empty(t, props.Grids)
	assert.Equal(t, "item_book", props.ItemSound)
	assert.Equal(t, "assets/content/items/barter/item_mapbook/mapbook.bundle", props.Prefab.Path)
	assert.Equal(t, "1.5", string(props.Extra["Weight"]))

	// the clone source is left untouched
	source := db.Items[testentry.CloneID]
	assert.Len(t, source.Props.Grids, 1)
	assert.Equal(t, "Magazine box", source.Props.Name)

	entry, ok := itemRepo.GetHandbookEntry(testentry.ItemID)
	require.True(t, ok)
	assert.Equal(t, testentry.HandbookParentID, entry.ParentID)
	assert.Equal(t, float64(30000), entry.Price)
	price, ok := itemRepo.GetFleaPrice(testentry.ItemID)
	require.True(t, ok)
	assert.Equal(t, float64(30000), price)

	name, ok := localeRepo.GetText("en", model.LocaleKey(testentry.ItemID, model.LocaleFieldName))
	require.True(t, ok)
	assert.Equal(t, "Secure Mapbook", name)
	// languages without configured text fall back to english
	name, ok = localeRepo.GetText("ru", model.LocaleKey(testentry.ItemID, model.LocaleFieldShortName))
	require.True(t, ok)
	assert.Equal(t, "Mapbook", name)
}

func TestSynthesizeSlots(t *testing.T) {
	ctx := testentry.Context(t)

	var synthesizer *service.Synthesizer
	testentry.Populate(t, testentry.Catalog(), nil, &synthesizer)

	tpl, _, err := synthesizer.Synthesize(ctx, testentry.ModConfig())
	require.NoError(t, err)
	require.Len(t, tpl.Props.Slots, 2)

	tests := []struct {
		name   string
		target string
	}{
		{"mount_01", testentry.MapCustomsID},
		{"mount_02", testentry.MapWoodsID},
	}
	for i, tt := range tests {
		slot := tpl.Props.Slots[i]
		assert.Equal(t, tt.name, slot.Name)
		assert.Equal(t, testentry.ItemID, slot.Parent)
		assert.Equal(t, service.SlotPrototypeID, slot.Proto)
		assert.False(t, slot.Required)
		assert.False(t, slot.MergeSlotWithChildren)
		assert.True(t, mongoid.Valid(slot.ID))
		require.Len(t, slot.Props.Filters, 1)
		assert.Equal(t, []string{tt.target}, slot.Props.Filters[0].Filter)
	}
	assert.NotEqual(t, tpl.Props.Slots[0].ID, tpl.Props.Slots[1].ID)
}

func TestGenerateSlotsStable(t *testing.T) {
	ctx := testentry.Context(t)

	var synthesizer *service.Synthesizer
	testentry.Populate(t, testentry.Catalog(), nil, &synthesizer)

	conf := testentry.ModConfig()
	for i := 0; i < 120; i++ {
		conf.Maps = conf.Maps.Set(service.SlotName(i+3), testentry.MapWoodsID)
	}

	first, err := synthesizer.GenerateSlots(ctx, conf)
	require.NoError(t, err)
	second, err := synthesizer.GenerateSlots(ctx, conf)
	require.NoError(t, err)

	require.Len(t, first, 122)
	seen := make(map[string]struct{})
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		seen[first[i].ID] = struct{}{}
	}
	assert.Len(t, seen, 122)
	assert.Equal(t, "mount_100", first[99].Name)
}

func TestGenerateSlotsCollision(t *testing.T) {
	ctx := testentry.Context(t)
	db := testentry.Catalog()
	db.Items[testentry.PocketsID].Props.Slots[2].ID = mongoid.Derive(testentry.ItemID, 1)

	var synthesizer *service.Synthesizer
	testentry.Populate(t, db, nil, &synthesizer)

	_, err := synthesizer.GenerateSlots(ctx, testentry.ModConfig())
	assert.True(t, errors.Is(err, mberr.ErrSlotIDCollision))

	_, _, err = synthesizer.Synthesize(ctx, testentry.ModConfig())
	assert.True(t, errors.Is(err, mberr.ErrSlotIDCollision))
	_, exists := db.Items[testentry.ItemID]
	assert.False(t, exists)
}

func TestSynthesizeCloneErrors(t *testing.T) {
	ctx := testentry.Context(t)

	t.Run("unknown clone source", func(t *testing.T) {
		var synthesizer *service.Synthesizer
		testentry.Populate(t, testentry.Catalog(), nil, &synthesizer)

		conf := testentry.ModConfig()
		conf.CloneID = "000000000000000000000000"
		_, _, err := synthesizer.Synthesize(ctx, conf)
		assert.True(t, errors.Is(err, mberr.ErrClone))
	})

	t.Run("new id already taken", func(t *testing.T) {
		var synthesizer *service.Synthesizer
		testentry.Populate(t, testentry.Catalog(), nil, &synthesizer)

		conf := testentry.ModConfig()
		conf.ItemID = testentry.MapWoodsID
		_, _, err := synthesizer.Synthesize(ctx, conf)
		assert.True(t, errors.Is(err, mberr.ErrClone))
	})

	t.Run("unknown vendor", func(t *testing.T) {
		var synthesizer *service.Synthesizer
		testentry.Populate(t, testentry.Catalog(), nil, &synthesizer)

		conf := testentry.ModConfig()
		conf.TraderID = "000000000000000000000000"
		tpl, _, err := synthesizer.Synthesize(ctx, conf)
		assert.True(t, errors.Is(err, mberr.ErrVendorNotFound))
		assert.NotNil(t, tpl)
	})
}
