package repo

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exusiai.dev/mapbook/internal/model"
	"exusiai.dev/mapbook/internal/pkg/mberr"
)

func writeCatalog(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

var catalogFiles = map[string]string{
	"templates/items.json": `{
		"5c127c4486f7745625356c13": {
			"_id": "5c127c4486f7745625356c13",
			"_name": "item_container_magbox",
			"_parent": "5795f317245977243854e041",
			"_type": "Item",
			"_props": {"Name": "Magazine box", "Width": 2, "Height": 2, "Weight": 1.5, "Grids": [], "Slots": []},
			"_proto": "55d329c24bdc2d892f8b4567"
		}
	}`,
	"templates/handbook.json": `{"Categories": [{"Id": "5b5f6fa186f77409407a7eb7"}], "Items": [{"Id": "5c127c4486f7745625356c13", "ParentId": "5b5f6fa186f77409407a7eb7", "Price": 50000}]}`,
	"traders/5a7c2eca46aef81a7ca2145d/base.json": `{"_id": "5a7c2eca46aef81a7ca2145d", "nickname": "Mechanic"}`,
	"traders/5a7c2eca46aef81a7ca2145d/assort.json": `{"items": [], "barter_scheme": {}, "loyal_level_items": {}}`,
	"locations/bigmap/staticLoot.json": `{
		"578f87a3245977356274f2cb": {"itemcountDistribution": [{"count": 1, "relativeProbability": 10}], "itemDistribution": [{"tpl": "5c127c4486f7745625356c13", "relativeProbability": 3}]}
	}`,
	"locations/hideout/base.json": `{}`,
	"locales/global/en.json":     `{"5c127c4486f7745625356c13 Name": "Magazine box"}`,
}

func TestLoadDatabase(t *testing.T) {
	dir := writeCatalog(t, catalogFiles)

	db, err := LoadDatabase(context.Background(), dir)
	require.NoError(t, err)

	assert.Len(t, db.Items, 1)
	assert.Equal(t, "Magazine box", db.Items["5c127c4486f7745625356c13"].Props.Name)
	assert.Len(t, db.Handbook.Items, 1)
	assert.Empty(t, db.Prices)

	require.Contains(t, db.Traders, "5a7c2eca46aef81a7ca2145d")
	assert.Equal(t, "Mechanic", db.Traders["5a7c2eca46aef81a7ca2145d"].Nickname())

	require.Contains(t, db.Locations, "bigmap")
	require.Contains(t, db.Locations, "hideout")
	assert.Nil(t, db.Locations["hideout"].StaticLoot)
	assert.Len(t, db.Locations["bigmap"].StaticLoot, 1)

	assert.Equal(t, "Magazine box", db.Locales["en"]["5c127c4486f7745625356c13 Name"])
}

func TestLoadDatabaseDropsNullTemplates(t *testing.T) {
	files := make(map[string]string, len(catalogFiles))
	for name, content := range catalogFiles {
		files[name] = content
	}
	files["templates/items.json"] = `{
		"5c127c4486f7745625356c13": {"_name": "item_container_magbox", "_props": {"Name": "Magazine box"}},
		"5c127c4486f7745625356c14": null
	}`
	dir := writeCatalog(t, files)

	db, err := LoadDatabase(context.Background(), dir)
	require.NoError(t, err)

	assert.Len(t, db.Items, 1)
	assert.NotContains(t, db.Items, "5c127c4486f7745625356c14")
	assert.Equal(t, "5c127c4486f7745625356c13", db.Items["5c127c4486f7745625356c13"].ID)
}

func TestLoadDatabaseRequiresItems(t *testing.T) {
	_, err := LoadDatabase(context.Background(), t.TempDir())
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	dir := writeCatalog(t, catalogFiles)
	db, err := LoadDatabase(context.Background(), dir)
	require.NoError(t, err)

	items := NewItem(db)
	items.AddItem(&model.Template{ID: "6720ee2b0b0c3a4d5e6f7a8b", Name: "mapbook", Props: &model.Props{Name: "Secure Mapbook"}})
	items.SetFleaPrice("6720ee2b0b0c3a4d5e6f7a8b", 30000)
	items.AddHandbookEntry("6720ee2b0b0c3a4d5e6f7a8b", "5b5f6fa186f77409407a7eb7", 30000)

	trader, err := NewTrader(db).GetTraderByID("5a7c2eca46aef81a7ca2145d")
	require.NoError(t, err)
	trader.EnsureAssort().AddOffer(model.Offer{
		OfferID: "6720ee2b0b0c3a4d5e6f7a90",
		ItemID:  "6720ee2b0b0c3a4d5e6f7a8b",
		Schemes: [][]model.Payment{{{ItemID: "5449016a4bdc2d6f028b456f", Count: 30000}}},
		Tier:    2,
	}, &model.Upd{StackObjectsCount: 1})

	out := t.TempDir()
	require.NoError(t, db.Save(context.Background(), out))

	reloaded, err := LoadDatabase(context.Background(), out)
	require.NoError(t, err)

	tpl, err := NewItem(reloaded).GetItemByID("6720ee2b0b0c3a4d5e6f7a8b")
	require.NoError(t, err)
	assert.Equal(t, "Secure Mapbook", tpl.Props.Name)

	source, err := NewItem(reloaded).GetItemByID("5c127c4486f7745625356c13")
	require.NoError(t, err)
	assert.Contains(t, source.Props.Extra, "Weight", "unmodelled properties survive a round trip")

	price, ok := NewItem(reloaded).GetFleaPrice("6720ee2b0b0c3a4d5e6f7a8b")
	assert.True(t, ok)
	assert.Equal(t, 30000.0, price)

	offers := reloaded.Traders["5a7c2eca46aef81a7ca2145d"].Assort.Offers()
	require.Len(t, offers, 1)
	assert.Equal(t, 2, offers[0].Tier)
	assert.Equal(t, "Mechanic", reloaded.Traders["5a7c2eca46aef81a7ca2145d"].Nickname())

	assert.Len(t, reloaded.Locations["bigmap"].StaticLoot["578f87a3245977356274f2cb"].ItemDistribution, 1)
}

func TestSelectorsReturnNotFound(t *testing.T) {
	db := NewDatabase()

	_, err := NewItem(db).GetItemByID("6720ee2b0b0c3a4d5e6f7a8b")
	assert.True(t, errors.Is(err, mberr.ErrNotFound))

	_, err = NewTrader(db).GetTraderByID("5a7c2eca46aef81a7ca2145d")
	assert.True(t, errors.Is(err, mberr.ErrNotFound))

	_, err = NewLocation(db).GetLocationByName("bigmap")
	assert.True(t, errors.Is(err, mberr.ErrNotFound))
}

func TestGetItemsByParentAndLocationsAreOrdered(t *testing.T) {
	db := NewDatabase()
	db.Items["b"] = &model.Template{ID: "b", Parent: "p"}
	db.Items["a"] = &model.Template{ID: "a", Parent: "p"}
	db.Items["c"] = &model.Template{ID: "c", Parent: "q"}
	db.Locations["woods"] = &model.Location{Name: "woods"}
	db.Locations["bigmap"] = &model.Location{Name: "bigmap"}

	byParent := NewItem(db).GetItemsByParent("p")
	require.Len(t, byParent, 2)
	assert.Equal(t, "a", byParent[0].ID)
	assert.Equal(t, "b", byParent[1].ID)

	locations := NewLocation(db).GetLocations()
	require.Len(t, locations, 2)
	assert.Equal(t, "bigmap", locations[0].Name)
}

func TestLocaleSetTextCreatesLanguage(t *testing.T) {
	db := NewDatabase()
	locales := NewLocale(db)

	locales.SetText("fr", "x Name", "Carnet")
	text, ok := locales.GetText("fr", "x Name")
	assert.True(t, ok)
	assert.Equal(t, "Carnet", text)
	assert.Equal(t, []string{"fr"}, locales.Codes())
}
