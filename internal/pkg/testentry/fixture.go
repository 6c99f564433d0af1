package testentry

import (
	"github.com/goccy/go-json"
	"gopkg.in/guregu/null.v3"

	"exusiai.dev/mapbook/internal/modconfig"
	"exusiai.dev/mapbook/internal/model"
	"exusiai.dev/mapbook/internal/model/types"
	"exusiai.dev/mapbook/internal/repo"
)

const (
	ItemID           = "6744a1f0c2b5d8e9f0a1b2c3"
	CloneID          = "5c127c4486f7745625356c13"
	ParentID         = "5795f317245977243854e041"
	HandbookParentID = "5b5f6fa186f77409407a7eb7"
	TraderID         = "5a7c2eca46aef81a7ca2145d"

	MapCustomsID = "6744a1f0c2b5d8e9f0a1c001"
	MapWoodsID   = "6744a1f0c2b5d8e9f0a1c002"
	BarterItemID = "5734758f24597738025ee253"

	GammaID     = "5857a8bc2459772bad15db29"
	KappaID     = "5c093ca986f7740a1867ab12"
	EmptyCaseID = "665ee77ccf2d642e98220bca"
	PouchID     = "5732ee6a24597719ae0c0281"

	PocketsID      = "627a4e6b255f7527fb05a0f6"
	AltPocketsID   = "65e080be269cbd5c5005e529"
	SpecialSlot1ID = "627a4e6b255f7527fb05a0f7"
	SpecialSlot2ID = "627a4e6b255f7527fb05a0f8"
	PocketSlotID   = "627a4e6b255f7527fb05a0f9"

	secureContainerCategory = "5448bf274bdc2dfc2f8b456a"
)

// Catalog returns a small catalog holding every template, vendor and location ModConfig refers to.
func Catalog() *repo.Database {
	db := repo.NewDatabase()

	db.Items[CloneID] = &model.Template{
		ID:     CloneID,
		Name:   "item_container_magbox",
		Parent: ParentID,
		Type:   "Item",
		Props: &model.Props{
			Name:      "Magazine box",
			ShortName: "Magbox",
			Width:     2,
			Height:    2,
			Grids: []*model.Grid{{
				Name:   "main",
				ID:     "5c127c4486f7745625356c14",
				Parent: CloneID,
				Props:  &model.GridProps{CellsH: 4, CellsV: 4, Filters: []*model.Filter{{Filter: []string{"5448bc234bdc2d3c308b4569"}}}},
				Proto:  "55d329c24bdc2d892f8b4567",
			}},
			Extra: map[string]json.RawMessage{"Weight": json.RawMessage("1.5")},
		},
		Proto: "55d329c24bdc2d892f8b4567",
	}
	db.Items[MapCustomsID] = plainItem(MapCustomsID, "map_customs")
	db.Items[MapWoodsID] = plainItem(MapWoodsID, "map_woods")
	db.Items[BarterItemID] = plainItem(BarterItemID, "barter_bolts")

	db.Items[GammaID] = containerItem(GammaID, "item_container_gamma", secureContainerCategory, true)
	db.Items[KappaID] = containerItem(KappaID, "item_container_kappa", secureContainerCategory, true)
	db.Items[EmptyCaseID] = containerItem(EmptyCaseID, "item_container_empty", ParentID, false)
	db.Items[PouchID] = containerItem(PouchID, "item_pouch_waist", ParentID, true)

	db.Items[PocketsID] = &model.Template{
		ID:     PocketsID,
		Name:   "pockets_1x4_special",
		Parent: "557596e64bdc2dc2118b4571",
		Props: &model.Props{
			Slots: []*model.Slot{
				{Name: "SpecialSlot1", ID: SpecialSlot1ID, Parent: PocketsID, Props: &model.SlotProps{Filters: []*model.Filter{{Filter: []string{"5991b51486f77447b112d44f"}}}}},
				{Name: "specialslot2", ID: SpecialSlot2ID, Parent: PocketsID, Props: &model.SlotProps{}},
				{Name: "pocket1", ID: PocketSlotID, Parent: PocketsID, Props: &model.SlotProps{}},
			},
		},
	}
	db.Items[AltPocketsID] = &model.Template{
		ID:     AltPocketsID,
		Name:   "pockets_1x4_tue",
		Parent: "557596e64bdc2dc2118b4571",
		Props: &model.Props{
			Slots: []*model.Slot{
				{Name: "SpecialSlot1", ID: SpecialSlot1ID, Parent: AltPocketsID, Props: &model.SlotProps{}},
			},
		},
	}

	db.Traders[TraderID] = &model.Trader{
		ID:   TraderID,
		Base: json.RawMessage(`{"_id":"5a7c2eca46aef81a7ca2145d","nickname":"Mechanic"}`),
		Assort: &model.Assort{
			Items:           []*model.AssortItem{},
			BarterScheme:    map[string][][]*model.BarterScheme{},
			LoyalLevelItems: map[string]int{},
		},
	}

	db.Locations["bigmap"] = &model.Location{
		Name: "bigmap",
		StaticLoot: map[string]*model.StaticLootContainer{
			"578f87a3245977356274f2cb": {ItemDistribution: []*model.LootEntry{{Tpl: MapCustomsID, RelativeProbability: 3}}},
			"578f8778245977358849a9b5": {ItemDistribution: []*model.LootEntry{}},
		},
	}
	db.Locations["woods"] = &model.Location{
		Name: "woods",
		StaticLoot: map[string]*model.StaticLootContainer{
			"578f87a3245977356274f2cb": {ItemDistribution: []*model.LootEntry{}},
		},
	}
	db.Locations["hideout"] = &model.Location{Name: "hideout"}

	db.Locales["en"] = model.Locale{CloneID + " Name": "Magazine box"}
	db.Locales["ru"] = model.Locale{CloneID + " Name": "Коробка для магазинов"}

	return db
}

// ModConfig returns a valid configuration against Catalog, with two maps, a barter cost, and every
// optional stage enabled.
func ModConfig() *modconfig.Config {
	return &modconfig.Config{
		ItemID:           ItemID,
		CloneID:          CloneID,
		ParentID:         ParentID,
		HandbookParentID: HandbookParentID,
		TraderID:         TraderID,
		Price:            30000,
		TierCash:         1,
		TierBarter:       2,
		BarterCost:       []modconfig.BarterItem{{ItemID: BarterItemID, Count: 3}},

		AllowInsurance:          false,
		AllowInSecureContainers: true,
		AllowInSpecialSlots:     true,

		DiscoverSecureContainers: null.BoolFrom(false),
		SpecialSlotStrategy:      modconfig.SpecialSlotStrategyScan,

		SecureContainers: modconfig.OrderedMap{{Key: GammaID, Value: "Gamma"}, {Key: EmptyCaseID, Value: "Empty case"}},
		Pouches:          modconfig.OrderedMap{{Key: PouchID, Value: "Waist pouch"}},
		Maps:             modconfig.OrderedMap{{Key: "Customs", Value: MapCustomsID}, {Key: "Woods", Value: MapWoodsID}},

		Locales: map[string]types.LocaleDetails{
			"en": {Name: "Secure Mapbook", ShortName: "Mapbook", Description: "A book for storing maps."},
		},
		Size:       modconfig.ItemSize{Width: 1, Height: 2},
		PrefabPath: modconfig.DefaultPrefabPath,
		ItemSound:  modconfig.DefaultItemSound,
	}
}

func plainItem(id, name string) *model.Template {
	return &model.Template{
		ID:     id,
		Name:   name,
		Parent: "567849dd4bdc2d150f8b456e",
		Props:  &model.Props{Name: name, Width: 1, Height: 1},
	}
}

func containerItem(id, name, parent string, withGrid bool) *model.Template {
	tpl := &model.Template{
		ID:     id,
		Name:   name,
		Parent: parent,
		Props:  &model.Props{Name: name},
	}
	if withGrid {
		tpl.Props.Grids = []*model.Grid{
			{Name: "main", ID: id[:23] + "0", Parent: id, Props: &model.GridProps{CellsH: 2, CellsV: 2}},
			{Name: "second", ID: id[:23] + "1", Parent: id, Props: &model.GridProps{CellsH: 1, CellsV: 1, Filters: []*model.Filter{{Filter: []string{}}}}},
		}
	}
	return tpl
}
