package modconfig

import (
	"github.com/samber/lo"
	"gopkg.in/guregu/null.v3"

	"exusiai.dev/mapbook/internal/model/types"
)

const (
	// SpecialSlotStrategyScan patches every slot, on any template, whose id was discovered as a special slot.
	SpecialSlotStrategyScan = "scan"
	// SpecialSlotStrategyOwner patches a discovered special slot only on the template it was discovered on.
	SpecialSlotStrategyOwner = "owner"

	// DefaultCurrencyID is the template id of roubles.
	DefaultCurrencyID = "5449016a4bdc2d6f028b456f"

	DefaultLootWeight = 1.0

	DefaultPrefabPath = "assets/content/items/barter/item_mapbook/mapbook.bundle"
	DefaultItemSound  = "item_book"
)

type BarterItem struct {
	ItemID string  `json:"itemId" validate:"required,objectid"`
	Count  float64 `json:"count" validate:"gt=0"`
}

type ItemSize struct {
	Width  int `json:"width" validate:"gte=1"`
	Height int `json:"height" validate:"gte=1"`
}

// Config is the merged mod configuration driving every pipeline stage.
type Config struct {
	EnableDebugging bool `json:"enableDebugging"`

	// ItemID is the id the synthesized container item is registered under.
	ItemID string `json:"mapbookItemId" validate:"required,objectid"`
	// CloneID is the id of the existing template the new item is cloned from.
	CloneID          string `json:"cloneId" validate:"required,objectid"`
	ParentID         string `json:"parentId" validate:"required,objectid"`
	HandbookParentID string `json:"handbookParentId" validate:"required,objectid"`
	TraderID         string `json:"traderId" validate:"required,objectid"`

	// Price is both the handbook/flea valuation and the cash offer amount.
	Price      int `json:"price" validate:"gte=0"`
	TierCash   int `json:"loyaltyLevelBuy" validate:"gte=1,lte=4"`
	TierBarter int `json:"loyaltyLevelBarter" validate:"gte=0,lte=4"`

	BarterCost []BarterItem `json:"barterItems" validate:"dive"`

	AllowInsurance          bool `json:"allowInsurance"`
	AllowInSecureContainers bool `json:"allowInSecureContainers"`
	AllowInSpecialSlots     bool `json:"allowInSpecialSlots"`

	// DiscoverSecureContainers adds every template of the secure container category to
	// SecureContainers. Defaults to true.
	DiscoverSecureContainers null.Bool `json:"discoverSecureContainers"`
	SpecialSlotStrategy      string    `json:"specialSlotStrategy" validate:"oneof=scan owner"`

	// SpecialSlots holds slot ids. Discovered special slots are merged in at run time.
	SpecialSlots []string `json:"specialSlotsList"`
	// SecureContainers maps secure container template ids to a display name.
	SecureContainers OrderedMap `json:"secureContainers"`
	// Pouches maps organizational pouch template ids to a display name.
	Pouches OrderedMap `json:"organizationalPouch"`
	// Maps maps a display label to the template id the n-th generated slot accepts.
	Maps OrderedMap `json:"maps"`

	Locales map[string]types.LocaleDetails `json:"locales" validate:"dive"`
	Size    ItemSize                       `json:"size"`

	CurrencyID null.String `json:"currencyId"`
	LootWeight null.Float  `json:"lootWeight" validate:"omitempty,gt=0"`
	PrefabPath string      `json:"prefabPath"`
	ItemSound  string      `json:"itemSound"`
}

func (c *Config) applyDefaults() {
	if c.SpecialSlotStrategy == "" {
		c.SpecialSlotStrategy = SpecialSlotStrategyScan
	}
	if c.PrefabPath == "" {
		c.PrefabPath = DefaultPrefabPath
	}
	if c.ItemSound == "" {
		c.ItemSound = DefaultItemSound
	}
	if c.Size.Width == 0 && c.Size.Height == 0 {
		c.Size = ItemSize{Width: 1, Height: 1}
	}
}

func (c *Config) Currency() string {
	if c.CurrencyID.Valid && c.CurrencyID.String != "" {
		return c.CurrencyID.String
	}
	return DefaultCurrencyID
}

func (c *Config) SpawnWeight() float64 {
	if c.LootWeight.Valid {
		return c.LootWeight.Float64
	}
	return DefaultLootWeight
}

func (c *Config) ShouldDiscoverSecureContainers() bool {
	if c.DiscoverSecureContainers.Valid {
		return c.DiscoverSecureContainers.Bool
	}
	return true
}

// ContainerTargets is the union of secure container and pouch ids, secure containers first.
func (c *Config) ContainerTargets() []string {
	return lo.Uniq(append(c.SecureContainers.Keys(), c.Pouches.Keys()...))
}

// ContainerName returns the configured display name of a secure container or pouch.
func (c *Config) ContainerName(id string) string {
	if name, ok := c.SecureContainers.Get(id); ok {
		return name
	}
	if name, ok := c.Pouches.Get(id); ok {
		return name
	}
	return ""
}
