package types

import "exusiai.dev/mapbook/internal/model"

// LocaleDetails is the localized text of one item in one language.
type LocaleDetails struct {
	Name        string `json:"name" validate:"required"`
	ShortName   string `json:"shortName" validate:"required"`
	Description string `json:"description"`
}

// PropOverrides lists the template properties a clone replaces. A nil field keeps the value
// inherited from the clone source.
type PropOverrides struct {
	Name                    *string
	ShortName               *string
	Description             *string
	Prefab                  *model.Prefab
	Width                   *int
	Height                  *int
	ItemSound               *string
	CanPutIntoDuringTheRaid *bool
	RaidModdable            *bool
	InsuranceDisabled       *bool
	CanSellOnRagfair        *bool
	ExaminedByDefault       *bool
	Grids                   *[]*model.Grid
	Slots                   *[]*model.Slot
}

// NewItemFromClone describes a template to derive from an existing one.
type NewItemFromClone struct {
	ItemTplToClone       string
	NewID                string
	ParentID             string
	HandbookParentID     string
	FleaPriceRoubles     float64
	HandbookPriceRoubles float64
	Locales              map[string]LocaleDetails
	OverrideProperties   *PropOverrides
}
