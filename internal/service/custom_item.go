package service

import (
	"context"
	"sort"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"exusiai.dev/mapbook/internal/model"
	"exusiai.dev/mapbook/internal/model/types"
	"exusiai.dev/mapbook/internal/pkg/mberr"
	"exusiai.dev/mapbook/internal/repo"
)

// fallbackLocale provides the text of languages a clone request has no entry for.
const fallbackLocale = "en"

// CustomItem is the cloning facility: it derives new templates from existing ones and registers
// them, with their handbook entry, flea price and locale text, in the catalog.
type CustomItem struct {
	ItemRepo   *repo.Item
	LocaleRepo *repo.Locale
}

func NewCustomItem(itemRepo *repo.Item, localeRepo *repo.Locale) *CustomItem {
	return &CustomItem{
		ItemRepo:   itemRepo,
		LocaleRepo: localeRepo,
	}
}

// CreateFromClone registers a deep copy of details.ItemTplToClone under details.NewID. It fails with
// mberr.ErrClone when the source is unknown or the new id is already taken. The returned template
// is committed: it resolves through the item repo as soon as this returns.
func (s *CustomItem) CreateFromClone(ctx context.Context, details *types.NewItemFromClone) (*model.Template, error) {
	source, err := s.ItemRepo.GetItemByID(details.ItemTplToClone)
	if err != nil {
		return nil, mberr.ErrClone.Msg("clone source %s not found", details.ItemTplToClone)
	}
	if s.ItemRepo.Exists(details.NewID) {
		return nil, mberr.ErrClone.Msg("item %s already exists", details.NewID)
	}

	var tpl model.Template
	if err := copier.CopyWithOption(&tpl, source, copier.Option{DeepCopy: true}); err != nil {
		return nil, errors.Wrapf(err, "failed to copy clone source %s", details.ItemTplToClone)
	}

	tpl.ID = details.NewID
	if details.ParentID != "" {
		tpl.Parent = details.ParentID
	}
	applyOverrides(tpl.EnsureProps(), details.OverrideProperties)

	s.ItemRepo.AddItem(&tpl)
	s.ItemRepo.AddHandbookEntry(tpl.ID, details.HandbookParentID, details.HandbookPriceRoubles)
	s.ItemRepo.SetFleaPrice(tpl.ID, details.FleaPriceRoubles)
	s.addLocales(tpl.ID, details.Locales)

	log.Ctx(ctx).Debug().
		Str("evt.name", "customitem.created").
		Str("source", details.ItemTplToClone).
		Str("id", tpl.ID).
		Str("parent", tpl.Parent).
		Msg("created item from clone")

	return &tpl, nil
}

func (s *CustomItem) addLocales(id string, locales map[string]types.LocaleDetails) {
	if len(locales) == 0 {
		return
	}

	requested := lo.Keys(locales)
	sort.Strings(requested)

	fallback, ok := locales[fallbackLocale]
	if !ok {
		fallback = locales[requested[0]]
	}

	codes := lo.Union(s.LocaleRepo.Codes(), requested)

	for _, code := range codes {
		details, ok := locales[code]
		if !ok {
			details = fallback
		}
		s.LocaleRepo.SetText(code, model.LocaleKey(id, model.LocaleFieldName), details.Name)
		s.LocaleRepo.SetText(code, model.LocaleKey(id, model.LocaleFieldShortName), details.ShortName)
		s.LocaleRepo.SetText(code, model.LocaleKey(id, model.LocaleFieldDescription), details.Description)
	}
}

func applyOverrides(p *model.Props, o *types.PropOverrides) {
	if o == nil {
		return
	}
	if o.Name != nil {
		p.Name = *o.Name
	}
	if o.ShortName != nil {
		p.ShortName = *o.ShortName
	}
	if o.Description != nil {
		p.Description = *o.Description
	}
	if o.Prefab != nil {
		prefab := *o.Prefab
		p.Prefab = &prefab
	}
	if o.Width != nil {
		p.Width = *o.Width
	}
	if o.Height != nil {
		p.Height = *o.Height
	}
	if o.ItemSound != nil {
		p.ItemSound = *o.ItemSound
	}
	if o.CanPutIntoDuringTheRaid != nil {
		p.CanPutIntoDuringTheRaid = *o.CanPutIntoDuringTheRaid
	}
	if o.RaidModdable != nil {
		p.RaidModdable = *o.RaidModdable
	}
	if o.InsuranceDisabled != nil {
		p.InsuranceDisabled = *o.InsuranceDisabled
	}
	if o.CanSellOnRagfair != nil {
		p.CanSellOnRagfair = *o.CanSellOnRagfair
	}
	if o.ExaminedByDefault != nil {
		p.ExaminedByDefault = *o.ExaminedByDefault
	}
	if o.Grids != nil {
		p.Grids = *o.Grids
	}
	if o.Slots != nil {
		p.Slots = *o.Slots
	}
}
