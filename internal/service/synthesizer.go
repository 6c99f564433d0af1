package service

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"exusiai.dev/mapbook/internal/app/appconfig"
	"exusiai.dev/mapbook/internal/modconfig"
	"exusiai.dev/mapbook/internal/model"
	"exusiai.dev/mapbook/internal/model/types"
	"exusiai.dev/mapbook/internal/pkg/mberr"
	"exusiai.dev/mapbook/internal/pkg/mongoid"
	"exusiai.dev/mapbook/internal/repo"
)

const (
	// SlotPrototypeID is the prototype every generated slot declares.
	SlotPrototypeID = "55d4af244bdc2d962f8b4571"

	slotNameFormat = "mount_%02d"
)

// SlotName returns the label of the n-th (1-based) generated slot.
func SlotName(n int) string {
	return fmt.Sprintf(slotNameFormat, n)
}

type Synthesizer struct {
	Config            *appconfig.Config
	ItemRepo          *repo.Item
	CustomItemService *CustomItem
	VendorService     *Vendor
}

func NewSynthesizer(conf *appconfig.Config, itemRepo *repo.Item, customItemService *CustomItem, vendorService *Vendor) *Synthesizer {
	return &Synthesizer{
		Config:            conf,
		ItemRepo:          itemRepo,
		CustomItemService: customItemService,
		VendorService:     vendorService,
	}
}

// Synthesize registers the container item described by conf, one slot per configured map, and
// lists it with the configured vendor. Any error leaves the item unusable for the later stages.
func (s *Synthesizer) Synthesize(ctx context.Context, conf *modconfig.Config) (*model.Template, []model.Offer, error) {
	l := log.Ctx(ctx)

	var tpl *model.Template
	if s.Config.IdempotentRerun && s.ItemRepo.Exists(conf.ItemID) {
		existing, err := s.ItemRepo.GetItemByID(conf.ItemID)
		if err != nil {
			return nil, nil, err
		}
		tpl = existing
		l.Info().
			Str("evt.name", "synthesizer.item.exists").
			Str("itemId", conf.ItemID).
			Msg("item already present, skipping clone")
	} else {
		slots, err := s.GenerateSlots(ctx, conf)
		if err != nil {
			return nil, nil, err
		}

		created, err := s.CustomItemService.CreateFromClone(ctx, s.cloneDetails(conf, slots))
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to create item from clone")
		}
		tpl = created
	}

	offers, err := s.VendorService.AddOffers(ctx, conf, tpl.ID)
	if err != nil {
		return tpl, nil, err
	}

	l.Info().
		Str("evt.name", "synthesizer.done").
		Str("itemId", tpl.ID).
		Int("slots", len(tpl.SlotIDs())).
		Int("offers", len(offers)).
		Msg("mapbook item synthesized")

	return tpl, offers, nil
}

func (s *Synthesizer) cloneDetails(conf *modconfig.Config, slots []*model.Slot) *types.NewItemFromClone {
	name, shortName, description := s.primaryText(conf)
	grids := []*model.Grid{}

	return &types.NewItemFromClone{
		ItemTplToClone:       conf.CloneID,
		NewID:                conf.ItemID,
		ParentID:             conf.ParentID,
		HandbookParentID:     conf.HandbookParentID,
		FleaPriceRoubles:     float64(conf.Price),
		HandbookPriceRoubles: float64(conf.Price),
		Locales:              conf.Locales,
		OverrideProperties: &types.PropOverrides{
			Name:                    lo.ToPtr(name),
			ShortName:               lo.ToPtr(shortName),
			Description:             lo.ToPtr(description),
			Prefab:                  &model.Prefab{Path: conf.PrefabPath},
			Width:                   lo.ToPtr(conf.Size.Width),
			Height:                  lo.ToPtr(conf.Size.Height),
			ItemSound:               lo.ToPtr(conf.ItemSound),
			CanPutIntoDuringTheRaid: lo.ToPtr(true),
			RaidModdable:            lo.ToPtr(true),
			InsuranceDisabled:       lo.ToPtr(!conf.AllowInsurance),
			CanSellOnRagfair:        lo.ToPtr(false),
			ExaminedByDefault:       lo.ToPtr(false),
			Grids:                   &grids,
			Slots:                   &slots,
		},
	}
}

// primaryText picks the text stored in the template's own name fields: the fallback locale when
// configured, any configured locale otherwise.
func (s *Synthesizer) primaryText(conf *modconfig.Config) (string, string, string) {
	details, ok := conf.Locales[fallbackLocale]
	if !ok {
		codes := lo.Keys(conf.Locales)
		if len(codes) == 0 {
			return "", "", ""
		}
		details = conf.Locales[lo.Min(codes)]
	}
	return details.Name, details.ShortName, details.Description
}

// GenerateSlots builds one slot per entry of conf.Maps, in configuration order. Slot ids derive
// from the item id and the slot position; a derived id already used by any template or slot in the
// catalog fails with mberr.ErrSlotIDCollision.
func (s *Synthesizer) GenerateSlots(ctx context.Context, conf *modconfig.Config) ([]*model.Slot, error) {
	taken := make(map[string]struct{})
	for id, tpl := range s.ItemRepo.GetItems() {
		taken[id] = struct{}{}
		if tpl == nil {
			continue
		}
		for _, slotID := range tpl.SlotIDs() {
			taken[slotID] = struct{}{}
		}
	}

	slots := make([]*model.Slot, 0, len(conf.Maps))
	for i, entry := range conf.Maps {
		id := mongoid.Derive(conf.ItemID, i)
		if _, dup := taken[id]; dup {
			return nil, mberr.ErrSlotIDCollision.Msg("slot %s (%s) derives id %s, which is already in use", SlotName(i+1), entry.Key, id)
		}
		taken[id] = struct{}{}

		slots = append(slots, &model.Slot{
			Name:   SlotName(i + 1),
			ID:     id,
			Parent: conf.ItemID,
			Props: &model.SlotProps{
				Filters: []*model.Filter{{Filter: []string{entry.Value}}},
			},
			Required:              false,
			MergeSlotWithChildren: false,
			Proto:                 SlotPrototypeID,
		})

		log.Ctx(ctx).Debug().
			Str("evt.name", "synthesizer.slot.added").
			Str("slot", SlotName(i+1)).
			Str("label", entry.Key).
			Str("target", entry.Value).
			Msg("added slot")
	}

	return slots, nil
}
