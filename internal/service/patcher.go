package service

import (
	"context"
	"sort"
	"strings"

	"github.com/ahmetb/go-linq/v3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/text/cases"

	"exusiai.dev/mapbook/internal/modconfig"
	"exusiai.dev/mapbook/internal/model"
	"exusiai.dev/mapbook/internal/model/types"
	"exusiai.dev/mapbook/internal/pkg/mberr"
	"exusiai.dev/mapbook/internal/repo"
)

// SecureContainerCategoryID is the parent category of every secure container template.
const SecureContainerCategoryID = "5448bf274bdc2dfc2f8b456a"

const specialSlotMarker = "SpecialSlot"

// SpecialSlot is a slot found by DiscoverSpecialSlots, with the template it was found on.
type SpecialSlot struct {
	SlotID  string
	Name    string
	OwnerID string
}

type Patcher struct {
	ItemRepo *repo.Item
}

func NewPatcher(itemRepo *repo.Item) *Patcher {
	return &Patcher{
		ItemRepo: itemRepo,
	}
}

// DiscoverSecureContainers lists every template of the secure container category, keyed by id,
// valued by template name.
func (s *Patcher) DiscoverSecureContainers(ctx context.Context) modconfig.OrderedMap {
	var found modconfig.OrderedMap
	for _, tpl := range s.ItemRepo.GetItemsByParent(SecureContainerCategoryID) {
		found = found.Set(tpl.ID, tpl.Name)
	}

	log.Ctx(ctx).Debug().
		Str("evt.name", "patcher.securecontainers.discovered").
		Strs("ids", found.Keys()).
		Msg("discovered secure containers")

	return found
}

// DiscoverSpecialSlots scans the label of every slot of every template for the special slot marker,
// case-insensitively. Each slot id is reported once, on the first template (by id) declaring it.
func (s *Patcher) DiscoverSpecialSlots(ctx context.Context) []SpecialSlot {
	items := s.ItemRepo.GetItems()
	ids := lo.Keys(items)
	sort.Strings(ids)

	fold := cases.Fold()
	marker := fold.String(specialSlotMarker)

	var candidates []SpecialSlot
	for _, id := range ids {
		tpl := items[id]
		if tpl == nil || tpl.Props == nil {
			continue
		}
		for _, slot := range tpl.Props.Slots {
			if slot == nil || slot.ID == "" {
				continue
			}
			if strings.Contains(fold.String(slot.Name), marker) {
				candidates = append(candidates, SpecialSlot{SlotID: slot.ID, Name: slot.Name, OwnerID: tpl.ID})
			}
		}
	}

	var slots []SpecialSlot
	linq.From(candidates).
		DistinctByT(func(slot SpecialSlot) string { return slot.SlotID }).
		ToSlice(&slots)

	log.Ctx(ctx).Debug().
		Str("evt.name", "patcher.specialslots.discovered").
		Int("count", len(slots)).
		Msg("discovered special slots")

	return slots
}

// AllowInContainers adds itemID to the first filter of the first grid of every configured secure
// container and pouch. Containers without grids are skipped; failures are recorded per target.
func (s *Patcher) AllowInContainers(ctx context.Context, conf *modconfig.Config, itemID string) types.Outcomes {
	l := log.Ctx(ctx)

	outcomes := make(types.Outcomes, 0, len(conf.ContainerTargets()))
	for _, id := range conf.ContainerTargets() {
		outcome := types.TargetOutcome{TargetID: id, Label: conf.ContainerName(id)}

		container, err := s.ItemRepo.GetItemByID(id)
		switch {
		case err != nil:
			outcome.Status = types.TargetFailed
			outcome.Err = err
		case container.Props == nil || len(container.Props.Grids) == 0:
			outcome.Status = types.TargetSkipped
		case container.Props.Grids[0] == nil:
			outcome.Status = types.TargetFailed
			outcome.Err = errors.Errorf("container %s has a malformed first grid", id)
		default:
			container.Props.Grids[0].EnsureFilter().Add(itemID)
			outcome.Status = types.TargetPatched
		}

		logOutcome(l, "container", outcome)
		outcomes = append(outcomes, outcome)
	}

	return outcomes
}

// AllowInSpecialSlots adds itemID to the first filter of the configured special slots. With the
// scan strategy every slot, on any template, carrying a listed id is patched; with the owner
// strategy only the slot on the template it was discovered on. A listed id that matches no slot is
// recorded as failed.
func (s *Patcher) AllowInSpecialSlots(ctx context.Context, conf *modconfig.Config, discovered []SpecialSlot, itemID string) types.Outcomes {
	if conf.SpecialSlotStrategy == modconfig.SpecialSlotStrategyOwner {
		return s.allowInOwnedSlots(ctx, conf, discovered, itemID)
	}
	return s.allowInScannedSlots(ctx, conf, itemID)
}

func (s *Patcher) allowInScannedSlots(ctx context.Context, conf *modconfig.Config, itemID string) types.Outcomes {
	l := log.Ctx(ctx)

	wanted := lo.SliceToMap(conf.SpecialSlots, func(id string) (string, struct{}) {
		return id, struct{}{}
	})
	matched := make(map[string]bool, len(wanted))

	items := s.ItemRepo.GetItems()
	ids := lo.Keys(items)
	sort.Strings(ids)

	var outcomes types.Outcomes
	for _, ownerID := range ids {
		tpl := items[ownerID]
		if tpl == nil || tpl.Props == nil {
			continue
		}
		for _, slot := range tpl.Props.Slots {
			if slot == nil {
				continue
			}
			if _, ok := wanted[slot.ID]; !ok {
				continue
			}
			matched[slot.ID] = true
			slot.EnsureFilter().Add(itemID)

			outcome := types.TargetOutcome{TargetID: slot.ID, Label: ownerID, Status: types.TargetPatched}
			logOutcome(l, "special slot", outcome)
			outcomes = append(outcomes, outcome)
		}
	}

	for _, id := range conf.SpecialSlots {
		if matched[id] {
			continue
		}
		matched[id] = true
		outcome := types.TargetOutcome{
			TargetID: id,
			Status:   types.TargetFailed,
			Err:      mberr.ErrNotFound.Msg("no template declares slot %s", id),
		}
		logOutcome(l, "special slot", outcome)
		outcomes = append(outcomes, outcome)
	}

	return outcomes
}

func (s *Patcher) allowInOwnedSlots(ctx context.Context, conf *modconfig.Config, discovered []SpecialSlot, itemID string) types.Outcomes {
	l := log.Ctx(ctx)

	owners := lo.SliceToMap(discovered, func(slot SpecialSlot) (string, string) {
		return slot.SlotID, slot.OwnerID
	})

	outcomes := make(types.Outcomes, 0, len(conf.SpecialSlots))
	for _, id := range lo.Uniq(conf.SpecialSlots) {
		outcome := types.TargetOutcome{TargetID: id, Label: owners[id]}

		slot, err := s.ownedSlot(id, owners[id])
		if err != nil {
			outcome.Status = types.TargetFailed
			outcome.Err = err
		} else {
			slot.EnsureFilter().Add(itemID)
			outcome.Status = types.TargetPatched
		}

		logOutcome(l, "special slot", outcome)
		outcomes = append(outcomes, outcome)
	}

	return outcomes
}

func (s *Patcher) ownedSlot(slotID, ownerID string) (*model.Slot, error) {
	if ownerID == "" {
		return nil, mberr.ErrNotFound.Msg("slot %s was not discovered on any template", slotID)
	}
	owner, err := s.ItemRepo.GetItemByID(ownerID)
	if err != nil {
		return nil, err
	}
	if owner.Props != nil {
		for _, slot := range owner.Props.Slots {
			if slot != nil && slot.ID == slotID {
				return slot, nil
			}
		}
	}
	return nil, mberr.ErrNotFound.Msg("template %s does not declare slot %s", ownerID, slotID)
}
