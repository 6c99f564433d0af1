package verifs

import (
	"context"

	"github.com/rs/zerolog"

	"exusiai.dev/mapbook/internal/modconfig"
	"exusiai.dev/mapbook/internal/repo"
)

type SlotVerifier struct {
	ItemRepo *repo.Item
}

// ensure SlotVerifier conforms to Verifier
var _ Verifier = (*SlotVerifier)(nil)

func NewSlotVerifier(itemRepo *repo.Item) *SlotVerifier {
	return &SlotVerifier{
		ItemRepo: itemRepo,
	}
}

func (v *SlotVerifier) Name() string {
	return "item_slots"
}

func (v *SlotVerifier) Verify(ctx context.Context, conf *modconfig.Config) *Rejection {
	item, err := v.ItemRepo.GetItemByID(conf.ItemID)
	if err != nil || item.Props == nil || len(item.Props.Slots) == 0 {
		return &Rejection{
			Severity: zerolog.WarnLevel,
			Message:  "mapbook item has no slots defined",
		}
	}
	return nil
}
