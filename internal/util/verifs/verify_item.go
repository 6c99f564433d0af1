package verifs

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"exusiai.dev/mapbook/internal/modconfig"
	"exusiai.dev/mapbook/internal/repo"
)

type ItemVerifier struct {
	ItemRepo *repo.Item
}

// ensure ItemVerifier conforms to Verifier
var _ Verifier = (*ItemVerifier)(nil)

func NewItemVerifier(itemRepo *repo.Item) *ItemVerifier {
	return &ItemVerifier{
		ItemRepo: itemRepo,
	}
}

func (v *ItemVerifier) Name() string {
	return "item_exists"
}

func (v *ItemVerifier) Verify(ctx context.Context, conf *modconfig.Config) *Rejection {
	if !v.ItemRepo.Exists(conf.ItemID) {
		return &Rejection{
			Severity: zerolog.ErrorLevel,
			Message:  fmt.Sprintf("mapbook item %s not found in item database", conf.ItemID),
		}
	}
	return nil
}
