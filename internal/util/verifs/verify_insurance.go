package verifs

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"exusiai.dev/mapbook/internal/modconfig"
	"exusiai.dev/mapbook/internal/repo"
)

type InsuranceVerifier struct {
	ItemRepo *repo.Item
}

// ensure InsuranceVerifier conforms to Verifier
var _ Verifier = (*InsuranceVerifier)(nil)

func NewInsuranceVerifier(itemRepo *repo.Item) *InsuranceVerifier {
	return &InsuranceVerifier{
		ItemRepo: itemRepo,
	}
}

func (v *InsuranceVerifier) Name() string {
	return "insurance_flag"
}

func (v *InsuranceVerifier) Verify(ctx context.Context, conf *modconfig.Config) *Rejection {
	item, err := v.ItemRepo.GetItemByID(conf.ItemID)
	if err != nil {
		return &Rejection{
			Severity: zerolog.WarnLevel,
			Message:  fmt.Sprintf("cannot check insurance state: mapbook %s not found", conf.ItemID),
		}
	}

	disabled := item.Props != nil && item.Props.InsuranceDisabled
	if disabled != !conf.AllowInsurance {
		return &Rejection{
			Severity: zerolog.WarnLevel,
			Message:  fmt.Sprintf("insurance state mismatch for mapbook %s", conf.ItemID),
		}
	}
	return nil
}
