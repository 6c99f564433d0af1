package verifs

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"exusiai.dev/mapbook/internal/modconfig"
	"exusiai.dev/mapbook/internal/repo"
)

type VendorVerifier struct {
	TraderRepo *repo.Trader
}

// ensure VendorVerifier conforms to Verifier
var _ Verifier = (*VendorVerifier)(nil)

func NewVendorVerifier(traderRepo *repo.Trader) *VendorVerifier {
	return &VendorVerifier{
		TraderRepo: traderRepo,
	}
}

func (v *VendorVerifier) Name() string {
	return "vendor_offer"
}

func (v *VendorVerifier) Verify(ctx context.Context, conf *modconfig.Config) *Rejection {
	trader, err := v.TraderRepo.GetTraderByID(conf.TraderID)
	if err != nil {
		return &Rejection{
			Severity: zerolog.ErrorLevel,
			Message:  fmt.Sprintf("vendor %s not found", conf.TraderID),
		}
	}
	if trader.Assort == nil || !trader.Assort.Lists(conf.ItemID) {
		return &Rejection{
			Severity: zerolog.ErrorLevel,
			Message:  fmt.Sprintf("vendor %s has no offer for the mapbook", conf.TraderID),
		}
	}
	return nil
}
