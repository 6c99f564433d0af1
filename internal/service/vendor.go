package service

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"exusiai.dev/mapbook/internal/app/appconfig"
	"exusiai.dev/mapbook/internal/modconfig"
	"exusiai.dev/mapbook/internal/model"
	"exusiai.dev/mapbook/internal/pkg/mberr"
	"exusiai.dev/mapbook/internal/pkg/mongoid"
	"exusiai.dev/mapbook/internal/repo"
)

const (
	offerStackCount     = 1
	offerBuyRestriction = 50
)

type Vendor struct {
	Config     *appconfig.Config
	TraderRepo *repo.Trader
}

func NewVendor(conf *appconfig.Config, traderRepo *repo.Trader) *Vendor {
	return &Vendor{
		Config:     conf,
		TraderRepo: traderRepo,
	}
}

// AddOffers lists itemID with the configured vendor: a barter offer when a barter cost is
// configured, and always a cash offer. It fails with mberr.ErrVendorNotFound when the vendor
// does not exist.
func (s *Vendor) AddOffers(ctx context.Context, conf *modconfig.Config, itemID string) ([]model.Offer, error) {
	l := log.Ctx(ctx)

	trader, err := s.TraderRepo.GetTraderByID(conf.TraderID)
	if err != nil {
		return nil, mberr.ErrVendorNotFound.Msg("vendor %s not found", conf.TraderID)
	}

	assort := trader.EnsureAssort()
	if s.Config.IdempotentRerun && assort.Lists(itemID) {
		l.Info().
			Str("evt.name", "vendor.offer.exists").
			Str("vendor", trader.Nickname()).
			Str("itemId", itemID).
			Msg("vendor already lists item, skipping offers")
		return nil, nil
	}

	offers := make([]model.Offer, 0, 2)

	if len(conf.BarterCost) > 0 {
		offers = append(offers, model.Offer{
			OfferID: mongoid.New(),
			ItemID:  itemID,
			Schemes: [][]model.Payment{lo.Map(conf.BarterCost, func(b modconfig.BarterItem, _ int) model.Payment {
				return model.Payment{ItemID: b.ItemID, Count: b.Count}
			})},
			Tier: conf.TierBarter,
		})
	}

	offers = append(offers, model.Offer{
		OfferID: mongoid.New(),
		ItemID:  itemID,
		Schemes: [][]model.Payment{{{ItemID: conf.Currency(), Count: float64(conf.Price)}}},
		Tier:    conf.TierCash,
	})

	for _, offer := range offers {
		assort.AddOffer(offer, &model.Upd{
			UnlimitedCount:        false,
			StackObjectsCount:     offerStackCount,
			BuyRestrictionMax:     offerBuyRestriction,
			BuyRestrictionCurrent: 0,
		})

		l.Debug().
			Str("evt.name", "vendor.offer.added").
			Str("vendor", trader.Nickname()).
			Str("offerId", offer.OfferID).
			Int("tier", offer.Tier).
			Msg("added offer")
	}

	return offers, nil
}
