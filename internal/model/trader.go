package model

import (
	"github.com/goccy/go-json"
	"github.com/samber/lo"
	"github.com/tidwall/gjson"
)

// AssortRootParent is the neutral storage placement of a root assort item.
const AssortRootParent = "hideout"

// Trader is a vendor record. The base record is kept raw: the pipeline only ever reads
// the nickname from it.
type Trader struct {
	ID     string          `json:"-"`
	Base   json.RawMessage `json:"base"`
	Assort *Assort         `json:"assort"`
}

func (t *Trader) Nickname() string {
	return gjson.GetBytes(t.Base, "nickname").String()
}

// EnsureAssort returns the trader's sellable-offer set, allocating it when absent.
func (t *Trader) EnsureAssort() *Assort {
	if t.Assort == nil {
		t.Assort = &Assort{}
	}
	if t.Assort.BarterScheme == nil {
		t.Assort.BarterScheme = make(map[string][][]*BarterScheme)
	}
	if t.Assort.LoyalLevelItems == nil {
		t.Assort.LoyalLevelItems = make(map[string]int)
	}
	return t.Assort
}

type Assort struct {
	Items           []*AssortItem                `json:"items"`
	BarterScheme    map[string][][]*BarterScheme `json:"barter_scheme"`
	LoyalLevelItems map[string]int               `json:"loyal_level_items"`
	NextResupply    int64                        `json:"nextResupply,omitempty"`
}

type AssortItem struct {
	ID       string `json:"_id"`
	Tpl      string `json:"_tpl"`
	ParentID string `json:"parentId"`
	SlotID   string `json:"slotId"`
	Upd      *Upd   `json:"upd,omitempty"`
}

type Upd struct {
	UnlimitedCount        bool `json:"UnlimitedCount"`
	StackObjectsCount     int  `json:"StackObjectsCount"`
	BuyRestrictionMax     int  `json:"BuyRestrictionMax,omitempty"`
	BuyRestrictionCurrent int  `json:"BuyRestrictionCurrent"`
}

type BarterScheme struct {
	Tpl   string  `json:"_tpl"`
	Count float64 `json:"count"`
}

// Payment is one required item of a payment option.
type Payment struct {
	ItemID string  `json:"itemId"`
	Count  float64 `json:"count"`
}

// Offer is a flattened view of one sellable listing: an assort root item, its alternative
// payment options (outer slice) each requiring every payment listed (inner slice), and the
// loyalty tier required to buy it.
type Offer struct {
	OfferID string      `json:"offerId"`
	ItemID  string      `json:"itemId"`
	Schemes [][]Payment `json:"schemes"`
	Tier    int         `json:"tier"`
}

// AddOffer inserts the offer's root item, payment options and tier into the assort.
func (a *Assort) AddOffer(offer Offer, upd *Upd) {
	a.Items = append(a.Items, &AssortItem{
		ID:       offer.OfferID,
		Tpl:      offer.ItemID,
		ParentID: AssortRootParent,
		SlotID:   AssortRootParent,
		Upd:      upd,
	})

	a.BarterScheme[offer.OfferID] = lo.Map(offer.Schemes, func(option []Payment, _ int) []*BarterScheme {
		return lo.Map(option, func(p Payment, _ int) *BarterScheme {
			return &BarterScheme{Tpl: p.ItemID, Count: p.Count}
		})
	})
	a.LoyalLevelItems[offer.OfferID] = offer.Tier
}

// Offers lists every root listing of the assort.
func (a *Assort) Offers() []Offer {
	if a == nil {
		return nil
	}
	roots := lo.Filter(a.Items, func(item *AssortItem, _ int) bool {
		return item != nil && item.ParentID == AssortRootParent
	})
	return lo.Map(roots, func(item *AssortItem, _ int) Offer {
		return Offer{
			OfferID: item.ID,
			ItemID:  item.Tpl,
			Schemes: lo.Map(a.BarterScheme[item.ID], func(option []*BarterScheme, _ int) []Payment {
				return lo.Map(option, func(b *BarterScheme, _ int) Payment {
					return Payment{ItemID: b.Tpl, Count: b.Count}
				})
			}),
			Tier: a.LoyalLevelItems[item.ID],
		}
	})
}

// Lists reports whether the assort holds at least one item of the given template.
func (a *Assort) Lists(itemID string) bool {
	if a == nil {
		return false
	}
	return lo.ContainsBy(a.Items, func(item *AssortItem) bool {
		return item != nil && item.Tpl == itemID
	})
}
