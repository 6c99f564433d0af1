package repo

import (
	"exusiai.dev/mapbook/internal/model"
	"exusiai.dev/mapbook/internal/repo/selector"
)

type Trader struct {
	sel selector.S[model.Trader]
}

func NewTrader(db *Database) *Trader {
	return &Trader{
		sel: selector.New("trader", func() map[string]*model.Trader {
			return db.Traders
		}),
	}
}

func (r *Trader) GetTraderByID(id string) (*model.Trader, error) {
	return r.sel.SelectOne(id)
}
