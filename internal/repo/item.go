package repo

import (
	"github.com/samber/lo"

	"exusiai.dev/mapbook/internal/model"
	"exusiai.dev/mapbook/internal/repo/selector"
)

type Item struct {
	db  *Database
	sel selector.S[model.Template]
}

func NewItem(db *Database) *Item {
	return &Item{
		db: db,
		sel: selector.New("item template", func() map[string]*model.Template {
			return db.Items
		}),
	}
}

func (r *Item) GetItemByID(id string) (*model.Template, error) {
	return r.sel.SelectOne(id)
}

// GetItems returns the live id-keyed template table. Mutations are visible to every reader.
func (r *Item) GetItems() map[string]*model.Template {
	return r.db.Items
}

// GetItemsByParent returns every template whose parent category is parentID, ordered by id.
func (r *Item) GetItemsByParent(parentID string) []*model.Template {
	return r.sel.SelectMany(func(_ string, tpl *model.Template) bool {
		return tpl.Parent == parentID
	})
}

func (r *Item) Exists(id string) bool {
	_, ok := r.db.Items[id]
	return ok
}

func (r *Item) AddItem(tpl *model.Template) {
	r.db.Items[tpl.ID] = tpl
}

// AddHandbookEntry registers a handbook valuation for id, replacing any previous entry.
func (r *Item) AddHandbookEntry(id, parentID string, price float64) {
	r.db.Handbook.Items = lo.Reject(r.db.Handbook.Items, func(e *model.HandbookItem, _ int) bool {
		return e != nil && e.ID == id
	})
	r.db.Handbook.Items = append(r.db.Handbook.Items, &model.HandbookItem{
		ID:       id,
		ParentID: parentID,
		Price:    price,
	})
}

func (r *Item) GetHandbookEntry(id string) (*model.HandbookItem, bool) {
	return lo.Find(r.db.Handbook.Items, func(e *model.HandbookItem) bool {
		return e != nil && e.ID == id
	})
}

func (r *Item) SetFleaPrice(id string, price float64) {
	r.db.Prices[id] = price
}

func (r *Item) GetFleaPrice(id string) (float64, bool) {
	price, ok := r.db.Prices[id]
	return price, ok
}
