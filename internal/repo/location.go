package repo

import (
	"exusiai.dev/mapbook/internal/model"
	"exusiai.dev/mapbook/internal/repo/selector"
)

type Location struct {
	sel selector.S[model.Location]
}

func NewLocation(db *Database) *Location {
	return &Location{
		sel: selector.New("location", func() map[string]*model.Location {
			return db.Locations
		}),
	}
}

// GetLocations returns every known location ordered by name, including those without static loot.
func (r *Location) GetLocations() []*model.Location {
	return r.sel.SelectMany(nil)
}

func (r *Location) GetLocationByName(name string) (*model.Location, error) {
	return r.sel.SelectOne(name)
}
