package model

import "github.com/samber/lo"

// Location is a world location. StaticLoot is nil for locations without static loot.
type Location struct {
	Name       string                          `json:"-"`
	StaticLoot map[string]*StaticLootContainer `json:"-"`
}

// StaticLootContainer is the spawn table of one kind of pre-placed world container.
type StaticLootContainer struct {
	ItemCountDistribution []*CountEntry `json:"itemcountDistribution"`
	ItemDistribution      []*LootEntry  `json:"itemDistribution"`
}

type CountEntry struct {
	Count               int     `json:"count"`
	RelativeProbability float64 `json:"relativeProbability"`
}

type LootEntry struct {
	Tpl                 string  `json:"tpl"`
	RelativeProbability float64 `json:"relativeProbability"`
}

// Lists reports whether the container's distribution already holds an entry for tpl.
func (c *StaticLootContainer) Lists(tpl string) bool {
	return lo.ContainsBy(c.ItemDistribution, func(e *LootEntry) bool {
		return e != nil && e.Tpl == tpl
	})
}

// Count returns the number of distribution entries for tpl.
func (c *StaticLootContainer) Count(tpl string) int {
	return lo.CountBy(c.ItemDistribution, func(e *LootEntry) bool {
		return e != nil && e.Tpl == tpl
	})
}
