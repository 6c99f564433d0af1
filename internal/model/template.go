package model

import (
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Template is an item template: the definition of an acquirable or placeable object.
type Template struct {
	ID     string `json:"_id"`
	Name   string `json:"_name"`
	Parent string `json:"_parent"`
	Type   string `json:"_type"`
	Props  *Props `json:"_props"`
	Proto  string `json:"_proto,omitempty"`
}

// EnsureProps returns the template properties, allocating them when absent.
func (t *Template) EnsureProps() *Props {
	if t.Props == nil {
		t.Props = &Props{}
	}
	return t.Props
}

// SlotIDs returns the ids of every slot declared on the template.
func (t *Template) SlotIDs() []string {
	if t == nil || t.Props == nil {
		return nil
	}
	return lo.FilterMap(t.Props.Slots, func(s *Slot, _ int) (string, bool) {
		if s == nil || s.ID == "" {
			return "", false
		}
		return s.ID, true
	})
}

type Prefab struct {
	Path string `json:"path"`
	RCID string `json:"rcid"`
}

// Props is the mutable property record of a template. Only the properties the pipeline reads or
// writes are modelled; every other key is preserved verbatim in Extra.
type Props struct {
	Name                    string  `json:"Name"`
	ShortName               string  `json:"ShortName"`
	Description             string  `json:"Description"`
	Prefab                  *Prefab `json:"Prefab,omitempty"`
	Width                   int     `json:"Width"`
	Height                  int     `json:"Height"`
	ItemSound               string  `json:"ItemSound,omitempty"`
	CanPutIntoDuringTheRaid bool    `json:"CanPutIntoDuringTheRaid"`
	RaidModdable            bool    `json:"RaidModdable"`
	InsuranceDisabled       bool    `json:"InsuranceDisabled"`
	CanSellOnRagfair        bool    `json:"CanSellOnRagfair"`
	ExaminedByDefault       bool    `json:"ExaminedByDefault"`
	Grids                   []*Grid `json:"Grids"`
	Slots                   []*Slot `json:"Slots"`

	Extra map[string]json.RawMessage `json:"-"`
}

type propsAlias Props

var propsKnownKeys = map[string]struct{}{
	"Name":                    {},
	"ShortName":               {},
	"Description":             {},
	"Prefab":                  {},
	"Width":                   {},
	"Height":                  {},
	"ItemSound":               {},
	"CanPutIntoDuringTheRaid": {},
	"RaidModdable":            {},
	"InsuranceDisabled":       {},
	"CanSellOnRagfair":        {},
	"ExaminedByDefault":       {},
	"Grids":                   {},
	"Slots":                   {},
}

var sjsonKeyEscaper = strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`, "|", `\|`, "#", `\#`, "@", `\@`)

func (p *Props) UnmarshalJSON(data []byte) error {
	parsed := gjson.ParseBytes(data)
	if !parsed.IsObject() {
		return errors.New("template props: expected a JSON object")
	}

	var alias propsAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	*p = Props(alias)
	p.Extra = nil

	parsed.ForEach(func(key, value gjson.Result) bool {
		if _, known := propsKnownKeys[key.String()]; known {
			return true
		}
		if p.Extra == nil {
			p.Extra = make(map[string]json.RawMessage)
		}
		p.Extra[key.String()] = json.RawMessage(value.Raw)
		return true
	})

	return nil
}

func (p Props) MarshalJSON() ([]byte, error) {
	alias := propsAlias(p)
	if alias.Grids == nil {
		alias.Grids = []*Grid{}
	}
	if alias.Slots == nil {
		alias.Slots = []*Slot{}
	}

	data, err := json.Marshal(alias)
	if err != nil {
		return nil, err
	}

	keys := lo.Keys(p.Extra)
	sort.Strings(keys)
	for _, key := range keys {
		data, err = sjson.SetRawBytes(data, sjsonKeyEscaper.Replace(key), p.Extra[key])
		if err != nil {
			return nil, errors.Wrapf(err, "template props: failed to restore property %q", key)
		}
	}

	return data, nil
}

// Filter is a filter set: the item template ids a grid or slot accepts.
type Filter struct {
	Filter         []string `json:"Filter"`
	ExcludedFilter []string `json:"ExcludedFilter,omitempty"`
}

func (f *Filter) Contains(id string) bool {
	return lo.Contains(f.Filter, id)
}

// Add inserts id into the filter set, keeping existing members. It reports whether
// the set changed.
func (f *Filter) Add(id string) bool {
	if f.Contains(id) {
		return false
	}
	f.Filter = append(f.Filter, id)
	return true
}

type Grid struct {
	Name   string     `json:"_name"`
	ID     string     `json:"_id"`
	Parent string     `json:"_parent"`
	Props  *GridProps `json:"_props"`
	Proto  string     `json:"_proto"`
}

type GridProps struct {
	Filters        []*Filter `json:"filters"`
	CellsH         int       `json:"cellsH"`
	CellsV         int       `json:"cellsV"`
	MinCount       int       `json:"minCount"`
	MaxCount       int       `json:"maxCount"`
	MaxWeight      int       `json:"maxWeight"`
	IsSortingTable bool      `json:"isSortingTable"`
}

// EnsureFilter returns the first filter of the grid, creating an empty one when there is none.
func (g *Grid) EnsureFilter() *Filter {
	if g.Props == nil {
		g.Props = &GridProps{}
	}
	g.Props.Filters = ensureFirstFilter(g.Props.Filters)
	return g.Props.Filters[0]
}

// Accepts reports whether any filter of the grid lists id.
func (g *Grid) Accepts(id string) bool {
	if g == nil || g.Props == nil {
		return false
	}
	return lo.ContainsBy(g.Props.Filters, func(f *Filter) bool {
		return f != nil && f.Contains(id)
	})
}

type Slot struct {
	Name                  string     `json:"_name"`
	ID                    string     `json:"_id"`
	Parent                string     `json:"_parent"`
	Props                 *SlotProps `json:"_props"`
	Required              bool       `json:"_required"`
	MergeSlotWithChildren bool       `json:"_mergeSlotWithChildren"`
	Proto                 string     `json:"_proto"`
}

type SlotProps struct {
	Filters []*Filter `json:"filters"`
}

// EnsureFilter returns the first filter of the slot, creating an empty one when there is none.
func (s *Slot) EnsureFilter() *Filter {
	if s.Props == nil {
		s.Props = &SlotProps{}
	}
	s.Props.Filters = ensureFirstFilter(s.Props.Filters)
	return s.Props.Filters[0]
}

func ensureFirstFilter(filters []*Filter) []*Filter {
	if len(filters) == 0 {
		return []*Filter{{Filter: []string{}}}
	}
	if filters[0] == nil {
		filters[0] = &Filter{Filter: []string{}}
	}
	return filters
}
