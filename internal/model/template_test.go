package model

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestPropsPreservesUnknownKeys(t *testing.T) {
	raw := `{
		"Name": "Secure container Alpha",
		"Width": 2,
		"Height": 2,
		"Weight": 0.5,
		"BackgroundColor": "default",
		"Grids": [{"_name": "main", "_id": "5c0a5a5986f77476aa30ae65", "_parent": "544a11ac4bdc2d470e8b456a", "_props": {"filters": [{"Filter": ["54009119af1c881c07000029"]}], "cellsH": 2, "cellsV": 2}, "_proto": "55d329c24bdc2d892f8b4567"}]
	}`

	var props Props
	require.NoError(t, json.Unmarshal([]byte(raw), &props))

	assert.Equal(t, "Secure container Alpha", props.Name)
	assert.Len(t, props.Grids, 1)
	assert.Contains(t, props.Extra, "Weight")
	assert.Contains(t, props.Extra, "BackgroundColor")
	assert.NotContains(t, props.Extra, "Name")

	out, err := json.Marshal(props)
	require.NoError(t, err)

	parsed := gjson.ParseBytes(out)
	assert.Equal(t, 0.5, parsed.Get("Weight").Float())
	assert.Equal(t, "default", parsed.Get("BackgroundColor").String())
	assert.Equal(t, "54009119af1c881c07000029", parsed.Get("Grids.0._props.filters.0.Filter.0").String())
	assert.True(t, parsed.Get("Slots").IsArray())
}

func TestPropsRejectsNonObject(t *testing.T) {
	var props Props
	assert.Error(t, json.Unmarshal([]byte(`[1, 2]`), &props))
}

func TestFilterAddKeepsMembers(t *testing.T) {
	f := &Filter{Filter: []string{"a", "b"}}
	assert.True(t, f.Add("c"))
	assert.False(t, f.Add("a"))
	assert.Equal(t, []string{"a", "b", "c"}, f.Filter)
}

func TestEnsureFilterCreatesEmptyFilter(t *testing.T) {
	g := &Grid{ID: "g"}
	f := g.EnsureFilter()
	require.NotNil(t, f)
	assert.Empty(t, f.Filter)
	assert.Len(t, g.Props.Filters, 1)

	f.Add("x")
	assert.True(t, g.Accepts("x"))
	assert.Same(t, f, g.EnsureFilter())

	s := &Slot{ID: "s", Props: &SlotProps{Filters: []*Filter{nil}}}
	assert.NotNil(t, s.EnsureFilter())
}

func TestAssortOffersRoundTrip(t *testing.T) {
	trader := &Trader{ID: "5a7c2eca46aef81a7ca2145d"}
	assort := trader.EnsureAssort()

	assort.AddOffer(Offer{
		OfferID: "offer-1",
		ItemID:  "item",
		Schemes: [][]Payment{{{ItemID: "5449016a4bdc2d6f028b456f", Count: 5000}}},
		Tier:    2,
	}, &Upd{StackObjectsCount: 1})

	offers := assort.Offers()
	require.Len(t, offers, 1)
	assert.Equal(t, "item", offers[0].ItemID)
	assert.Equal(t, 2, offers[0].Tier)
	assert.Equal(t, [][]Payment{{{ItemID: "5449016a4bdc2d6f028b456f", Count: 5000}}}, offers[0].Schemes)
	assert.True(t, assort.Lists("item"))
	assert.False(t, assort.Lists("other"))
}

func TestTraderNickname(t *testing.T) {
	trader := &Trader{Base: json.RawMessage(`{"_id": "5a7c2eca46aef81a7ca2145d", "nickname": "Mechanic"}`)}
	assert.Equal(t, "Mechanic", trader.Nickname())
}
