package selector

import (
	"sort"

	"exusiai.dev/mapbook/internal/pkg/mberr"
)

// S selects entities of kind T out of an id-keyed table of the catalog.
type S[T any] struct {
	Kind  string
	Table func() map[string]*T
}

func New[T any](kind string, table func() map[string]*T) S[T] {
	return S[T]{
		Kind:  kind,
		Table: table,
	}
}

func (r S[T]) SelectOne(id string) (*T, error) {
	entity, ok := r.Table()[id]
	if !ok || entity == nil {
		return nil, mberr.ErrNotFound.Msg("%s not found with id %s", r.Kind, id)
	}

	return entity, nil
}

// SelectMany returns every entity matching fn, ordered by id.
func (r S[T]) SelectMany(fn func(id string, entity *T) bool) []*T {
	table := r.Table()
	ids := make([]string, 0, len(table))
	for id, entity := range table {
		if entity == nil {
			continue
		}
		if fn == nil || fn(id, entity) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	out := make([]*T, 0, len(ids))
	for _, id := range ids {
		out = append(out, table[id])
	}
	return out
}
