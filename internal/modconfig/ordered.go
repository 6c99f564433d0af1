package modconfig

import (
	"bytes"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

type Entry struct {
	Key   string
	Value string
}

// OrderedMap is a string to string JSON object that remembers the order its keys appear in
// the document. The order of the map entries drives slot numbering, so it must never be
// decoded through a Go map.
type OrderedMap []Entry

func (m *OrderedMap) UnmarshalJSON(data []byte) error {
	parsed := gjson.ParseBytes(data)
	if parsed.Type == gjson.Null {
		*m = nil
		return nil
	}
	if !parsed.IsObject() {
		return errors.Errorf("expected a JSON object, got %s", parsed.Type)
	}

	var (
		out OrderedMap
		err error
	)
	parsed.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.String {
			err = errors.Errorf("value of key %q: expected a string, got %s", key.String(), value.Type)
			return false
		}
		out = out.Set(key.String(), value.String())
		return true
	})
	if err != nil {
		return err
	}

	*m = out
	return nil
}

func (m OrderedMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (m OrderedMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for _, e := range m {
		keys = append(keys, e.Key)
	}
	return keys
}

func (m OrderedMap) Values() []string {
	values := make([]string, 0, len(m))
	for _, e := range m {
		values = append(values, e.Value)
	}
	return values
}

func (m OrderedMap) Get(key string) (string, bool) {
	for _, e := range m {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// Set replaces the value of an existing key in place, or appends a new entry.
func (m OrderedMap) Set(key, value string) OrderedMap {
	for i, e := range m {
		if e.Key == key {
			m[i].Value = value
			return m
		}
	}
	return append(m, Entry{Key: key, Value: value})
}

// Merge returns a copy of m followed by the entries of other whose keys m does not hold.
func (m OrderedMap) Merge(other OrderedMap) OrderedMap {
	out := make(OrderedMap, len(m), len(m)+len(other))
	copy(out, m)
	for _, e := range other {
		if _, ok := out.Get(e.Key); !ok {
			out = append(out, e)
		}
	}
	return out
}
