// Package literal evaluates Python literal expressions (the subset accepted by
// ast.literal_eval) into Go values without executing anything.
//
// Value mapping: str -> string, int -> int64 (*big.Int beyond its range),
// float -> float64, bool -> bool, None -> nil, list/tuple/set -> []any, dict -> Dict.
package literal

import (
	"bytes"
	"encoding/json"
)

// Pair is one key/value entry of a Dict.
type Pair struct {
	Key   string
	Value any
}

// Dict is an insertion-ordered mapping with string keys.
type Dict []Pair

// Get returns the value stored under key.
func (d Dict) Get(key string) (any, bool) {
	for _, p := range d {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// Has reports whether key is present.
func (d Dict) Has(key string) bool {
	_, ok := d.Get(key)
	return ok
}

// Keys returns the keys in insertion order.
func (d Dict) Keys() []string {
	keys := make([]string, len(d))
	for i, p := range d {
		keys[i] = p.Key
	}
	return keys
}

// Set replaces the value of an existing key in place or appends a new entry.
// Mirrors Python dict semantics for repeated keys in a display.
func (d *Dict) Set(key string, value any) {
	for i := range *d {
		if (*d)[i].Key == key {
			(*d)[i].Value = value
			return
		}
	}
	*d = append(*d, Pair{Key: key, Value: value})
}

// MarshalJSON keeps insertion order.
func (d Dict) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(p.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(p.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the dict as a plain map; yaml sorts the keys.
func (d Dict) MarshalYAML() (interface{}, error) {
	m := make(map[string]any, len(d))
	for _, p := range d {
		m[p.Key] = p.Value
	}
	return m, nil
}
