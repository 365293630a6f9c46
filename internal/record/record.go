// Package record holds the business-data tree that dashboards are built from.
//
// A record is a tree of mappings (*Map), sequences ([]any) and scalars
// (float64, string, bool). Mappings remember the order their keys appeared in
// the source document so charts and tables can present entries in that order.
// Records are never mutated after they are decoded.
package record

import (
	"bytes"
	"encoding/json"
)

// NodeKind is the structural class of a value in a record tree.
type NodeKind int

const (
	NodeNull NodeKind = iota
	NodeScalar
	NodeSequence
	NodeMapping
)

func (k NodeKind) String() string {
	switch k {
	case NodeNull:
		return "null"
	case NodeScalar:
		return "scalar"
	case NodeSequence:
		return "sequence"
	case NodeMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Classify returns the node kind of v. Any value outside the record's closed
// set of types is treated as a scalar so walkers never descend into it.
func Classify(v any) NodeKind {
	switch t := v.(type) {
	case nil:
		return NodeNull
	case *Map:
		if t == nil {
			return NodeNull
		}
		return NodeMapping
	case []any:
		return NodeSequence
	default:
		return NodeScalar
	}
}

// Map is an ordered string-keyed mapping.
type Map struct {
	keys   []string
	values map[string]any
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{values: make(map[string]any)}
}

// Set stores value under key. A new key is appended to the key order; an
// existing key keeps its position. Set is only used while building a record.
func (m *Map) Set(key string, value any) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in source order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of keys.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Range calls fn for every entry in key order until fn returns false.
func (m *Map) Range(fn func(key string, value any) bool) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}

// MarshalJSON encodes the mapping as a JSON object in key order.
func (m *Map) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// AsNumber reports whether v is a numeric scalar and returns it as float64.
func AsNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
