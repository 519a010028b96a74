package host

import "sort"

// Prop is a single named initial value.
type Prop struct {
	Key   string
	Value any
}

// P creates a Prop.
func P(key string, value any) Prop {
	return Prop{Key: key, Value: value}
}

// Props is an ordered property bag. Later entries win over earlier entries
// with the same key when applied to a node.
type Props []Prop

// PropsFromMap converts m into Props ordered by key.
func PropsFromMap(m map[string]any) Props {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(Props, 0, len(keys))
	for _, k := range keys {
		out = append(out, Prop{Key: k, Value: m[k]})
	}
	return out
}

// Get returns the last value assigned to key.
func (p Props) Get(key string) (any, bool) {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i].Key == key {
			return p[i].Value, true
		}
	}
	return nil, false
}

// Map returns the props as a map, applying last-write-wins.
func (p Props) Map() map[string]any {
	m := make(map[string]any, len(p))
	for _, prop := range p {
		m[prop.Key] = prop.Value
	}
	return m
}
