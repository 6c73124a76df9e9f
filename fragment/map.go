package fragment

import "fmt"

// Ref names a value to be supplied by a [Resolver] when the fragment is resolved.
type Ref string

// Map is a string-keyed mapping that remembers insertion order.
// The zero value is not usable; create maps with [New] or [Of].
type Map struct {
	keys []string
	vals map[string]any
}

// New returns an empty Map.
func New() *Map {
	return &Map{vals: map[string]any{}}
}

// Of builds a Map from alternating keys and values. It panics if kv has an
// odd length or a key is not a string.
func Of(kv ...any) *Map {
	if len(kv)%2 != 0 {
		panic("fragment: Of called with odd number of arguments")
	}
	m := New()
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("fragment: key %v is %T, not string", kv[i], kv[i]))
		}
		m.Set(k, kv[i+1])
	}
	return m
}

// List is shorthand for building a sequence value.
func List(vs ...any) []any {
	return vs
}

// Len returns the number of entries. A nil Map is empty.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.vals[key]
	return v, ok
}

// Sub returns the mapping stored under key, or nil if key is absent or not a mapping.
func (m *Map) Sub(key string) *Map {
	v, _ := m.Get(key)
	sub, _ := v.(*Map)
	return sub
}

// String returns the string stored under key, or "" if absent or not a string.
func (m *Map) String(key string) string {
	v, _ := m.Get(key)
	s, _ := v.(string)
	return s
}

// Set stores v under key. New keys are appended; existing keys keep their position.
func (m *Map) Set(key string, v any) {
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = v
}

// Delete removes key and returns the value it held.
func (m *Map) Delete(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.vals[key]
	if !ok {
		return nil, false
	}
	delete(m.vals, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return v, true
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// Range calls fn for each entry in order until fn returns false.
func (m *Map) Range(fn func(key string, value any) bool) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		if !fn(k, m.vals[k]) {
			return
		}
	}
}

// Clone returns a deep copy of m. Nested mappings and sequences are copied;
// other values are shared.
func (m *Map) Clone() *Map {
	out := New()
	m.Range(func(k string, v any) bool {
		out.Set(k, clone(v))
		return true
	})
	return out
}

func clone(v any) any {
	switch t := v.(type) {
	case *Map:
		if t == nil {
			return t
		}
		return t.Clone()
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = clone(t[i])
		}
		return out
	}
	return v
}
