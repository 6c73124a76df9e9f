package fragment

import (
	"errors"
	"fmt"
)

// ErrUnresolvedRef is returned by [Resolve] when a [Ref] has no value.
var ErrUnresolvedRef = errors.New("unresolved reference")

// Resolver supplies the values that [Ref]s name.
type Resolver interface {
	Lookup(name string) (any, bool)
}

// Merge combines maps into a new Map. Mappings found under the same key are
// merged recursively; for every other value the earliest map wins. Nil maps
// are treated as empty, and a nil value counts as absent, so a later map
// fills it.
func Merge(maps ...*Map) *Map {
	out := New()
	for _, m := range maps {
		m.Range(func(k string, v any) bool {
			cur, ok := out.vals[k]
			if !ok || isNil(cur) {
				out.Set(k, clone(v))
				return true
			}
			cm, curIsMap := cur.(*Map)
			vm, vIsMap := v.(*Map)
			if curIsMap && vIsMap {
				out.vals[k] = Merge(cm, vm)
			}
			return true
		})
	}
	return out
}

func isNil(v any) bool {
	if m, ok := v.(*Map); ok {
		return m == nil
	}
	return v == nil
}

// Filter returns a copy of m without the entries keep rejects. It descends
// into nested mappings, including mappings held in sequences.
func Filter(m *Map, keep func(key string, value any) bool) *Map {
	out := New()
	m.Range(func(k string, v any) bool {
		if keep(k, v) {
			out.Set(k, filterValue(v, keep))
		}
		return true
	})
	return out
}

func filterValue(v any, keep func(string, any) bool) any {
	switch t := v.(type) {
	case *Map:
		if t == nil {
			return t
		}
		return Filter(t, keep)
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = filterValue(t[i], keep)
		}
		return out
	}
	return v
}

// Resolve returns a copy of m with every [Ref] replaced by the value r
// supplies. Resolved values are inserted as copies and are not themselves
// searched for references. Go maps, structs and slices a resolver returns
// are converted to fragments through their JSON encoding.
func Resolve(r Resolver, m *Map) (*Map, error) {
	out := New()
	var err error
	m.Range(func(k string, v any) bool {
		var rv any
		rv, err = resolveValue(r, v)
		if err != nil {
			err = fmt.Errorf("%s: %w", k, err)
			return false
		}
		out.Set(k, rv)
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func resolveValue(r Resolver, v any) (any, error) {
	switch t := v.(type) {
	case Ref:
		if r == nil {
			return nil, fmt.Errorf("%w %q", ErrUnresolvedRef, string(t))
		}
		got, ok := r.Lookup(string(t))
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUnresolvedRef, string(t))
		}
		nv, err := normalize(got)
		if err != nil {
			return nil, fmt.Errorf("ref %q: %w", string(t), err)
		}
		return nv, nil
	case *Map:
		if t == nil {
			return t, nil
		}
		return Resolve(r, t)
	case []any:
		out := make([]any, len(t))
		for i := range t {
			rv, err := resolveValue(r, t[i])
			if err != nil {
				return nil, err
			}
			out[i] = rv
		}
		return out, nil
	}
	return v, nil
}
