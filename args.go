package apidoc

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Gobd/apidoc/fragment"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrInvalidArgument is returned when an argument descriptor is not a mapping.
var ErrInvalidArgument = errors.New("invalid argument descriptor")

// locations maps argument locations to parameter "in" values.
var locations = map[string]string{
	"query":       "query",
	"querystring": "query",
	"headers":     "header",
	"header":      "header",
	"cookies":     "cookie",
	"cookie":      "cookie",
	"path":        "path",
	"form":        "formData",
	"files":       "formData",
	"json":        "body",
	"body":        "body",
}

var locationNames = func() []any {
	names := make([]string, 0, len(locations))
	for k := range locations {
		names = append(names, k)
	}
	sort.Strings(names)
	out := make([]any, len(names))
	for i := range names {
		out[i] = names[i]
	}
	return out
}()

// descriptor keys that describe the parameter rather than its schema
var parameterKeys = map[string]bool{
	"location":    true,
	"required":    true,
	"description": true,
	"multiple":    true,
	"dest":        true,
}

func flag(m *fragment.Map, key string) bool {
	v, _ := m.Get(key)
	b, _ := v.(bool)
	return b
}

// ArgsToParameters converts an args mapping (name -> descriptor) into
// parameter fragments, in mapping order. Arguments without a location use
// defaultIn, and "body" when that is empty too.
func ArgsToParameters(args *fragment.Map, defaultIn string) ([]*fragment.Map, error) {
	out := make([]*fragment.Map, 0, args.Len())
	var err error
	args.Range(func(name string, v any) bool {
		arg, ok := v.(*fragment.Map)
		if !ok || arg == nil {
			err = fmt.Errorf("argument %q: %w", name, ErrInvalidArgument)
			return false
		}
		var p *fragment.Map
		p, err = argToParameter(name, arg, defaultIn)
		if err != nil {
			return false
		}
		out = append(out, p)
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func argToParameter(name string, arg *fragment.Map, defaultIn string) (*fragment.Map, error) {
	location := arg.String("location")
	if location == "" {
		location = defaultIn
	}
	if location == "" {
		location = "body"
	}
	if err := validation.Validate(location, validation.In(locationNames...)); err != nil {
		return nil, fmt.Errorf("argument %q location %q: %w", name, location, err)
	}
	in := locations[location]

	if dest := arg.String("dest"); dest != "" {
		name = dest
	}
	p := fragment.Of(
		"in", in,
		"name", name,
		"required", flag(arg, "required"),
	)
	if desc := arg.String("description"); desc != "" {
		p.Set("description", desc)
	}

	schema := fragment.New()
	arg.Clone().Range(func(k string, v any) bool {
		if !parameterKeys[k] {
			schema.Set(k, v)
		}
		return true
	})
	if flag(arg, "multiple") {
		schema = fragment.Of("type", "array", "items", schema)
		if in != "body" && in != "formData" {
			p.Set("style", "form")
			p.Set("explode", true)
		}
	}
	p.Set("schema", schema)
	return p, nil
}
