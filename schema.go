package apidoc

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/Gobd/apidoc/fragment"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
)

func indirect(v any) reflect.Value {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		rv = reflect.Indirect(rv)
	}
	return rv
}

// rulesForType returns a fresh *t and its rules if *t implements Ruler.
func rulesForType(t reflect.Type) (any, []*FieldRules) {
	inst := reflect.New(t)
	if r, ok := inst.Interface().(Ruler); ok {
		return inst.Interface(), r.Rules()
	}
	return nil, nil
}

// jsonName returns the name a struct field is encoded under.
func jsonName(sf reflect.StructField) string {
	name := strings.Split(sf.Tag.Get("json"), ",")[0]
	if name == "" {
		return sf.Name
	}
	return name
}

// findStructField returns the field of structVal whose address fieldPtr holds.
func findStructField(structVal reflect.Value, fieldPtr reflect.Value) *reflect.StructField {
	ptr := fieldPtr.Pointer()
	for i := range structVal.NumField() {
		fv := structVal.Field(i)
		if fv.UnsafeAddr() == ptr && fv.Type() == fieldPtr.Elem().Type() {
			sf := structVal.Type().Field(i)
			return &sf
		}
	}
	return nil
}

// removeSkippedFields deletes schema properties for fields tagged docs:"skip".
// Recurses into embedded (anonymous) struct fields.
func removeSkippedFields(t reflect.Type, schema *openapi3.Schema) {
	for i := range t.NumField() {
		sf := t.Field(i)
		if sf.Anonymous {
			et := sf.Type
			if et.Kind() == reflect.Ptr {
				et = et.Elem()
			}
			if et.Kind() == reflect.Struct {
				removeSkippedFields(et, schema)
			}
			continue
		}
		if strings.Split(sf.Tag.Get("docs"), ",")[0] != "skip" {
			continue
		}
		delete(schema.Properties, jsonName(sf))
	}
}

// mapFieldsToTags resolves each FieldRules' field pointer to its JSON name.
func mapFieldsToTags(fields []*FieldRules, structVal reflect.Value) error {
	for i, fr := range fields {
		fv := reflect.ValueOf(fr.fieldPtr)
		if fv.Kind() != reflect.Ptr {
			return fmt.Errorf("rule target for field index %d must be a pointer, got %s", i, fv.Kind())
		}
		sf := findStructField(structVal, fv)
		if sf == nil {
			return fmt.Errorf("rule target for field index %d not found in struct %s", i, structVal.Type())
		}
		fields[i].tag = jsonName(*sf)
	}
	return nil
}

// applyRulesToSchema calls Describe on each rule for matching schema properties.
func applyRulesToSchema(fields []*FieldRules, schema *openapi3.Schema) error {
	for _, f := range fields {
		propRef, ok := schema.Properties[f.tag]
		if !ok || propRef.Value == nil {
			continue
		}
		for _, rule := range f.rules {
			if err := rule.Describe(f.tag, schema, propRef); err != nil {
				return err
			}
		}
	}
	return nil
}

// describeRules is the openapi3gen customizer that applies Ruler rules and
// docs:"skip" tags to every struct schema it generates.
func describeRules(_ string, t reflect.Type, _ reflect.StructTag, schema *openapi3.Schema) error {
	if t.Kind() != reflect.Struct {
		return nil
	}
	removeSkippedFields(t, schema)

	vi, fields := rulesForType(t)
	if vi == nil {
		return nil
	}
	structVal := indirect(vi)
	if err := mapFieldsToTags(fields, structVal); err != nil {
		return err
	}
	return applyRulesToSchema(fields, schema)
}

// NewSchemaRefForValue generates an OpenAPI schema for value, applying the
// rules of every [Ruler] struct it contains.
func NewSchemaRefForValue(value any) (*openapi3.SchemaRef, error) {
	g := openapi3gen.NewGenerator(openapi3gen.SchemaCustomizer(describeRules))
	return g.NewSchemaRefForValue(value, nil)
}

// Schema returns the schema of value's type as a fragment, ready to be used
// in [MarshalWith] or as a resource ref.
func Schema(value any) (*fragment.Map, error) {
	ref, err := NewSchemaRefForValue(value)
	if err != nil {
		return nil, err
	}
	return fragment.FromValue(ref.Value)
}

// SchemaMust is like [Schema] but panics on error.
func SchemaMust(value any) *fragment.Map {
	m, err := Schema(value)
	if err != nil {
		panic(err)
	}
	return m
}

// ArgsFor builds an argument fragment (see [UseArgs]) from the fields of a
// struct value, in field order. A field's "in" tag sets its location;
// required fields and rule descriptions come from the struct's Rules.
//
//	type ListQuery struct {
//	    Page int    `json:"page" in:"query"`
//	    Auth string `json:"Authorization" in:"headers"`
//	}
func ArgsFor(value any, defaultIn string) (*fragment.Map, error) {
	rt := indirect(value).Type()
	if rt.Kind() != reflect.Struct {
		return nil, errors.New("arguments must be described by a struct")
	}
	ref, err := NewSchemaRefForValue(value)
	if err != nil {
		return nil, err
	}
	args := fragment.New()
	if err := collectArgs(rt, ref.Value, args); err != nil {
		return nil, err
	}
	return UseArgs(args, defaultIn), nil
}

// ArgsForMust is like [ArgsFor] but panics on error.
func ArgsForMust(value any, defaultIn string) *fragment.Map {
	m, err := ArgsFor(value, defaultIn)
	if err != nil {
		panic(err)
	}
	return m
}

func collectArgs(t reflect.Type, schema *openapi3.Schema, args *fragment.Map) error {
	for i := range t.NumField() {
		sf := t.Field(i)
		if sf.Anonymous {
			et := sf.Type
			if et.Kind() == reflect.Ptr {
				et = et.Elem()
			}
			if et.Kind() == reflect.Struct {
				if err := collectArgs(et, schema, args); err != nil {
					return err
				}
			}
			continue
		}
		if !sf.IsExported() {
			continue
		}
		name := jsonName(sf)
		prop, ok := schema.Properties[name]
		if name == "-" || !ok || prop.Value == nil {
			continue
		}
		arg, err := fragment.FromValue(prop.Value)
		if err != nil {
			return fmt.Errorf("argument %q: %w", name, err)
		}
		if slices.Contains(schema.Required, name) {
			arg.Set("required", true)
		}
		if loc := sf.Tag.Get("in"); loc != "" {
			arg.Set("location", loc)
		}
		args.Set(name, arg)
	}
	return nil
}
