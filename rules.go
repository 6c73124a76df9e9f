package apidoc

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type (
	// Rule validates a value and describes itself into the schema generated
	// for the field it is attached to.
	Rule interface {
		Validate(value any) error
		Describe(name string, schema *openapi3.Schema, ref *openapi3.SchemaRef) error
	}

	// FieldRules binds a struct field pointer to its rules.
	FieldRules struct {
		fieldPtr any
		tag      string
		rules    []Rule
	}

	// Ruler is implemented by argument and response structs that declare
	// rules for their fields:
	//
	//	func (q *ListQuery) Rules() []*apidoc.FieldRules {
	//	    return []*apidoc.FieldRules{
	//	        apidoc.Field(&q.Page, apidoc.Min(1), apidoc.Describe("page number")),
	//	        apidoc.Field(&q.Sort, apidoc.In("name", "created")),
	//	    }
	//	}
	Ruler interface {
		Rules() []*FieldRules
	}
)

// Field creates a FieldRules binding fieldPtr to rules.
func Field[T any](fieldPtr *T, rules ...Rule) *FieldRules {
	return &FieldRules{
		fieldPtr: fieldPtr,
		rules:    rules,
	}
}

// appendDescription adds desc to the schema description, space separated.
func appendDescription(ref *openapi3.SchemaRef, desc string) {
	if ref.Value.Description != "" && !strings.HasSuffix(ref.Value.Description, " ") {
		ref.Value.Description += " "
	}
	ref.Value.Description += desc
}

type requiredRule struct {
	validation.RequiredRule
}

// Required checks that a value is not empty and lists the field as required.
var Required Rule = requiredRule{validation.Required}

func (r requiredRule) Describe(name string, schema *openapi3.Schema, _ *openapi3.SchemaRef) error {
	schema.Required = append(schema.Required, name)
	return nil
}

type thresholdRule struct {
	validation.ThresholdRule
	threshold any
	min       bool
}

// Min checks that a value is greater than or equal to threshold.
func Min(threshold any) Rule {
	return thresholdRule{validation.Min(threshold), threshold, true}
}

// Max checks that a value is less than or equal to threshold.
func Max(threshold any) Rule {
	return thresholdRule{validation.Max(threshold), threshold, false}
}

var floatType = reflect.TypeOf(float64(0))

func (r thresholdRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	v := reflect.Indirect(reflect.ValueOf(r.threshold))
	if !v.IsValid() || !v.Type().ConvertibleTo(floatType) {
		return fmt.Errorf("cannot describe threshold %v as a number", r.threshold)
	}
	f := v.Convert(floatType).Float()
	if r.min {
		ref.Value.Min = &f
	} else {
		ref.Value.Max = &f
	}
	return nil
}

type lengthRule struct {
	validation.LengthRule
	min, max int
}

// Length checks that a string's rune count, or a collection's size, is
// within [lo, hi]. A hi of 0 means no upper bound.
func Length(lo, hi int) Rule {
	return lengthRule{validation.RuneLength(lo, hi), lo, hi}
}

func (r lengthRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	lo := uint64(r.min)
	var hi *uint64
	if r.max > 0 {
		v := uint64(r.max)
		hi = &v
	}
	if ref.Value.Type.Is(openapi3.TypeArray) {
		ref.Value.MinItems, ref.Value.MaxItems = lo, hi
		return nil
	}
	ref.Value.MinLength, ref.Value.MaxLength = lo, hi
	return nil
}

type inRule struct {
	validation.InRule
	values []any
}

// In checks that a value is one of values and documents them as an enum.
func In(values ...any) Rule {
	want := make([]string, len(values))
	for i := range values {
		want[i] = fmt.Sprintf("'%v'", values[i])
	}
	return inRule{
		validation.In(values...).Error(fmt.Sprintf("must be one of %s", strings.Join(want, ", "))),
		values,
	}
}

func (r inRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	ref.Value.Enum = r.values
	return nil
}

// docRule is the base of rules that only affect documentation.
type docRule struct{}

func (docRule) Validate(any) error { return nil }

type describeRule struct {
	docRule
	desc string
}

// Describe appends desc to the field's description.
func Describe(desc string) Rule {
	return describeRule{desc: desc}
}

func (r describeRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	appendDescription(ref, r.desc)
	return nil
}

type exampleRule struct {
	docRule
	ex any
}

// Example sets the field's example value.
func Example(ex any) Rule {
	return exampleRule{ex: ex}
}

func (r exampleRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	ref.Value.Example = r.ex
	return nil
}

type defaultRule struct {
	docRule
	v any
}

// Default sets the field's default value.
func Default(v any) Rule {
	return defaultRule{v: v}
}

func (r defaultRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	ref.Value.Default = r.v
	return nil
}

type deprecateRule struct {
	docRule
}

// Deprecate marks the field as deprecated.
func Deprecate() Rule {
	return deprecateRule{}
}

func (deprecateRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	ref.Value.Deprecated = true
	return nil
}
