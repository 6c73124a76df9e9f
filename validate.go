package apidoc

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Validate checks a [Ruler] against its own rules, so the struct that
// documents an endpoint's arguments also validates them. Values that are
// not Rulers are valid.
func Validate(value any) error {
	r, ok := value.(Ruler)
	if !ok {
		return nil
	}
	fields := r.Rules()
	vFields := make([]*validation.FieldRules, len(fields))
	for i, fr := range fields {
		rules := make([]validation.Rule, len(fr.rules))
		for j := range fr.rules {
			rules[j] = fr.rules[j]
		}
		vFields[i] = validation.Field(fr.fieldPtr, rules...)
	}
	return validation.ValidateStruct(value, vFields...)
}
