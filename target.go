package apidoc

import (
	"strings"

	"github.com/Gobd/apidoc/fragment"
)

// Meta is the documentation attached to a view, a resource, or one of a
// resource's handlers. Every field is optional.
type Meta struct {
	// Doc is laid over the generated operation. A "params" entry is not
	// copied; it overrides path parameters instead (see routing.Params).
	Doc *fragment.Map
	// Args are argument fragments built with UseArgs or ArgsFor.
	Args []*fragment.Map
	// Schemas are response fragments built with MarshalWith.
	Schemas []*fragment.Map
}

// Target is something that can be registered with a [Documentation]: a
// [*View] or a [*Resource].
type Target interface {
	targetName() string
}

// Parent supplies defaults for the handlers grouped under it and the values
// their refs resolve to.
type Parent interface {
	fragment.Resolver
	Defaults() *Meta
}

// View is a function-based handler. The same handler serves every method its
// route allows.
type View struct {
	Name string
	Meta
}

func (v *View) targetName() string { return v.Name }

// Resource groups one handler per HTTP method.
type Resource struct {
	Name string
	// Meta holds resource-level defaults merged under each handler's own.
	Meta
	// Handlers maps lower-case method names ("get", "post", ...) to the
	// documentation of the handler serving that method. A present key with
	// a nil value is a handler without documentation.
	Handlers map[string]*Meta
	// Refs holds the values that fragment.Ref entries resolve to.
	Refs map[string]any
}

func (r *Resource) targetName() string { return r.Name }

// Handler returns the handler documentation for method, if the resource
// defines a handler for it.
func (r *Resource) Handler(method string) (*Meta, bool) {
	m, ok := r.Handlers[strings.ToLower(method)]
	if !ok {
		return nil, false
	}
	if m == nil {
		m = &Meta{}
	}
	return m, true
}

// Lookup implements fragment.Resolver over Refs.
func (r *Resource) Lookup(name string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.Refs[name]
	return v, ok
}

// Defaults implements Parent.
func (r *Resource) Defaults() *Meta {
	return &r.Meta
}
