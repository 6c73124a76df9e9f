package openapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Gobd/apidoc"
	"github.com/Gobd/apidoc/fragment"
	"github.com/getkin/kin-openapi/openapi3"
)

// ErrUnsupportedMethod is returned by [Builder.AddPath] for operation keys
// that are not documented HTTP methods.
var ErrUnsupportedMethod = errors.New("unsupported operation method")

// DocBase returns an empty OpenAPI 3.0.3 document with the given info.
func DocBase(serviceName, description, version string) *openapi3.T {
	return Config{Title: serviceName, Description: description, Version: version}.Doc()
}

// pathMethods are the methods a Builder accepts as operation keys.
var pathMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodOptions: true,
}

// Builder writes apidoc path entries into a kin-openapi document. It
// implements [apidoc.Spec].
type Builder struct {
	doc *openapi3.T
}

// NewBuilder returns a Builder adding paths to doc.
func NewBuilder(doc *openapi3.T) *Builder {
	if doc.Paths == nil {
		doc.Paths = openapi3.NewPaths()
	}
	return &Builder{doc: doc}
}

// Doc returns the document being built.
func (b *Builder) Doc() *openapi3.T {
	return b.doc
}

// AddPath implements [apidoc.Spec]. Operations are set on the path item of
// entry.Path, replacing any earlier operation for the same method.
func (b *Builder) AddPath(entry apidoc.PathEntry) error {
	for method, frag := range entry.Operations {
		method = strings.ToUpper(method)
		if !pathMethods[method] {
			return fmt.Errorf("%s %s: %w", method, entry.Path, ErrUnsupportedMethod)
		}
		op, err := NewOperation(frag)
		if err != nil {
			return fmt.Errorf("%s %s: %w", method, entry.Path, err)
		}
		item := b.doc.Paths.Value(entry.Path)
		if item == nil {
			item = &openapi3.PathItem{}
			b.doc.Paths.Set(entry.Path, item)
		}
		item.SetOperation(method, op)
	}
	return nil
}

// NewOperation converts an operation fragment into an [openapi3.Operation].
//
// "body" and "formData" parameters become the request body, a response
// "schema" moves under application/json content, and responses without a
// description get an empty one.
func NewOperation(frag *fragment.Map) (*openapi3.Operation, error) {
	f := frag.Clone()
	liftRequestBody(f)
	normalizeResponses(f.Sub("responses"))

	data, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	op := openapi3.NewOperation()
	if err := op.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	if op.Responses == nil || op.Responses.Len() == 0 {
		op.Responses = openapi3.NewResponses()
	}
	return op, nil
}

// liftRequestBody moves body and formData parameters out of the parameter
// list and into a requestBody, unless the fragment already declares one.
func liftRequestBody(f *fragment.Map) {
	list, _ := f.Get("parameters")
	params, ok := list.([]any)
	if !ok {
		return
	}

	var (
		kept     []any
		body     []*fragment.Map
		formData []*fragment.Map
	)
	for _, v := range params {
		p, ok := v.(*fragment.Map)
		if !ok {
			kept = append(kept, v)
			continue
		}
		switch p.String("in") {
		case "body":
			body = append(body, p)
		case "formData":
			formData = append(formData, p)
		default:
			kept = append(kept, p)
		}
	}
	if kept == nil {
		kept = []any{}
	}
	f.Set("parameters", kept)

	if len(body) == 0 && len(formData) == 0 {
		return
	}
	if _, ok := f.Get("requestBody"); ok {
		return
	}

	content := fragment.New()
	required := false
	if len(body) > 0 {
		var schema any
		if len(body) == 1 {
			schema, _ = body[0].Get("schema")
		} else {
			schema = objectSchema(body)
		}
		content.Set("application/json", fragment.Of("schema", schema))
		required = anyRequired(body)
	}
	if len(formData) > 0 {
		mediaType := "application/x-www-form-urlencoded"
		for _, p := range formData {
			if s := p.Sub("schema"); s != nil && s.String("type") == "file" {
				s.Set("type", "string")
				s.Set("format", "binary")
				mediaType = "multipart/form-data"
			}
		}
		content.Set(mediaType, fragment.Of("schema", objectSchema(formData)))
		required = required || anyRequired(formData)
	}

	rb := fragment.Of("content", content)
	if required {
		rb.Set("required", true)
	}
	if len(body) == 1 {
		if d := body[0].String("description"); d != "" {
			rb.Set("description", d)
		}
	}
	f.Set("requestBody", rb)
}

func anyRequired(params []*fragment.Map) bool {
	for _, p := range params {
		if v, _ := p.Get("required"); v == true {
			return true
		}
	}
	return false
}

// objectSchema combines parameters into an object schema keyed by name.
func objectSchema(params []*fragment.Map) *fragment.Map {
	props := fragment.New()
	var required []any
	for _, p := range params {
		name := p.String("name")
		schema := p.Sub("schema")
		if schema == nil {
			schema = fragment.New()
		}
		if d := p.String("description"); d != "" {
			if _, ok := schema.Get("description"); !ok {
				schema.Set("description", d)
			}
		}
		props.Set(name, schema)
		if v, _ := p.Get("required"); v == true {
			required = append(required, name)
		}
	}
	s := fragment.Of("type", "object", "properties", props)
	if len(required) > 0 {
		s.Set("required", required)
	}
	return s
}

func normalizeResponses(responses *fragment.Map) {
	responses.Range(func(_ string, v any) bool {
		resp, ok := v.(*fragment.Map)
		if !ok || resp == nil {
			return true
		}
		if schema, ok := resp.Get("schema"); ok {
			if _, hasContent := resp.Get("content"); !hasContent {
				resp.Set("content", fragment.Of("application/json", fragment.Of("schema", schema)))
			}
			resp.Delete("schema")
		}
		if _, ok := resp.Get("description"); !ok {
			resp.Set("description", "")
		}
		return true
	})
}
