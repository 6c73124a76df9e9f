package apidoc

import (
	"fmt"
	"net/http"
	"slices"
	"sort"
	"strings"

	"github.com/Gobd/apidoc/fragment"
	"github.com/Gobd/apidoc/routing"
	"github.com/rs/zerolog"
)

// documentedMethods are the methods that become operations. HEAD is never
// documented; TRACE and CONNECT have no place in a path item.
var documentedMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodOptions: true,
}

// Spec records path entries. The openapi package's Builder is the usual
// implementation.
type Spec interface {
	AddPath(entry PathEntry) error
}

// PathEntry is one documented path: the target registered for it, the
// OpenAPI path template, and its operations keyed by lower-case method.
type PathEntry struct {
	View       Target
	Path       string
	Operations map[string]*fragment.Map
}

// operationsFunc maps the methods of rule to the handler documenting each.
type operationsFunc func(rule routing.Rule, target Target) map[string]*Meta

// parentFunc returns the parent of a target's handlers, or nil.
type parentFunc func(target Target) Parent

// Converter turns a target and the rules of its endpoint into path entries.
// Create one with [NewViewConverter] or [NewResourceConverter]; the zero
// handler set of [NewConverter] documents no operations.
type Converter struct {
	table      routing.Table
	spec       Spec
	logger     zerolog.Logger
	operations operationsFunc
	parent     parentFunc
}

// NewConverter returns a converter that finds no operations and no parent.
func NewConverter(table routing.Table, spec Spec, logger zerolog.Logger) *Converter {
	return &Converter{
		table:  table,
		spec:   spec,
		logger: logger,
		operations: func(routing.Rule, Target) map[string]*Meta {
			return nil
		},
		parent: func(Target) Parent {
			return nil
		},
	}
}

// NewViewConverter returns a converter for [*View] targets: every method the
// rule allows is served by the view.
func NewViewConverter(table routing.Table, spec Spec, logger zerolog.Logger) *Converter {
	c := NewConverter(table, spec, logger)
	c.operations = func(rule routing.Rule, target Target) map[string]*Meta {
		view, ok := target.(*View)
		if !ok {
			return nil
		}
		ops := make(map[string]*Meta, len(rule.Methods))
		for _, m := range rule.Methods {
			ops[m] = &view.Meta
		}
		return ops
	}
	return c
}

// NewResourceConverter returns a converter for [*Resource] targets: a method
// the rule allows is documented only when the resource has a handler for
// it, and the resource is the parent of its handlers.
func NewResourceConverter(table routing.Table, spec Spec, logger zerolog.Logger) *Converter {
	c := NewConverter(table, spec, logger)
	c.operations = func(rule routing.Rule, target Target) map[string]*Meta {
		res, ok := target.(*Resource)
		if !ok {
			return nil
		}
		ops := make(map[string]*Meta, len(rule.Methods))
		for _, m := range rule.Methods {
			if h, ok := res.Handler(m); ok {
				ops[m] = h
			}
		}
		return ops
	}
	c.parent = func(target Target) Parent {
		if res, ok := target.(*Resource); ok {
			return res
		}
		return nil
	}
	return c
}

// Operations maps each method of rule to the handler documentation serving it.
func (c *Converter) Operations(rule routing.Rule, target Target) map[string]*Meta {
	return c.operations(rule, target)
}

// Parent returns the parent of target's handlers, or nil.
func (c *Converter) Parent(target Target) Parent {
	return c.parent(target)
}

// Endpoint returns the endpoint target is registered under: endpoint, or the
// lower-cased target name when endpoint is empty, prefixed with "blueprint."
// when blueprint is set.
func Endpoint(target Target, endpoint, blueprint string) string {
	if endpoint == "" {
		endpoint = strings.ToLower(target.targetName())
	}
	if blueprint != "" {
		endpoint = blueprint + "." + endpoint
	}
	return endpoint
}

// Convert documents every rule of target's endpoint into the Spec.
func (c *Converter) Convert(target Target, endpoint, blueprint string) error {
	endpoint = Endpoint(target, endpoint, blueprint)
	rules, err := c.table.Rules(endpoint)
	if err != nil {
		return err
	}
	for _, rule := range rules {
		entry, err := c.Path(rule, target)
		if err != nil {
			return fmt.Errorf("%s %s: %w", endpoint, rule.Pattern, err)
		}
		if err := c.spec.AddPath(entry); err != nil {
			return fmt.Errorf("%s %s: %w", endpoint, rule.Pattern, err)
		}
		c.logger.Debug().
			Str("endpoint", endpoint).
			Str("path", entry.Path).
			Strs("operations", operationKeys(entry.Operations)).
			Msg("documented path")
	}
	return nil
}

func operationKeys(ops map[string]*fragment.Map) []string {
	keys := make([]string, 0, len(ops))
	for k := range ops {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Path builds the path entry of one rule.
func (c *Converter) Path(rule routing.Rule, target Target) (PathEntry, error) {
	parent := c.Parent(target)
	entry := PathEntry{
		View:       target,
		Path:       routing.Path(rule),
		Operations: map[string]*fragment.Map{},
	}
	for method, view := range c.Operations(rule, target) {
		method = strings.ToUpper(method)
		if !documentedMethods[method] {
			continue
		}
		op, err := c.Operation(rule, view, parent)
		if err != nil {
			return PathEntry{}, fmt.Errorf("%s: %w", method, err)
		}
		entry.Operations[strings.ToLower(method)] = op
	}
	return entry, nil
}

func defaults(parent Parent) *Meta {
	if parent == nil {
		return &Meta{}
	}
	if m := parent.Defaults(); m != nil {
		return m
	}
	return &Meta{}
}

// Operation builds the operation of one handler: view.Doc merged over the
// parent's Doc, laid over the generated responses and parameters.
func (c *Converter) Operation(rule routing.Rule, view *Meta, parent Parent) (*fragment.Map, error) {
	if view == nil {
		view = &Meta{}
	}
	docs := fragment.Merge(view.Doc, defaults(parent).Doc)

	responses, err := c.Responses(view, parent)
	if err != nil {
		return nil, fmt.Errorf("responses: %w", err)
	}
	params, err := c.Parameters(rule, view, docs, parent)
	if err != nil {
		return nil, fmt.Errorf("parameters: %w", err)
	}
	list := make([]any, len(params))
	for i := range params {
		list[i] = params[i]
	}
	operation := fragment.Of(
		"responses", responses,
		"parameters", list,
	)

	docs.Delete("params")
	return fragment.Merge(docs, operation), nil
}

// Parameters returns the parameters derived from the handler's args,
// followed by the rule's path parameters with docs["params"] applied.
func (c *Converter) Parameters(rule routing.Rule, view *Meta, docs *fragment.Map, parent Parent) ([]*fragment.Map, error) {
	merged := fragment.Merge(slices.Concat(view.Args, defaults(parent).Args)...)
	args, err := fragment.Resolve(parent, merged)
	if err != nil {
		return nil, err
	}
	params, err := ArgsToParameters(args.Sub("args"), args.String("default_in"))
	if err != nil {
		return nil, err
	}
	return append(params, routing.Params(rule, docs.Sub("params"))...), nil
}

// Responses returns the handler's merged response fragments with every key
// starting with "_" removed, at any depth.
func (c *Converter) Responses(view *Meta, parent Parent) (*fragment.Map, error) {
	merged := fragment.Merge(slices.Concat(view.Schemas, defaults(parent).Schemas)...)
	resolved, err := fragment.Resolve(parent, merged)
	if err != nil {
		return nil, err
	}
	return fragment.Filter(resolved, func(key string, _ any) bool {
		return !strings.HasPrefix(key, "_")
	}), nil
}
