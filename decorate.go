package apidoc

import (
	"strconv"
	"strings"

	"github.com/Gobd/apidoc/fragment"
)

// Doc builds a documentation fragment from alternating keys and values:
//
//	apidoc.Doc("summary", "List widgets", "tags", fragment.List("widgets"))
func Doc(kv ...any) *fragment.Map {
	return fragment.Of(kv...)
}

// DocString reads documentation from free text, such as a handler's doc
// comment. Everything from the first line starting with "---" is parsed as
// YAML; text without such a line yields an empty fragment.
//
//	List widgets.
//	---
//	summary: List widgets
//	tags: [widgets]
func DocString(text string) (*fragment.Map, error) {
	lines := strings.Split(text, "\n")
	cut := -1
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "---") {
			cut = i
			break
		}
	}
	if cut < 0 {
		return fragment.New(), nil
	}
	return fragment.FromYAML([]byte(dedent(lines[cut:])))
}

// dedent removes the indentation shared by all non-blank lines.
func dedent(lines []string) string {
	indent := -1
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		if n := len(line) - len(trimmed); indent < 0 || n < indent {
			indent = n
		}
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		if len(line) >= indent && indent > 0 {
			line = line[indent:]
		}
		out[i] = line
	}
	return strings.Join(out, "\n")
}

// UseArgs wraps an args mapping (argument name -> descriptor) into an
// argument fragment. defaultIn is the location of arguments that name none.
//
//	apidoc.UseArgs(fragment.Of(
//	    "page", fragment.Of("type", "integer", "location", "query"),
//	), "query")
func UseArgs(args *fragment.Map, defaultIn string) *fragment.Map {
	m := fragment.Of("args", args)
	if defaultIn != "" {
		m.Set("default_in", defaultIn)
	}
	return m
}

// MarshalWith builds a response fragment for status code. schema may be
// nil, a *fragment.Map, a fragment.Ref, or any Go value, whose schema is
// generated with [Schema].
func MarshalWith(schema any, code int, description string) (*fragment.Map, error) {
	resp := fragment.New()
	switch s := schema.(type) {
	case nil:
	case *fragment.Map, fragment.Ref:
		resp.Set("schema", s)
	default:
		m, err := Schema(s)
		if err != nil {
			return nil, err
		}
		resp.Set("schema", m)
	}
	if description != "" {
		resp.Set("description", description)
	}
	return fragment.Of(strconv.Itoa(code), resp), nil
}

// MarshalWithMust is like [MarshalWith] but panics on error.
func MarshalWithMust(schema any, code int, description string) *fragment.Map {
	m, err := MarshalWith(schema, code, description)
	if err != nil {
		panic(err)
	}
	return m
}
