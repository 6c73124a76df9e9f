package routing

import (
	"strings"

	"github.com/Gobd/apidoc/fragment"
)

// variable is one placeholder parsed out of a rule pattern.
type variable struct {
	name      string
	converter string
	regex     string
}

// parse splits rule.Pattern into an OpenAPI path template and its variables
// in pattern order. An unterminated placeholder is kept as literal text.
func parse(rule Rule) (string, []variable) {
	opener, closer := byte('{'), byte('}')
	if rule.Syntax == Angles {
		opener, closer = '<', '>'
	}

	var (
		b    strings.Builder
		vars []variable
		p    = rule.Pattern
	)
	for i := 0; i < len(p); i++ {
		if p[i] != opener {
			b.WriteByte(p[i])
			continue
		}
		end := matching(p, i, opener, closer)
		if end < 0 {
			b.WriteString(p[i:])
			break
		}
		v := parseVariable(p[i+1:end], rule.Syntax)
		vars = append(vars, v)
		b.WriteString("{" + v.name + "}")
		i = end
	}
	return b.String(), vars
}

// matching returns the index of the delimiter closing the one at start,
// allowing nested pairs such as {id:[0-9]{3}}.
func matching(p string, start int, opener, closer byte) int {
	depth := 0
	for i := start; i < len(p); i++ {
		switch p[i] {
		case opener:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func parseVariable(body string, syntax Syntax) variable {
	if syntax == Angles {
		// <converter(args):name>
		idx := strings.LastIndex(body, ":")
		if idx < 0 {
			return variable{name: body}
		}
		conv := body[:idx]
		if paren := strings.IndexByte(conv, '('); paren >= 0 {
			conv = conv[:paren]
		}
		return variable{name: body[idx+1:], converter: conv}
	}
	// {name:regexp}
	name, regex, _ := strings.Cut(body, ":")
	return variable{name: name, regex: regex}
}

var integerPatterns = map[string]bool{
	"[0-9]+": true,
	"[0-9]*": true,
	`\d+`:    true,
	`\d*`:    true,
}

func paramSchema(v variable, defaults map[string]any) *fragment.Map {
	s := fragment.New()
	switch {
	case v.converter == "int" || integerPatterns[v.regex]:
		s.Set("type", "integer")
		s.Set("format", "int32")
	case v.converter == "float":
		s.Set("type", "number")
		s.Set("format", "float")
	case v.converter == "uuid":
		s.Set("type", "string")
		s.Set("format", "uuid")
	default:
		s.Set("type", "string")
		if v.regex != "" {
			s.Set("pattern", "^"+v.regex+"$")
		}
	}
	if d, ok := defaults[v.name]; ok {
		s.Set("default", d)
	}
	return s
}

// Path returns the OpenAPI path template for rule, e.g. /widgets/{id} for
// both /widgets/{id:[0-9]+} and /widgets/<int:id>.
func Path(rule Rule) string {
	path, _ := parse(rule)
	return path
}

// Params returns the path parameters of rule in pattern order.
//
// overrides maps parameter names to parameter fragments. An override for a
// path variable is laid over the generated parameter, key by key. An
// override for any other name whose "in" is "header" or "query" is appended
// after the path parameters; its "name" defaults to the key.
func Params(rule Rule, overrides *fragment.Map) []*fragment.Map {
	_, vars := parse(rule)
	out := make([]*fragment.Map, 0, len(vars))
	seen := make(map[string]bool, len(vars))
	for _, v := range vars {
		p := fragment.Of(
			"in", "path",
			"name", v.name,
			"required", true,
			"schema", paramSchema(v, rule.Defaults),
		)
		if o := overrides.Sub(v.name); o != nil {
			o.Clone().Range(func(k string, val any) bool {
				p.Set(k, val)
				return true
			})
		}
		seen[v.name] = true
		out = append(out, p)
	}

	overrides.Range(func(name string, val any) bool {
		o, ok := val.(*fragment.Map)
		if !ok || seen[name] {
			return true
		}
		switch o.String("in") {
		case "header", "query":
			p := o.Clone()
			if p.String("name") == "" {
				p.Set("name", name)
			}
			out = append(out, p)
		}
		return true
	})
	return out
}
