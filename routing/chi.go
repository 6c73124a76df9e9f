package routing

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// EndpointFunc names the endpoint of a chi route. Returning "" leaves the
// route out of the table.
type EndpointFunc func(method, pattern string) string

// PatternEndpoint uses the route pattern as its endpoint name.
func PatternEndpoint(_, pattern string) string {
	return pattern
}

// FromChi builds a Map by walking r. chi routes carry no names, so name
// supplies them; nil means [PatternEndpoint]. All methods registered for the
// same endpoint and pattern end up in one rule.
func FromChi(r chi.Routes, name EndpointFunc) (*Map, error) {
	if name == nil {
		name = PatternEndpoint
	}
	m := NewMap()
	err := chi.Walk(r, func(method, pattern string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		endpoint := name(method, pattern)
		if endpoint == "" {
			return nil
		}
		m.Add(Rule{
			Endpoint: endpoint,
			Pattern:  pattern,
			Methods:  []string{method},
			Syntax:   Braces,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}
