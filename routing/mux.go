package routing

import (
	"net/http"

	"github.com/gorilla/mux"
)

// FromMux builds a Map from the named routes of r. The route name is the
// endpoint; unnamed routes and routes without a path are skipped. A route
// with no method matcher is recorded as accepting GET.
func FromMux(r *mux.Router) (*Map, error) {
	m := NewMap()
	err := r.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		name := route.GetName()
		if name == "" {
			return nil
		}
		tpl, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}
		methods, err := route.GetMethods()
		if err != nil {
			methods = []string{http.MethodGet}
		}
		m.Add(Rule{
			Endpoint: name,
			Pattern:  tpl,
			Methods:  methods,
			Syntax:   Braces,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}
