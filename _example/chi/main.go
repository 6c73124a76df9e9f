// Command chi documents a chi router with apidoc.
//
// Run:
//
//	cd _example/chi && go run .
//
// Then open http://localhost:8080/swagger/ in your browser.
package main

import (
	"log"
	"net/http"

	"github.com/Gobd/apidoc"
	"github.com/Gobd/apidoc/fragment"
	"github.com/Gobd/apidoc/openapi"
	"github.com/Gobd/apidoc/routing"
	"github.com/go-chi/chi/v5"
)

type Order struct {
	CustomerName string `json:"customer_name"`
	ItemCount    int    `json:"item_count"`
}

func (o *Order) Rules() []*apidoc.FieldRules {
	return []*apidoc.FieldRules{
		apidoc.Field(&o.CustomerName, apidoc.Required, apidoc.Length(1, 200)),
		apidoc.Field(&o.ItemCount, apidoc.Required, apidoc.Min(1)),
	}
}

// getOrder is documented from its doc text.
var getOrder = &apidoc.View{Name: "get_order", Meta: apidoc.Meta{
	Doc: must(apidoc.DocString(`Fetches one order.
---
summary: Get an order
tags: [orders]
params:
  id:
    description: order number
`)),
	Schemas: []*fragment.Map{apidoc.MarshalWithMust(Order{}, 200, "The order")},
}}

func must(m *fragment.Map, err error) *fragment.Map {
	if err != nil {
		panic(err)
	}
	return m
}

func main() {
	r := chi.NewRouter()
	r.Get("/orders/{id:[0-9]+}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	table, err := routing.FromChi(r, func(_, pattern string) string {
		if pattern == "/orders/{id:[0-9]+}" {
			return "get_order"
		}
		return ""
	})
	if err != nil {
		log.Fatal(err)
	}

	b := openapi.NewBuilder(openapi.DocBase("Example API (chi)", "Demonstrates apidoc with chi", "0.1.0"))
	apidoc.New(table, b).RegisterMust(getOrder, "", "")

	r.Handle("/swagger/*", openapi.SwaggerHandlerMust("/swagger/", b.Doc()))

	log.Println("listening on :8080")
	log.Fatal(http.ListenAndServe(":8080", r))
}
