// Command example documents a gorilla/mux router with apidoc and serves the
// result through Swagger UI.
//
// Run:
//
//	go run ./_example
//
// Then open http://localhost:8080/swagger/ in your browser.
package main

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/Gobd/apidoc"
	"github.com/Gobd/apidoc/fragment"
	"github.com/Gobd/apidoc/openapi"
	"github.com/Gobd/apidoc/routing"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// Order is a sample request/response type.
type Order struct {
	CustomerName string  `json:"customer_name"`
	ItemCount    int     `json:"item_count"`
	Total        float64 `json:"total"`
}

func (o *Order) Rules() []*apidoc.FieldRules {
	return []*apidoc.FieldRules{
		apidoc.Field(&o.CustomerName, apidoc.Required, apidoc.Length(1, 200)),
		apidoc.Field(&o.ItemCount, apidoc.Required, apidoc.Min(1)),
		apidoc.Field(&o.Total, apidoc.Required, apidoc.Min(0.01)),
	}
}

// ListQuery holds the query arguments of the order listing.
type ListQuery struct {
	Page  int    `json:"page" in:"query"`
	Token string `json:"Authorization" in:"headers"`
}

func (q *ListQuery) Rules() []*apidoc.FieldRules {
	return []*apidoc.FieldRules{
		apidoc.Field(&q.Page, apidoc.Min(1), apidoc.Default(1)),
		apidoc.Field(&q.Token, apidoc.Required, apidoc.Describe("bearer token")),
	}
}

// ErrorResponse is a standard error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

var orders = &apidoc.Resource{
	Name: "Orders",
	Meta: apidoc.Meta{
		Doc:     apidoc.Doc("tags", fragment.List("orders")),
		Schemas: []*fragment.Map{apidoc.MarshalWithMust(ErrorResponse{}, 400, "Validation error")},
	},
	Handlers: map[string]*apidoc.Meta{
		"get": {
			Doc:     apidoc.Doc("summary", "List orders"),
			Args:    []*fragment.Map{apidoc.ArgsForMust(ListQuery{}, "query")},
			Schemas: []*fragment.Map{apidoc.MarshalWithMust([]Order{}, 200, "Orders")},
		},
		"post": {
			Doc:     apidoc.Doc("summary", "Create an order"),
			Args:    []*fragment.Map{apidoc.ArgsForMust(Order{}, "json")},
			Schemas: []*fragment.Map{apidoc.MarshalWithMust(fragment.Ref("order"), 200, "Created order")},
		},
	},
	Refs: map[string]any{"order": apidoc.SchemaMust(Order{})},
}

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := openapi.LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("config")
	}

	r := mux.NewRouter()
	r.HandleFunc("/orders", handleOrders).Methods(http.MethodGet, http.MethodPost).Name("orders")

	table, err := routing.FromMux(r)
	if err != nil {
		logger.Fatal().Err(err).Msg("routes")
	}
	b := openapi.NewBuilder(cfg.Doc())
	apidoc.New(table, b, apidoc.WithLogger(logger)).RegisterMust(orders, "", "")

	r.PathPrefix(cfg.SwaggerPrefix).Handler(openapi.SwaggerHandlerMust(cfg.SwaggerPrefix, b.Doc()))

	logger.Info().Str("addr", ":8080").Msg("listening")
	if err := http.ListenAndServe(":8080", r); err != nil {
		logger.Fatal().Err(err).Msg("serve")
	}
}

func handleOrders(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method == http.MethodGet {
		_ = json.NewEncoder(w).Encode([]Order{})
		return
	}
	var o Order
	if err := json.NewDecoder(r.Body).Decode(&o); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error()})
		return
	}
	if err := apidoc.Validate(&o); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error()})
		return
	}
	_ = json.NewEncoder(w).Encode(o)
}
