package openapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	httpSwagger "github.com/swaggo/http-swagger"
)

// SwaggerHandler returns an http.Handler that serves the Swagger UI for the
// given OpenAPI document, served itself at prefix+"doc.json". The document is
// validated and encoded once, up front. Mount it under prefix:
//
//	http.Handle("/swagger/", openapi.SwaggerHandlerMust("/swagger/", spec))
func SwaggerHandler(prefix string, s *openapi3.T) (http.Handler, error) {
	if err := s.Validate(context.Background()); err != nil {
		return nil, err
	}

	specJSON, err := s.MarshalJSON()
	if err != nil {
		return nil, err
	}

	ui := httpSwagger.Handler(
		httpSwagger.URL(prefix+"doc.json"),
		httpSwagger.DeepLinking(true),
	)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch strings.TrimPrefix(r.URL.Path, prefix) {
		case "", "/":
			http.Redirect(w, r, prefix+"index.html", http.StatusMovedPermanently)
		case "doc.json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(specJSON)
		default:
			ui.ServeHTTP(w, r)
		}
	}), nil
}

// SwaggerHandlerMust is like SwaggerHandler but panics on error.
func SwaggerHandlerMust(prefix string, s *openapi3.T) http.Handler {
	h, err := SwaggerHandler(prefix, s)
	if err != nil {
		panic(err)
	}
	return h
}
