package openapi

import (
	"strings"

	"github.com/asaskevich/govalidator"
	env "github.com/caarlos0/env/v11"
	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config holds the document metadata and where the Swagger UI is mounted.
type Config struct {
	Title         string `env:"TITLE" envDefault:"API"`
	Description   string `env:"DESCRIPTION"`
	Version       string `env:"VERSION" envDefault:"0.1.0"`
	ServerURL     string `env:"SERVER_URL"`
	SwaggerPrefix string `env:"SWAGGER_PREFIX" envDefault:"/swagger/"`
}

// LoadConfig reads a Config from APIDOC_* environment variables and validates it.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "APIDOC_"}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the config describes a usable document.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Title, validation.Required),
		validation.Field(&c.Version, validation.Required),
		validation.Field(&c.ServerURL, validation.NewStringRule(govalidator.IsURL, "must be a valid URL")),
		validation.Field(&c.SwaggerPrefix, validation.Required, validation.NewStringRule(func(s string) bool {
			return strings.HasPrefix(s, "/") && strings.HasSuffix(s, "/")
		}, "must start and end with /")),
	)
}

// Doc returns a base document for the config.
func (c Config) Doc() *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       c.Title,
			Description: c.Description,
			Version:     c.Version,
		},
		Paths: openapi3.NewPaths(),
	}
	if c.ServerURL != "" {
		doc.Servers = openapi3.Servers{{URL: c.ServerURL}}
	}
	return doc
}
