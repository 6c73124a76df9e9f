package apidoc

import (
	"errors"
	"fmt"

	"github.com/Gobd/apidoc/routing"
	"github.com/rs/zerolog"
)

// ErrUnsupportedTarget is returned by [Documentation.Register] for targets
// that are neither a [*View] nor a [*Resource].
var ErrUnsupportedTarget = errors.New("unsupported documentation target")

// Option configures a [Documentation].
type Option func(*options)

type options struct {
	logger zerolog.Logger
}

// WithLogger sets the logger registrations are reported to. The default
// discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Documentation registers views and resources found in a routing table into
// a spec.
type Documentation struct {
	views     *Converter
	resources *Converter
}

// New returns a Documentation reading rules from table and writing paths to spec.
func New(table routing.Table, spec Spec, opts ...Option) *Documentation {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger.With().Str("component", "apidoc").Logger()
	return &Documentation{
		views:     NewViewConverter(table, spec, logger),
		resources: NewResourceConverter(table, spec, logger),
	}
}

// Register documents target under endpoint. An empty endpoint defaults to
// the lower-cased target name; a non-empty blueprint prefixes it as
// "blueprint.endpoint". Unknown endpoints fail with routing.ErrUnknownEndpoint.
func (d *Documentation) Register(target Target, endpoint, blueprint string) error {
	switch t := target.(type) {
	case *View:
		if t != nil {
			return d.views.Convert(t, endpoint, blueprint)
		}
	case *Resource:
		if t != nil {
			return d.resources.Convert(t, endpoint, blueprint)
		}
	}
	return fmt.Errorf("%w: %T", ErrUnsupportedTarget, target)
}

// RegisterMust is like [Documentation.Register] but panics on error.
func (d *Documentation) RegisterMust(target Target, endpoint, blueprint string) {
	if err := d.Register(target, endpoint, blueprint); err != nil {
		panic(err)
	}
}
