package courier

import (
	"net/http"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

// HTTPDoer sends HTTP requests. *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Deps carries the collaborators shared by every adapter a Registry builds.
// Zero fields are replaced by defaults in WithDefaults.
type Deps struct {
	HTTPClient HTTPDoer
	Logger     *otelzap.Logger
	Tracer     trace.Tracer
	// UserAgent is sent upstream when non-empty.
	UserAgent string
}

// WithDefaults returns a copy of d with a plain HTTP client, a no-op logger
// and a no-op tracer filled in where missing.
func (d Deps) WithDefaults() Deps {
	if d.HTTPClient == nil {
		d.HTTPClient = &http.Client{}
	}
	if d.Logger == nil {
		d.Logger = otelzap.New(zap.NewNop())
	}
	if d.Tracer == nil {
		d.Tracer = noop.NewTracerProvider().Tracer("courierdz")
	}
	return d
}
