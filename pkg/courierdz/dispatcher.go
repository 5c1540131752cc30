package courierdz

import (
	"context"

	"github.com/tournevent/courierdz/pkg/courier"
	"github.com/tournevent/courierdz/pkg/courier/validation"
)

// Dispatcher resolves a provider per call. It suits callers that hold
// credentials per request, such as the HTTP gateway.
type Dispatcher struct {
	registry *courier.Registry
}

// NewDispatcher creates a dispatcher over r.
func NewDispatcher(r *courier.Registry) *Dispatcher {
	return &Dispatcher{registry: r}
}

// Registry returns the underlying registry.
func (d *Dispatcher) Registry() *courier.Registry {
	return d.registry
}

// Providers lists the metadata of every registered provider.
func (d *Dispatcher) Providers() []courier.Metadata {
	return d.registry.Providers()
}

// Metadata returns the metadata of one provider without credentials.
func (d *Dispatcher) Metadata(name string) (courier.Metadata, error) {
	return d.registry.Metadata(name)
}

// Resolve builds the named provider.
func (d *Dispatcher) Resolve(name string, creds courier.Credentials) (*Service, error) {
	return NewService(d.registry, name, creds)
}

// Rules returns the create order rules of one provider. The rules do not
// depend on credentials, so resolution failures other than an unknown
// name are reported too.
func (d *Dispatcher) Rules(name string, creds courier.Credentials) (validation.Rules, error) {
	s, err := d.Resolve(name, creds)
	if err != nil {
		return nil, err
	}
	return s.CreateOrderValidationRules(), nil
}

// TestCredentials resolves name and tests creds upstream.
func (d *Dispatcher) TestCredentials(ctx context.Context, name string, creds courier.Credentials) (bool, error) {
	s, err := d.Resolve(name, creds)
	if err != nil {
		return false, err
	}
	return s.TestCredentials(ctx)
}

// GetRates resolves name and returns its delivery rates.
func (d *Dispatcher) GetRates(ctx context.Context, name string, creds courier.Credentials, fromWilaya, toWilaya int) ([]courier.RateEntry, error) {
	s, err := d.Resolve(name, creds)
	if err != nil {
		return nil, err
	}
	return s.GetRates(ctx, fromWilaya, toWilaya)
}

// CreateOrder resolves name and creates an order.
func (d *Dispatcher) CreateOrder(ctx context.Context, name string, creds courier.Credentials, data courier.OrderData) (courier.Order, error) {
	s, err := d.Resolve(name, creds)
	if err != nil {
		return nil, err
	}
	return s.CreateOrder(ctx, data)
}

// ValidateCreate resolves name and checks data against its rules.
func (d *Dispatcher) ValidateCreate(name string, creds courier.Credentials, data courier.OrderData) error {
	s, err := d.Resolve(name, creds)
	if err != nil {
		return err
	}
	return s.ValidateCreate(data)
}

// GetOrder resolves name and reads one order.
func (d *Dispatcher) GetOrder(ctx context.Context, name string, creds courier.Credentials, trackingID string) (courier.Order, error) {
	s, err := d.Resolve(name, creds)
	if err != nil {
		return nil, err
	}
	return s.GetOrder(ctx, trackingID)
}

// OrderLabel resolves name and fetches an order label.
func (d *Dispatcher) OrderLabel(ctx context.Context, name string, creds courier.Credentials, orderID string) (*courier.Label, error) {
	s, err := d.Resolve(name, creds)
	if err != nil {
		return nil, err
	}
	return s.OrderLabel(ctx, orderID)
}

// CancelOrder resolves name and cancels an order where supported.
func (d *Dispatcher) CancelOrder(ctx context.Context, name string, creds courier.Credentials, orderID string) error {
	s, err := d.Resolve(name, creds)
	if err != nil {
		return err
	}
	return s.CancelOrder(ctx, orderID)
}
