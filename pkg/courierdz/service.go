package courierdz

import (
	"context"

	"github.com/tournevent/courierdz/pkg/courier"
	"github.com/tournevent/courierdz/pkg/courier/validation"
)

// Service is a resolved provider. Every call is forwarded as is.
type Service struct {
	provider courier.Provider
}

// NewService resolves name in r with creds.
func NewService(r *courier.Registry, name string, creds courier.Credentials) (*Service, error) {
	p, err := r.Resolve(name, creds)
	if err != nil {
		return nil, err
	}
	return &Service{provider: p}, nil
}

// Provider returns the underlying adapter, for family specific calls such
// as maystro.Client.CreateProduct.
func (s *Service) Provider() courier.Provider {
	return s.provider
}

// Metadata returns the provider description.
func (s *Service) Metadata() courier.Metadata {
	return s.provider.Metadata()
}

// TestCredentials reports whether the upstream accepts the credentials.
func (s *Service) TestCredentials(ctx context.Context) (bool, error) {
	return s.provider.TestCredentials(ctx)
}

// GetRates returns delivery rates, filtered by destination when toWilaya is set.
func (s *Service) GetRates(ctx context.Context, fromWilaya, toWilaya int) ([]courier.RateEntry, error) {
	return s.provider.GetRates(ctx, fromWilaya, toWilaya)
}

// CreateOrder validates data and submits it upstream.
func (s *Service) CreateOrder(ctx context.Context, data courier.OrderData) (courier.Order, error) {
	return s.provider.CreateOrder(ctx, data)
}

// GetOrder reads one order by tracking id.
func (s *Service) GetOrder(ctx context.Context, trackingID string) (courier.Order, error) {
	return s.provider.GetOrder(ctx, trackingID)
}

// OrderLabel returns the shipping label of an order.
func (s *Service) OrderLabel(ctx context.Context, orderID string) (*courier.Label, error) {
	return s.provider.OrderLabel(ctx, orderID)
}

// CancelOrder cancels through providers that support it and fails with a
// function not supported error otherwise.
func (s *Service) CancelOrder(ctx context.Context, orderID string) error {
	c, ok := s.provider.(courier.Canceler)
	if !ok {
		return courier.NewFunctionNotSupportedError(s.provider.Metadata().Name, "CancelOrder")
	}
	return c.CancelOrder(ctx, orderID)
}

// CreateOrderValidationRules returns a copy of the provider rules.
func (s *Service) CreateOrderValidationRules() validation.Rules {
	return s.provider.CreateOrderValidationRules()
}

// ValidateCreate checks data without any network call.
func (s *Service) ValidateCreate(data courier.OrderData) error {
	return s.provider.ValidateCreate(data)
}
