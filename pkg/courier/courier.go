// Package courier provides an abstraction layer over Algerian courier APIs.
package courier

import (
	"context"

	"github.com/tournevent/courierdz/pkg/courier/validation"
)

// Provider defines the operations every courier adapter implements.
type Provider interface {
	// Metadata returns the static description of the courier.
	Metadata() Metadata

	// TestCredentials probes the upstream API. It returns false only when
	// the upstream explicitly rejects the credentials.
	TestCredentials(ctx context.Context) (bool, error)

	// GetRates returns delivery fees. A zero wilaya id means "not given".
	GetRates(ctx context.Context, fromWilaya, toWilaya int) ([]RateEntry, error)

	// CreateOrder validates data and submits it upstream.
	CreateOrder(ctx context.Context, data OrderData) (Order, error)

	// GetOrder reads an order by its tracking id.
	GetOrder(ctx context.Context, trackingID string) (Order, error)

	// OrderLabel fetches the shipping label for an order.
	OrderLabel(ctx context.Context, orderID string) (*Label, error)

	// CreateOrderValidationRules returns a copy of the rules CreateOrder
	// applies before any network call.
	CreateOrderValidationRules() validation.Rules

	// ValidateCreate checks data against CreateOrderValidationRules.
	// A nil error means the data is valid.
	ValidateCreate(data OrderData) error
}

// Canceler is implemented by providers whose upstream exposes order
// cancellation.
type Canceler interface {
	CancelOrder(ctx context.Context, orderID string) error
}
