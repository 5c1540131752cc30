package ecotrack

import (
	"context"

	"github.com/tournevent/courierdz/pkg/courier"
)

// APIClient is the interface for the Ecotrack platform API.
// Implementations include HTTPAPIClient (production) and MockAPIClient (testing).
type APIClient interface {
	// TestCredentials probes GET /api/v1/get/wilayas.
	TestCredentials(ctx context.Context) (bool, error)

	// GetFees lists delivery fees via GET /api/v1/get/fees.
	GetFees(ctx context.Context) (*FeesResponse, error)

	// CreateOrder submits an order via POST /api/v1/create/order.
	CreateOrder(ctx context.Context, data courier.OrderData) (*CreateOrderResponse, error)

	// GetLabel downloads the label document via GET /api/v1/get/order/label.
	GetLabel(ctx context.Context, tracking string) ([]byte, error)
}

// FeesResponse is the body of the fees endpoint.
type FeesResponse struct {
	Livraison []courier.RateEntry `json:"livraison"`
}

// CreateOrderResponse is the decoded body of the create endpoint. Success
// is nil when the upstream omits the field.
type CreateOrderResponse struct {
	Success *bool
	Message string
	Body    courier.Order
}
