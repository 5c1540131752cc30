package maystro

import (
	"context"

	"github.com/tournevent/courierdz/pkg/courier"
)

// APIClient is the interface for the Maystro Delivery API.
// Implementations include HTTPAPIClient (production) and MockAPIClient (testing).
type APIClient interface {
	TestCredentials(ctx context.Context) (bool, error)
	CreateOrder(ctx context.Context, data courier.OrderData) (courier.Order, error)
	GetOrder(ctx context.Context, orderID string) (courier.Order, error)
	// GetLabel returns the raw label document of one order.
	GetLabel(ctx context.Context, orderID string) ([]byte, error)
	CreateProduct(ctx context.Context, product ProductRequest) (map[string]any, error)
}

// ProductRequest registers a product in a store.
type ProductRequest struct {
	StoreID               string `json:"store_id"`
	LogisticalDescription string `json:"logistical_description"`
	ProductID             string `json:"product_id,omitempty"`
}

// LabelRequest asks for the starter bordereau of some orders.
type LabelRequest struct {
	AllCreated bool     `json:"all_created"`
	OrdersIDs  []string `json:"orders_ids"`
}
