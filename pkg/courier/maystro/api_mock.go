package maystro

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/tournevent/courierdz/pkg/courier"
)

// MockAPIClient is a mock implementation of APIClient for testing.
type MockAPIClient struct {
	SimulateErrors bool

	OnTestCredentials func(ctx context.Context) (bool, error)
	OnCreateOrder     func(ctx context.Context, data courier.OrderData) (courier.Order, error)
	OnGetOrder        func(ctx context.Context, orderID string) (courier.Order, error)
	OnGetLabel        func(ctx context.Context, orderID string) ([]byte, error)
	OnCreateProduct   func(ctx context.Context, product ProductRequest) (map[string]any, error)

	calls atomic.Int64
}

// NewMockAPIClient creates a new mock API client with default behavior.
func NewMockAPIClient() *MockAPIClient {
	return &MockAPIClient{}
}

// Calls returns how many API calls the mock received.
func (m *MockAPIClient) Calls() int {
	return int(m.calls.Load())
}

func (m *MockAPIClient) simulated() error {
	m.calls.Add(1)
	if m.SimulateErrors {
		return courier.NewHTTPError("maystro-mock", 500, "simulated API error")
	}
	return nil
}

// TestCredentials accepts the credentials by default.
func (m *MockAPIClient) TestCredentials(ctx context.Context) (bool, error) {
	if err := m.simulated(); err != nil {
		return false, err
	}
	if m.OnTestCredentials != nil {
		return m.OnTestCredentials(ctx)
	}
	return true, nil
}

// CreateOrder echoes the order with a generated id.
func (m *MockAPIClient) CreateOrder(ctx context.Context, data courier.OrderData) (courier.Order, error) {
	if err := m.simulated(); err != nil {
		return nil, err
	}
	if m.OnCreateOrder != nil {
		return m.OnCreateOrder(ctx, data)
	}
	order := courier.Order{"id": uuid.New().String(), "status": 4}
	for k, v := range data {
		order[k] = v
	}
	return order, nil
}

// GetOrder returns a pending order.
func (m *MockAPIClient) GetOrder(ctx context.Context, orderID string) (courier.Order, error) {
	if err := m.simulated(); err != nil {
		return nil, err
	}
	if m.OnGetOrder != nil {
		return m.OnGetOrder(ctx, orderID)
	}
	return courier.Order{"id": orderID, "status": 4}, nil
}

// GetLabel returns a minimal PDF document.
func (m *MockAPIClient) GetLabel(ctx context.Context, orderID string) ([]byte, error) {
	if err := m.simulated(); err != nil {
		return nil, err
	}
	if m.OnGetLabel != nil {
		return m.OnGetLabel(ctx, orderID)
	}
	return []byte("%PDF-1.4\n% bordereau " + orderID + "\n%%EOF\n"), nil
}

// CreateProduct echoes the product.
func (m *MockAPIClient) CreateProduct(ctx context.Context, product ProductRequest) (map[string]any, error) {
	if err := m.simulated(); err != nil {
		return nil, err
	}
	if m.OnCreateProduct != nil {
		return m.OnCreateProduct(ctx, product)
	}
	id := product.ProductID
	if id == "" {
		id = uuid.New().String()
	}
	return map[string]any{
		"product_id":             id,
		"store_id":               product.StoreID,
		"logistical_description": product.LogisticalDescription,
	}, nil
}

// Ensure MockAPIClient implements APIClient interface
var _ APIClient = (*MockAPIClient)(nil)
