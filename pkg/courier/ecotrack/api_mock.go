package ecotrack

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
	OnGetFees         func(ctx context.Context) (*FeesResponse, error)
	OnCreateOrder     func(ctx context.Context, data courier.OrderData) (*CreateOrderResponse, error)
	OnGetLabel        func(ctx context.Context, tracking string) ([]byte, error)

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
		return courier.NewHTTPError("ecotrack-mock", 500, "simulated API error")
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

// GetFees returns a small fee table.
func (m *MockAPIClient) GetFees(ctx context.Context) (*FeesResponse, error) {
	if err := m.simulated(); err != nil {
		return nil, err
	}
	if m.OnGetFees != nil {
		return m.OnGetFees(ctx)
	}
	return &FeesResponse{
		Livraison: []courier.RateEntry{
			{"wilaya_id": float64(16), "tarif": "400", "tarif_stopdesk": "300"},
			{"wilaya_id": float64(31), "tarif": "600", "tarif_stopdesk": "450"},
		},
	}, nil
}

// CreateOrder echoes a successful creation.
func (m *MockAPIClient) CreateOrder(ctx context.Context, data courier.OrderData) (*CreateOrderResponse, error) {
	if err := m.simulated(); err != nil {
		return nil, err
	}
	if m.OnCreateOrder != nil {
		return m.OnCreateOrder(ctx, data)
	}
	success := true
	tracking := "ECO" + uuid.New().String()[:8]
	return &CreateOrderResponse{
		Success: &success,
		Message: "Commande créée avec succès",
		Body: courier.Order{
			"success":  true,
			"message":  "Commande créée avec succès",
			"tracking": tracking,
		},
	}, nil
}

// GetLabel returns a minimal PDF document.
func (m *MockAPIClient) GetLabel(ctx context.Context, tracking string) ([]byte, error) {
	if err := m.simulated(); err != nil {
		return nil, err
	}
	if m.OnGetLabel != nil {
		return m.OnGetLabel(ctx, tracking)
	}
	return []byte("%PDF-1.4\n% label " + tracking + "\n%%EOF\n"), nil
}

// Ensure MockAPIClient implements APIClient interface
var _ APIClient = (*MockAPIClient)(nil)
