package procolis

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/tournevent/courierdz/pkg/courier"
)

// MockAPIClient is a mock implementation of APIClient for testing.
type MockAPIClient struct {
	SimulateErrors bool

	OnTestCredentials func(ctx context.Context) (bool, error)
	OnGetTarification func(ctx context.Context) ([]courier.RateEntry, error)
	OnAddColis        func(ctx context.Context, colis []courier.OrderData) (*ColisResponse, error)
	OnLire            func(ctx context.Context, trackings []string) (*ColisResponse, error)

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
		return courier.NewHTTPError("procolis-mock", 500, "simulated API error")
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

// GetTarification returns two fee rows.
func (m *MockAPIClient) GetTarification(ctx context.Context) ([]courier.RateEntry, error) {
	if err := m.simulated(); err != nil {
		return nil, err
	}
	if m.OnGetTarification != nil {
		return m.OnGetTarification(ctx)
	}
	return []courier.RateEntry{
		{"IDWilaya": float64(16), "Wilaya": "Alger", "Domicile": "400", "Stopdesk": "300", "Annuler": "150"},
		{"IDWilaya": float64(31), "Wilaya": "Oran", "Domicile": "600", "Stopdesk": "450", "Annuler": "200"},
	}, nil
}

// AddColis accepts every parcel.
func (m *MockAPIClient) AddColis(ctx context.Context, colis []courier.OrderData) (*ColisResponse, error) {
	if err := m.simulated(); err != nil {
		return nil, err
	}
	if m.OnAddColis != nil {
		return m.OnAddColis(ctx, colis)
	}
	resp := &ColisResponse{}
	for _, c := range colis {
		tracking := courier.AsString(c["Tracking"])
		if tracking == "" {
			tracking = "ZR" + strings.ToUpper(uuid.New().String()[:8])
		}
		resp.Colis = append(resp.Colis, courier.Order{
			"Tracking":      tracking,
			"MessageRetour": "Good",
			"IDWilaya":      c["IDWilaya"],
			"Client":        c["Client"],
		})
	}
	return resp, nil
}

// Lire returns one parcel per tracking id.
func (m *MockAPIClient) Lire(ctx context.Context, trackings []string) (*ColisResponse, error) {
	if err := m.simulated(); err != nil {
		return nil, err
	}
	if m.OnLire != nil {
		return m.OnLire(ctx, trackings)
	}
	resp := &ColisResponse{}
	for _, t := range trackings {
		resp.Colis = append(resp.Colis, courier.Order{
			"Tracking":  t,
			"Situation": "En Préparation",
		})
	}
	return resp, nil
}

// Ensure MockAPIClient implements APIClient interface
var _ APIClient = (*MockAPIClient)(nil)
