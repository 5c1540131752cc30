package yalidine

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
	OnGetFees         func(ctx context.Context, fromWilaya, toWilaya int) ([]courier.RateEntry, error)
	OnCreateParcels   func(ctx context.Context, parcels []courier.OrderData) (map[string]courier.Order, error)
	OnGetParcel       func(ctx context.Context, tracking string) (*ParcelsResponse, error)

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
		return courier.NewHTTPError("yalidine-mock", 500, "simulated API error")
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

// GetFees returns one fee object for the requested route.
func (m *MockAPIClient) GetFees(ctx context.Context, fromWilaya, toWilaya int) ([]courier.RateEntry, error) {
	if err := m.simulated(); err != nil {
		return nil, err
	}
	if m.OnGetFees != nil {
		return m.OnGetFees(ctx, fromWilaya, toWilaya)
	}
	return []courier.RateEntry{{
		"from_wilaya_id": float64(fromWilaya),
		"to_wilaya_id":   float64(toWilaya),
		"zone":           float64(2),
		"retour_fee":     float64(250),
		"cod_percentage": float64(1),
		"per_commune":    map[string]any{},
	}}, nil
}

// CreateParcels accepts every parcel.
func (m *MockAPIClient) CreateParcels(ctx context.Context, parcels []courier.OrderData) (map[string]courier.Order, error) {
	if err := m.simulated(); err != nil {
		return nil, err
	}
	if m.OnCreateParcels != nil {
		return m.OnCreateParcels(ctx, parcels)
	}
	result := make(map[string]courier.Order, len(parcels))
	for _, p := range parcels {
		orderID := courier.AsString(p["order_id"])
		tracking := "yal-" + strings.ToUpper(uuid.New().String()[:6])
		result[orderID] = courier.Order{
			"success":  true,
			"status":   "true",
			"order_id": orderID,
			"tracking": tracking,
			"label":    "https://yalidine.app/app/bordereau.php?tracking=" + tracking,
			"message":  "",
		}
	}
	return result, nil
}

// GetParcel returns one parcel for any tracking id.
func (m *MockAPIClient) GetParcel(ctx context.Context, tracking string) (*ParcelsResponse, error) {
	if err := m.simulated(); err != nil {
		return nil, err
	}
	if m.OnGetParcel != nil {
		return m.OnGetParcel(ctx, tracking)
	}
	return &ParcelsResponse{
		TotalData: 1,
		Data: []courier.Order{{
			"tracking":        tracking,
			"last_status":     "En préparation",
			"label":           "https://yalidine.app/app/bordereau.php?tracking=" + tracking,
			"to_wilaya_name":  "Alger",
			"to_commune_name": "Bab Ezzouar",
			"date_creation":   "2024-01-01 10:00:00",
		}},
	}, nil
}

// Ensure MockAPIClient implements APIClient interface
var _ APIClient = (*MockAPIClient)(nil)
