package yalidine

import (
	"context"

	"github.com/tournevent/courierdz/pkg/courier"
)

// APIClient is the interface for the Yalidine parcel API.
// Implementations include HTTPAPIClient (production) and MockAPIClient (testing).
type APIClient interface {
	// TestCredentials probes GET /v1/wilayas/.
	TestCredentials(ctx context.Context) (bool, error)

	// GetFees queries GET /v1/fees/. Zero wilaya ids are omitted.
	GetFees(ctx context.Context, fromWilaya, toWilaya int) ([]courier.RateEntry, error)

	// CreateParcels posts parcels to POST /v1/parcels/. The result is keyed
	// by the order_id of each submitted parcel.
	CreateParcels(ctx context.Context, parcels []courier.OrderData) (map[string]courier.Order, error)

	// GetParcel reads GET /v1/parcels/{tracking}.
	GetParcel(ctx context.Context, tracking string) (*ParcelsResponse, error)
}

// ParcelsResponse is the paginated body of the parcel read endpoint.
type ParcelsResponse struct {
	HasMore   bool            `json:"has_more"`
	TotalData int             `json:"total_data"`
	Data      []courier.Order `json:"data"`
}
