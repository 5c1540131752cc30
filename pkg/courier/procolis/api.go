package procolis

import (
	"context"

	"github.com/tournevent/courierdz/pkg/courier"
)

// AccessEnabled is the Statut the token endpoint reports for usable keys.
const AccessEnabled = "Accès activé"

// APIClient is the interface for the Procolis API.
// Implementations include HTTPAPIClient (production) and MockAPIClient (testing).
type APIClient interface {
	// TestCredentials probes GET /token.
	TestCredentials(ctx context.Context) (bool, error)

	// GetTarification lists fees via POST /tarification.
	GetTarification(ctx context.Context) ([]courier.RateEntry, error)

	// AddColis submits parcels via POST /add_colis.
	AddColis(ctx context.Context, colis []courier.OrderData) (*ColisResponse, error)

	// Lire reads parcels via POST /lire. Unknown tracking ids yield an
	// empty response.
	Lire(ctx context.Context, trackings []string) (*ColisResponse, error)
}

// ColisRequest is the envelope of add_colis and lire requests.
type ColisRequest struct {
	Colis []courier.OrderData `json:"Colis"`
}

// ColisResponse is the envelope of add_colis and lire responses.
type ColisResponse struct {
	Colis []courier.Order `json:"Colis"`
}

// TokenResponse is the body of the token endpoint.
type TokenResponse struct {
	Statut string `json:"Statut"`
}
