package procolis

import (
	"context"
	"net/http"

	"github.com/tournevent/courierdz/pkg/courier"
	"github.com/tournevent/courierdz/pkg/courier/httpapi"
)

// DefaultBaseURL is the Procolis API root.
const DefaultBaseURL = "https://procolis.com/api_v1"

// HTTPAPIClient is the production implementation of APIClient using HTTP.
type HTTPAPIClient struct {
	client *httpapi.Client
}

// HTTPAPIClientConfig holds configuration for the HTTP client.
type HTTPAPIClientConfig struct {
	Provider string
	BaseURL  string
	Token    string
	Key      string
}

// NewHTTPAPIClient creates a new HTTP-based API client for production use.
func NewHTTPAPIClient(cfg HTTPAPIClientConfig, deps courier.Deps) *HTTPAPIClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &HTTPAPIClient{
		client: httpapi.New(httpapi.Config{
			Provider: cfg.Provider,
			BaseURL:  baseURL,
			Auth: httpapi.Headers(map[string]string{
				"token": cfg.Token,
				"key":   cfg.Key,
			}),
		}, deps),
	}
}

// TestCredentials reads the token status. A 200 is only valid when the
// access is reported as enabled.
func (c *HTTPAPIClient) TestCredentials(ctx context.Context) (bool, error) {
	resp, err := c.client.Get(ctx, "/token", nil)
	if err != nil {
		return false, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var token TokenResponse
		if err := resp.Decode(&token); err != nil {
			return false, err
		}
		return token.Statut == AccessEnabled, nil
	case http.StatusUnauthorized:
		return false, nil
	default:
		return false, resp.UnexpectedStatus()
	}
}

// GetTarification fetches the fee list. The endpoint takes no body.
func (c *HTTPAPIClient) GetTarification(ctx context.Context) ([]courier.RateEntry, error) {
	resp, err := c.client.Post(ctx, "/tarification", nil)
	if err != nil {
		return nil, err
	}
	if !httpapi.OK(resp, http.StatusOK) {
		return nil, resp.UnexpectedStatus()
	}

	var rates []courier.RateEntry
	if err := resp.Decode(&rates); err != nil {
		return nil, err
	}
	return rates, nil
}

// AddColis submits parcels.
func (c *HTTPAPIClient) AddColis(ctx context.Context, colis []courier.OrderData) (*ColisResponse, error) {
	return c.postColis(ctx, "/add_colis", colis)
}

// Lire reads parcels by tracking id. The API answers a literal null when
// none is known.
func (c *HTTPAPIClient) Lire(ctx context.Context, trackings []string) (*ColisResponse, error) {
	colis := make([]courier.OrderData, 0, len(trackings))
	for _, t := range trackings {
		colis = append(colis, courier.OrderData{"Tracking": t})
	}
	return c.postColis(ctx, "/lire", colis)
}

func (c *HTTPAPIClient) postColis(ctx context.Context, path string, colis []courier.OrderData) (*ColisResponse, error) {
	resp, err := c.client.Post(ctx, path, ColisRequest{Colis: colis})
	if err != nil {
		return nil, err
	}
	if !httpapi.OK(resp, http.StatusOK, http.StatusCreated) {
		return nil, resp.UnexpectedStatus()
	}
	if resp.BodyString() == "null" {
		return &ColisResponse{}, nil
	}

	var result ColisResponse
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Ensure HTTPAPIClient implements APIClient interface
var _ APIClient = (*HTTPAPIClient)(nil)
