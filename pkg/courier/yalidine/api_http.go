package yalidine

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tournevent/courierdz/pkg/courier"
	"github.com/tournevent/courierdz/pkg/courier/httpapi"
)

// The API answers 500 rather than 401 for some rejected key pairs.
var probeStatuses = httpapi.StatusTable{
	Valid:   []int{http.StatusOK},
	Invalid: []int{http.StatusUnauthorized, http.StatusInternalServerError},
}

// HTTPAPIClient is the production implementation of APIClient using HTTP.
type HTTPAPIClient struct {
	client *httpapi.Client
}

// HTTPAPIClientConfig holds configuration for the HTTP client.
type HTTPAPIClientConfig struct {
	Provider string
	BaseURL  string
	ID       string
	Token    string
}

// NewHTTPAPIClient creates a new HTTP-based API client for production use.
func NewHTTPAPIClient(cfg HTTPAPIClientConfig, deps courier.Deps) *HTTPAPIClient {
	return &HTTPAPIClient{
		client: httpapi.New(httpapi.Config{
			Provider: cfg.Provider,
			BaseURL:  cfg.BaseURL,
			Auth: httpapi.Headers(map[string]string{
				"X-API-ID":    cfg.ID,
				"X-API-TOKEN": cfg.Token,
			}),
		}, deps),
	}
}

// TestCredentials probes the wilaya list.
func (c *HTTPAPIClient) TestCredentials(ctx context.Context) (bool, error) {
	resp, err := c.client.Get(ctx, "/v1/wilayas/", nil)
	if err != nil {
		return false, err
	}
	return probeStatuses.Interpret(resp)
}

// GetFees fetches fees. The endpoint answers either one object or a list.
func (c *HTTPAPIClient) GetFees(ctx context.Context, fromWilaya, toWilaya int) ([]courier.RateEntry, error) {
	query := url.Values{}
	if fromWilaya != 0 {
		query.Set("from_wilaya_id", strconv.Itoa(fromWilaya))
	}
	if toWilaya != 0 {
		query.Set("to_wilaya_id", strconv.Itoa(toWilaya))
	}

	resp, err := c.client.Get(ctx, "/v1/fees/", query)
	if err != nil {
		return nil, err
	}
	if !httpapi.OK(resp, http.StatusOK) {
		return nil, resp.UnexpectedStatus()
	}

	body := bytes.TrimSpace(resp.Body)
	if len(body) > 0 && body[0] == '[' {
		var list []courier.RateEntry
		if err := resp.Decode(&list); err != nil {
			return nil, err
		}
		return list, nil
	}

	var single courier.RateEntry
	if err := resp.Decode(&single); err != nil {
		return nil, err
	}
	return []courier.RateEntry{single}, nil
}

// CreateParcels submits parcels in one request.
func (c *HTTPAPIClient) CreateParcels(ctx context.Context, parcels []courier.OrderData) (map[string]courier.Order, error) {
	resp, err := c.client.Post(ctx, "/v1/parcels/", parcels)
	if err != nil {
		return nil, err
	}
	if !httpapi.OK(resp, http.StatusOK, http.StatusCreated) {
		return nil, resp.UnexpectedStatus()
	}

	var result map[string]courier.Order
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetParcel reads one parcel by tracking id.
func (c *HTTPAPIClient) GetParcel(ctx context.Context, tracking string) (*ParcelsResponse, error) {
	resp, err := c.client.Get(ctx, "/v1/parcels/"+url.PathEscape(tracking), nil)
	if err != nil {
		return nil, err
	}
	if !httpapi.OK(resp, http.StatusOK) {
		return nil, resp.UnexpectedStatus()
	}

	var result ParcelsResponse
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Ensure HTTPAPIClient implements APIClient interface
var _ APIClient = (*HTTPAPIClient)(nil)
