package ecotrack

import (
	"context"
	"net/http"
	"net/url"

	"github.com/tournevent/courierdz/pkg/courier"
	"github.com/tournevent/courierdz/pkg/courier/httpapi"
)

var probeStatuses = httpapi.StatusTable{
	Valid:   []int{http.StatusOK},
	Invalid: []int{http.StatusUnauthorized, http.StatusForbidden},
}

// HTTPAPIClient is the production implementation of APIClient using HTTP.
type HTTPAPIClient struct {
	client *httpapi.Client
}

// HTTPAPIClientConfig holds configuration for the HTTP client.
type HTTPAPIClientConfig struct {
	Provider string
	BaseURL  string
	Token    string
}

// NewHTTPAPIClient creates a new HTTP-based API client for production use.
func NewHTTPAPIClient(cfg HTTPAPIClientConfig, deps courier.Deps) *HTTPAPIClient {
	return &HTTPAPIClient{
		client: httpapi.New(httpapi.Config{
			Provider: cfg.Provider,
			BaseURL:  cfg.BaseURL,
			Auth:     httpapi.Bearer(cfg.Token),
		}, deps),
	}
}

// TestCredentials probes the wilaya list. 200 is valid, 401 and 403 are
// invalid, anything else is an error.
func (c *HTTPAPIClient) TestCredentials(ctx context.Context) (bool, error) {
	resp, err := c.client.Get(ctx, "api/v1/get/wilayas", nil)
	if err != nil {
		return false, err
	}
	return probeStatuses.Interpret(resp)
}

// GetFees fetches the fee table.
func (c *HTTPAPIClient) GetFees(ctx context.Context) (*FeesResponse, error) {
	resp, err := c.client.Get(ctx, "api/v1/get/fees", nil)
	if err != nil {
		return nil, err
	}
	if !httpapi.OK(resp, http.StatusOK) {
		return nil, resp.UnexpectedStatus()
	}

	var result FeesResponse
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateOrder posts the order data as is.
func (c *HTTPAPIClient) CreateOrder(ctx context.Context, data courier.OrderData) (*CreateOrderResponse, error) {
	resp, err := c.client.Post(ctx, "api/v1/create/order", data)
	if err != nil {
		return nil, err
	}
	if !httpapi.OK(resp, http.StatusOK, http.StatusCreated) {
		return nil, resp.UnexpectedStatus()
	}

	var body courier.Order
	if err := resp.Decode(&body); err != nil {
		return nil, err
	}

	result := &CreateOrderResponse{Body: body}
	if success, ok := body["success"].(bool); ok {
		result.Success = &success
	}
	result.Message = courier.AsString(body["message"])
	return result, nil
}

// GetLabel downloads the label. 422 means the tracking id is unknown.
func (c *HTTPAPIClient) GetLabel(ctx context.Context, tracking string) ([]byte, error) {
	resp, err := c.client.Get(ctx, "api/v1/get/order/label", url.Values{"tracking": {tracking}})
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		if resp.IsEmpty() {
			return nil, courier.NewHTTPError(c.client.Provider(), resp.StatusCode,
				"failed to retrieve label for order "+tracking+": empty response")
		}
		return resp.Body, nil
	case http.StatusUnprocessableEntity:
		return nil, courier.NewTrackingIDNotFoundError(c.client.Provider(), tracking)
	default:
		return nil, resp.UnexpectedStatus()
	}
}

// Ensure HTTPAPIClient implements APIClient interface
var _ APIClient = (*HTTPAPIClient)(nil)
