package maystro

import (
	"context"
	"net/http"
	"net/url"

	"github.com/tournevent/courierdz/pkg/courier"
	"github.com/tournevent/courierdz/pkg/courier/httpapi"
)

// DefaultBaseURL is the Maystro Delivery API root.
const DefaultBaseURL = "https://backend.maystro-delivery.com/api/"

var probeStatuses = httpapi.StatusTable{
	Valid:   []int{http.StatusOK, http.StatusCreated},
	Invalid: []int{http.StatusUnauthorized},
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
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &HTTPAPIClient{
		client: httpapi.New(httpapi.Config{
			Provider: cfg.Provider,
			BaseURL:  baseURL,
			Auth:     httpapi.Token(cfg.Token),
		}, deps),
	}
}

// TestCredentials probes the wilaya list of Algeria.
func (c *HTTPAPIClient) TestCredentials(ctx context.Context) (bool, error) {
	resp, err := c.client.Get(ctx, "base/wilayas/", url.Values{"country": {"1"}})
	if err != nil {
		return false, err
	}
	return probeStatuses.Interpret(resp)
}

// CreateOrder posts the order data as is.
func (c *HTTPAPIClient) CreateOrder(ctx context.Context, data courier.OrderData) (courier.Order, error) {
	resp, err := c.client.Post(ctx, "stores/orders/", data)
	if err != nil {
		return nil, err
	}
	return decodeOrder(resp)
}

// GetOrder reads one order.
func (c *HTTPAPIClient) GetOrder(ctx context.Context, orderID string) (courier.Order, error) {
	resp, err := c.client.Get(ctx, "stores/orders/"+url.PathEscape(orderID)+"/", nil)
	if err != nil {
		return nil, err
	}
	return decodeOrder(resp)
}

func decodeOrder(resp *httpapi.Response) (courier.Order, error) {
	if !httpapi.OK(resp, http.StatusOK, http.StatusCreated) {
		return nil, resp.UnexpectedStatus()
	}
	var order courier.Order
	if err := resp.Decode(&order); err != nil {
		return nil, err
	}
	return order, nil
}

// GetLabel downloads the starter bordereau of one order. An empty body or
// a bare "0" means no label was produced.
func (c *HTTPAPIClient) GetLabel(ctx context.Context, orderID string) ([]byte, error) {
	resp, err := c.client.Post(ctx, "delivery/starter/starter_bordureau/", LabelRequest{
		AllCreated: true,
		OrdersIDs:  []string{orderID},
	})
	if err != nil {
		return nil, err
	}
	if !httpapi.OK(resp, http.StatusOK, http.StatusCreated) {
		return nil, resp.UnexpectedStatus()
	}
	if resp.IsEmpty() || resp.BodyString() == "0" {
		return nil, courier.NewHTTPError(c.client.Provider(), resp.StatusCode,
			"failed to retrieve label for order "+orderID+": empty response")
	}
	return resp.Body, nil
}

// CreateProduct registers a product. Only 200 is a success.
func (c *HTTPAPIClient) CreateProduct(ctx context.Context, product ProductRequest) (map[string]any, error) {
	resp, err := c.client.Post(ctx, "stores/product/", product)
	if err != nil {
		return nil, err
	}
	if !httpapi.OK(resp, http.StatusOK) {
		return nil, resp.UnexpectedStatus()
	}
	var result map[string]any
	if err := resp.Decode(&result); err != nil {
		return nil, err
	}
	return result, nil
}

// Ensure HTTPAPIClient implements APIClient interface
var _ APIClient = (*HTTPAPIClient)(nil)
