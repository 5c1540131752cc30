// Package mock provides an in-memory courier for tests and sandbox mode.
package mock

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tournevent/courierdz/pkg/courier"
	"github.com/tournevent/courierdz/pkg/courier/validation"
)

// InvalidToken is the token value the mock rejects in TestCredentials.
const InvalidToken = "invalid"

var rules = validation.Rules{
	"customer_name": "required|string|max:255",
	"phone":         "required|numeric|digits_between:9,10",
	"address":       "nullable|string|max:255",
	"wilaya":        "required|integer|min:1|max:58",
	"commune":       "required|string|max:255",
	"price":         "required|numeric|min:0",
	"stop_desk":     "nullable|boolean",
}

// Metadata returns the metadata of a mock courier registered as name.
func Metadata(name string) courier.Metadata {
	return courier.Metadata{
		Name:        name,
		Title:       "Sandbox",
		Logo:        "#",
		Description: "In-memory courier used for tests and sandbox mode",
		Website:     "https://example.invalid",
		APIDocs:     "https://example.invalid/docs",
		Support:     "https://example.invalid/support",
	}
}

// Register adds the Mock provider to r.
func Register(r *courier.Registry) {
	r.Register(Metadata(courier.Mock), NewFactory(courier.Mock))
}

// MaxClients bounds the clients a factory from NewFactory keeps.
const MaxClients = 256

// NewFactory returns a factory building mock couriers named name. The
// factory requires a "token" credential and hands out one client per token,
// so orders outlive a single resolution. It is meant for tests and sandbox
// mode only: at most MaxClients tokens are kept, oldest first out.
func NewFactory(name string) courier.Factory {
	return NewBoundedFactory(name, MaxClients)
}

// NewBoundedFactory is NewFactory keeping at most limit clients. When a new
// token arrives at the limit, the oldest client and its orders are dropped.
func NewBoundedFactory(name string, limit int) courier.Factory {
	if limit < 1 {
		limit = 1
	}

	var mu sync.Mutex
	clients := make(map[string]*Client)
	var order []string

	return func(creds courier.Credentials, _ courier.Deps) (courier.Provider, error) {
		if err := creds.Require(name, "token"); err != nil {
			return nil, err
		}

		mu.Lock()
		defer mu.Unlock()
		token := creds["token"]
		if c, ok := clients[token]; ok {
			return c, nil
		}

		if len(order) >= limit {
			delete(clients, order[0])
			order = order[1:]
		}
		c := New(name)
		c.token = token
		clients[token] = c
		order = append(order, token)
		return c, nil
	}
}

// Client is a mock courier for testing. Orders live in memory for the
// lifetime of the client.
type Client struct {
	name   string
	token  string
	mu     sync.Mutex
	orders map[string]courier.Order
}

// New creates a new mock courier.
func New(name string) *Client {
	return &Client{
		name:   name,
		orders: make(map[string]courier.Order),
	}
}

// Metadata returns the courier description.
func (c *Client) Metadata() courier.Metadata {
	return Metadata(c.name)
}

// TestCredentials accepts any token except InvalidToken.
func (c *Client) TestCredentials(ctx context.Context) (bool, error) {
	return c.token != InvalidToken, nil
}

// GetRates returns a flat fee per destination wilaya.
func (c *Client) GetRates(ctx context.Context, fromWilaya, toWilaya int) ([]courier.RateEntry, error) {
	var rates []courier.RateEntry
	for w := 1; w <= 58; w++ {
		if toWilaya != 0 && w != toWilaya {
			continue
		}
		rates = append(rates, courier.RateEntry{
			"wilaya_id":      w,
			"from_wilaya_id": fromWilaya,
			"tarif":          400 + 10*w,
			"tarif_stopdesk": 300 + 10*w,
			"retour":         200,
			"delivery_days":  2,
		})
	}
	if rates == nil {
		rates = []courier.RateEntry{}
	}
	return rates, nil
}

// CreateOrder validates data and stores it under a generated tracking id.
func (c *Client) CreateOrder(ctx context.Context, data courier.OrderData) (courier.Order, error) {
	if err := c.ValidateCreate(data); err != nil {
		return nil, err
	}

	tracking := "MOCK-" + uuid.New().String()[:8]
	order := courier.Order{}
	for k, v := range data {
		order[k] = v
	}
	order["tracking"] = tracking
	order["status"] = "created"
	order["created_at"] = time.Now().UTC().Format(time.RFC3339)

	c.mu.Lock()
	c.orders[tracking] = order
	c.mu.Unlock()

	return copyOrder(order), nil
}

// GetOrder returns a stored order.
func (c *Client) GetOrder(ctx context.Context, trackingID string) (courier.Order, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	order, ok := c.orders[trackingID]
	if !ok {
		return nil, courier.NewTrackingIDNotFoundError(c.name, trackingID)
	}
	return copyOrder(order), nil
}

// OrderLabel returns a small PDF document for a stored order.
func (c *Client) OrderLabel(ctx context.Context, orderID string) (*courier.Label, error) {
	if _, err := c.GetOrder(ctx, orderID); err != nil {
		return nil, err
	}
	doc := fmt.Sprintf("%%PDF-1.4\n%% %s label for %s\n%%%%EOF\n", c.name, orderID)
	return courier.NewPDFLabel(base64.StdEncoding.EncodeToString([]byte(doc))), nil
}

// CancelOrder removes a stored order.
func (c *Client) CancelOrder(ctx context.Context, orderID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.orders[orderID]; !ok {
		return courier.NewTrackingIDNotFoundError(c.name, orderID)
	}
	delete(c.orders, orderID)
	return nil
}

// CreateOrderValidationRules returns the rules CreateOrder applies.
func (c *Client) CreateOrderValidationRules() validation.Rules {
	return rules.Clone()
}

// ValidateCreate checks data against the mock rules.
func (c *Client) ValidateCreate(data courier.OrderData) error {
	if err := validation.Validate(rules, data); err != nil {
		return courier.NewValidationError(c.name, err)
	}
	return nil
}

func copyOrder(o courier.Order) courier.Order {
	out := make(courier.Order, len(o))
	for k, v := range o {
		out[k] = v
	}
	return out
}

// Ensure Client implements the courier interfaces
var (
	_ courier.Provider = (*Client)(nil)
	_ courier.Canceler = (*Client)(nil)
)
