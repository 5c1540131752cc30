// Package yalidine provides integration with the Yalidine parcel API and
// the brands sharing it.
package yalidine

import (
	"context"
	"fmt"

	"github.com/tournevent/courierdz/pkg/courier"
	"github.com/tournevent/courierdz/pkg/courier/validation"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var createOrderRules = validation.Rules{
	"order_id":           "required|string",
	"from_wilaya_name":   "required|string",
	"firstname":          "required|string",
	"familyname":         "required|string",
	"contact_phone":      "required|string",
	"address":            "required|string",
	"to_commune_name":    "required|string",
	"to_wilaya_name":     "required|string",
	"product_list":       "required|array",
	"Price":              "required|numeric|min:0|max:150000",
	"do_insurance":       "required|boolean",
	"declared_value":     "required|numeric|min:0|max:150000",
	"Length":             "required|numeric|min:0",
	"Width":              "required|numeric|min:0",
	"Height":             "required|numeric|min:0",
	"Weight":             "required|numeric|min:0",
	"freeshipping":       "required|boolean",
	"is_stopdesk":        "required|boolean",
	"stopdesk_id":        "required_if:is_stopdesk,true|string",
	"has_exchange":       "required|boolean",
	"product_to_collect": "required|boolean",
}

// Config holds the settings of one brand.
type Config struct {
	ID       string
	Token    string
	BaseURL  string
	Metadata courier.Metadata
}

// Client is the Yalidine courier client.
// It implements the courier.Provider interface and delegates
// API calls to the underlying APIClient (mock or HTTP).
type Client struct {
	config    Config
	apiClient APIClient
	logger    *otelzap.Logger
	tracer    trace.Tracer
}

// New creates a new Yalidine client talking to cfg.BaseURL.
func New(cfg Config, deps courier.Deps) *Client {
	deps = deps.WithDefaults()
	apiClient := NewHTTPAPIClient(HTTPAPIClientConfig{
		Provider: cfg.Metadata.Name,
		BaseURL:  cfg.BaseURL,
		ID:       cfg.ID,
		Token:    cfg.Token,
	}, deps)
	return NewWithAPIClient(cfg, apiClient, deps.Logger, deps.Tracer)
}

// NewWithAPIClient creates a new Yalidine client with a custom API client.
// This is useful for injecting mock clients in tests.
func NewWithAPIClient(cfg Config, apiClient APIClient, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	deps := courier.Deps{Logger: logger, Tracer: tracer}.WithDefaults()
	return &Client{
		config:    cfg,
		apiClient: apiClient,
		logger:    deps.Logger,
		tracer:    deps.Tracer,
	}
}

func (c *Client) name() string {
	return c.config.Metadata.Name
}

func (c *Client) startSpan(ctx context.Context, op string) (context.Context, trace.Span) {
	return c.tracer.Start(ctx, "yalidine."+op,
		trace.WithAttributes(attribute.String("courier.provider", c.name())))
}

// Metadata returns the brand description.
func (c *Client) Metadata() courier.Metadata {
	return c.config.Metadata
}

// TestCredentials checks the id/token pair against the wilaya list.
func (c *Client) TestCredentials(ctx context.Context) (bool, error) {
	ctx, span := c.startSpan(ctx, "TestCredentials")
	defer span.End()

	c.logger.Ctx(ctx).Info("Testing Yalidine credentials", zap.String("provider", c.name()))

	ok, err := c.apiClient.TestCredentials(ctx)
	if err != nil {
		c.logger.Ctx(ctx).Error("Yalidine API error", zap.String("provider", c.name()), zap.Error(err))
		return false, err
	}
	return ok, nil
}

// GetRates returns the fees computed upstream for the given route.
func (c *Client) GetRates(ctx context.Context, fromWilaya, toWilaya int) ([]courier.RateEntry, error) {
	ctx, span := c.startSpan(ctx, "GetRates")
	defer span.End()

	c.logger.Ctx(ctx).Info("Getting Yalidine rates",
		zap.String("provider", c.name()),
		zap.Int("from_wilaya", fromWilaya),
		zap.Int("to_wilaya", toWilaya),
	)

	rates, err := c.apiClient.GetFees(ctx, fromWilaya, toWilaya)
	if err != nil {
		c.logger.Ctx(ctx).Error("Yalidine API error", zap.String("provider", c.name()), zap.Error(err))
		return nil, err
	}
	if rates == nil {
		rates = []courier.RateEntry{}
	}
	return rates, nil
}

// CreateOrder validates data and submits it as a single parcel.
func (c *Client) CreateOrder(ctx context.Context, data courier.OrderData) (courier.Order, error) {
	if err := c.ValidateCreate(data); err != nil {
		return nil, err
	}

	ctx, span := c.startSpan(ctx, "CreateOrder")
	defer span.End()

	orderID := courier.AsString(data["order_id"])
	c.logger.Ctx(ctx).Info("Creating Yalidine parcel",
		zap.String("provider", c.name()),
		zap.String("order_id", orderID),
	)

	result, err := c.apiClient.CreateParcels(ctx, []courier.OrderData{data})
	if err != nil {
		c.logger.Ctx(ctx).Error("Yalidine API error", zap.String("provider", c.name()), zap.Error(err))
		return nil, err
	}

	parcel, ok := result[orderID]
	if !ok {
		return nil, courier.NewCreateOrderError(c.name(),
			fmt.Sprintf("Create Order failed: no result for order %q", orderID))
	}
	if !accepted(parcel["status"]) {
		return nil, courier.NewCreateOrderError(c.name(),
			fmt.Sprintf("Create Order failed (`%s`)", courier.AsString(parcel["message"])))
	}

	c.logger.Ctx(ctx).Info("Yalidine parcel created",
		zap.String("provider", c.name()),
		zap.String("tracking", courier.AsString(parcel["tracking"])),
	)
	return parcel, nil
}

// accepted reads the per-parcel status marker, sent as the string "true".
func accepted(status any) bool {
	switch s := status.(type) {
	case string:
		return s == "true"
	case bool:
		return s
	}
	return false
}

// GetOrder reads one parcel.
func (c *Client) GetOrder(ctx context.Context, trackingID string) (courier.Order, error) {
	ctx, span := c.startSpan(ctx, "GetOrder")
	defer span.End()

	c.logger.Ctx(ctx).Info("Getting Yalidine parcel",
		zap.String("provider", c.name()),
		zap.String("tracking", trackingID),
	)

	resp, err := c.apiClient.GetParcel(ctx, trackingID)
	if err != nil {
		c.logger.Ctx(ctx).Error("Yalidine API error", zap.String("provider", c.name()), zap.Error(err))
		return nil, err
	}

	if resp.TotalData == 0 || len(resp.Data) == 0 {
		return nil, courier.NewTrackingIDNotFoundError(c.name(), trackingID)
	}
	return resp.Data[0], nil
}

// OrderLabel returns the hosted label of a parcel.
func (c *Client) OrderLabel(ctx context.Context, orderID string) (*courier.Label, error) {
	order, err := c.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	label := courier.AsString(order["label"])
	if label == "" {
		return nil, courier.NewHTTPError(c.name(), 0, fmt.Sprintf("parcel %s has no label", orderID))
	}
	return courier.NewURLLabel(label), nil
}

// CreateOrderValidationRules returns the rules CreateOrder applies.
func (c *Client) CreateOrderValidationRules() validation.Rules {
	return createOrderRules.Clone()
}

// ValidateCreate checks data against the Yalidine rules.
func (c *Client) ValidateCreate(data courier.OrderData) error {
	if err := validation.Validate(createOrderRules, data); err != nil {
		return courier.NewValidationError(c.name(), err)
	}
	return nil
}

// Ensure Client implements courier.Provider interface
var _ courier.Provider = (*Client)(nil)
