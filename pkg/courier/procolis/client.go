// Package procolis provides integration with the Procolis platform used by
// ZR Express.
package procolis

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

const (
	messageGood           = "Good"
	messageDoubleTracking = "Double Tracking"
)

var createOrderRules = validation.Rules{
	"Tracking":      "nullable|string",
	"TypeLivraison": "in:0,1", // 0 home, 1 stop desk
	"TypeColis":     "in:0,1", // 1 exchange
	"Confrimee":     "required|in:0,1",
	"Client":        "required|string",
	"MobileA":       "required|string",
	"MobileB":       "nullable|string",
	"Adresse":       "required|string",
	"IDWilaya":      "required|numeric",
	"Commune":       "required|string",
	"Total":         "required|numeric",
	"Note":          "nullable|string",
	"TProduit":      "required|string",
	"id_Externe":    "nullable|string",
	"Source":        "nullable|string",
}

// Config holds the Procolis account settings.
type Config struct {
	Token    string
	Key      string
	BaseURL  string
	Metadata courier.Metadata
}

// Client is the Procolis courier client.
type Client struct {
	config    Config
	apiClient APIClient
	logger    *otelzap.Logger
	tracer    trace.Tracer
}

// New creates a new Procolis client.
func New(cfg Config, deps courier.Deps) *Client {
	deps = deps.WithDefaults()
	apiClient := NewHTTPAPIClient(HTTPAPIClientConfig{
		Provider: cfg.Metadata.Name,
		BaseURL:  cfg.BaseURL,
		Token:    cfg.Token,
		Key:      cfg.Key,
	}, deps)
	return NewWithAPIClient(cfg, apiClient, deps.Logger, deps.Tracer)
}

// NewWithAPIClient creates a new Procolis client with a custom API client.
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
	return c.tracer.Start(ctx, "procolis."+op,
		trace.WithAttributes(attribute.String("courier.provider", c.name())))
}

func (c *Client) apiError(ctx context.Context, err error) {
	c.logger.Ctx(ctx).Error("Procolis API error", zap.String("provider", c.name()), zap.Error(err))
}

// Metadata returns the courier description.
func (c *Client) Metadata() courier.Metadata {
	return c.config.Metadata
}

// TestCredentials checks that the token/key pair has access enabled.
func (c *Client) TestCredentials(ctx context.Context) (bool, error) {
	ctx, span := c.startSpan(ctx, "TestCredentials")
	defer span.End()

	c.logger.Ctx(ctx).Info("Testing Procolis credentials", zap.String("provider", c.name()))

	ok, err := c.apiClient.TestCredentials(ctx)
	if err != nil {
		c.apiError(ctx, err)
		return false, err
	}
	return ok, nil
}

// GetRates returns the fee list, narrowed to toWilaya when given. Fees do
// not depend on the origin.
func (c *Client) GetRates(ctx context.Context, fromWilaya, toWilaya int) ([]courier.RateEntry, error) {
	ctx, span := c.startSpan(ctx, "GetRates")
	defer span.End()

	c.logger.Ctx(ctx).Info("Getting Procolis rates",
		zap.String("provider", c.name()),
		zap.Int("to_wilaya", toWilaya),
	)

	rates, err := c.apiClient.GetTarification(ctx)
	if err != nil {
		c.apiError(ctx, err)
		return nil, err
	}

	if toWilaya == 0 {
		if rates == nil {
			rates = []courier.RateEntry{}
		}
		return rates, nil
	}
	for _, entry := range rates {
		if id, ok := courier.AsInt(entry["IDWilaya"]); ok && id == toWilaya {
			return []courier.RateEntry{entry}, nil
		}
	}
	return []courier.RateEntry{}, nil
}

// CreateOrder validates data and submits it as a single parcel.
func (c *Client) CreateOrder(ctx context.Context, data courier.OrderData) (courier.Order, error) {
	if err := c.ValidateCreate(data); err != nil {
		return nil, err
	}

	ctx, span := c.startSpan(ctx, "CreateOrder")
	defer span.End()

	c.logger.Ctx(ctx).Info("Creating Procolis parcel",
		zap.String("provider", c.name()),
		zap.String("tracking", courier.AsString(data["Tracking"])),
	)

	resp, err := c.apiClient.AddColis(ctx, []courier.OrderData{data})
	if err != nil {
		c.apiError(ctx, err)
		return nil, err
	}
	if len(resp.Colis) == 0 {
		return nil, courier.NewCreateOrderError(c.name(), "Create Order failed: empty response")
	}

	parcel := resp.Colis[0]
	switch msg := courier.AsString(parcel["MessageRetour"]); msg {
	case messageGood:
	case messageDoubleTracking:
		return nil, courier.NewCreateOrderError(c.name(),
			fmt.Sprintf("Create Order failed (Duplicate `Tracking` %q)", courier.AsString(parcel["Tracking"])))
	default:
		return nil, courier.NewCreateOrderError(c.name(), fmt.Sprintf("Create Order failed (`%s`)", msg))
	}

	c.logger.Ctx(ctx).Info("Procolis parcel created",
		zap.String("provider", c.name()),
		zap.String("tracking", courier.AsString(parcel["Tracking"])),
	)
	return parcel, nil
}

// GetOrder reads one parcel by tracking id.
func (c *Client) GetOrder(ctx context.Context, trackingID string) (courier.Order, error) {
	ctx, span := c.startSpan(ctx, "GetOrder")
	defer span.End()

	c.logger.Ctx(ctx).Info("Getting Procolis parcel",
		zap.String("provider", c.name()),
		zap.String("tracking", trackingID),
	)

	resp, err := c.apiClient.Lire(ctx, []string{trackingID})
	if err != nil {
		c.apiError(ctx, err)
		return nil, err
	}
	if len(resp.Colis) == 0 {
		return nil, courier.NewTrackingIDNotFoundError(c.name(), trackingID)
	}
	return resp.Colis[0], nil
}

// CancelOrder is not offered by Procolis.
func (c *Client) CancelOrder(ctx context.Context, orderID string) error {
	return courier.NewFunctionNotSupportedError(c.name(), "CancelOrder")
}

// OrderLabel is not offered by Procolis.
func (c *Client) OrderLabel(ctx context.Context, orderID string) (*courier.Label, error) {
	return nil, courier.NewFunctionNotSupportedError(c.name(), "OrderLabel")
}

// CreateOrderValidationRules returns the rules CreateOrder applies.
func (c *Client) CreateOrderValidationRules() validation.Rules {
	return createOrderRules.Clone()
}

// ValidateCreate checks data against the Procolis rules.
func (c *Client) ValidateCreate(data courier.OrderData) error {
	if err := validation.Validate(createOrderRules, data); err != nil {
		return courier.NewValidationError(c.name(), err)
	}
	return nil
}

var (
	_ courier.Provider = (*Client)(nil)
	_ courier.Canceler = (*Client)(nil)
)
