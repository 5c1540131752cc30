// Package ecotrack provides integration with the couriers hosted on the
// Ecotrack platform. Every brand shares one API shape and differs only by
// base URL and metadata.
package ecotrack

import (
	"context"
	"encoding/base64"

	"github.com/tournevent/courierdz/pkg/courier"
	"github.com/tournevent/courierdz/pkg/courier/validation"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var createOrderRules = validation.Rules{
	"reference":          "nullable|string|max:255",
	"nom_client":         "required|string|max:255",
	"telephone":          "required|numeric|digits_between:9,10",
	"telephone_2":        "nullable|numeric|digits_between:9,10",
	"adresse":            "required|string|max:255",
	"code_postal":        "nullable|numeric",
	"commune":            "required|string|max:255",
	"code_wilaya":        "required|numeric|min:1|max:58",
	"montant":            "required|numeric",
	"remarque":           "nullable|string|max:255",
	"produit":            "nullable|string|max:255",
	"stock":              "integer|in:0,1",
	"quantite":           "required_if:stock,1|integer|min:1",
	"produit_a_recupere": "nullable|string|max:255",
	"boutique":           "nullable|string|max:255",
	"type":               "required|integer|in:1,2,3,4", // 1 delivery, 2 exchange, 3 pickup, 4 collection
	"stop_desk":          "nullable|in:0,1",
}

// Config holds the settings of one Ecotrack brand.
type Config struct {
	Token    string
	BaseURL  string
	Metadata courier.Metadata
}

// Client is the Ecotrack courier client.
// It implements the courier.Provider interface and delegates
// API calls to the underlying APIClient (mock or HTTP).
type Client struct {
	config    Config
	apiClient APIClient
	logger    *otelzap.Logger
	tracer    trace.Tracer
}

// New creates a new Ecotrack client talking to cfg.BaseURL.
func New(cfg Config, deps courier.Deps) *Client {
	deps = deps.WithDefaults()
	apiClient := NewHTTPAPIClient(HTTPAPIClientConfig{
		Provider: cfg.Metadata.Name,
		BaseURL:  cfg.BaseURL,
		Token:    cfg.Token,
	}, deps)
	return NewWithAPIClient(cfg, apiClient, deps.Logger, deps.Tracer)
}

// NewWithAPIClient creates a new Ecotrack client with a custom API client.
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

// Metadata returns the brand description.
func (c *Client) Metadata() courier.Metadata {
	return c.config.Metadata
}

// TestCredentials checks the token against the wilaya list endpoint.
func (c *Client) TestCredentials(ctx context.Context) (bool, error) {
	ctx, span := c.tracer.Start(ctx, "ecotrack.TestCredentials",
		trace.WithAttributes(attribute.String("courier.provider", c.name())))
	defer span.End()

	c.logger.Ctx(ctx).Info("Testing Ecotrack credentials", zap.String("provider", c.name()))

	ok, err := c.apiClient.TestCredentials(ctx)
	if err != nil {
		c.logger.Ctx(ctx).Error("Ecotrack API error", zap.String("provider", c.name()), zap.Error(err))
		return false, err
	}
	return ok, nil
}

// GetRates returns the fee table. When toWilaya is given only the matching
// entry is returned. The fees endpoint cannot filter by origin, so
// fromWilaya is ignored.
func (c *Client) GetRates(ctx context.Context, fromWilaya, toWilaya int) ([]courier.RateEntry, error) {
	ctx, span := c.tracer.Start(ctx, "ecotrack.GetRates",
		trace.WithAttributes(attribute.String("courier.provider", c.name())))
	defer span.End()

	c.logger.Ctx(ctx).Info("Getting Ecotrack rates",
		zap.String("provider", c.name()),
		zap.Int("to_wilaya", toWilaya),
	)

	fees, err := c.apiClient.GetFees(ctx)
	if err != nil {
		c.logger.Ctx(ctx).Error("Ecotrack API error", zap.String("provider", c.name()), zap.Error(err))
		return nil, err
	}

	if toWilaya == 0 {
		if fees.Livraison == nil {
			return []courier.RateEntry{}, nil
		}
		return fees.Livraison, nil
	}

	for _, entry := range fees.Livraison {
		if id, ok := courier.AsInt(entry["wilaya_id"]); ok && id == toWilaya {
			return []courier.RateEntry{entry}, nil
		}
	}
	return []courier.RateEntry{}, nil
}

// CreateOrder validates data and submits it.
func (c *Client) CreateOrder(ctx context.Context, data courier.OrderData) (courier.Order, error) {
	if err := c.ValidateCreate(data); err != nil {
		return nil, err
	}

	ctx, span := c.tracer.Start(ctx, "ecotrack.CreateOrder",
		trace.WithAttributes(attribute.String("courier.provider", c.name())))
	defer span.End()

	c.logger.Ctx(ctx).Info("Creating Ecotrack order",
		zap.String("provider", c.name()),
		zap.String("reference", courier.AsString(data["reference"])),
	)

	resp, err := c.apiClient.CreateOrder(ctx, data)
	if err != nil {
		c.logger.Ctx(ctx).Error("Ecotrack API error", zap.String("provider", c.name()), zap.Error(err))
		return nil, err
	}

	if resp.Success != nil && !*resp.Success {
		return nil, courier.NewCreateOrderError(c.name(), "Create Order failed: "+resp.Message)
	}

	c.logger.Ctx(ctx).Info("Ecotrack order created",
		zap.String("provider", c.name()),
		zap.String("tracking", courier.AsString(resp.Body["tracking"])),
	)
	return resp.Body, nil
}

// GetOrder is not offered by the Ecotrack API.
func (c *Client) GetOrder(ctx context.Context, trackingID string) (courier.Order, error) {
	return nil, courier.NewNotImplementedError(c.name(), "GetOrder")
}

// OrderLabel downloads the label PDF and returns it base64 encoded.
func (c *Client) OrderLabel(ctx context.Context, orderID string) (*courier.Label, error) {
	ctx, span := c.tracer.Start(ctx, "ecotrack.OrderLabel",
		trace.WithAttributes(attribute.String("courier.provider", c.name())))
	defer span.End()

	c.logger.Ctx(ctx).Info("Getting Ecotrack label",
		zap.String("provider", c.name()),
		zap.String("tracking", orderID),
	)

	doc, err := c.apiClient.GetLabel(ctx, orderID)
	if err != nil {
		c.logger.Ctx(ctx).Error("Ecotrack API error", zap.String("provider", c.name()), zap.Error(err))
		return nil, err
	}
	return courier.NewPDFLabel(base64.StdEncoding.EncodeToString(doc)), nil
}

// CreateOrderValidationRules returns the rules CreateOrder applies.
func (c *Client) CreateOrderValidationRules() validation.Rules {
	return createOrderRules.Clone()
}

// ValidateCreate checks data against the Ecotrack rules.
func (c *Client) ValidateCreate(data courier.OrderData) error {
	if err := validation.Validate(createOrderRules, data); err != nil {
		return courier.NewValidationError(c.name(), err)
	}
	return nil
}

// Ensure Client implements courier.Provider interface
var _ courier.Provider = (*Client)(nil)
