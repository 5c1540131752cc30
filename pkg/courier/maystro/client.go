// Package maystro provides integration with Maystro Delivery.
package maystro

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
	"wilaya":            "required|integer|min:1|max:58",
	"commune":           "required|integer|min:1",
	"destination_text":  "nullable|string|max:255",
	"customer_phone":    "required|numeric|digits_between:9,10",
	"customer_name":     "required|string|max:255",
	"product_price":     "required|integer",
	"delivery_type":     "required|integer|in:0,1", // 0 home, 1 pickup point
	"express":           "boolean",
	"note_to_driver":    "nullable|string|max:255",
	"products":          "required|array",
	"source":            "required|equals:4",
	"external_order_id": "nullable|string|max:255",
}

// Metadata describes Maystro Delivery.
var Metadata = courier.Metadata{
	Name:        courier.MaystroDelivery,
	Title:       "Maystro Delivery",
	Logo:        "https://maystro-delivery.com/img/Maystro-blue-extonly.svg",
	Description: "Maystro Delivery société de livraison en Algérie offre un service de livraison rapide et sécurisé .",
	Website:     "https://maystro-delivery.com/",
	APIDocs:     "https://maystro.gitbook.io/maystro-delivery-documentation",
	Support:     "https://maystro-delivery.com/ContactUS.html",
	TrackingURL: "https://maystro-delivery.com/trackingSD.html",
}

// Config holds the Maystro account settings.
type Config struct {
	Token   string
	BaseURL string
}

// Client is the Maystro Delivery client.
type Client struct {
	config    Config
	apiClient APIClient
	logger    *otelzap.Logger
	tracer    trace.Tracer
}

// New creates a new Maystro client.
func New(cfg Config, deps courier.Deps) *Client {
	deps = deps.WithDefaults()
	apiClient := NewHTTPAPIClient(HTTPAPIClientConfig{
		Provider: Metadata.Name,
		BaseURL:  cfg.BaseURL,
		Token:    cfg.Token,
	}, deps)
	return NewWithAPIClient(cfg, apiClient, deps.Logger, deps.Tracer)
}

// NewWithAPIClient creates a new Maystro client with a custom API client.
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

func (c *Client) startSpan(ctx context.Context, op string) (context.Context, trace.Span) {
	return c.tracer.Start(ctx, "maystro."+op,
		trace.WithAttributes(attribute.String("courier.provider", Metadata.Name)))
}

func (c *Client) logError(ctx context.Context, err error) {
	c.logger.Ctx(ctx).Error("Maystro API error", zap.Error(err))
}

// Metadata returns the courier description.
func (c *Client) Metadata() courier.Metadata {
	return Metadata
}

// TestCredentials checks the token against the wilaya list.
func (c *Client) TestCredentials(ctx context.Context) (bool, error) {
	ctx, span := c.startSpan(ctx, "TestCredentials")
	defer span.End()

	c.logger.Ctx(ctx).Info("Testing Maystro credentials")

	ok, err := c.apiClient.TestCredentials(ctx)
	if err != nil {
		c.logError(ctx, err)
		return false, err
	}
	return ok, nil
}

// GetRates is not offered by the Maystro API.
func (c *Client) GetRates(ctx context.Context, fromWilaya, toWilaya int) ([]courier.RateEntry, error) {
	return nil, courier.NewNotImplementedError(Metadata.Name, "GetRates")
}

// CreateOrder validates data and submits it.
func (c *Client) CreateOrder(ctx context.Context, data courier.OrderData) (courier.Order, error) {
	if err := c.ValidateCreate(data); err != nil {
		return nil, err
	}

	ctx, span := c.startSpan(ctx, "CreateOrder")
	defer span.End()

	c.logger.Ctx(ctx).Info("Creating Maystro order",
		zap.String("external_order_id", courier.AsString(data["external_order_id"])),
	)

	order, err := c.apiClient.CreateOrder(ctx, data)
	if err != nil {
		c.logError(ctx, err)
		return nil, err
	}

	c.logger.Ctx(ctx).Info("Maystro order created", zap.String("order_id", courier.AsString(order["id"])))
	return order, nil
}

// GetOrder reads one order. Maystro tracks orders by their own id.
func (c *Client) GetOrder(ctx context.Context, trackingID string) (courier.Order, error) {
	ctx, span := c.startSpan(ctx, "GetOrder")
	defer span.End()

	c.logger.Ctx(ctx).Info("Getting Maystro order", zap.String("order_id", trackingID))

	order, err := c.apiClient.GetOrder(ctx, trackingID)
	if err != nil {
		c.logError(ctx, err)
		return nil, err
	}
	return order, nil
}

// OrderLabel returns the order bordereau as a base64 PDF.
func (c *Client) OrderLabel(ctx context.Context, orderID string) (*courier.Label, error) {
	ctx, span := c.startSpan(ctx, "OrderLabel")
	defer span.End()

	c.logger.Ctx(ctx).Info("Getting Maystro label", zap.String("order_id", orderID))

	doc, err := c.apiClient.GetLabel(ctx, orderID)
	if err != nil {
		c.logError(ctx, err)
		return nil, err
	}
	return courier.NewPDFLabel(base64.StdEncoding.EncodeToString(doc)), nil
}

// CreateProduct registers a product in a store. An empty or "0" productID
// lets Maystro assign one.
func (c *Client) CreateProduct(ctx context.Context, storeID, logisticalDescription, productID string) (map[string]any, error) {
	ctx, span := c.startSpan(ctx, "CreateProduct")
	defer span.End()

	if productID == "0" {
		productID = ""
	}

	c.logger.Ctx(ctx).Info("Creating Maystro product",
		zap.String("store_id", storeID),
		zap.String("product_id", productID),
	)

	product, err := c.apiClient.CreateProduct(ctx, ProductRequest{
		StoreID:               storeID,
		LogisticalDescription: logisticalDescription,
		ProductID:             productID,
	})
	if err != nil {
		c.logError(ctx, err)
		return nil, err
	}
	return product, nil
}

// CreateOrderValidationRules returns the rules CreateOrder applies.
func (c *Client) CreateOrderValidationRules() validation.Rules {
	return createOrderRules.Clone()
}

// ValidateCreate checks data against the Maystro rules.
func (c *Client) ValidateCreate(data courier.OrderData) error {
	if err := validation.Validate(createOrderRules, data); err != nil {
		return courier.NewValidationError(Metadata.Name, err)
	}
	return nil
}

// Factory builds Maystro clients from a "token" credential.
func Factory(creds courier.Credentials, deps courier.Deps) (courier.Provider, error) {
	if err := creds.Require(Metadata.Name, "token"); err != nil {
		return nil, err
	}
	return New(Config{Token: creds["token"]}, deps), nil
}

// Register adds Maystro Delivery to r.
func Register(r *courier.Registry) {
	r.Register(Metadata, Factory)
}

// Ensure Client implements courier.Provider interface
var _ courier.Provider = (*Client)(nil)
