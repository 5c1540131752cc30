package ecotrack_test

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/courierdz/pkg/courier"
	"github.com/tournevent/courierdz/pkg/courier/ecotrack"
	"github.com/tournevent/courierdz/pkg/courier/validation"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

func newTestClient(mockClient *ecotrack.MockAPIClient) *ecotrack.Client {
	logger := otelzap.New(zap.NewNop())
	return ecotrack.NewWithAPIClient(
		ecotrack.Config{Token: "token", Metadata: courier.Metadata{Name: courier.Dhd}},
		mockClient,
		logger,
		nil,
	)
}

func validOrder() courier.OrderData {
	return courier.OrderData{
		"reference":   "CMD-1001",
		"nom_client":  "Yacine B.",
		"telephone":   "0550123456",
		"adresse":     "12 rue Didouche Mourad",
		"commune":     "Alger Centre",
		"code_wilaya": 16,
		"montant":     3500,
		"type":        1,
		"stop_desk":   0,
	}
}

func TestClient_TestCredentials(t *testing.T) {
	mockAPI := ecotrack.NewMockAPIClient()
	mockAPI.OnTestCredentials = func(ctx context.Context) (bool, error) {
		return false, nil
	}

	ok, err := newTestClient(mockAPI).TestCredentials(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClient_GetRates_All(t *testing.T) {
	rates, err := newTestClient(ecotrack.NewMockAPIClient()).GetRates(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Len(t, rates, 2)
}

func TestClient_GetRates_FilterByDestination(t *testing.T) {
	mockAPI := ecotrack.NewMockAPIClient()
	mockAPI.OnGetFees = func(ctx context.Context) (*ecotrack.FeesResponse, error) {
		return &ecotrack.FeesResponse{Livraison: []courier.RateEntry{
			{"wilaya_id": float64(9), "tarif": "500"},
			{"wilaya_id": float64(16), "tarif": "400"},
			{"wilaya_id": "31", "tarif": "600"},
		}}, nil
	}
	client := newTestClient(mockAPI)

	rates, err := client.GetRates(context.Background(), 5, 16)
	require.NoError(t, err)
	require.Len(t, rates, 1)
	assert.Equal(t, "400", rates[0]["tarif"])

	// String ids are matched too
	rates, err = client.GetRates(context.Background(), 0, 31)
	require.NoError(t, err)
	require.Len(t, rates, 1)
	assert.Equal(t, "600", rates[0]["tarif"])
}

func TestClient_GetRates_NoMatch(t *testing.T) {
	rates, err := newTestClient(ecotrack.NewMockAPIClient()).GetRates(context.Background(), 0, 58)
	require.NoError(t, err)
	assert.NotNil(t, rates)
	assert.Empty(t, rates)
}

func TestClient_GetRates_APIError(t *testing.T) {
	mockAPI := ecotrack.NewMockAPIClient()
	mockAPI.SimulateErrors = true

	_, err := newTestClient(mockAPI).GetRates(context.Background(), 0, 16)
	assert.True(t, errors.Is(err, courier.ErrHTTP))
}

func TestClient_CreateOrder_Success(t *testing.T) {
	mockAPI := ecotrack.NewMockAPIClient()
	var sent courier.OrderData
	mockAPI.OnCreateOrder = func(ctx context.Context, data courier.OrderData) (*ecotrack.CreateOrderResponse, error) {
		sent = data
		success := true
		return &ecotrack.CreateOrderResponse{
			Success: &success,
			Body:    courier.Order{"success": true, "tracking": "ECOB2C3D4"},
		}, nil
	}

	order, err := newTestClient(mockAPI).CreateOrder(context.Background(), validOrder())
	require.NoError(t, err)
	assert.Equal(t, "ECOB2C3D4", order["tracking"])
	assert.Equal(t, "Yacine B.", sent["nom_client"])
}

func TestClient_CreateOrder_UpstreamRefusal(t *testing.T) {
	mockAPI := ecotrack.NewMockAPIClient()
	mockAPI.OnCreateOrder = func(ctx context.Context, data courier.OrderData) (*ecotrack.CreateOrderResponse, error) {
		success := false
		return &ecotrack.CreateOrderResponse{Success: &success, Message: "Commune introuvable"}, nil
	}

	_, err := newTestClient(mockAPI).CreateOrder(context.Background(), validOrder())
	require.Error(t, err)
	assert.True(t, errors.Is(err, courier.ErrCreateOrder))
	assert.Contains(t, err.Error(), "Commune introuvable")
}

func TestClient_CreateOrder_EmptyOrderMakesNoCall(t *testing.T) {
	mockAPI := ecotrack.NewMockAPIClient()

	_, err := newTestClient(mockAPI).CreateOrder(context.Background(), courier.OrderData{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, courier.ErrValidation))
	assert.Equal(t, 0, mockAPI.Calls())

	var fields validation.Errors
	require.True(t, errors.As(err, &fields))
	assert.Contains(t, fields, "nom_client")
	assert.Contains(t, fields, "type")
}

func TestClient_ValidateCreate_QuantityRequiredWithStock(t *testing.T) {
	client := newTestClient(ecotrack.NewMockAPIClient())

	order := validOrder()
	order["stock"] = 1
	err := client.ValidateCreate(order)
	require.Error(t, err)

	order["quantite"] = 2
	assert.NoError(t, client.ValidateCreate(order))
}

func TestClient_GetOrder_NotImplemented(t *testing.T) {
	mockAPI := ecotrack.NewMockAPIClient()

	_, err := newTestClient(mockAPI).GetOrder(context.Background(), "ECO1")
	assert.True(t, errors.Is(err, courier.ErrNotImplemented))
	assert.Equal(t, 0, mockAPI.Calls())
}

func TestClient_OrderLabel(t *testing.T) {
	label, err := newTestClient(ecotrack.NewMockAPIClient()).OrderLabel(context.Background(), "ECO1")
	require.NoError(t, err)
	assert.Equal(t, courier.LabelPDF, label.Type)

	raw, err := base64.StdEncoding.DecodeString(label.Data)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "ECO1")
}

func TestClient_CreateOrderValidationRules_ReturnsCopy(t *testing.T) {
	client := newTestClient(ecotrack.NewMockAPIClient())

	rules := client.CreateOrderValidationRules()
	assert.Equal(t, "required|integer|in:1,2,3,4", rules["type"])
	rules["type"] = "nullable"

	assert.Equal(t, "required|integer|in:1,2,3,4", client.CreateOrderValidationRules()["type"])
}

func TestBrands(t *testing.T) {
	brands := ecotrack.Brands()
	assert.Len(t, brands, 22)

	seen := map[string]bool{}
	for _, b := range brands {
		assert.NotEmpty(t, b.Metadata.Name)
		assert.NotEmpty(t, b.BaseURL)
		assert.False(t, seen[b.Metadata.Name], "duplicate brand %s", b.Metadata.Name)
		seen[b.Metadata.Name] = true
	}
}

func TestFactory_RequiresToken(t *testing.T) {
	factory := ecotrack.Factory(ecotrack.Brands()[0])

	_, err := factory(courier.Credentials{}, courier.Deps{})
	assert.True(t, errors.Is(err, courier.ErrCredentials))

	p, err := factory(courier.Credentials{"token": "t"}, courier.Deps{})
	require.NoError(t, err)
	assert.Equal(t, courier.Dhd, p.Metadata().Name)
}
