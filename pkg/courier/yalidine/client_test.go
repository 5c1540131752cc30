package yalidine_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/courierdz/pkg/courier"
	"github.com/tournevent/courierdz/pkg/courier/yalidine"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

func newTestClient(mockClient *yalidine.MockAPIClient) *yalidine.Client {
	logger := otelzap.New(zap.NewNop())
	return yalidine.NewWithAPIClient(
		yalidine.Config{ID: "id", Token: "token", Metadata: courier.Metadata{Name: courier.Yalidine}},
		mockClient,
		logger,
		nil,
	)
}

func validParcel() courier.OrderData {
	return courier.OrderData{
		"order_id":           "CMD-42",
		"from_wilaya_name":   "Batna",
		"firstname":          "Nassim",
		"familyname":         "Amrouche",
		"contact_phone":      "0123456789",
		"address":            "Cité Kaidi",
		"to_commune_name":    "Bordj El Kiffan",
		"to_wilaya_name":     "Alger",
		"product_list":       []any{"Presse à café"},
		"Price":              3000,
		"do_insurance":       true,
		"declared_value":     3500,
		"Length":             30,
		"Width":              20,
		"Height":             10,
		"Weight":             6,
		"freeshipping":       true,
		"is_stopdesk":        true,
		"stopdesk_id":        "163001",
		"has_exchange":       false,
		"product_to_collect": false,
	}
}

func TestClient_GetOrder_Found(t *testing.T) {
	mockAPI := yalidine.NewMockAPIClient()
	parcel := courier.Order{"tracking": "yal-123456", "last_status": "Livré"}
	mockAPI.OnGetParcel = func(ctx context.Context, tracking string) (*yalidine.ParcelsResponse, error) {
		return &yalidine.ParcelsResponse{TotalData: 1, Data: []courier.Order{parcel}}, nil
	}

	got, err := newTestClient(mockAPI).GetOrder(context.Background(), "yal-123456")
	require.NoError(t, err)
	assert.Equal(t, parcel, got)
}

func TestClient_GetOrder_NotFound(t *testing.T) {
	mockAPI := yalidine.NewMockAPIClient()
	mockAPI.OnGetParcel = func(ctx context.Context, tracking string) (*yalidine.ParcelsResponse, error) {
		return &yalidine.ParcelsResponse{TotalData: 0, Data: []courier.Order{}}, nil
	}

	_, err := newTestClient(mockAPI).GetOrder(context.Background(), "yal-000000")
	require.Error(t, err)
	assert.True(t, errors.Is(err, courier.ErrTrackingIDNotFound))
	assert.Contains(t, err.Error(), "yal-000000")
}

func TestClient_OrderLabel_URL(t *testing.T) {
	label, err := newTestClient(yalidine.NewMockAPIClient()).OrderLabel(context.Background(), "yal-ABCDEF")
	require.NoError(t, err)
	assert.Equal(t, courier.LabelURL, label.Type)
	assert.Contains(t, label.URL, "yal-ABCDEF")
}

func TestClient_OrderLabel_NotFound(t *testing.T) {
	mockAPI := yalidine.NewMockAPIClient()
	mockAPI.OnGetParcel = func(ctx context.Context, tracking string) (*yalidine.ParcelsResponse, error) {
		return &yalidine.ParcelsResponse{}, nil
	}

	_, err := newTestClient(mockAPI).OrderLabel(context.Background(), "yal-000000")
	assert.True(t, errors.Is(err, courier.ErrTrackingIDNotFound))
}

func TestClient_CreateOrder_Success(t *testing.T) {
	mockAPI := yalidine.NewMockAPIClient()
	var sent []courier.OrderData
	mockAPI.OnCreateParcels = func(ctx context.Context, parcels []courier.OrderData) (map[string]courier.Order, error) {
		sent = parcels
		return map[string]courier.Order{
			"CMD-42": {"status": "true", "tracking": "yal-ZZ9900", "order_id": "CMD-42"},
		}, nil
	}

	order, err := newTestClient(mockAPI).CreateOrder(context.Background(), validParcel())
	require.NoError(t, err)
	assert.Equal(t, "yal-ZZ9900", order["tracking"])
	require.Len(t, sent, 1)
	assert.Equal(t, "CMD-42", sent[0]["order_id"])
}

func TestClient_CreateOrder_Refused(t *testing.T) {
	mockAPI := yalidine.NewMockAPIClient()
	mockAPI.OnCreateParcels = func(ctx context.Context, parcels []courier.OrderData) (map[string]courier.Order, error) {
		return map[string]courier.Order{
			"CMD-42": {"status": "false", "message": "stopdesk_id invalide"},
		}, nil
	}

	_, err := newTestClient(mockAPI).CreateOrder(context.Background(), validParcel())
	require.Error(t, err)
	assert.True(t, errors.Is(err, courier.ErrCreateOrder))
	assert.Contains(t, err.Error(), "stopdesk_id invalide")
}

func TestClient_CreateOrder_MissingEntry(t *testing.T) {
	mockAPI := yalidine.NewMockAPIClient()
	mockAPI.OnCreateParcels = func(ctx context.Context, parcels []courier.OrderData) (map[string]courier.Order, error) {
		return map[string]courier.Order{}, nil
	}

	_, err := newTestClient(mockAPI).CreateOrder(context.Background(), validParcel())
	assert.True(t, errors.Is(err, courier.ErrCreateOrder))
}

func TestClient_CreateOrder_EmptyOrderMakesNoCall(t *testing.T) {
	mockAPI := yalidine.NewMockAPIClient()

	_, err := newTestClient(mockAPI).CreateOrder(context.Background(), courier.OrderData{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, courier.ErrValidation))
	assert.Equal(t, 0, mockAPI.Calls())
}

func TestClient_ValidateCreate_StopdeskIDRequired(t *testing.T) {
	client := newTestClient(yalidine.NewMockAPIClient())

	parcel := validParcel()
	delete(parcel, "stopdesk_id")
	assert.Error(t, client.ValidateCreate(parcel))

	parcel["is_stopdesk"] = false
	assert.NoError(t, client.ValidateCreate(parcel))
}

func TestClient_ValidateCreate_PriceBound(t *testing.T) {
	client := newTestClient(yalidine.NewMockAPIClient())

	parcel := validParcel()
	parcel["Price"] = 150001
	assert.True(t, errors.Is(client.ValidateCreate(parcel), courier.ErrValidation))
}

func TestClient_GetRates(t *testing.T) {
	mockAPI := yalidine.NewMockAPIClient()
	var gotFrom, gotTo int
	mockAPI.OnGetFees = func(ctx context.Context, fromWilaya, toWilaya int) ([]courier.RateEntry, error) {
		gotFrom, gotTo = fromWilaya, toWilaya
		return nil, nil
	}

	rates, err := newTestClient(mockAPI).GetRates(context.Background(), 5, 16)
	require.NoError(t, err)
	assert.NotNil(t, rates)
	assert.Equal(t, 5, gotFrom)
	assert.Equal(t, 16, gotTo)
}

func TestClient_TestCredentials_APIError(t *testing.T) {
	mockAPI := yalidine.NewMockAPIClient()
	mockAPI.SimulateErrors = true

	_, err := newTestClient(mockAPI).TestCredentials(context.Background())
	assert.True(t, errors.Is(err, courier.ErrHTTP))
}

func TestFactory_RequiresIDAndToken(t *testing.T) {
	for _, b := range yalidine.Brands() {
		factory := yalidine.Factory(b)

		_, err := factory(courier.Credentials{"token": "t"}, courier.Deps{})
		assert.True(t, errors.Is(err, courier.ErrCredentials))

		p, err := factory(courier.Credentials{"id": "i", "token": "t"}, courier.Deps{})
		require.NoError(t, err)
		assert.Equal(t, b.Metadata.Name, p.Metadata().Name)
	}
}
