package yalidine_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/courierdz/pkg/courier"
	"github.com/tournevent/courierdz/pkg/courier/yalidine"
)

func newHTTPClient(t *testing.T, handler http.HandlerFunc) *yalidine.HTTPAPIClient {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "api-id", r.Header.Get("X-API-ID"))
		assert.Equal(t, "api-token", r.Header.Get("X-API-TOKEN"))
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	return yalidine.NewHTTPAPIClient(yalidine.HTTPAPIClientConfig{
		Provider: courier.Yalidine,
		BaseURL:  srv.URL,
		ID:       "api-id",
		Token:    "api-token",
	}, courier.Deps{})
}

func TestHTTPAPIClient_TestCredentials(t *testing.T) {
	tests := []struct {
		status  int
		want    bool
		wantErr bool
	}{
		{http.StatusOK, true, false},
		{http.StatusUnauthorized, false, false},
		{http.StatusInternalServerError, false, false},
		{http.StatusForbidden, false, true},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			client := newHTTPClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/v1/wilayas/", r.URL.Path)
				w.WriteHeader(tt.status)
			})

			got, err := client.TestCredentials(context.Background())
			if tt.wantErr {
				assert.True(t, errors.Is(err, courier.ErrHTTP))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHTTPAPIClient_GetFees_Object(t *testing.T) {
	client := newHTTPClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/fees/", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("from_wilaya_id"))
		assert.Equal(t, "16", r.URL.Query().Get("to_wilaya_id"))
		_, _ = w.Write([]byte(`{"from_wilaya_name":"Batna","to_wilaya_name":"Alger","zone":2}`))
	})

	rates, err := client.GetFees(context.Background(), 5, 16)
	require.NoError(t, err)
	require.Len(t, rates, 1)
	assert.Equal(t, "Alger", rates[0]["to_wilaya_name"])
}

func TestHTTPAPIClient_GetFees_OmitsZeroIDs(t *testing.T) {
	client := newHTTPClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		_, _ = w.Write([]byte(`[{"zone":1},{"zone":2}]`))
	})

	rates, err := client.GetFees(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Len(t, rates, 2)
}

func TestHTTPAPIClient_CreateParcels(t *testing.T) {
	client := newHTTPClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/parcels/", r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		var parcels []map[string]any
		assert.NoError(t, json.Unmarshal(body, &parcels))
		assert.Len(t, parcels, 1)

		_, _ = w.Write([]byte(`{"CMD-42":{"success":true,"status":"true","tracking":"yal-ZZ9900"}}`))
	})

	result, err := client.CreateParcels(context.Background(), []courier.OrderData{{"order_id": "CMD-42"}})
	require.NoError(t, err)
	assert.Equal(t, "yal-ZZ9900", result["CMD-42"]["tracking"])
}

func TestHTTPAPIClient_GetParcel(t *testing.T) {
	client := newHTTPClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/parcels/yal-123456", r.URL.Path)
		_, _ = w.Write([]byte(`{"has_more":false,"total_data":1,"data":[{"tracking":"yal-123456","label":"https://x/label"}]}`))
	})

	resp, err := client.GetParcel(context.Background(), "yal-123456")
	require.NoError(t, err)
	assert.Equal(t, 1, resp.TotalData)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "https://x/label", resp.Data[0]["label"])
}

func TestHTTPAPIClient_GetParcel_ServerError(t *testing.T) {
	client := newHTTPClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.GetParcel(context.Background(), "yal-1")
	assert.True(t, errors.Is(err, courier.ErrHTTP))
}
