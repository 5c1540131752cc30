package httpapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/courierdz/pkg/courier"
	"github.com/tournevent/courierdz/pkg/courier/httpapi"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestClient(baseURL string, auth httpapi.Auth) *httpapi.Client {
	return httpapi.New(httpapi.Config{
		Provider:  "Test",
		BaseURL:   baseURL,
		Auth:      auth,
		UserAgent: "courierdz-test",
	}, courier.Deps{Logger: otelzap.New(zap.NewNop())})
}

func TestClient_Get_JoinsPathAndQuery(t *testing.T) {
	var gotPath, gotQuery, gotAuth, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		gotUA = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL+"/", httpapi.Bearer("secret"))

	resp, err := client.Get(context.Background(), "/api/v1/get/order/label", url.Values{"tracking": {"ECO-1"}})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/api/v1/get/order/label", gotPath)
	assert.Equal(t, "tracking=ECO-1", gotQuery)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "courierdz-test", gotUA)

	var body map[string]any
	require.NoError(t, resp.Decode(&body))
	assert.Equal(t, true, body["ok"])
}

func TestClient_Post_EncodesJSON(t *testing.T) {
	var got []map[string]any
	var contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &got)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, httpapi.Token("abc"))

	resp, err := client.Post(context.Background(), "stores/orders/", []map[string]any{{"wilaya": 16}})
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, resp.IsEmpty())
	assert.Equal(t, "application/json", contentType)
	require.Len(t, got, 1)
	assert.Equal(t, float64(16), got[0]["wilaya"])
}

func TestClient_Post_NilBodySendsNothing(t *testing.T) {
	var length int64 = -2
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		length = r.ContentLength
		assert.Empty(t, r.Header.Get("Content-Type"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, nil).Post(context.Background(), "/tarification", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), length)
}

func TestHeaders_SetsEveryPair(t *testing.T) {
	h := http.Header{}
	httpapi.Headers(map[string]string{"X-API-ID": "id", "X-API-TOKEN": "tok"})(h)

	assert.Equal(t, "id", h.Get("X-API-ID"))
	assert.Equal(t, "tok", h.Get("X-API-TOKEN"))
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := newTestClient(srv.URL, nil).Get(context.Background(), "/", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, courier.ErrHTTP))
}

func TestResponse_Decode_Malformed(t *testing.T) {
	resp := &httpapi.Response{Provider: "Test", StatusCode: 200, Body: []byte("<html>")}

	var v map[string]any
	err := resp.Decode(&v)
	require.Error(t, err)
	assert.Equal(t, courier.KindHTTP, courier.KindOf(err))
}

func TestResponse_UnexpectedStatus(t *testing.T) {
	resp := &httpapi.Response{Provider: "Test", StatusCode: 503, Body: []byte(`{"message":"maintenance"}`)}

	err := resp.UnexpectedStatus()
	assert.Equal(t, 503, err.StatusCode)
	assert.Contains(t, err.Error(), "maintenance")
	assert.True(t, errors.Is(err, courier.ErrHTTP))
}

func TestStatusTable_Interpret(t *testing.T) {
	table := httpapi.StatusTable{Valid: []int{200}, Invalid: []int{401, 403}}

	tests := []struct {
		name    string
		status  int
		want    bool
		wantErr bool
	}{
		{"valid", 200, true, false},
		{"unauthorized", 401, false, false},
		{"forbidden", 403, false, false},
		{"server error", 500, false, true},
		{"not found", 404, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := table.Interpret(&httpapi.Response{Provider: "Test", StatusCode: tt.status})
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, courier.ErrHTTP))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoggingRoundTripper(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	client := httpapi.NewHTTPClient(0, otelzap.New(zap.NewNop()))
	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
}

func TestClient_TransportFailure_LoggedOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	logger := otelzap.New(zap.New(core))

	client := httpapi.New(httpapi.Config{Provider: "Test", BaseURL: srv.URL}, courier.Deps{
		Logger:     logger,
		HTTPClient: httpapi.NewHTTPClient(0, logger),
	})

	_, err := client.Get(context.Background(), "/", nil)
	require.Error(t, err)

	errorLogs := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	require.Len(t, errorLogs, 1)
	assert.Equal(t, "Upstream request failed", errorLogs[0].Message)
	assert.Equal(t, 1, logs.FilterMessage("HTTP request failed").Len())
}
