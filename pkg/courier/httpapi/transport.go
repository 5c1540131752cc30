package httpapi

import (
	"net/http"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// LoggingRoundTripper logs every upstream exchange at debug level.
type LoggingRoundTripper struct {
	// Proxied executes the request.
	Proxied http.RoundTripper
	Logger  *otelzap.Logger
}

// RoundTrip executes the request and logs details.
func (lrt *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	proxied := lrt.Proxied
	if proxied == nil {
		proxied = http.DefaultTransport
	}
	logger := lrt.Logger
	if logger == nil {
		logger = otelzap.New(zap.NewNop())
	}

	resp, err := proxied.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		// the caller reports the failure with provider context
		logger.Ctx(req.Context()).Debug("HTTP request failed",
			zap.String("method", req.Method),
			zap.String("url", redactedURL(req)),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Ctx(req.Context()).Debug("HTTP request completed",
		zap.String("method", req.Method),
		zap.String("url", redactedURL(req)),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", duration),
	)

	return resp, nil
}

// NewHTTPClient returns an http.Client with logging middleware. A zero
// timeout keeps the transport default.
func NewHTTPClient(timeout time.Duration, logger *otelzap.Logger) *http.Client {
	return &http.Client{
		Transport: &LoggingRoundTripper{
			Proxied: http.DefaultTransport,
			Logger:  logger,
		},
		Timeout: timeout,
	}
}

func redactedURL(req *http.Request) string {
	u := *req.URL
	u.User = nil
	return u.String()
}
