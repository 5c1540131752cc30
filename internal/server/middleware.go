package server

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tournevent/courierdz/pkg/courier"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	errorKindKey    = "error_kind"
)

// requestID propagates the caller's X-Request-ID or assigns a new one.
func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// requestLogger emits one structured line per request.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String(requestIDKey, c.GetString(requestIDKey)),
		}

		log := s.logger.Ctx(c.Request.Context())
		switch {
		case status >= 500:
			log.Error("http_request", fields...)
		case status >= 400:
			log.Warn("http_request", fields...)
		default:
			log.Info("http_request", fields...)
		}
	}
}

// instrument wraps a provider handler with a span and the request metrics.
func (s *Server) instrument(operation string, h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		provider := c.Param("provider")
		ctx, span := s.tracer.Start(c.Request.Context(), "gateway."+operation)
		defer span.End()
		span.SetAttributes(
			attribute.String("courier.provider", provider),
			attribute.String("request.id", c.GetString(requestIDKey)),
		)
		c.Request = c.Request.WithContext(ctx)

		start := time.Now()
		h(c)

		status := c.Writer.Status()
		span.SetAttributes(attribute.Int("http.status_code", status))
		s.metrics.RecordRequest(operation, provider, strconv.Itoa(status), time.Since(start).Seconds())

		if kind, ok := c.Get(errorKindKey); ok {
			k := kind.(courier.Kind)
			span.SetStatus(codes.Error, string(k))
			s.metrics.RecordError(provider, string(k))
		}
	}
}
