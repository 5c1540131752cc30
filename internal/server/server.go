package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tournevent/courierdz/internal/telemetry"
	"github.com/tournevent/courierdz/pkg/courier"
	"github.com/tournevent/courierdz/pkg/courierdz"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 30 * time.Second

// Server is the HTTP gateway in front of the courier adapters.
type Server struct {
	port       int
	dispatcher *courierdz.Dispatcher
	logger     *otelzap.Logger
	tracer     trace.Tracer
	metrics    *telemetry.Metrics
	promReg    *prometheus.Registry
	router     *gin.Engine
}

// Config holds server configuration.
type Config struct {
	Port int
}

// New creates a new server instance serving the providers of registry.
func New(cfg Config, registry *courier.Registry, logger *otelzap.Logger) *Server {
	promReg := prometheus.NewRegistry()
	promReg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	s := &Server{
		port:       cfg.Port,
		dispatcher: courierdz.NewDispatcher(registry),
		logger:     logger,
		tracer:     otel.Tracer("github.com/tournevent/courierdz/internal/server"),
		metrics:    telemetry.NewMetrics(promReg),
		promReg:    promReg,
	}
	s.router = s.routes()
	return s
}

// Handler returns the gateway router.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestID(), s.requestLogger())

	r.GET("/health", s.handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.promReg, promhttp.HandlerOpts{})))

	v1 := r.Group("/v1/providers")
	v1.GET("", s.handleListProviders)
	v1.GET("/:provider", s.handleProvider)
	v1.GET("/:provider/rules", s.instrument("rules", s.handleRules))
	v1.POST("/:provider/credentials/test", s.instrument("test_credentials", s.handleTestCredentials))
	v1.GET("/:provider/rates", s.instrument("get_rates", s.handleGetRates))
	v1.POST("/:provider/orders", s.instrument("create_order", s.handleCreateOrder))
	v1.POST("/:provider/orders/validate", s.instrument("validate_order", s.handleValidateOrder))
	v1.GET("/:provider/orders/:id", s.instrument("get_order", s.handleGetOrder))
	v1.GET("/:provider/orders/:id/label", s.instrument("order_label", s.handleOrderLabel))
	v1.DELETE("/:provider/orders/:id", s.instrument("cancel_order", s.handleCancelOrder))

	return r
}

// Run starts the HTTP server and blocks until ctx is cancelled or the
// listener fails.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("Starting server", zap.Int("port", s.port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
