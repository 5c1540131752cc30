package main

import (
	"context"

	"github.com/tournevent/courierdz/internal/config"
	"github.com/tournevent/courierdz/internal/telemetry"
	"github.com/tournevent/courierdz/pkg/courier"
	"github.com/tournevent/courierdz/pkg/courier/httpapi"
	"github.com/tournevent/courierdz/pkg/courier/mock"
	"github.com/tournevent/courierdz/pkg/courierdz"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
)

func loadConfig() (*config.Config, error) {
	return config.Load()
}

func initLogger(level string) (*otelzap.Logger, error) {
	return telemetry.NewLogger(level)
}

func initTracer(ctx context.Context, cfg *config.Config) (trace.Tracer, func(context.Context) error, error) {
	if !cfg.OTELEnabled {
		return nil, func(context.Context) error { return nil }, nil
	}
	return telemetry.InitTracer(ctx, cfg.OTELEndpoint, cfg.ServiceName, cfg.Version)
}

// enabledFamilies lists the provider families switched on in cfg.
func enabledFamilies(cfg *config.Config) []courierdz.Family {
	var families []courierdz.Family
	if cfg.EcotrackEnabled {
		families = append(families, courierdz.FamilyEcotrack)
	}
	if cfg.YalidineEnabled {
		families = append(families, courierdz.FamilyYalidine)
	}
	if cfg.ProcolisEnabled {
		families = append(families, courierdz.FamilyProcolis)
	}
	if cfg.MaystroEnabled {
		families = append(families, courierdz.FamilyMaystro)
	}
	return families
}

func initRegistry(cfg *config.Config, logger *otelzap.Logger, tracer trace.Tracer) *courier.Registry {
	deps := courier.Deps{
		HTTPClient: httpapi.NewHTTPClient(cfg.HTTPTimeout, logger),
		Logger:     logger,
		Tracer:     tracer,
		UserAgent:  cfg.UserAgent,
	}

	registry := courier.NewRegistry(deps)
	for _, family := range enabledFamilies(cfg) {
		courierdz.RegisterFamily(registry, family)
	}
	if cfg.SandboxEnabled {
		mock.Register(registry)
	}
	return registry
}
