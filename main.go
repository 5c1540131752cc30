package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/tournevent/courierdz/internal/config"
	"github.com/tournevent/courierdz/internal/server"
	"github.com/tournevent/courierdz/pkg/courier"
	"github.com/tournevent/courierdz/pkg/courierdz"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

var version = "0.1.0"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "courierdz",
		Short:        "Unified access to Algerian courier APIs",
		Version:      version,
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newProvidersCmd(), newCheckCmd(), newRatesCmd())
	return root
}

// app bundles what every command needs once configuration is loaded.
type app struct {
	cfg      *config.Config
	logger   *otelzap.Logger
	registry *courier.Registry
	shutdown func(context.Context) error
}

func setup(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	tracer, shutdown, err := initTracer(ctx, cfg)
	if err != nil {
		logger.Warn("Failed to initialize tracer", zap.Error(err))
		tracer, shutdown = nil, func(context.Context) error { return nil }
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		registry: initRegistry(cfg, logger, tracer),
		shutdown: shutdown,
	}, nil
}

func (a *app) close(ctx context.Context) {
	_ = a.shutdown(ctx)
	_ = a.logger.Sync()
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := setup(ctx)
			if err != nil {
				return err
			}
			defer a.close(context.Background())

			a.logger.Info("Starting courierdz gateway",
				zap.Int("port", a.cfg.Port),
				zap.String("version", a.cfg.Version),
				zap.Int("providers", a.registry.Count()),
			)

			srv := server.New(server.Config{Port: a.cfg.Port}, a.registry, a.logger)
			if err := srv.Run(ctx); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		},
	}
}

func newProvidersCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "providers",
		Short: "List the supported couriers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close(context.Background())

			return printProviders(cmd.OutOrStdout(), a.registry.Providers(), asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print metadata as JSON")
	return cmd
}

func printProviders(w io.Writer, providers []courier.Metadata, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(providers)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTITLE\tWEBSITE")
	for _, p := range providers {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Name, p.Title, p.Website)
	}
	return tw.Flush()
}

func newCheckCmd() *cobra.Command {
	var creds map[string]string
	cmd := &cobra.Command{
		Use:   "check <provider>",
		Short: "Test credentials against a courier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := setup(ctx)
			if err != nil {
				return err
			}
			defer a.close(context.Background())

			svc, err := courierdz.NewService(a.registry, args[0], creds)
			if err != nil {
				return err
			}
			valid, err := svc.TestCredentials(ctx)
			if err != nil {
				return err
			}
			if !valid {
				return fmt.Errorf("%s rejected the credentials", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: credentials valid\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringToStringVar(&creds, "cred", nil, "credential as key=value, repeatable")
	return cmd
}

func newRatesCmd() *cobra.Command {
	var (
		creds    map[string]string
		from, to int
	)
	cmd := &cobra.Command{
		Use:   "rates <provider>",
		Short: "Print delivery rates as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := setup(ctx)
			if err != nil {
				return err
			}
			defer a.close(context.Background())

			svc, err := courierdz.NewService(a.registry, args[0], creds)
			if err != nil {
				return err
			}
			rates, err := svc.GetRates(ctx, from, to)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rates)
		},
	}
	cmd.Flags().StringToStringVar(&creds, "cred", nil, "credential as key=value, repeatable")
	cmd.Flags().IntVar(&from, "from", 0, "origin wilaya, 0 for any")
	cmd.Flags().IntVar(&to, "to", 0, "destination wilaya, 0 for all")
	return cmd
}
