package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/xenking/cart-pricing-engine/internal/discount"
	"github.com/xenking/cart-pricing-engine/internal/handler"
	"github.com/xenking/cart-pricing-engine/internal/pricing"
	"github.com/xenking/cart-pricing-engine/internal/voucher"
)

// Run creates all dependencies, starts the HTTP server, and handles
// graceful shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr))

	// Voucher definition table: file when configured, seed otherwise.
	table := seedVouchers()
	if cfg.VouchersFile != "" {
		loaded, err := voucher.LoadFile(cfg.VouchersFile)
		if err != nil {
			return errors.Wrap(err, "load vouchers")
		}
		table = loaded
		lg.Info("Voucher table loaded", zap.String("file", cfg.VouchersFile), zap.Int("codes", len(table)))
	}

	pricingCfg, err := cfg.Pricing.ToPricing()
	if err != nil {
		return errors.Wrap(err, "pricing config")
	}

	// Domain services.
	validator := voucher.NewValidator(table)
	registry := discount.NewRegistry()
	pricingSvc := pricing.NewService(pricingCfg, validator, registry)

	// HTTP handlers.
	h := handler.NewHandler(pricingSvc)
	router := handler.NewRouter(h)

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: otelhttp.NewHandler(router, "pricing-api",
			otelhttp.WithTracerProvider(m.TracerProvider()),
			otelhttp.WithMeterProvider(m.MeterProvider()),
		),
	}

	// Graceful shutdown: wait for context cancellation, drain, then stop.
	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()
		lg.Info("Draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		close(shutdownDone)
	}()

	lg.Info("Server listening", zap.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server")
	}
	<-shutdownDone
	return nil
}
