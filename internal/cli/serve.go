package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/msomdec/wish-tracker/internal/handler"
	"github.com/msomdec/wish-tracker/internal/service"
	"github.com/msomdec/wish-tracker/internal/telemetry"
)

const serviceName = "wish-tracker"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Init(ctx, serviceName, Version, cfg.Environment, cfg.OTLPEndpoint)
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			slog.Error("telemetry shutdown error", "error", err)
		}
	}()

	db, err := openDB(cmd)
	if err != nil {
		return err
	}
	defer db.Close()
	slog.Info("database migrations applied", "path", cfg.DatabasePath)

	categories := service.NewCategoryService(db.Categories(), db.Wishes(), db)
	deps := handler.Deps{
		Auth:          service.NewAuthService(cfg.JWTSecret, cfg.JWTTTL),
		Identity:      service.NewIdentityService(db.Users(), db.Categories(), db.Wishes(), db),
		Categories:    categories,
		Wishes:        service.NewWishService(db.Wishes(), categories, db),
		SignInLimiter: service.NewRateLimiter(cfg.SignInRate, cfg.SignInBurst),
		DB:            db.SqlDB,
		Proxy: handler.ProxyHeaders{
			Trust:  cfg.TrustProxyHeaders,
			Email:  cfg.EmailHeader,
			Name:   cfg.NameHeader,
			Avatar: cfg.AvatarHeader,
		},
		CookieSecure: cfg.CookieSecure,
	}
	if !cfg.TrustProxyHeaders {
		slog.Warn("proxy identity headers are not trusted; sign-in is disabled")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.NewHandler(deps),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}
