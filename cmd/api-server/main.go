package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orghub.app/api-server/core/config"
	"orghub.app/api-server/core/db"
	"orghub.app/api-server/core/telemetry"
	"orghub.app/api-server/internal/auth"
	"orghub.app/api-server/internal/http/handler"
	"orghub.app/api-server/internal/http/middleware"
	"orghub.app/api-server/internal/http/router"
	"orghub.app/api-server/internal/service"
	"orghub.app/api-server/internal/store"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	shutdownTelemetry, err := telemetry.Setup(ctx)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			slog.Error("telemetry shutdown failed", "error", err)
		}
	}()

	pool, err := db.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool, cfg.Database.Namespace); err != nil {
		return err
	}

	issuer, err := auth.NewTokenIssuer(cfg.Token)
	if err != nil {
		return err
	}

	stores := store.New(pool, cfg.Database.Namespace)
	orgService := service.NewOrganizationService(stores.Organizations, stores.Admins, stores.Documents)
	adminService := service.NewAdminService(stores.Admins, stores.Organizations)

	engine := router.New(router.Handlers{
		Organization: handler.NewOrganizationHandler(orgService),
		Document:     handler.NewDocumentHandler(orgService),
		Auth:         handler.NewAuthHandler(adminService, issuer),
		RequireAuth:  middleware.RequireAuth(issuer),
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", server.Addr, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
