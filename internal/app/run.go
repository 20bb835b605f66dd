package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"climate-api/internal/config"
	"climate-api/internal/db"
	"climate-api/internal/httpapi"
	"climate-api/internal/modules/climate"
	climateviews "climate-api/internal/modules/climate/views"
)

const shutdownTimeout = 10 * time.Second

// Run serves the API until ctx is canceled or the listener fails.
func Run(ctx context.Context, cfg config.Config) error {
	ln, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.HTTPAddr, err)
	}
	return serve(ctx, cfg, ln)
}

func serve(ctx context.Context, cfg config.Config, ln net.Listener) error {
	slog.Info("config loaded",
		"appEnv", cfg.AppEnv,
		"logLevel", cfg.LogLevel.String(),
		"httpAddr", cfg.HTTPAddr,
		"corsAllowedOrigins", cfg.CORSAllowedOrigins,
		"dbDriver", cfg.Driver,
		"sqlitePath", cfg.Path,
		"dbMaxOpenConns", cfg.MaxOpenConns,
		"dbMaxIdleConns", cfg.MaxIdleConns,
		"dbConnMaxLifetime", cfg.ConnMaxLifetime,
		"dbLogSQL", cfg.LogSQL,
		"tobsStation", cfg.TOBSStation,
	)

	dbConn, err := db.Open(cfg, slog.Default())
	if err != nil {
		_ = ln.Close()
		return err
	}
	defer func() {
		closeErr := db.Close(dbConn)
		if closeErr != nil {
			slog.Error("db close", "error", closeErr)
		}
	}()
	slog.Info("database connection successful")

	if err := db.VerifySchema(ctx, dbConn, cfg.Driver, db.RequiredSchema); err != nil {
		_ = ln.Close()
		return err
	}

	if err := climateviews.LoadTemplates(); err != nil {
		_ = ln.Close()
		return err
	}

	router := httpapi.NewRouter(dbConn)
	climate.RegisterFeature(router, dbConn, cfg)

	srv := httpapi.NewServer(cfg, router)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	slog.Info("http shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	err = <-errCh
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return ctx.Err()
}
