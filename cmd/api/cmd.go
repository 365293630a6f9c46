package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GregMSThompson/dashboard-builder/internal/bootstrap"
	"github.com/GregMSThompson/dashboard-builder/internal/config"
	"github.com/GregMSThompson/dashboard-builder/internal/handlers"
	"github.com/GregMSThompson/dashboard-builder/internal/response"
	"github.com/GregMSThompson/dashboard-builder/internal/router"
	"github.com/GregMSThompson/dashboard-builder/internal/services"
	"github.com/GregMSThompson/dashboard-builder/internal/store"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// bootstrap
	cfg, err := config.New()
	exitOnError("config failed", err, slog.Default())
	bs, err := bootstrap.Run(ctx, cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// stores
	dstore := store.NewDashboardStore(bs.Defaults)
	sstore := store.NewSelectionStore()

	// services
	dserv := services.NewDashboardService(dstore, sstore, bs.Source, bs.Defaults)
	cserv := services.NewCatalogService(bs.Source, sstore)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.Firebase = bs.Firebase
	deps.AuthMode = cfg.AuthMode
	deps.OriginPatterns = cfg.Origins
	deps.Source = bs.Source
	deps.DashboardSvc = dserv
	deps.CatalogSvc = cserv

	// router
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	bs.Log.Info("server starting", "port", cfg.Port, "record", cfg.RecordPath, "auth_mode", cfg.AuthMode)
	err = srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}
	exitOnError("server failed", err, bs.Log)
}
