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

	"github.com/GregMSThompson/ngo-dashboard/internal/bootstrap"
	"github.com/GregMSThompson/ngo-dashboard/internal/config"
	"github.com/GregMSThompson/ngo-dashboard/internal/handlers"
	"github.com/GregMSThompson/ngo-dashboard/internal/middleware"
	"github.com/GregMSThompson/ngo-dashboard/internal/response"
	"github.com/GregMSThompson/ngo-dashboard/internal/router"
	"github.com/GregMSThompson/ngo-dashboard/internal/services"
	"github.com/GregMSThompson/ngo-dashboard/pkg/logger"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.ToContext(ctx, bs.Log)

	// registration countdown reference
	clock := services.NewExpiryClock(cfg.RefreshInterval)
	go clock.Run(ctx)

	// services
	fserv := services.NewFcraService(bs.Backend, cfg.Registration, clock.Now)
	gaserv := services.NewGrantApplicationService(bs.Backend, bs.Cache)
	cserv, err := services.NewCatalogService()
	exitOnError("grant catalog failed to load", err, bs.Log)
	oserv := services.NewOverviewService(fserv, gaserv)

	// response handler
	rh := response.New(bs.Log)

	// dependencies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.FcraSvc = fserv
	deps.GrantApplicationSvc = gaserv
	deps.CatalogSvc = cserv
	deps.OverviewSvc = oserv

	var auth func(http.Handler) http.Handler
	if bs.Firebase != nil {
		auth = middleware.NewMiddleware(bs.Firebase, rh).FirebaseAuth
	}

	// router
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.NewRouter(deps, auth),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			bs.Log.Warn("server shutdown failed", "error", err)
		}
	}()

	bs.Log.Info("server listening", "addr", srv.Addr)
	err = srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}
	exitOnError("server start failed", err, bs.Log)
}
