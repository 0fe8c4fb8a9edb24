// Command ngoctl is the operator CLI for the NGO dashboard backend. It runs
// the same services as the API against the configured upstream and cache.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/GregMSThompson/ngo-dashboard/internal/bootstrap"
	"github.com/GregMSThompson/ngo-dashboard/internal/config"
	"github.com/GregMSThompson/ngo-dashboard/internal/handlers"
	"github.com/GregMSThompson/ngo-dashboard/internal/services"
	"github.com/GregMSThompson/ngo-dashboard/pkg/logger"
)

var (
	logLevel string
	timeout  time.Duration
)

// app holds the services wired by PersistentPreRunE.
var app struct {
	bs           *bootstrap.Bootstrap
	cancel       context.CancelFunc
	fcra         handlers.FcraService
	applications handlers.GrantApplicationService
	catalog      handlers.CatalogService
}

var rootCmd = &cobra.Command{
	Use:           "ngoctl",
	Short:         "Operate the NGO dashboard backend from the terminal",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.New()
		cfg.LogFormat = "text"
		cfg.AuthEnabled = false
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}

		bs, err := bootstrap.Run(cfg)
		app.bs = bs
		if err != nil {
			return fmt.Errorf("bootstrap: %w", err)
		}

		var ctx context.Context
		ctx, app.cancel = context.WithTimeout(logger.ToContext(cmd.Context(), bs.Log), timeout)
		cmd.SetContext(ctx)

		// One-shot commands read the clock once; no ticker is started.
		clock := services.NewExpiryClock(cfg.RefreshInterval)
		app.fcra = services.NewFcraService(bs.Backend, cfg.Registration, clock.Now)
		app.applications = services.NewGrantApplicationService(bs.Backend, bs.Cache)
		app.catalog, err = services.NewCatalogService()
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (default: LOGLEVEL env)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Operation timeout")

	rootCmd.AddCommand(fcraCmd)
	rootCmd.AddCommand(grantsCmd)
}

// closeApp releases what PersistentPreRunE opened. It runs whether or not
// the command succeeded.
func closeApp() {
	if app.cancel != nil {
		app.cancel()
	}
	if app.bs != nil {
		app.bs.Close()
	}
}

// execute runs the command line and releases resources afterwards.
func execute(ctx context.Context, args []string) error {
	defer closeApp()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

func main() {
	if err := execute(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
