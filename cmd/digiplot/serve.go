package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "digiplot/internal/http"
	"digiplot/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			a, err := newApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()
			logger := a.logger

			router := httpapi.NewRouter(httpapi.Services{
				Auth:          a.auth,
				Landlord:      a.landlords,
				Tenant:        a.tenants,
				Payments:      a.payments,
				Notifications: a.notifications,
			}, httpapi.Options{SimulatedLatency: cfg.HTTP.SimulatedLatency}, logger)

			var reminder *service.RentReminder
			if cfg.Reminder.Enabled {
				reminder = service.NewRentReminder(a.store, a.notifications, cfg.Reminder.Schedule, nil, logger)
			}
			srv := service.NewServer(cfg.HTTP.Addr, router, reminder, logger)

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start()
			}()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)

			var runErr error
			select {
			case sig := <-sigCh:
				logger.Info("Shutdown signal received", zap.String("signal", sig.String()))
			case runErr = <-errCh:
				if runErr != nil {
					logger.Error("HTTP server failed", zap.Error(runErr))
				}
			}

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := srv.Stop(shutdownCtx); err != nil {
				logger.Warn("Graceful shutdown failed", zap.Error(err))
			}
			return runErr
		},
	}
}
