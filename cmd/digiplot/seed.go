package main

import (
	"fmt"
	"time"

	"digiplot/internal/config"
	"digiplot/internal/seed"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the schema and load the demo portfolio into postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.StoreDriver != config.StorePostgres {
				return fmt.Errorf("seed needs STORE_DRIVER=postgres; the memory store seeds itself on start")
			}
			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			fx, err := seed.Load(cmd.Context(), a.store, time.Now())
			if err != nil {
				return err
			}
			a.logger.Info("Demo data loaded",
				zap.Int64("landlord_id", fx.LandlordID),
				zap.Int("properties", len(fx.PropertyIDs)),
				zap.Int("units", len(fx.UnitIDs)),
				zap.Int("tenants", len(fx.TenantIDs)),
				zap.Int("payments", len(fx.PaymentIDs)),
				zap.Int("maintenance_requests", len(fx.RequestIDs)),
			)
			return nil
		},
	}
}
