package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"digiplot/common/database"
	commonlogger "digiplot/common/logger"
	commonmqtt "digiplot/common/mqtt"
	commonredis "digiplot/common/redis"
	"digiplot/internal/config"
	"digiplot/internal/notify"
	"digiplot/internal/repository"
	"digiplot/internal/seed"
	"digiplot/internal/service"
	"digiplot/internal/store"

	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const serviceName = "digiplot"

// app holds the wired dependencies shared by every command.
type app struct {
	cfg    *config.Config
	logger *zap.Logger

	db          *sql.DB
	redisClient *redis.Client
	mqttClient  *commonmqtt.Client

	store         *repository.Store
	kv            store.KV
	notifications service.NotificationService
	payments      service.PaymentService
	landlords     service.LandlordService
	tenants       service.TenantService
	auth          service.AuthService
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("env-file")
	if path == "" {
		return config.Load(), nil
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return cfg, nil
}

// newApp opens the configured backends. The memory store is seeded with
// the demo portfolio so the service is usable straight away.
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	logger, err := commonlogger.NewLogger(cfg.Log.Level, cfg.Log.Format, serviceName)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	a := &app{cfg: cfg, logger: logger}

	switch cfg.StoreDriver {
	case config.StorePostgres:
		db, err := database.NewPostgresDB(&cfg.Database)
		if err != nil {
			return nil, err
		}
		a.db = db
		if err := repository.Migrate(ctx, db); err != nil {
			a.Close()
			return nil, err
		}
		a.store = repository.NewPostgresStore(db)
		logger.Info("Using postgres store", zap.String("host", cfg.Database.Host), zap.String("database", cfg.Database.Database))
	case config.StoreMemory:
		a.store = repository.NewMemoryStore()
		if _, err := seed.Load(ctx, a.store, time.Now()); err != nil {
			a.Close()
			return nil, err
		}
		logger.Info("Using in-memory store with demo data")
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	var publishers notify.Multi
	if cfg.RedisEnabled {
		a.redisClient = commonredis.NewRedisClient(&cfg.Redis)
		if err := commonredis.Ping(ctx, a.redisClient); err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.kv = store.NewRedisKV(a.redisClient)
		publishers = append(publishers, notify.NewRedisStreamPublisher(a.redisClient, cfg.NotificationStream, 10000))
	} else {
		a.kv = store.NewMemoryKV()
	}
	if cfg.MQTTEnabled {
		c, err := commonmqtt.NewClient(&cfg.MQTT)
		if err != nil {
			// Notifications still land in the store without the broker.
			logger.Warn("MQTT unavailable, notifications will not be pushed", zap.Error(err))
		} else {
			a.mqttClient = c
			publishers = append(publishers, notify.NewMQTTPublisher(c, cfg.MQTT.Topic, cfg.MQTT.QoS))
		}
	}

	var gateway service.PaymentGateway = service.NoopGateway{}
	if cfg.Payment.GatewayURL != "" {
		gateway = service.NewHTTPGateway(cfg.Payment.GatewayURL, cfg.Payment.CallbackURL, logger)
	}

	var clock service.Clock
	a.notifications = service.NewNotificationService(a.store.Notifications, publishers, clock, logger)
	a.payments = service.NewPaymentService(a.store, gateway, a.notifications, cfg.Payment.AutoConfirm, clock, logger)
	a.landlords = service.NewLandlordService(a.store, a.notifications, clock, logger)
	a.tenants = service.NewTenantService(a.store, a.payments, a.notifications, clock, logger)
	a.auth = service.NewAuthService(a.store, a.kv, cfg.Session.TTL, logger)
	return a, nil
}

func (a *app) Close() {
	if a.mqttClient != nil {
		a.mqttClient.Disconnect()
	}
	if a.redisClient != nil {
		_ = commonredis.Close(a.redisClient)
	}
	if a.db != nil {
		_ = database.Close(a.db)
	}
	_ = a.logger.Sync()
}
