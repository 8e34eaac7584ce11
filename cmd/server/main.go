package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"aquaflow/internal/company"
	companyrepo "aquaflow/internal/company/repository"
	"aquaflow/internal/config"
	"aquaflow/internal/domain"
	"aquaflow/internal/driver"
	driverrepo "aquaflow/internal/driver/repository"
	"aquaflow/internal/infrastructure/kafka"
	"aquaflow/internal/infrastructure/logger"
	"aquaflow/internal/infrastructure/mysql"
	"aquaflow/internal/infrastructure/postgres"
	"aquaflow/internal/infrastructure/redis"
	"aquaflow/internal/metrics"
	"aquaflow/internal/onboarding"
	"aquaflow/internal/order"
	orderservice "aquaflow/internal/order/service"
	"aquaflow/internal/product"
	"aquaflow/internal/seed"
	"aquaflow/internal/server"
	"aquaflow/internal/session"
	"aquaflow/internal/store"
	"aquaflow/internal/user"
)

type defaults struct {
	companies []domain.Company
	products  []domain.Product
	drivers   []domain.DeliveryDriver
	users     []domain.User
	orders    []domain.Order
}

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	ctx := context.Background()

	slot, closeSlot, err := openSlot(ctx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("opening store", zap.Error(err))
	}
	defer closeSlot.Close()

	var seeds defaults
	if cfg.Store.SeedDefaults {
		seeds = defaults{
			companies: seed.Companies(),
			products:  seed.Products(),
			drivers:   seed.Drivers(),
			users:     seed.Users(),
			orders:    seed.Orders(),
		}
	}

	var publisher interface {
		orderservice.EventPublisher
		io.Closer
	} = kafka.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		zapLogger.Info("publishing order events", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}
	defer publisher.Close()

	var registry onboarding.Registry = onboarding.DisabledRegistry{}
	if cfg.Remote.DatabaseURL != "" {
		remoteDB, err := postgres.NewConnection(ctx, cfg.Remote.DatabaseURL)
		if err != nil {
			zapLogger.Fatal("connecting to onboarding database", zap.Error(err))
		}
		defer remoteDB.Close()
		registry = postgres.NewRegistry(remoteDB, cfg.Remote.Timeout)
		zapLogger.Info("onboarding backend connected")
	}

	products := product.NewModule(ctx, slot, seeds.products, zapLogger)
	drivers := driverrepo.NewDriverRepository(slot, seeds.drivers, zapLogger.With(zap.String("module", "driver")))
	drivers.Load(ctx)
	companyRepo := companyrepo.NewCompanyRepository(slot, seeds.companies, zapLogger.With(zap.String("module", "company")))
	companyRepo.Load(ctx)
	orders := order.NewModule(ctx, slot, seeds.orders, products.Repository, drivers, companyRepo, publisher, cfg, zapLogger)
	fleet := driver.NewModule(drivers, orders.Service, zapLogger)
	companies := company.NewModule(companyRepo, orders.Repository, zapLogger)
	users := user.NewModule(ctx, slot, seeds.users, companies.Repository, zapLogger)
	onboard := onboarding.NewModule(registry, companies.Service, zapLogger)
	issuer := session.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	router := server.NewRouter(server.Controllers{
		Sessions:   session.NewController(users.Repository, issuer, zapLogger),
		Orders:     orders.Controller,
		Products:   products.Controller,
		Drivers:    fleet.Controller,
		Companies:  companies.Controller,
		Users:      users.Controller,
		Dashboard:  metrics.NewController(orders.Repository, drivers, companies.Repository, zapLogger),
		Onboarding: onboard.Controller,
	}, issuer, users.Repository, zapLogger)

	srv := server.New(cfg.Server, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}

// openSlot returns the store backend selected by STORE_DRIVER and the
// resource to close on exit.
func openSlot(ctx context.Context, cfg *config.Config, logger *zap.Logger) (store.Slot, io.Closer, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMySQL:
		db, err := mysql.NewConnection(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := mysql.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("database connected")
		return mysql.NewSlot(db), db, nil
	case config.StoreDriverRedis:
		rdb, err := redis.Initialize(ctx, cfg.Redis.URL)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("redis connected")
		return redis.NewSlot(rdb), rdb, nil
	default:
		logger.Info("using in-memory store")
		return store.NewMemorySlot(), nopCloser{}, nil
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
