package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/angelmondragon/storefront-backend/api/routes"
	"github.com/angelmondragon/storefront-backend/internal/auth"
	"github.com/angelmondragon/storefront-backend/internal/cart"
	"github.com/angelmondragon/storefront-backend/internal/categories"
	"github.com/angelmondragon/storefront-backend/internal/checkout"
	"github.com/angelmondragon/storefront-backend/internal/ledger"
	"github.com/angelmondragon/storefront-backend/internal/orders"
	products "github.com/angelmondragon/storefront-backend/internal/products"
	"github.com/angelmondragon/storefront-backend/internal/users"
	"github.com/angelmondragon/storefront-backend/internal/wallet"
	"github.com/angelmondragon/storefront-backend/pkg/auth/session"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/instance"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
	"github.com/angelmondragon/storefront-backend/pkg/migrate"
	"github.com/angelmondragon/storefront-backend/pkg/outbox"
	"github.com/angelmondragon/storefront-backend/pkg/redis"
	"github.com/angelmondragon/storefront-backend/pkg/security"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	services, err := buildServices(cfg, logg, dbClient, sessionManager, metrics.NewSettlementMetrics(registry))
	if err != nil {
		logg.Error(context.Background(), "failed to wire services", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.GetID(),
		"node_id":  cfg.Checkout.NodeID,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, dbClient, redisClient, sessionManager, registry, registry, services),
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-sigCtx.Done():
		logg.Info(ctx, "api server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "api server shutdown failed", err)
		}
	}
}

func buildServices(cfg *config.Config, logg *logger.Logger, dbClient *db.Client, sessions *session.Manager, settlement *metrics.SettlementMetrics) (routes.Services, error) {
	var svc routes.Services
	gdb := dbClient.DB()

	publisher := outbox.NewService(outbox.NewRepository(gdb), logg)

	ledgerSvc, err := ledger.NewService(ledger.NewRepository(gdb))
	if err != nil {
		return svc, err
	}
	verifier, err := wallet.NewVerifier(cfg.Wallet.CardVerifier)
	if err != nil {
		return svc, err
	}
	walletRepo := wallet.NewRepository(gdb)
	walletSvc, err := wallet.NewService(dbClient, walletRepo, ledgerSvc, verifier, publisher, settlement, cfg.Wallet)
	if err != nil {
		return svc, err
	}

	cartRepo := cart.NewRepository(gdb)
	cartSvc, err := cart.NewService(dbClient, cartRepo)
	if err != nil {
		return svc, err
	}

	authSvc, err := auth.NewService(auth.ServiceParams{
		DB:             dbClient,
		UserRepo:       users.NewRepository(gdb),
		Wallets:        walletSvc,
		Carts:          cartSvc,
		Hasher:         security.NewHasher(cfg.Password),
		SessionManager: sessions,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		return svc, err
	}

	productSvc, err := products.NewService(products.NewRepository(gdb))
	if err != nil {
		return svc, err
	}
	categorySvc, err := categories.NewService(categories.NewRepository(gdb))
	if err != nil {
		return svc, err
	}

	ordersRepo := orders.NewRepository(gdb)
	ordersSvc, err := orders.NewService(ordersRepo, dbClient, publisher)
	if err != nil {
		return svc, err
	}

	numbers, err := checkout.NewOrderNumberGenerator(cfg.Checkout.NodeID)
	if err != nil {
		return svc, err
	}
	checkoutSvc, err := checkout.NewService(dbClient, cartRepo, ordersRepo, walletRepo, walletSvc, numbers, nil, publisher, settlement)
	if err != nil {
		return svc, err
	}

	return routes.Services{
		Auth:       authSvc,
		Categories: categorySvc,
		Products:   productSvc,
		Cart:       cartSvc,
		Checkout:   checkoutSvc,
		Orders:     ordersSvc,
		Wallet:     walletSvc,
	}, nil
}
