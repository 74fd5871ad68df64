package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/migrate"
	"github.com/angelmondragon/storefront-backend/pkg/security"
)

func main() {
	adminPassword := flag.String("admin-password", "admin123", "password for admin@shopvn.com")
	userPassword := flag.String("user-password", "user123", "password for user@shopvn.com")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logg := logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx := logg.WithField(context.Background(), "env", cfg.App.Env)

	if cfg.App.IsProd() {
		logg.Error(ctx, "refusing to seed demo data", fmt.Errorf("app env is %s", cfg.App.Env))
		os.Exit(1)
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to connect to database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	seeder := NewSeeder(security.NewHasher(cfg.Password), defaultAccounts(*adminPassword, *userPassword), logg)

	var summary Summary
	err = dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		var runErr error
		summary, runErr = seeder.Run(ctx, tx)
		return runErr
	})
	if err != nil {
		logg.Error(ctx, "seed failed", err)
		os.Exit(1)
	}

	logg.Info(logg.WithFields(ctx, map[string]any{
		"accounts_created":   summary.Accounts,
		"categories_created": summary.Categories,
		"products_created":   summary.Products,
	}), "seed complete")
}
