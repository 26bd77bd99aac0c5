package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"adminSeeder/internal/config"
	"adminSeeder/internal/db"
	"adminSeeder/internal/logger"
	"adminSeeder/internal/seeder"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := logger.Init(cfg.Log.Level); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()
	logger.Logger.Debug("configuration loaded", zap.Stringer("config", cfg))

	open := db.Open
	if cfg.Database.AutoMigrate {
		open = db.OpenAndMigrate
	}
	d, err := open(cfg.Database.Path)
	if err != nil {
		logger.Logger.Fatal("open db", zap.String("path", cfg.Database.Path), zap.Error(err))
	}

	acct := seeder.Account{
		Username: cfg.Admin.Username,
		Password: cfg.Admin.Password,
		Role:     cfg.Admin.Role,
	}
	// A failed write is reported on stdout; the process still exits normally.
	_ = seeder.SeedAndClose(context.Background(), d, acct, nil, logger.Logger, cfg.Admin.BcryptCost)
}
