package main

import (
	"flag"
	"fmt"
	"log"

	"go.uber.org/zap"

	"adminSeeder/internal/config"
	"adminSeeder/internal/db"
	"adminSeeder/internal/logger"
)

func main() {
	down := flag.Bool("down", false, "roll back the most recent migration instead of applying pending ones")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := logger.Init(cfg.Log.Level); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	d, err := db.Open(cfg.Database.Path)
	if err != nil {
		logger.Logger.Fatal("open db", zap.String("path", cfg.Database.Path), zap.Error(err))
	}
	defer func() {
		if err := d.Close(); err != nil {
			logger.Logger.Warn("close db", zap.Error(err))
		}
	}()

	if *down {
		v, err := db.RollbackLast(d)
		if err != nil {
			logger.Logger.Error("rollback", zap.Error(err))
			return
		}
		logger.Logger.Info("rolled back", zap.Int("version", v))
	} else {
		if err := db.Migrate(d); err != nil {
			logger.Logger.Error("migrate", zap.Error(err))
			return
		}
		logger.Logger.Info("schema up to date", zap.String("path", cfg.Database.Path))
	}

	tables, err := db.Tables(d)
	if err != nil {
		logger.Logger.Error("list tables", zap.Error(err))
		return
	}
	fmt.Println("Database tables:")
	for _, name := range tables {
		fmt.Printf("  - %s\n", name)
	}
}
