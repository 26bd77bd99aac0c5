package main

import (
	"context"
	"fmt"
	"log"

	"go.uber.org/zap"

	"adminSeeder/internal/config"
	"adminSeeder/internal/db"
	"adminSeeder/internal/logger"
	"adminSeeder/internal/password"
	"adminSeeder/models"
	"adminSeeder/repository"
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

	d, err := db.Open(cfg.Database.Path)
	if err != nil {
		logger.Logger.Fatal("open db", zap.String("path", cfg.Database.Path), zap.Error(err))
	}
	defer func() {
		if err := d.Close(); err != nil {
			logger.Logger.Warn("close db", zap.Error(err))
		}
	}()

	users := repository.NewUserRepository(d)
	ctx := context.Background()

	admins, err := users.ListByRole(ctx, models.RoleAdmin)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Admin users found: %d\n", len(admins))
	for _, u := range admins {
		fmt.Printf("  - ID: %d, Username: %s, Role: %s, Status: %s\n", u.ID, u.Username, u.Role, u.Status)
	}

	u, err := users.GetByUsername(ctx, cfg.Admin.Username)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if u == nil {
		fmt.Printf("User %q not found\n", cfg.Admin.Username)
		return
	}
	ok, err := password.Verify(u.PasswordHash, cfg.Admin.Password)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Password validation result for %q: %t\n", u.Username, ok)
}
