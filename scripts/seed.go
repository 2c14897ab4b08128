//go:build ignore

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/hugh/otp-auth/internal/auth"
	"github.com/hugh/otp-auth/internal/database/models"
	"github.com/hugh/otp-auth/internal/store"
	"github.com/hugh/otp-auth/pkg/config"
	"github.com/hugh/otp-auth/pkg/util"
	"github.com/joho/godotenv"
)

// Creates a verified demo account so the frontend can log in without
// a working SMTP relay.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(cfg.Server.Env)
	ctx := context.Background()

	users, closeStore, err := store.Open(ctx, &cfg.Database, logger)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer closeStore(ctx)

	email := os.Getenv("DEMO_EMAIL")
	password := os.Getenv("DEMO_PASSWORD")
	name := os.Getenv("DEMO_NAME")

	if email == "" {
		email = "demo@example.com"
	}
	if password == "" {
		password = "demo1234"
	}
	if name == "" {
		name = "Demo User"
	}

	if _, err := users.FindByEmail(ctx, email); err == nil {
		fmt.Printf("User %s already exists\n", email)
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Fatalf("failed to look up user: %v", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Name:              name,
		Email:             email,
		PasswordHash:      hash,
		IsAccountVerified: true,
	}
	if err := users.Create(ctx, user); err != nil {
		log.Fatalf("failed to create user: %v", err)
	}

	fmt.Printf("Created demo user:\n")
	fmt.Printf("  Email: %s\n", email)
	fmt.Printf("  Password: %s\n", password)
	fmt.Printf("  ID: %s\n", user.ID)
}
