package main

import (
	"context"
	"errors"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ParthChaturvedi07/InvestorSarthi/internal/config"
	"github.com/ParthChaturvedi07/InvestorSarthi/internal/db"
	"github.com/ParthChaturvedi07/InvestorSarthi/internal/model"
	"github.com/ParthChaturvedi07/InvestorSarthi/internal/repository"
)

// Seeds the first admin user so the /api/auth/register route can be locked
// down after bootstrap. Reads ADMIN_USERNAME, ADMIN_EMAIL, ADMIN_PASSWORD.
func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	username := os.Getenv("ADMIN_USERNAME")
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}
	if username == "" {
		username = "admin"
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)

	if existing, err := userRepo.FindByEmail(ctx, email); err == nil && existing != nil {
		log.Printf("User %s already exists, nothing to do", email)
		return
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("Failed to check existing user: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         "admin",
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	log.Printf("Created admin user %s (%s)", username, email)
}
