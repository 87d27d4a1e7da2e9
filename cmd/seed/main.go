package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hotelcluster/internal/config"
	"hotelcluster/internal/db"
	"hotelcluster/internal/model"
	"hotelcluster/internal/repository"
)

// SeedHotelData represents one hotel in the seed file.
type SeedHotelData struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

var defaultHotels = []SeedHotelData{
	{ID: 1, Name: "Harbour View", Active: true},
	{ID: 2, Name: "Garden Court", Active: true},
	{ID: 3, Name: "Station Square", Active: true},
}

func main() {
	hotelsFile := flag.String("hotels", "", "path to a JSON file of hotels to seed")
	flag.Parse()

	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()

	// Connect to database
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(&model.Hotel{}, &model.UserProfile{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	hotels := defaultHotels
	if *hotelsFile != "" {
		hotels, err = loadHotelsFile(*hotelsFile)
		if err != nil {
			log.Fatalf("Failed to load hotels file: %v", err)
		}
		log.Printf("Loaded %d hotels from %s", len(hotels), *hotelsFile)
	}

	ctx := context.Background()
	hotelRepo := repository.NewHotelRepository(gormDB)

	log.Println("Seeding hotels into database...")
	seeded, updated, err := seedHotels(ctx, hotelRepo, hotels)
	if err != nil {
		log.Fatalf("Failed to seed hotels: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New hotels created: %d", seeded)
	log.Printf("  - Existing hotels updated: %d", updated)

	// An initial admin is only seeded when explicitly configured.
	if principal := os.Getenv("SEED_ADMIN_PRINCIPAL"); principal != "" {
		userRepo := repository.NewUserRepository(gormDB)
		if err := seedAdmin(ctx, userRepo, principal); err != nil {
			log.Fatalf("Failed to seed admin: %v", err)
		}
		log.Printf("  - Admin profile ensured for %s", principal)
	}
}

// loadHotelsFile reads the hotel seed list from a local JSON file.
func loadHotelsFile(path string) ([]SeedHotelData, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var hotels []SeedHotelData
	if err := json.Unmarshal(body, &hotels); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return hotels, nil
}

// seedHotels seeds hotels into the database, creating new ones or updating existing ones.
func seedHotels(ctx context.Context, repo repository.HotelRepository, hotels []SeedHotelData) (seeded int, updated int, err error) {
	for _, item := range hotels {
		if item.ID <= 0 || item.Name == "" {
			log.Printf("Skipping invalid hotel entry: %+v", item)
			continue
		}

		existing, err := repo.FindByID(ctx, item.ID)
		if err != nil && err != gorm.ErrRecordNotFound {
			return seeded, updated, fmt.Errorf("error checking hotel %d: %w", item.ID, err)
		}

		if existing != nil {
			existing.Name = item.Name
			existing.IsActive = item.Active
			if err := repo.Update(ctx, existing); err != nil {
				return seeded, updated, fmt.Errorf("error updating hotel %d: %w", item.ID, err)
			}
			updated++
		} else {
			hotel := model.Hotel{
				ID:       item.ID,
				Name:     item.Name,
				IsActive: item.Active,
			}
			if err := repo.Create(ctx, &hotel); err != nil {
				return seeded, updated, fmt.Errorf("error creating hotel %d: %w", item.ID, err)
			}
			seeded++
		}
	}

	return seeded, updated, nil
}

// seedAdmin ensures an active admin profile exists for the principal.
func seedAdmin(ctx context.Context, repo repository.UserRepository, principal string) error {
	existing, err := repo.FindByPrincipal(ctx, principal)
	if err != nil && err != gorm.ErrRecordNotFound {
		return fmt.Errorf("error checking admin %s: %w", principal, err)
	}

	if existing != nil {
		existing.Role = model.RoleAdmin
		existing.IsActive = true
		return repo.Save(ctx, existing)
	}

	username := os.Getenv("SEED_ADMIN_USERNAME")
	if username == "" {
		username = "cluster-admin"
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		return fmt.Errorf("SEED_ADMIN_PASSWORD must be set to create a new admin")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	return repo.Create(ctx, &model.UserProfile{
		Principal:    principal,
		Name:         "Cluster Administrator",
		Username:     username,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		IsActive:     true,
	})
}
