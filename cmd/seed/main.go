// Command main loads categories and demo data into the GatorMarket database.
package main

import (
	"context"
	"flag"
	"log"

	"gatormarket/internal/config"
	"gatormarket/internal/database"
	"gatormarket/internal/seed"
	"gatormarket/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	perUser := flag.Int("products", 3, "Listings to create per user")
	shouldClean := flag.Bool("clean", false, "Delete existing marketplace data before seeding")
	categoriesOnly := flag.Bool("categories-only", false, "Only load the built-in categories")
	randSeed := flag.Int64("seed", 0, "Random seed for reproducible data (0 picks one)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	if *categoriesOnly {
		if err := seed.Categories(db); err != nil {
			log.Fatalf("Category seeding failed: %v", err)
		}
		log.Println("Categories loaded")
		return
	}

	uploadDir := cfg.ImageUploadDir
	if uploadDir == "" {
		uploadDir = service.DefaultImageUploadDir
	}

	log.Printf("Seeding %d users with %d listings each (clean=%v)", *numUsers, *perUser, *shouldClean)
	s := seed.NewSeeder(db, service.NewDiskImageStore(uploadDir), *randSeed)
	if err := s.Run(context.Background(), seed.Options{
		Users:           *numUsers,
		ProductsPerUser: *perUser,
		Clean:           *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Done. All demo users have the password: %s", seed.DemoPassword)
}
