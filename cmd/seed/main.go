// Command main runs the database seeder for the portfolio backend.
package main

import (
	"context"
	"flag"
	"log"

	"portfolio/internal/config"
	"portfolio/internal/database"
	"portfolio/internal/seed"
)

func main() {
	demo := flag.Bool("demo", false, "Also attach fake demo comments to every project")
	perProject := flag.Int("comments", 5, "Demo comments per project (with -demo)")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()

	if err := seed.Projects(ctx, db); err != nil {
		log.Fatalf("Project seeding failed: %v", err)
	}
	log.Println("Project catalog seeded")

	if *demo {
		if err := seed.DemoComments(ctx, db, *perProject); err != nil {
			log.Fatalf("Demo comment seeding failed: %v", err)
		}
		log.Printf("Attached %d demo comments per project", *perProject)
	}
}
