// Command main runs the database seeder for Inkwell.
package main

import (
	"flag"
	"log"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 10, "Number of users to create")
	numArticles := flag.Int("articles", 40, "Number of articles to create")
	numComments := flag.Int("comments", 120, "Number of comments to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d articles, %d comments, clean=%v\n",
		*numUsers, *numArticles, *numComments, *shouldClean)

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

	seeder := seed.New(db, seed.Options{
		NumUsers:     *numUsers,
		NumArticles:  *numArticles,
		NumComments:  *numComments,
		PasswordSalt: cfg.PasswordSalt,
		ShouldClean:  *shouldClean,
	})
	if err := seeder.Run(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
