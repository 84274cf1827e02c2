package main

import (
	"flag"
	"log"

	"backend/internal/app/dsn"
	"backend/internal/app/repository"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Install/uninstall lifecycle for the plugin table. Both directions are
// idempotent: an existing table is left alone, dropping an absent one is a
// no-op.
func main() {
	uninstall := flag.Bool("uninstall", false, "drop the plugin table instead of creating it")
	flag.Parse()

	_ = godotenv.Load()

	repo, err := repository.New(dsn.FromEnv(), logrus.New())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Connected to database successfully")

	if *uninstall {
		if err := repo.DropAll(); err != nil {
			log.Fatalf("Failed to drop plugin table: %v", err)
		}
		log.Println("Plugin table removed")
		return
	}

	if err := repo.EnsureSchema(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Println("Database migration completed successfully")
}
