package dsn

import (
	"fmt"
	"os"
)

// FromEnv assembles the postgres connection string from environment
// variables, with local development defaults.
func FromEnv() string {
	host := getenv("DB_HOST", "localhost")
	port := getenv("DB_PORT", "5432")
	user := getenv("DB_USER", "postgres")
	pass := os.Getenv("DB_PASSWORD")
	name := getenv("DB_NAME", "custoticket")

	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, pass, name, port)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
