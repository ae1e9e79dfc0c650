package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/kingrain94/tenant-items-api/internal/auth"
	"github.com/kingrain94/tenant-items-api/internal/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	schema := flag.String("schema", "", "Tenant schema the token is bound to")
	userID := flag.Int64("user", 0, "User ID for the token")
	refresh := flag.Bool("refresh", false, "Also print a refresh token")
	flag.Parse()

	if *schema == "" {
		log.Fatal("Schema is required")
	}
	if *userID <= 0 {
		log.Fatal("User ID is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	pair, err := auth.NewTokenService(cfg.JWT).IssuePair(*schema, *userID)
	if err != nil {
		log.Fatalf("Error signing token: %v", err)
	}

	fmt.Printf("Access token for %s/%d:\n%s\n", *schema, *userID, pair.AccessToken)
	if *refresh {
		fmt.Printf("Refresh token:\n%s\n", pair.RefreshToken)
	}
}
