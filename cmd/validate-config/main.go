package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/foodhealth/food-health-tracker/internal/config"
)

func main() {
	fmt.Println("Validating configuration...")

	if err := godotenv.Load(); err != nil {
		fmt.Printf("warning: .env file not found: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("configuration invalid:\n%v\n", err)
		os.Exit(1)
	}

	fmt.Println("Configuration valid!")
	fmt.Printf("  - Server Port: %s\n", cfg.Server.Port)
	fmt.Printf("  - DB Host: %s\n", cfg.DB.Host)
	fmt.Printf("  - DB Port: %s\n", cfg.DB.Port)
	fmt.Printf("  - DB User: %s\n", cfg.DB.User)
	fmt.Printf("  - DB Password: %s\n", maskSecret(cfg.DB.Password))
	fmt.Printf("  - DB Name: %s\n", cfg.DB.DBName)
	fmt.Printf("  - Redis: %s:%s (cache TTL %s)\n", cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.CacheTTL)
	fmt.Printf("  - OFF Regional: %s (countries=%s)\n", cfg.OpenFoodFacts.RegionalBaseURL, cfg.OpenFoodFacts.RegionalCountry)
	fmt.Printf("  - OFF Global: %s\n", cfg.OpenFoodFacts.GlobalBaseURL)
	fmt.Printf("  - OFF Timeout: %s\n", cfg.OpenFoodFacts.RequestTimeout)
	fmt.Printf("  - Log Level: %v\n", cfg.Logger.Level)
	fmt.Printf("  - Log Output: %s\n", cfg.Logger.OutputPath)
	fmt.Printf("  - Log Format: %s\n", cfg.Logger.Format)
}

func maskSecret(secret string) string {
	if secret == "" {
		return "<not set>"
	}
	if len(secret) <= 8 {
		return "***"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}
