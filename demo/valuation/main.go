package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/kamdentle/valuation-gateway/pkg/config"
	"github.com/kamdentle/valuation-gateway/pkg/core"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not loaded:", err)
	}

	// Load the YAML config
	loader := config.NewGatewayLoader(
		&config.EnvExpander{},
		&config.GatewayDefaults{},
		&config.RequiredFieldValidator{},
		&config.AuthValidator{},
	)

	cfg, err := loader.Load("demo/valuation/gateway.yaml")
	if err != nil {
		log.Fatal(err)
	}

	// Create gateway from config
	gw, err := core.New(cfg.(*config.Gateway))
	if err != nil {
		log.Fatal("Failed to create gateway:", err)
	}

	identifier := os.Getenv("DEMO_UVC")
	if identifier == "" {
		identifier = "ABC123"
	}

	// First lookup, no mileage filter
	result, err := gw.FetchValuation(context.Background(), identifier, nil)
	if err != nil {
		log.Fatal("Fetch failed:", err)
	}
	fmt.Println("valuation (no mileage):", result)

	// Second lookup reuses the cached token
	mileage := 15000
	result, err = gw.FetchValuation(context.Background(), identifier, &mileage)
	if err != nil {
		log.Fatal("Fetch failed:", err)
	}
	fmt.Println("valuation (mileage 15000):", result)
}
