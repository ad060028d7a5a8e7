package config

import (
	"log"
	"os"
	"strconv"
)

// Config holds application configuration values.
type Config struct {
	HTTPPort      string
	DatabaseDSN   string
	InvoicePolicy string
	ShopName      string
	ShopAddress   string
	ShopPhone     string
}

// Load reads configuration from environment variables with reasonable defaults.
func Load() Config {
	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = "pharmacy.db"
	}

	policy := os.Getenv("INVOICE_POLICY")
	if policy != "sequential" {
		if policy != "" && policy != "timestamp" {
			log.Printf("unknown INVOICE_POLICY value %q, defaulting to timestamp", policy)
		}
		policy = "timestamp"
	}

	shopName := os.Getenv("SHOP_NAME")
	if shopName == "" {
		shopName = "PharmaApp Medical Store"
	}

	// Validate that port is numeric.
	if _, err := strconv.Atoi(port); err != nil {
		log.Printf("invalid HTTP_PORT value %q, defaulting to 8080", port)
		port = "8080"
	}

	return Config{
		HTTPPort:      port,
		DatabaseDSN:   dsn,
		InvoicePolicy: policy,
		ShopName:      shopName,
		ShopAddress:   os.Getenv("SHOP_ADDRESS"),
		ShopPhone:     os.Getenv("SHOP_PHONE"),
	}
}
