package config

import (
	"log"
	"os"
	"strconv"
)

// ShippingConfig mirrors the back-office shipping settings: flat country-tier
// rates in paisa plus an optional free-shipping threshold for domestic orders.
type ShippingConfig struct {
	DomesticRate      int64
	InternationalRate int64
	FreeShipThreshold int64 // 0 disables free shipping
	EnableDHL         bool
}

type Config struct {
	Port     string
	DBDSN    string
	Store    string // sqlite | memory
	LogFile  string
	Shipping ShippingConfig
	DutyBP   int64 // international duty in basis points (500 = 5%)
}

func envInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
		log.Printf("[config] ignoring bad %s=%q", key, v)
	}
	return def
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "muraqqa.db"
	}
	store := os.Getenv("STORE")
	if store != "memory" {
		store = "sqlite"
	}
	logFile := os.Getenv("LOG_FILE")

	cfg := Config{
		Port:    port,
		DBDSN:   dsn,
		Store:   store,
		LogFile: logFile,
		Shipping: ShippingConfig{
			DomesticRate:      envInt64("SHIP_DOMESTIC", 500),
			InternationalRate: envInt64("SHIP_INTL", 8500),
			FreeShipThreshold: envInt64("FREE_SHIP_THRESHOLD", 0),
			EnableDHL:         os.Getenv("ENABLE_DHL") == "1",
		},
		DutyBP: envInt64("DUTY_RATE_BP", 500),
	}
	log.Printf("[config] PORT=%s STORE=%s DB_DSN=%s SHIP_DOMESTIC=%d SHIP_INTL=%d DUTY_BP=%d",
		cfg.Port, cfg.Store, cfg.DBDSN, cfg.Shipping.DomesticRate, cfg.Shipping.InternationalRate, cfg.DutyBP)
	return cfg
}
