package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	PORT        string
	DB_URL      string
	JWT_SECRET  string
	CORS_ORIGIN string

	// FIREBASE_PROJECT_ID switches token verification to Firebase ID tokens when set.
	FIREBASE_PROJECT_ID string

	REDIS_ADDR           string
	REDIS_PASSWORD       string
	REDIS_DB             int
	VIEW_COUNT_CACHE_TTL time.Duration

	SUBSCRIPTION_EXPIRY_SCHEDULE string

	STRIPE_SECRET_KEY       string
	STRIPE_PLANS_PRODUCT_ID string
)

// LoadEnv reads .env (if any) and the environment into the package vars, exiting on missing
// required values.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}
	if err := Load(); err != nil {
		log.Fatal(err)
	}
}

// Load populates the package vars from the environment.
func Load() error {
	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("CORS_ORIGIN", "http://localhost:3000")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("VIEW_COUNT_CACHE_TTL", "30s")
	v.SetDefault("SUBSCRIPTION_EXPIRY_SCHEDULE", "@every 5m")
	v.AutomaticEnv()

	for _, key := range []string{
		"DB_URL", "JWT_SECRET", "FIREBASE_PROJECT_ID",
		"REDIS_ADDR", "REDIS_PASSWORD",
		"STRIPE_SECRET_KEY", "STRIPE_PLANS_PRODUCT_ID",
	} {
		_ = v.BindEnv(key)
	}

	var err error
	if DB_URL, err = required(v, "DB_URL"); err != nil {
		return err
	}
	if JWT_SECRET, err = required(v, "JWT_SECRET"); err != nil {
		return err
	}

	PORT = v.GetString("PORT")
	CORS_ORIGIN = v.GetString("CORS_ORIGIN")
	FIREBASE_PROJECT_ID = v.GetString("FIREBASE_PROJECT_ID")
	REDIS_ADDR = v.GetString("REDIS_ADDR")
	REDIS_PASSWORD = v.GetString("REDIS_PASSWORD")
	REDIS_DB = v.GetInt("REDIS_DB")
	SUBSCRIPTION_EXPIRY_SCHEDULE = v.GetString("SUBSCRIPTION_EXPIRY_SCHEDULE")
	STRIPE_SECRET_KEY = v.GetString("STRIPE_SECRET_KEY")
	STRIPE_PLANS_PRODUCT_ID = v.GetString("STRIPE_PLANS_PRODUCT_ID")

	VIEW_COUNT_CACHE_TTL, err = time.ParseDuration(v.GetString("VIEW_COUNT_CACHE_TTL"))
	if err != nil {
		return fmt.Errorf("invalid VIEW_COUNT_CACHE_TTL: %w", err)
	}
	return nil
}

func required(v *viper.Viper, key string) (string, error) {
	s := v.GetString(key)
	if s == "" {
		return "", fmt.Errorf("missing required environment variable: %s", key)
	}
	return s, nil
}
