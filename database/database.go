package database

import (
	"context"
	"log"
	"log/slog"
	"time"

	"startup-marketplace/config"
	"startup-marketplace/internal/domain/favorites"
	"startup-marketplace/internal/domain/plans"
	"startup-marketplace/internal/domain/startups"
	"startup-marketplace/internal/domain/users"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	DB    *gorm.DB
	Redis *redis.Client
)

func InitDB() {
	db, err := gorm.Open(postgres.Open(config.DB_URL), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	DB = db

	if err := Migrate(DB); err != nil {
		log.Fatal("AutoMigrate error: ", err)
	}
	slog.Info("connected and migrated database")
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&plans.Plan{},
		&plans.Subscription{},

		&startups.Startup{},
		&startups.Financials{},
		&startups.Traction{},
		&startups.SalesMarketing{},
		&startups.Operational{},
		&startups.Legal{},
		&startups.Assets{},
		&startups.Contacts{},
		&startups.View{},

		&favorites.Favorite{},
	)
}

// InitRedis connects the optional cache. Without REDIS_ADDR, or when the server does not answer,
// Redis stays nil and callers read from the database.
func InitRedis() {
	if config.REDIS_ADDR == "" {
		return
	}
	client := redis.NewClient(&redis.Options{
		Addr:     config.REDIS_ADDR,
		Password: config.REDIS_PASSWORD,
		DB:       config.REDIS_DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("redis unavailable, view counts served from database", "addr", config.REDIS_ADDR, "error", err)
		_ = client.Close()
		return
	}
	Redis = client
}
