package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ViewStore is the durable source of view events.
type ViewStore interface {
	RecordView(ctx context.Context, userID, startupID uint) error
	CountViews(ctx context.Context, startupID uint) (int64, error)
}

// ViewCounts fronts a ViewStore with a short-lived Redis copy of each startup's view count.
// A nil client or any Redis failure falls through to the store.
type ViewCounts struct {
	store  ViewStore
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewViewCounts(store ViewStore, client *redis.Client, ttl time.Duration, logger *slog.Logger) *ViewCounts {
	if logger == nil {
		logger = slog.Default()
	}
	return &ViewCounts{store: store, client: client, ttl: ttl, logger: logger}
}

func viewCountKey(startupID uint) string {
	return fmt.Sprintf("startup:%d:view_count", startupID)
}

func (v *ViewCounts) CountViews(ctx context.Context, startupID uint) (int64, error) {
	if v.client == nil {
		return v.store.CountViews(ctx, startupID)
	}

	key := viewCountKey(startupID)
	raw, err := v.client.Get(ctx, key).Result()
	if err == nil {
		if n, perr := strconv.ParseInt(raw, 10, 64); perr == nil {
			return n, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		v.logger.Warn("view count cache read failed", "startup_id", startupID, "error", err)
	}

	n, err := v.store.CountViews(ctx, startupID)
	if err != nil {
		return 0, err
	}
	if err := v.client.Set(ctx, key, n, v.ttl).Err(); err != nil {
		v.logger.Warn("view count cache write failed", "startup_id", startupID, "error", err)
	}
	return n, nil
}

// RecordView stores the event and drops the cached count for the startup.
func (v *ViewCounts) RecordView(ctx context.Context, userID, startupID uint) error {
	if err := v.store.RecordView(ctx, userID, startupID); err != nil {
		return err
	}
	if v.client != nil {
		if err := v.client.Del(ctx, viewCountKey(startupID)).Err(); err != nil {
			v.logger.Warn("view count cache invalidation failed", "startup_id", startupID, "error", err)
		}
	}
	return nil
}
