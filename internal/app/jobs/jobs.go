package jobs

import (
	"context"
	"log/slog"
	"time"

	"startup-marketplace/internal/domain/plans"

	"gorm.io/gorm"
)

const jobTimeout = time.Minute

type Jobs struct {
	db     *gorm.DB
	logger *slog.Logger
	now    func() time.Time
}

func NewJobs(db *gorm.DB, logger *slog.Logger) *Jobs {
	return &Jobs{db: db, logger: logger, now: time.Now}
}

// ExpireSubscriptions deactivates subscriptions whose expiry has passed.
func (j *Jobs) ExpireSubscriptions() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := plans.DeactivateExpired(ctx, j.db, j.now().UTC())
	if err != nil {
		j.logger.Error("subscription expiry job failed", "error", err)
		return
	}
	if n > 0 {
		j.logger.Info("deactivated expired subscriptions", "count", n)
	}
}
