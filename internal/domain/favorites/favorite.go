package favorites

import (
	"context"
	"errors"
	"time"

	"startup-marketplace/internal/domain/startups"
	"startup-marketplace/internal/errs"

	"gorm.io/gorm"
)

type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_favorites_user_startup" json:"user_id"`
	StartupID uint      `gorm:"not null;uniqueIndex:idx_favorites_user_startup;index" json:"startup_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Entry is a favorited startup's public summary plus when it was saved.
type Entry struct {
	startups.Summary
	FavoritedAt time.Time `json:"favorited_at"`
}

const msgAlreadyFavorited = "Startup already in favorites"

func Add(ctx context.Context, db *gorm.DB, userID, startupID uint) error {
	ok, err := startups.Exists(ctx, db, startupID)
	if err != nil {
		return err
	}
	if !ok {
		return errs.NotFound("Startup not found")
	}

	var existing Favorite
	err = db.WithContext(ctx).Where("user_id = ? AND startup_id = ?", userID, startupID).Take(&existing).Error
	if err == nil {
		return errs.Conflict(msgAlreadyFavorited)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.Database("failed to check favorite", err)
	}

	f := Favorite{UserID: userID, StartupID: startupID, CreatedAt: time.Now().UTC()}
	if err := db.WithContext(ctx).Create(&f).Error; err != nil {
		if errs.IsUniqueViolation(err) {
			return errs.Conflict(msgAlreadyFavorited)
		}
		return errs.Database("failed to add favorite", err)
	}
	return nil
}

func Remove(ctx context.Context, db *gorm.DB, userID, startupID uint) error {
	r := db.WithContext(ctx).Where("user_id = ? AND startup_id = ?", userID, startupID).Delete(&Favorite{})
	if r.Error != nil {
		return errs.Database("failed to remove favorite", r.Error)
	}
	if r.RowsAffected == 0 {
		return errs.NotFound("Favorite not found")
	}
	return nil
}

// List returns userID's favorites, most recently saved first.
func List(ctx context.Context, db *gorm.DB, userID uint) ([]Entry, error) {
	out := []Entry{}
	err := db.WithContext(ctx).Table("favorites").
		Select("startups.id, startups.name, startups.industry, startups.year_founded, startups.description, "+
			"startups.website_link, startups.founder_background, startups.team_size, startups.sell_equity, "+
			"startups.sell_business, startups.reason_for_selling, startups.desired_buyer_profile, "+
			"startups.asking_price, startups.created_at, favorites.created_at AS favorited_at").
		Joins("JOIN startups ON startups.id = favorites.startup_id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at DESC").
		Scan(&out).Error
	if err != nil {
		return nil, errs.Database("failed to load favorites", err)
	}
	return out, nil
}

func IsFavorited(ctx context.Context, db *gorm.DB, userID, startupID uint) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(&Favorite{}).Where("user_id = ? AND startup_id = ?", userID, startupID).Count(&n).Error
	return n > 0, errs.Database("failed to check favorite", err)
}
