package startups

import (
	"context"
	"time"

	"startup-marketplace/internal/errs"

	"gorm.io/gorm"
)

// ViewStore records and counts profile views in the database.
type ViewStore struct {
	db *gorm.DB
}

func NewViewStore(db *gorm.DB) *ViewStore {
	return &ViewStore{db: db}
}

func (s *ViewStore) RecordView(ctx context.Context, userID, startupID uint) error {
	v := View{UserID: userID, StartupID: startupID, CreatedAt: time.Now()}
	return errs.Database("failed to record view", s.db.WithContext(ctx).Create(&v).Error)
}

func (s *ViewStore) CountViews(ctx context.Context, startupID uint) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&View{}).Where("startup_id = ?", startupID).Count(&n).Error
	return n, errs.Database("failed to count views", err)
}

// TotalViewsForOwner sums views across every startup ownerID has published.
func TotalViewsForOwner(ctx context.Context, db *gorm.DB, ownerID uint) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&View{}).
		Joins("JOIN startups ON startups.id = startup_views.startup_id").
		Where("startups.user_id = ?", ownerID).
		Count(&n).Error
	return n, errs.Database("failed to count views", err)
}
