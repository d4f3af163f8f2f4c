package plans

import (
	"context"
	"errors"
	"time"

	"startup-marketplace/internal/domain/access"
	"startup-marketplace/internal/errs"

	"gorm.io/gorm"
)

const (
	MsgAlreadySubscribed   = "Already subscribed to this plan"
	msgSubscriptionMissing = "Subscription not found"
)

type SubscribeResult struct {
	Subscription *Subscription
	Reactivated  bool
}

// Subscribe activates planID for userID. An inactive row is reactivated in place; an active one
// is a conflict. Concurrent calls resolve through the (user, plan) unique index and a
// conditional update, so at most one of them wins.
func Subscribe(ctx context.Context, db *gorm.DB, userID, planID uint, expiresAt *time.Time) (*SubscribeResult, error) {
	var res SubscribeResult
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var plan Plan
		if err := tx.First(&plan, planID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound(msgPlanNotFound)
			}
			return errs.Database("failed to load plan", err)
		}

		now := time.Now().UTC()

		var existing Subscription
		err := tx.Where("user_id = ? AND plan_id = ?", userID, planID).Take(&existing).Error
		switch {
		case err == nil:
			if existing.IsActive {
				return errs.Conflict(MsgAlreadySubscribed)
			}
			r := tx.Model(&Subscription{}).
				Where("id = ? AND is_active = ?", existing.ID, false).
				Updates(map[string]any{"is_active": true, "started_at": now, "expires_at": expiresAt})
			if r.Error != nil {
				return errs.Database("failed to reactivate subscription", r.Error)
			}
			if r.RowsAffected == 0 {
				return errs.Conflict(MsgAlreadySubscribed)
			}
			existing.IsActive = true
			existing.StartedAt = now
			existing.ExpiresAt = expiresAt
			existing.Plan = &plan
			res = SubscribeResult{Subscription: &existing, Reactivated: true}
			return nil

		case errors.Is(err, gorm.ErrRecordNotFound):
			sub := Subscription{UserID: userID, PlanID: planID, IsActive: true, StartedAt: now, ExpiresAt: expiresAt}
			if err := tx.Create(&sub).Error; err != nil {
				if errs.IsUniqueViolation(err) {
					return errs.Conflict(MsgAlreadySubscribed)
				}
				return errs.Database("failed to create subscription", err)
			}
			sub.Plan = &plan
			res = SubscribeResult{Subscription: &sub}
			return nil

		default:
			return errs.Database("failed to load subscription", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Unsubscribe deactivates the (userID, planID) row and returns it. The row is kept for later
// reactivation.
func Unsubscribe(ctx context.Context, db *gorm.DB, userID, planID uint) (*Subscription, error) {
	var sub Subscription
	err := db.WithContext(ctx).Preload("Plan").Where("user_id = ? AND plan_id = ?", userID, planID).Take(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound(msgSubscriptionMissing)
	}
	if err != nil {
		return nil, errs.Database("failed to load subscription", err)
	}
	if err := db.WithContext(ctx).Model(&sub).UpdateColumn("is_active", false).Error; err != nil {
		return nil, errs.Database("failed to deactivate subscription", err)
	}
	sub.IsActive = false
	return &sub, nil
}

// ListActive returns userID's active subscriptions with their plans, newest first.
func ListActive(ctx context.Context, db *gorm.DB, userID uint) ([]Subscription, error) {
	var out []Subscription
	err := db.WithContext(ctx).
		Preload("Plan").
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("started_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, errs.Database("failed to load subscriptions", err)
	}
	return out, nil
}

// DeactivateExpired turns off active subscriptions whose expiry is at or before now.
func DeactivateExpired(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	r := db.WithContext(ctx).Model(&Subscription{}).
		Where("is_active = ? AND expires_at IS NOT NULL AND expires_at <= ?", true, now).
		UpdateColumn("is_active", false)
	return r.RowsAffected, errs.Database("failed to deactivate expired subscriptions", r.Error)
}

// CountActiveByPlan maps plan id to its number of active subscribers.
func CountActiveByPlan(ctx context.Context, db *gorm.DB) (map[uint]int64, error) {
	var rows []struct {
		PlanID uint
		Total  int64
	}
	err := db.WithContext(ctx).Model(&Subscription{}).
		Select("plan_id, COUNT(*) AS total").
		Where("is_active = ?", true).
		Group("plan_id").
		Scan(&rows).Error
	if err != nil {
		return nil, errs.Database("failed to count subscribers", err)
	}
	out := make(map[uint]int64, len(rows))
	for _, r := range rows {
		out[r.PlanID] = r.Total
	}
	return out, nil
}

// Entitlements resolves a user's allowed-field tokens from their active plans.
type Entitlements struct {
	db *gorm.DB
}

func NewEntitlements(db *gorm.DB) *Entitlements {
	return &Entitlements{db: db}
}

// AllowedFields returns the union of tokens over userID's active subscriptions. Tokens outside
// the vocabulary are ignored.
func (e *Entitlements) AllowedFields(ctx context.Context, userID uint) (access.TokenSet, error) {
	subs, err := ListActive(ctx, e.db, userID)
	if err != nil {
		return nil, err
	}
	set := access.NewTokenSet()
	for _, s := range subs {
		if s.Plan == nil {
			continue
		}
		for _, t := range s.Plan.AllowedFields {
			if t.Valid() {
				set.Add(t)
			}
		}
	}
	return set, nil
}
