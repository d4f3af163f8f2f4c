package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"startup-marketplace/internal/domain/access"
	"startup-marketplace/internal/domain/plans"
	"startup-marketplace/internal/domain/startups"
	"startup-marketplace/internal/errs"

	"gorm.io/gorm"
)

// Claims is the verified subject of a bearer token.
type Claims struct {
	Subject  string
	Email    string
	Provider string
	Role     string
}

type ProfileUpdate struct {
	Email *string
	Role  *string
}

type Stats struct {
	StartupCount  int64 `json:"startup_count"`
	FavoriteCount int64 `json:"favorite_count"`
	TotalViews    int64 `json:"total_views"`
}

// FindOrCreate resolves claims to a user, creating the row on first sight. New users default
// to the investor role unless the token carries a valid one.
func FindOrCreate(ctx context.Context, db *gorm.DB, c Claims) (*User, error) {
	if strings.TrimSpace(c.Subject) == "" {
		return nil, errs.Validation("Token has no subject", nil)
	}

	var u User
	err := db.WithContext(ctx).Where("firebase_uid = ?", c.Subject).Take(&u).Error
	if err == nil {
		return &u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.Database("failed to load user", err)
	}

	role := c.Role
	if !ValidRole(role) {
		role = access.RoleInvestor
	}
	u = User{
		Email:              c.Email,
		FirebaseUID:        c.Subject,
		AuthProvider:       normalizeProvider(c.Provider),
		Role:               role,
		CurrentPricingPlan: plans.PricingFree,
		CreatedAt:          time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(&u).Error; err != nil {
		if errs.IsUniqueViolation(err) {
			// a concurrent first request created it
			if err := db.WithContext(ctx).Where("firebase_uid = ?", c.Subject).Take(&u).Error; err == nil {
				return &u, nil
			}
		}
		return nil, errs.Database("failed to create user", err)
	}
	return &u, nil
}

func Get(ctx context.Context, db *gorm.DB, id uint) (*User, error) {
	var u User
	if err := db.WithContext(ctx).First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("User not found")
		}
		return nil, errs.Database("failed to load user", err)
	}
	return &u, nil
}

func UpdateProfile(ctx context.Context, db *gorm.DB, id uint, p ProfileUpdate) (*User, error) {
	changes := map[string]any{}
	if p.Email != nil {
		email := strings.TrimSpace(*p.Email)
		if email == "" || !strings.Contains(email, "@") {
			return nil, errs.Validation("Invalid email", nil)
		}
		changes["email"] = email
	}
	if p.Role != nil {
		if !ValidRole(*p.Role) {
			return nil, errs.Validation("role must be startup_owner or investor", nil)
		}
		changes["role"] = *p.Role
	}
	return update(ctx, db, id, changes)
}

// SetPricingPlan stores the legacy display flag. It grants nothing.
func SetPricingPlan(ctx context.Context, db *gorm.DB, id uint, plan string) (*User, error) {
	if !plans.ValidPricing(plan) {
		return nil, errs.Validation("plan must be free or premium", nil)
	}
	return update(ctx, db, id, map[string]any{"current_pricing_plan": plan})
}

func update(ctx context.Context, db *gorm.DB, id uint, changes map[string]any) (*User, error) {
	u, err := Get(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return u, nil
	}
	if err := db.WithContext(ctx).Model(u).Updates(changes).Error; err != nil {
		if errs.IsUniqueViolation(err) {
			return nil, errs.Conflict("Email already in use")
		}
		return nil, errs.Database("failed to update user", err)
	}
	return Get(ctx, db, id)
}

func GetStats(ctx context.Context, db *gorm.DB, id uint) (*Stats, error) {
	var s Stats
	var err error
	if s.StartupCount, err = startups.CountOwned(ctx, db, id); err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Table("favorites").Where("user_id = ?", id).Count(&s.FavoriteCount).Error; err != nil {
		return nil, errs.Database("failed to count favorites", err)
	}
	if s.TotalViews, err = startups.TotalViewsForOwner(ctx, db, id); err != nil {
		return nil, err
	}
	return &s, nil
}
