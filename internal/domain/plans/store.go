package plans

import (
	"context"
	"errors"
	"strings"

	"startup-marketplace/internal/domain/access"
	"startup-marketplace/internal/errs"

	"gorm.io/gorm"
)

const msgPlanNotFound = "Plan not found"

// Input is a complete plan definition, as sent on create or derived from a Stripe price.
type Input struct {
	Name          string
	PlanFor       string
	AllowedFields []string
	Price         float64
	Description   *string
	StripePriceID *string
}

// Patch updates only the non-nil fields.
type Patch struct {
	Name          *string
	PlanFor       *string
	AllowedFields []string
	Price         *float64
	Description   *string
}

// Listing is a plan as seen by a possibly authenticated requester.
type Listing struct {
	Plan
	IsSubscribed       bool `json:"is_subscribed"`
	SubscriptionActive bool `json:"subscription_active"`
}

func (in Input) toPlan() (*Plan, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errs.Validation("Plan name is required", nil)
	}
	audience := NormalizeAudience(in.PlanFor)
	if audience == "" {
		return nil, errs.Validation("plan_for must be investor or startup_owner", nil)
	}
	if in.Price < 0 {
		return nil, errs.Validation("Price must not be negative", nil)
	}
	tokens, err := access.ParseTokens(in.AllowedFields)
	if err != nil {
		return nil, err
	}
	return &Plan{
		Name:          name,
		PlanFor:       audience,
		AllowedFields: tokens,
		Price:         in.Price,
		Description:   in.Description,
		StripePriceID: in.StripePriceID,
	}, nil
}

// List returns plans ordered by price, optionally restricted to one audience.
func List(ctx context.Context, db *gorm.DB, planFor string) ([]Plan, error) {
	q := db.WithContext(ctx).Model(&Plan{})
	if planFor != "" {
		audience := NormalizeAudience(planFor)
		if audience == "" {
			return nil, errs.Validation("plan_for must be investor or startup_owner", nil)
		}
		q = q.Where("plan_for = ?", audience)
	}
	var out []Plan
	if err := q.Order("price ASC").Order("id ASC").Find(&out).Error; err != nil {
		return nil, errs.Database("failed to load plans", err)
	}
	return out, nil
}

// ListForUser decorates List with userID's subscription state on each plan.
func ListForUser(ctx context.Context, db *gorm.DB, planFor string, userID uint) ([]Listing, error) {
	list, err := List(ctx, db, planFor)
	if err != nil {
		return nil, err
	}

	var subs []Subscription
	if err := db.WithContext(ctx).Where("user_id = ?", userID).Find(&subs).Error; err != nil {
		return nil, errs.Database("failed to load subscriptions", err)
	}
	state := make(map[uint]bool, len(subs))
	for _, s := range subs {
		state[s.PlanID] = s.IsActive
	}

	out := make([]Listing, 0, len(list))
	for _, p := range list {
		active, ok := state[p.ID]
		out = append(out, Listing{Plan: p, IsSubscribed: ok, SubscriptionActive: active})
	}
	return out, nil
}

func Get(ctx context.Context, db *gorm.DB, id uint) (*Plan, error) {
	var p Plan
	if err := db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound(msgPlanNotFound)
		}
		return nil, errs.Database("failed to load plan", err)
	}
	return &p, nil
}

func Create(ctx context.Context, db *gorm.DB, in Input) (*Plan, error) {
	p, err := in.toPlan()
	if err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		if errs.IsUniqueViolation(err) {
			return nil, errs.Conflict("A plan with this Stripe price already exists")
		}
		return nil, errs.Database("failed to create plan", err)
	}
	return p, nil
}

func Update(ctx context.Context, db *gorm.DB, id uint, patch Patch) (*Plan, error) {
	p, err := Get(ctx, db, id)
	if err != nil {
		return nil, err
	}

	in := Input{
		Name:          p.Name,
		PlanFor:       p.PlanFor,
		Price:         p.Price,
		Description:   p.Description,
		StripePriceID: p.StripePriceID,
	}
	for _, t := range p.AllowedFields {
		in.AllowedFields = append(in.AllowedFields, string(t))
	}
	if patch.Name != nil {
		in.Name = *patch.Name
	}
	if patch.PlanFor != nil {
		in.PlanFor = *patch.PlanFor
	}
	if patch.AllowedFields != nil {
		in.AllowedFields = patch.AllowedFields
	}
	if patch.Price != nil {
		in.Price = *patch.Price
	}
	if patch.Description != nil {
		in.Description = patch.Description
	}

	next, err := in.toPlan()
	if err != nil {
		return nil, err
	}
	next.ID = p.ID
	next.CreatedAt = p.CreatedAt
	if err := db.WithContext(ctx).Save(next).Error; err != nil {
		return nil, errs.Database("failed to update plan", err)
	}
	return next, nil
}

// Delete removes the plan together with every subscription to it.
func Delete(ctx context.Context, db *gorm.DB, id uint) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := Get(ctx, tx, id); err != nil {
			return err
		}
		if err := tx.Where("plan_id = ?", id).Delete(&Subscription{}).Error; err != nil {
			return errs.Database("failed to delete subscriptions", err)
		}
		if err := tx.Delete(&Plan{}, id).Error; err != nil {
			return errs.Database("failed to delete plan", err)
		}
		return nil
	})
}

// UpsertByStripePrice creates or refreshes the plan bound to in.StripePriceID.
func UpsertByStripePrice(ctx context.Context, db *gorm.DB, in Input) (created bool, err error) {
	if in.StripePriceID == nil || *in.StripePriceID == "" {
		return false, errs.Validation("Stripe price id is required", nil)
	}
	next, err := in.toPlan()
	if err != nil {
		return false, err
	}

	var existing Plan
	err = db.WithContext(ctx).Where("stripe_price_id = ?", *in.StripePriceID).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := db.WithContext(ctx).Create(next).Error; err != nil {
			return false, errs.Database("failed to create plan", err)
		}
		return true, nil
	case err != nil:
		return false, errs.Database("failed to load plan", err)
	}

	next.ID = existing.ID
	next.CreatedAt = existing.CreatedAt
	if next.Description == nil {
		next.Description = existing.Description
	}
	if err := db.WithContext(ctx).Save(next).Error; err != nil {
		return false, errs.Database("failed to update plan", err)
	}
	return false, nil
}
