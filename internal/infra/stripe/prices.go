package stripe

import (
	"context"
	"strings"

	"startup-marketplace/internal/domain/plans"

	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/price"
	"gorm.io/gorm"
)

// PriceIterator is the subset of *price.Iter the sync needs.
type PriceIterator interface {
	Next() bool
	Price() *stripe.Price
	Err() error
}

type SyncResult struct {
	Synced  int `json:"synced"`
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// ListActivePrices pages through active recurring prices with their products expanded.
func ListActivePrices(key string) PriceIterator {
	stripe.Key = key
	params := &stripe.PriceListParams{}
	params.Active = stripe.Bool(true)
	params.Type = stripe.String("recurring")
	params.AddExpand("data.product")
	return price.List(params)
}

// PlanInputFromPrice maps a price to a plan definition. Metadata keys: plan (display name),
// plan_for (investor|startup_owner), allowed_fields (comma-separated tokens), description.
// It reports false for prices that should not become plans.
func PlanInputFromPrice(p *stripe.Price, productID string) (plans.Input, bool) {
	if p == nil || !p.Active || p.Recurring == nil || p.Product == nil || !p.Product.Active {
		return plans.Input{}, false
	}
	if productID != "" && p.Product.ID != productID {
		return plans.Input{}, false
	}
	md := p.Metadata
	if md["visible"] == "false" {
		return plans.Input{}, false
	}

	in := plans.Input{
		Name:          p.Product.Name,
		PlanFor:       md["plan_for"],
		AllowedFields: splitTokens(md["allowed_fields"]),
		Price:         float64(p.UnitAmount) / 100.0,
		StripePriceID: stripe.String(p.ID),
	}
	if v := md["plan"]; v != "" {
		in.Name = v
	}
	if v := md["description"]; v != "" {
		in.Description = stripe.String(v)
	} else if p.Product.Description != "" {
		in.Description = stripe.String(p.Product.Description)
	}
	return in, true
}

func splitTokens(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// SyncPlans upserts one plan per usable price. A price with invalid metadata aborts the sync.
func SyncPlans(ctx context.Context, db *gorm.DB, it PriceIterator, productID string) (SyncResult, error) {
	var res SyncResult
	for it.Next() {
		in, ok := PlanInputFromPrice(it.Price(), productID)
		if !ok {
			res.Skipped++
			continue
		}
		created, err := plans.UpsertByStripePrice(ctx, db, in)
		if err != nil {
			return res, err
		}
		if created {
			res.Created++
		} else {
			res.Updated++
		}
		res.Synced++
	}
	return res, it.Err()
}
