package stripe

import (
	"context"
	"testing"

	"startup-marketplace/internal/domain/plans"
	"startup-marketplace/internal/errs"
	"startup-marketplace/internal/testutil"

	"github.com/stripe/stripe-go/v75"
)

type sliceIter struct {
	prices []*stripe.Price
	i      int
}

func (s *sliceIter) Next() bool {
	if s.i >= len(s.prices) {
		return false
	}
	s.i++
	return true
}

func (s *sliceIter) Price() *stripe.Price { return s.prices[s.i-1] }
func (s *sliceIter) Err() error           { return nil }

func recurringPrice(id, product string, amount int64, md map[string]string) *stripe.Price {
	return &stripe.Price{
		ID:         id,
		Active:     true,
		UnitAmount: amount,
		Recurring:  &stripe.PriceRecurring{Interval: stripe.PriceRecurringIntervalMonth},
		Product:    &stripe.Product{ID: product, Name: "Investor Access", Active: true},
		Metadata:   md,
	}
}

func TestPlanInputFromPrice(t *testing.T) {
	p := recurringPrice("price_1", "prod_1", 4900, map[string]string{
		"plan":           "Pro",
		"plan_for":       "investor",
		"allowed_fields": "startup, startupRevenue ,contacts",
	})

	in, ok := PlanInputFromPrice(p, "prod_1")
	if !ok {
		t.Fatal("expected price to map to a plan")
	}
	if in.Name != "Pro" || in.Price != 49 || *in.StripePriceID != "price_1" {
		t.Fatalf("unexpected input: %+v", in)
	}
	if len(in.AllowedFields) != 3 || in.AllowedFields[1] != "startupRevenue" {
		t.Fatalf("unexpected tokens: %v", in.AllowedFields)
	}
}

func TestPlanInputFromPrice_Skips(t *testing.T) {
	tests := []struct {
		name  string
		price *stripe.Price
	}{
		{"nil", nil},
		{"other product", recurringPrice("price_1", "prod_other", 100, nil)},
		{"hidden", recurringPrice("price_1", "prod_1", 100, map[string]string{"visible": "false"})},
		{"one-off", &stripe.Price{ID: "price_1", Active: true, Product: &stripe.Product{ID: "prod_1", Active: true}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := PlanInputFromPrice(tt.price, "prod_1"); ok {
				t.Fatal("expected price to be skipped")
			}
		})
	}
}

func TestSyncPlans(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()
	md := map[string]string{"plan_for": "investor", "allowed_fields": "startup"}

	it := &sliceIter{prices: []*stripe.Price{
		recurringPrice("price_a", "prod_1", 1000, md),
		recurringPrice("price_b", "prod_1", 2000, md),
		recurringPrice("price_c", "prod_2", 3000, md),
	}}
	res, err := SyncPlans(ctx, db, it, "prod_1")
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if res.Created != 2 || res.Skipped != 1 || res.Synced != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}

	res, err = SyncPlans(ctx, db, &sliceIter{prices: it.prices}, "prod_1")
	if err != nil {
		t.Fatalf("resync: %v", err)
	}
	if res.Updated != 2 || res.Created != 0 {
		t.Fatalf("expected updates on resync, got %+v", res)
	}

	list, _ := plans.List(ctx, db, "")
	if len(list) != 2 {
		t.Fatalf("expected 2 plans, got %d", len(list))
	}
}

func TestSyncPlans_InvalidMetadataAborts(t *testing.T) {
	db := testutil.OpenDB(t)
	it := &sliceIter{prices: []*stripe.Price{
		recurringPrice("price_a", "prod_1", 1000, map[string]string{"plan_for": "investor", "allowed_fields": "everything"}),
	}}

	_, err := SyncPlans(context.Background(), db, it, "")
	if errs.KindOf(err) != errs.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
