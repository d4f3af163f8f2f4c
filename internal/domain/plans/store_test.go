package plans_test

import (
	"context"
	"testing"

	"startup-marketplace/internal/domain/plans"
	"startup-marketplace/internal/errs"
	"startup-marketplace/internal/testutil"
)

func TestCreate_RejectsUnknownTokens(t *testing.T) {
	db := testutil.OpenDB(t)

	_, err := plans.Create(context.Background(), db, plans.Input{
		Name:          "Broken",
		PlanFor:       plans.ForInvestor,
		AllowedFields: []string{"startup", "secrets"},
	})
	if errs.KindOf(err) != errs.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreate_RequiresAudience(t *testing.T) {
	db := testutil.OpenDB(t)

	_, err := plans.Create(context.Background(), db, plans.Input{Name: "X", PlanFor: "everyone"})
	if errs.KindOf(err) != errs.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdate_PartialKeepsOtherFields(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()
	p := mustPlan(t, db, "Basic", "startup", "contacts")

	price := 25.0
	got, err := plans.Update(ctx, db, p.ID, plans.Patch{Price: &price})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Price != 25 || got.Name != "Basic" || len(got.AllowedFields) != 2 {
		t.Fatalf("unexpected plan after update: %+v", got)
	}

	_, err = plans.Update(ctx, db, p.ID, plans.Patch{AllowedFields: []string{"nope"}})
	if errs.KindOf(err) != errs.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListForUser_MarksSubscriptions(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()
	a := mustPlan(t, db, "A", "startup")
	b := mustPlan(t, db, "B", "contacts")
	mustPlan(t, db, "C", "legal")

	if _, err := plans.Subscribe(ctx, db, 1, a.ID, nil); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if _, err := plans.Subscribe(ctx, db, 1, b.ID, nil); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if _, err := plans.Unsubscribe(ctx, db, 1, b.ID); err != nil {
		t.Fatalf("unsubscribe: %v", err)
	}

	list, err := plans.ListForUser(ctx, db, "", 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	got := map[string][2]bool{}
	for _, l := range list {
		got[l.Name] = [2]bool{l.IsSubscribed, l.SubscriptionActive}
	}
	if got["A"] != [2]bool{true, true} || got["B"] != [2]bool{true, false} || got["C"] != [2]bool{false, false} {
		t.Fatalf("unexpected subscription flags: %v", got)
	}
}

func TestDelete_RemovesSubscriptions(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()
	p := mustPlan(t, db, "A", "startup")
	if _, err := plans.Subscribe(ctx, db, 1, p.ID, nil); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if err := plans.Delete(ctx, db, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := plans.Get(ctx, db, p.ID); errs.KindOf(err) != errs.KindNotFound {
		t.Fatalf("expected plan gone, got %v", err)
	}
	active, _ := plans.ListActive(ctx, db, 1)
	if len(active) != 0 {
		t.Fatalf("expected no subscriptions, got %d", len(active))
	}
}

func TestUpsertByStripePrice(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()
	priceID := "price_123"
	in := plans.Input{Name: "Pro", PlanFor: "investor", AllowedFields: []string{"startup"}, Price: 49, StripePriceID: &priceID}

	created, err := plans.UpsertByStripePrice(ctx, db, in)
	if err != nil || !created {
		t.Fatalf("expected create, got created=%v err=%v", created, err)
	}

	in.Price = 59
	created, err = plans.UpsertByStripePrice(ctx, db, in)
	if err != nil || created {
		t.Fatalf("expected update, got created=%v err=%v", created, err)
	}

	list, err := plans.List(ctx, db, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Price != 59 {
		t.Fatalf("expected one plan priced 59, got %+v", list)
	}
}
