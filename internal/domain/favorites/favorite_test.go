package favorites_test

import (
	"context"
	"testing"

	"startup-marketplace/internal/domain/favorites"
	"startup-marketplace/internal/domain/startups"
	"startup-marketplace/internal/errs"
	"startup-marketplace/internal/testutil"
)

func TestFavorites(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()

	s := &startups.Startup{Name: "Acme", Industry: "saas", YearFounded: 2020, Description: "d", FounderBackground: "f", TeamSize: 3}
	if err := startups.Create(ctx, db, 1, s); err != nil {
		t.Fatalf("create startup: %v", err)
	}

	if err := favorites.Add(ctx, db, 2, 999); errs.KindOf(err) != errs.KindNotFound {
		t.Fatalf("expected not found for missing startup, got %v", err)
	}
	if err := favorites.Add(ctx, db, 2, s.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := favorites.Add(ctx, db, 2, s.ID); errs.KindOf(err) != errs.KindConflict {
		t.Fatalf("expected conflict on duplicate, got %v", err)
	}

	list, err := favorites.List(ctx, db, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Acme" || list[0].FavoritedAt.IsZero() {
		t.Fatalf("unexpected favorites: %+v", list)
	}

	if ok, _ := favorites.IsFavorited(ctx, db, 2, s.ID); !ok {
		t.Fatal("expected startup to be favorited")
	}
	if err := favorites.Remove(ctx, db, 2, s.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := favorites.Remove(ctx, db, 2, s.ID); errs.KindOf(err) != errs.KindNotFound {
		t.Fatalf("expected not found on second remove, got %v", err)
	}
}
