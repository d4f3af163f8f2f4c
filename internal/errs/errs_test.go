package errs

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"
)

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("subscribe: %w", Conflict("Already subscribed to this plan"))
	if KindOf(wrapped) != KindConflict {
		t.Fatalf("expected conflict through wrapping, got %s", KindOf(wrapped))
	}
	if KindOf(errors.New("plain")) != KindDatabase {
		t.Fatal("unclassified errors count as database failures")
	}
	if !errors.Is(wrapped, Conflict("")) {
		t.Fatal("errors.Is should match by kind")
	}
	if errors.Is(wrapped, NotFound("")) {
		t.Fatal("different kinds must not match")
	}
}

func TestDatabase(t *testing.T) {
	if Database("x", nil) != nil {
		t.Fatal("nil cause must stay nil")
	}
	cause := errors.New("timeout")
	err := Database("failed to load", cause)
	if !errors.Is(err, cause) {
		t.Fatal("cause must be unwrappable")
	}
	if KindOf(Database("outer", NotFound("missing"))) != KindNotFound {
		t.Fatal("classified causes pass through")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	cases := map[error]bool{
		gorm.ErrDuplicatedKey: true,
		errors.New("UNIQUE constraint failed: favorites.user_id, favorites.startup_id"): true,
		errors.New(`ERROR: duplicate key value violates unique constraint "idx_user_plans_user_plan"`): true,
		errors.New("connection refused"): false,
		nil:                              false,
	}
	for err, want := range cases {
		if got := IsUniqueViolation(err); got != want {
			t.Fatalf("IsUniqueViolation(%v) = %v, want %v", err, got, want)
		}
	}
}
