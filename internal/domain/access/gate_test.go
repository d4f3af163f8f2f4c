package access

import (
	"context"
	"errors"
	"sync"
	"testing"

	"startup-marketplace/internal/domain/startups"
)

type stubResolver map[uint]TokenSet

func (s stubResolver) AllowedFields(_ context.Context, userID uint) (TokenSet, error) {
	if set, ok := s[userID]; ok {
		return set, nil
	}
	return NewTokenSet(), nil
}

type failingResolver struct{}

func (failingResolver) AllowedFields(context.Context, uint) (TokenSet, error) {
	return nil, errors.New("db down")
}

type recorder struct {
	mu    sync.Mutex
	views []uint
	err   error
	count int64
}

func (r *recorder) RecordView(_ context.Context, userID, _ uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views = append(r.views, userID)
	return r.err
}

func (r *recorder) CountViews(context.Context, uint) (int64, error) {
	return r.count, nil
}

func (r *recorder) recorded() []uint {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]uint(nil), r.views...)
}

func TestGate_OwnerGetsFullRecordWithViewCount(t *testing.T) {
	rec := &recorder{count: 7}
	g := NewGate(stubResolver{}, rec, rec, nil)
	d := sampleDetails()

	out, dec, err := g.Read(context.Background(), d, &Identity{ID: 1})
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	g.Wait()

	if dec.Mode != ModeFull {
		t.Fatalf("expected full mode, got %s", dec.Mode)
	}
	full, ok := out.(*startups.Details)
	if !ok {
		t.Fatalf("expected full details, got %T", out)
	}
	if full.ViewCount == nil || *full.ViewCount != 7 {
		t.Fatalf("expected view count 7, got %v", full.ViewCount)
	}
	if full.Contacts == nil || full.Financials == nil {
		t.Fatal("owner must see every section")
	}
	if len(rec.recorded()) != 0 {
		t.Fatal("owner reads must not be recorded")
	}
}

func TestGate_NoActivePlanIsDenied(t *testing.T) {
	rec := &recorder{}
	g := NewGate(stubResolver{}, rec, rec, nil)

	out, dec, err := g.Read(context.Background(), sampleDetails(), &Identity{ID: 2})
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	g.Wait()

	if dec.Mode != ModeDenied || dec.Reason != ReasonPlanRequired {
		t.Fatalf("expected plan-required denial, got %+v", dec)
	}
	if out != nil {
		t.Fatalf("denied read returned data: %#v", out)
	}
	if len(rec.recorded()) != 0 {
		t.Fatal("denied reads must not be recorded")
	}
}

func TestGate_AnonymousIsDenied(t *testing.T) {
	g := NewGate(stubResolver{}, nil, &recorder{}, nil)

	dec, err := g.AuthorizeRead(context.Background(), 1, 10, nil)
	if err != nil {
		t.Fatalf("authorize error: %v", err)
	}
	if dec.Mode != ModeDenied || dec.Reason != ReasonAuthRequired {
		t.Fatalf("expected auth-required denial, got %+v", dec)
	}
}

func TestGate_FilteredReadRecordsView(t *testing.T) {
	rec := &recorder{}
	g := NewGate(stubResolver{2: NewTokenSet(TokenStartup, TokenStartupRevenue)}, rec, rec, nil)

	out, dec, err := g.Read(context.Background(), sampleDetails(), &Identity{ID: 2})
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	g.Wait()

	if dec.Mode != ModeFiltered {
		t.Fatalf("expected filtered, got %s", dec.Mode)
	}
	v, ok := out.(View)
	if !ok {
		t.Fatalf("expected View, got %T", out)
	}
	if _, ok := v["contacts"]; ok {
		t.Fatal("contacts were not granted")
	}
	if _, ok := v["view_count"]; ok {
		t.Fatal("view count is owner-only")
	}
	if got := rec.recorded(); len(got) != 1 || got[0] != 2 {
		t.Fatalf("expected one recorded view by user 2, got %v", got)
	}
}

func TestGate_RecordFailureDoesNotFailRead(t *testing.T) {
	rec := &recorder{err: errors.New("insert failed")}
	g := NewGate(stubResolver{2: NewTokenSet(TokenStartup)}, rec, rec, nil)

	ctx, cancel := context.WithCancel(context.Background())
	_, dec, err := g.Read(ctx, sampleDetails(), &Identity{ID: 2})
	cancel()
	g.Wait()

	if err != nil {
		t.Fatalf("record failure leaked into read: %v", err)
	}
	if dec.Mode != ModeFiltered {
		t.Fatalf("expected filtered, got %s", dec.Mode)
	}
}

func TestGate_ResolverFailureIsAnError(t *testing.T) {
	g := NewGate(failingResolver{}, nil, &recorder{}, nil)
	if _, err := g.AuthorizeRead(context.Background(), 1, 10, &Identity{ID: 2}); err == nil {
		t.Fatal("expected resolver error")
	}
}
