package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type fakeStore struct {
	counts   map[uint]int64
	countErr error
	calls    int
}

func (f *fakeStore) RecordView(_ context.Context, _, startupID uint) error {
	f.counts[startupID]++
	return nil
}

func (f *fakeStore) CountViews(_ context.Context, startupID uint) (int64, error) {
	f.calls++
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.counts[startupID], nil
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestCountViews_ServesFromCacheAfterFirstRead(t *testing.T) {
	_, client := newRedis(t)
	store := &fakeStore{counts: map[uint]int64{7: 3}}
	vc := NewViewCounts(store, client, time.Minute, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		n, err := vc.CountViews(ctx, 7)
		if err != nil {
			t.Fatalf("count error: %v", err)
		}
		if n != 3 {
			t.Fatalf("expected 3 views, got %d", n)
		}
	}
	if store.calls != 1 {
		t.Fatalf("expected one store read, got %d", store.calls)
	}
}

func TestRecordView_InvalidatesCachedCount(t *testing.T) {
	mr, client := newRedis(t)
	store := &fakeStore{counts: map[uint]int64{}}
	vc := NewViewCounts(store, client, time.Minute, nil)
	ctx := context.Background()

	if _, err := vc.CountViews(ctx, 1); err != nil {
		t.Fatalf("count error: %v", err)
	}
	if !mr.Exists(viewCountKey(1)) {
		t.Fatal("expected count to be cached")
	}

	if err := vc.RecordView(ctx, 2, 1); err != nil {
		t.Fatalf("record error: %v", err)
	}
	if mr.Exists(viewCountKey(1)) {
		t.Fatal("expected cached count to be dropped")
	}

	n, err := vc.CountViews(ctx, 1)
	if err != nil {
		t.Fatalf("count error: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 view after record, got %d", n)
	}
}

func TestCountViews_FallsBackWhenRedisDown(t *testing.T) {
	mr, client := newRedis(t)
	store := &fakeStore{counts: map[uint]int64{5: 9}}
	vc := NewViewCounts(store, client, time.Minute, nil)
	mr.Close()

	n, err := vc.CountViews(context.Background(), 5)
	if err != nil {
		t.Fatalf("expected fallback to store, got error: %v", err)
	}
	if n != 9 {
		t.Fatalf("expected 9, got %d", n)
	}
}

func TestCountViews_NilClientUsesStore(t *testing.T) {
	store := &fakeStore{counts: map[uint]int64{1: 2}, countErr: errors.New("boom")}
	vc := NewViewCounts(store, nil, time.Minute, nil)

	if _, err := vc.CountViews(context.Background(), 1); err == nil {
		t.Fatal("expected store error to propagate")
	}
}
