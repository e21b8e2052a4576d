package booking

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeSource struct {
	snapshot []Booking
	err      error
}

func (f *fakeSource) Snapshot(ctx context.Context) ([]Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.snapshot, nil
}

func (f *fakeSource) Watch(ctx context.Context) (*mongo.ChangeStream, error) {
	return nil, errors.New("no change streams in tests")
}

type mapCache struct {
	data map[string]string
}

func newMapCache() *mapCache { return &mapCache{data: make(map[string]string)} }

func (c *mapCache) Get(ctx context.Context, key string) (string, error) {
	return c.data[key], nil
}

func (c *mapCache) Set(ctx context.Context, key, value string) error {
	c.data[key] = value
	return nil
}

func TestRefreshReplacesMirrorAndCache(t *testing.T) {
	snapshot := []Booking{
		{ID: primitive.NewObjectID(), Title: "Room-101 - 1", Room: "Room-101", Start: at(10, 0), End: at(11, 0), GroupID: "1"},
		{ID: primitive.NewObjectID(), Title: "Room-102 - 2", Room: "Room-102", Start: at(10, 0), End: at(11, 0), GroupID: "2"},
	}
	cache := newMapCache()
	mirror := NewMirror(&fakeSource{snapshot: snapshot}, cache)

	if err := mirror.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	got := mirror.Bookings()
	if len(got) != 2 || got[0].Title != "Room-101 - 1" {
		t.Fatalf("mirror does not hold the snapshot in order: %+v", got)
	}

	var cached []Booking
	if err := json.Unmarshal([]byte(cache.data[snapshotCacheKey]), &cached); err != nil {
		t.Fatalf("cache does not hold a JSON snapshot: %v", err)
	}
	if len(cached) != 2 {
		t.Fatalf("cache snapshot has %d bookings, want 2", len(cached))
	}
}

func TestRefreshFailureKeepsOldSnapshot(t *testing.T) {
	source := &fakeSource{snapshot: []Booking{{Title: "Room-101 - 1", Room: "Room-101"}}}
	mirror := NewMirror(source, nil)
	if err := mirror.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	source.err = errors.New("store down")
	if err := mirror.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh error")
	}
	if got := mirror.Bookings(); len(got) != 1 {
		t.Fatalf("failed refresh must keep the last snapshot, got %d bookings", len(got))
	}
}

func TestWarmStartSeedsFromCache(t *testing.T) {
	cached := []Booking{{ID: primitive.NewObjectID(), Title: "Room-103 - 9", Room: "Room-103", GroupID: "9"}}
	data, _ := json.Marshal(cached)
	cache := newMapCache()
	cache.data[snapshotCacheKey] = string(data)

	mirror := NewMirror(&fakeSource{}, cache)
	mirror.WarmStart(context.Background())

	got := mirror.Bookings()
	if len(got) != 1 || got[0].Title != "Room-103 - 9" {
		t.Fatalf("warm start did not seed from cache: %+v", got)
	}
}

func TestWarmStartIgnoresCorruptCache(t *testing.T) {
	cache := newMapCache()
	cache.data[snapshotCacheKey] = "{not json"

	mirror := NewMirror(&fakeSource{}, cache)
	mirror.WarmStart(context.Background())

	if got := mirror.Bookings(); len(got) != 0 {
		t.Fatalf("corrupt cache should be discarded, got %d bookings", len(got))
	}
}

func TestBookingsReturnsCopy(t *testing.T) {
	mirror := NewMirror(&fakeSource{snapshot: []Booking{{Title: "Room-101 - 1", Room: "Room-101"}}}, nil)
	if err := mirror.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	first := mirror.Bookings()
	first[0].Title = "mutated"
	if mirror.Bookings()[0].Title == "mutated" {
		t.Fatal("Bookings must not expose the internal slice")
	}
}
