package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

// fakeResolver counts lookups and answers from a fixed table.
type fakeResolver struct {
	answers map[string]string
	calls   int
}

func (f *fakeResolver) ShortDOI(ctx context.Context, doi string) (string, error) {
	f.calls++
	if s, ok := f.answers[doi]; ok {
		return s, nil
	}
	return "", errors.New("unknown DOI")
}

func setupTestCache(t *testing.T) *DOICache {
	t.Helper()

	cache, err := OpenDOICache(filepath.Join(t.TempDir(), "shortdoi.db"))
	if err != nil {
		t.Fatalf("OpenDOICache() error = %v", err)
	}
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestDOICache_GetPut(t *testing.T) {
	ctx := context.Background()
	cache := setupTestCache(t)

	if _, found, err := cache.Get(ctx, "10.1/a"); err != nil || found {
		t.Fatalf("Get() on empty cache = found %v, err %v", found, err)
	}

	if err := cache.Put(ctx, "10.1/a", "10/aa"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := cache.Put(ctx, "10.1/a", "10/ab"); err != nil {
		t.Fatalf("Put() overwrite error = %v", err)
	}

	got, found, err := cache.Get(ctx, "10.1/a")
	if err != nil || !found {
		t.Fatalf("Get() = found %v, err %v", found, err)
	}
	if got != "10/ab" {
		t.Errorf("Get() = %q, want %q", got, "10/ab")
	}

	n, err := cache.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Count() = %d, want 1", n)
	}
}

func TestDOICache_PersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "shortdoi.db")

	cache, err := OpenDOICache(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := cache.Put(ctx, "10.1/a", "10/aa"); err != nil {
		t.Fatal(err)
	}
	cache.Close()

	reopened, err := OpenDOICache(path)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	if got, found, _ := reopened.Get(ctx, "10.1/a"); !found || got != "10/aa" {
		t.Errorf("Get() after reopen = %q, %v; want 10/aa, true", got, found)
	}
}

func TestCachedResolver(t *testing.T) {
	ctx := context.Background()
	next := &fakeResolver{answers: map[string]string{"10.1/a": "10/aa"}}
	r := &CachedResolver{Cache: setupTestCache(t), Next: next}

	for i := 0; i < 2; i++ {
		got, err := r.ShortDOI(ctx, "10.1/a")
		if err != nil {
			t.Fatalf("ShortDOI() error = %v", err)
		}
		if got != "10/aa" {
			t.Errorf("ShortDOI() = %q, want 10/aa", got)
		}
	}
	if next.calls != 1 {
		t.Errorf("network calls = %d, want 1", next.calls)
	}

	if _, err := r.ShortDOI(ctx, "10.1/missing"); err == nil {
		t.Error("ShortDOI() for unknown DOI should fail")
	}
	if _, err := r.ShortDOI(ctx, "10.1/missing"); err == nil {
		t.Error("failures should not be cached")
	}
	if next.calls != 3 {
		t.Errorf("network calls = %d, want 3", next.calls)
	}
}
