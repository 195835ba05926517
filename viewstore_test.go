package website

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
)

func setupTestViewStore(t *testing.T) *ViewStore {
	t.Helper()
	s, err := NewViewStore(filepath.Join(t.TempDir(), "views.db"))
	if err != nil {
		t.Fatalf("failed to create view store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCountUnseenSlugIsZero(t *testing.T) {
	s := setupTestViewStore(t)

	count, err := s.Count(context.Background(), "never-seen")
	if err != nil {
		t.Fatalf("Count on unseen slug should not error, got: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
}

func TestIncrementSequential(t *testing.T) {
	s := setupTestViewStore(t)
	ctx := context.Background()

	const n = 5
	for i := 0; i < n; i++ {
		if err := s.Increment(ctx, "my-post"); err != nil {
			t.Fatalf("Increment failed: %v", err)
		}
	}

	count, err := s.Count(ctx, "my-post")
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != n {
		t.Errorf("count = %d, want %d", count, n)
	}
}

func TestIncrementConcurrentNoLostUpdates(t *testing.T) {
	s := setupTestViewStore(t)
	ctx := context.Background()

	const m = 50
	var wg sync.WaitGroup
	errs := make(chan error, m)
	for i := 0; i < m; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.Increment(ctx, "hot-post")
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent Increment failed: %v", err)
		}
	}

	count, err := s.Count(ctx, "hot-post")
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != m {
		t.Errorf("count = %d, want %d (lost updates)", count, m)
	}
}

func TestIncrementSlugsAreIndependent(t *testing.T) {
	s := setupTestViewStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := s.Increment(ctx, "a"); err != nil {
			t.Fatalf("Increment failed: %v", err)
		}
	}
	if err := s.Increment(ctx, "b"); err != nil {
		t.Fatalf("Increment failed: %v", err)
	}

	if count, _ := s.Count(ctx, "a"); count != 3 {
		t.Errorf("count(a) = %d, want 3", count)
	}
	if count, _ := s.Count(ctx, "b"); count != 1 {
		t.Errorf("count(b) = %d, want 1", count)
	}
}

func TestIncrementEmptySlugRejected(t *testing.T) {
	s := setupTestViewStore(t)

	if err := s.Increment(context.Background(), ""); err == nil {
		t.Error("Increment with empty slug should fail")
	}
}

func TestStorageUnavailableIsMatchable(t *testing.T) {
	s := setupTestViewStore(t)
	s.Close()

	err := s.Increment(context.Background(), "post")
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Errorf("Increment on closed store: err = %v, want ErrStorageUnavailable", err)
	}
	_, err = s.Count(context.Background(), "post")
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Errorf("Count on closed store: err = %v, want ErrStorageUnavailable", err)
	}
}
