package app

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestStoreConvergesOnOneOpen(t *testing.T) {
	a := New(filepath.Join(t.TempDir(), "test.db"))
	defer a.Close()

	ctx := context.Background()

	const callers = 16
	var wg sync.WaitGroup
	stores := make([]interface{}, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			stores[i], errs[i] = a.Store(ctx)
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d: Store failed: %v", i, errs[i])
		}
		if stores[i] != stores[0] {
			t.Fatalf("caller %d received a different store handle", i)
		}
	}

	// The singleton settings record seeded during the one initialization is
	// visible through every handle.
	st, err := a.Store(ctx)
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	settings, err := st.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings == nil {
		t.Fatal("settings not seeded")
	}
}

func TestStoreCachesOpenFailure(t *testing.T) {
	// A regular file where the database's parent directory should be makes
	// the open fail.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to create blocking file: %v", err)
	}

	a := New(filepath.Join(blocker, "nested", "test.db"))
	defer a.Close()

	ctx := context.Background()

	st, first := a.Store(ctx)
	if first == nil {
		t.Fatal("expected open to fail")
	}
	if st != nil {
		t.Errorf("expected nil store on failure, got %v", st)
	}

	// Later callers fail fast with the identical cached error; no re-open
	// is attempted.
	for i := 0; i < 3; i++ {
		if _, err := a.Store(ctx); err != first {
			t.Errorf("call %d: got %v, want the cached error %v", i, err, first)
		}
	}
}
