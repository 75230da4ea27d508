package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
)

func openTestSlot(t *testing.T) (*Slot, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "notary.db")
	slot, err := Open(context.Background(), path, "savedCards")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = slot.Close() })
	return slot, path
}

func TestSlotRoundTrip(t *testing.T) {
	ctx := context.Background()
	slot, _ := openTestSlot(t)

	if got, err := slot.Read(ctx); err != nil || got != "" {
		t.Fatalf("Read() on fresh db = %q, %v; want empty, nil", got, err)
	}

	if err := slot.Update(ctx, func(string) (string, error) { return "[1]", nil }); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if err := slot.Update(ctx, func(cur string) (string, error) { return cur + "[2]", nil }); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := slot.Read(ctx)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got != "[1][2]" {
		t.Errorf("Read() = %q, want [1][2]", got)
	}

	if err := slot.Delete(ctx); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if got, _ := slot.Read(ctx); got != "" {
		t.Errorf("Read() after Delete() = %q, want empty", got)
	}
}

func TestSlotPersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	slot, path := openTestSlot(t)

	_ = slot.Update(ctx, func(string) (string, error) { return "persisted", nil })
	_ = slot.Close()

	reopened, err := Open(ctx, path, "savedCards")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer func() { _ = reopened.Close() }()

	if got, _ := reopened.Read(ctx); got != "persisted" {
		t.Errorf("Read() after reopen = %q, want persisted", got)
	}
}

func TestSlotUpdateRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	slot, _ := openTestSlot(t)
	_ = slot.Update(ctx, func(string) (string, error) { return "before", nil })

	boom := errors.New("boom")
	err := slot.Update(ctx, func(string) (string, error) { return "", boom })
	if !errors.Is(err, boom) {
		t.Fatalf("Update() error = %v, want %v", err, boom)
	}

	if got, _ := slot.Read(ctx); got != "before" {
		t.Errorf("Read() = %q, want before", got)
	}

	// The connection must be usable again after the rollback.
	if err := slot.Update(ctx, func(string) (string, error) { return "after", nil }); err != nil {
		t.Fatalf("Update() after rollback error = %v", err)
	}
}

func TestSlotConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	slot, _ := openTestSlot(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := slot.Update(ctx, func(cur string) (string, error) { return cur + "x", nil }); err != nil {
				t.Errorf("Update() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if got, _ := slot.Read(ctx); len(got) != 10 {
		t.Errorf("Read() length = %d, want 10", len(got))
	}
}
