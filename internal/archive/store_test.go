package archive

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "state", "archive.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestMarkAndQueryCompletion(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	done, err := store.Completed(ctx, "gotime", "transcribe", "ep-123.mp3")
	if err != nil {
		t.Fatalf("Completed: %v", err)
	}
	if done {
		t.Fatal("fresh store should have no completions")
	}

	if err := store.MarkCompleted(ctx, "gotime", "transcribe", "ep-123.mp3"); err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}
	done, err = store.Completed(ctx, "gotime", "transcribe", "ep-123.mp3")
	if err != nil {
		t.Fatalf("Completed: %v", err)
	}
	if !done {
		t.Error("completion not recorded")
	}

	// Other shows and stages stay independent.
	if done, _ := store.Completed(ctx, "jsparty", "transcribe", "ep-123.mp3"); done {
		t.Error("completion leaked across shows")
	}
	if done, _ := store.Completed(ctx, "gotime", "summarize", "ep-123.mp3"); done {
		t.Error("completion leaked across stages")
	}
}

func TestMarkCompletedIdempotent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := store.MarkCompleted(ctx, "gotime", "notes", "123"); err != nil {
			t.Fatalf("MarkCompleted #%d: %v", i, err)
		}
	}
	counts, err := store.StageCounts(ctx, "gotime")
	if err != nil {
		t.Fatalf("StageCounts: %v", err)
	}
	if counts["notes"] != 1 {
		t.Errorf("duplicate marks recorded: %d", counts["notes"])
	}
}

func TestCompletedItems(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, item := range []string{"a.mp3", "b.mp3"} {
		if err := store.MarkCompleted(ctx, "gotime", "transcribe", item); err != nil {
			t.Fatal(err)
		}
	}
	items, err := store.CompletedItems(ctx, "gotime", "transcribe")
	if err != nil {
		t.Fatalf("CompletedItems: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if _, ok := items["a.mp3"]; !ok {
		t.Error("a.mp3 missing")
	}
}

func TestOpenReusesExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.db")
	ctx := context.Background()

	first, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := first.MarkCompleted(ctx, "gotime", "sort", "x.mp3"); err != nil {
		t.Fatal(err)
	}
	if err := first.Close(); err != nil {
		t.Fatal(err)
	}

	second, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()

	done, err := second.Completed(ctx, "gotime", "sort", "x.mp3")
	if err != nil {
		t.Fatal(err)
	}
	if !done {
		t.Error("state lost across reopen")
	}
}
