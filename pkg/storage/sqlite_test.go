package storage

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/devbelt/toolbox-mcp/pkg/models"
)

func setupTestDB(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()

	// Create temp file for test database
	tmpFile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	cfg := Config{
		DatabasePath: tmpFile.Name(),
		Debug:        false,
	}

	store, err := NewSQLiteStorage(cfg)
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create storage: %v", err)
	}

	cleanup := func() {
		store.Close()
		os.Remove(tmpFile.Name())
	}

	return store, cleanup
}

func TestNewSQLiteStorage(t *testing.T) {
	store, cleanup := setupTestDB(t)
	defer cleanup()

	if store == nil {
		t.Fatal("expected non-nil storage")
	}
	if store.db == nil {
		t.Fatal("expected non-nil database connection")
	}
	if store.capacity != 10 {
		t.Errorf("expected default capacity 10, got %d", store.capacity)
	}
}

func TestNewSQLiteStorage_InvalidPath(t *testing.T) {
	cfg := Config{
		DatabasePath: "/nonexistent/path/test.db",
		Debug:        false,
	}

	_, err := NewSQLiteStorage(cfg)
	if err == nil {
		t.Fatal("expected error for invalid database path")
	}
}

func TestAppendEntry(t *testing.T) {
	store, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	entry := &models.HistoryEntry{
		ToolID:  "base64-encode",
		Input:   "hi",
		Output:  "aGk=",
		Success: true,
	}

	if err := store.AppendEntry(ctx, entry); err != nil {
		t.Fatalf("failed to append entry: %v", err)
	}
	if entry.ID == 0 {
		t.Error("expected entry ID to be set after append")
	}

	entries, err := store.ListEntries(ctx, "base64-encode", 0)
	if err != nil {
		t.Fatalf("failed to list entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Output != "aGk=" {
		t.Errorf("expected output aGk=, got %q", entries[0].Output)
	}
}

func TestListEntries_NewestFirst(t *testing.T) {
	store, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	for i := range 3 {
		entry := &models.HistoryEntry{
			ToolID: "hash",
			Input:  fmt.Sprintf("input-%d", i),
		}
		if err := store.AppendEntry(ctx, entry); err != nil {
			t.Fatalf("failed to append: %v", err)
		}
	}

	entries, err := store.ListEntries(ctx, "hash", 0)
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Input != "input-2" {
		t.Errorf("expected newest entry first, got %q", entries[0].Input)
	}
}

func TestListEntries_Limit(t *testing.T) {
	store, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	for i := range 5 {
		entry := &models.HistoryEntry{ToolID: "hash", Input: fmt.Sprintf("%d", i)}
		if err := store.AppendEntry(ctx, entry); err != nil {
			t.Fatalf("failed to append: %v", err)
		}
	}

	entries, err := store.ListEntries(ctx, "hash", 2)
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries with limit, got %d", len(entries))
	}
}

func TestAppendEntry_TrimsBeyondCapacity(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "trim-test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()
	defer os.Remove(tmpFile.Name())

	store, err := NewSQLiteStorage(Config{DatabasePath: tmpFile.Name(), Capacity: 3})
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	for i := range 5 {
		entry := &models.HistoryEntry{ToolID: "json-format", Input: fmt.Sprintf("input-%d", i)}
		if err := store.AppendEntry(ctx, entry); err != nil {
			t.Fatalf("failed to append: %v", err)
		}
	}
	// A second tool is unaffected by the first tool's trimming.
	if err := store.AppendEntry(ctx, &models.HistoryEntry{ToolID: "other", Input: "x"}); err != nil {
		t.Fatalf("failed to append: %v", err)
	}

	entries, err := store.ListEntries(ctx, "json-format", 0)
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries after trim, got %d", len(entries))
	}
	if entries[0].Input != "input-4" {
		t.Errorf("expected newest entry kept, got %q", entries[0].Input)
	}
	if entries[2].Input != "input-2" {
		t.Errorf("expected oldest surviving entry input-2, got %q", entries[2].Input)
	}

	other, err := store.ListEntries(ctx, "other", 0)
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if len(other) != 1 {
		t.Errorf("expected other tool untouched, got %d entries", len(other))
	}
}

func TestListToolIDs(t *testing.T) {
	store, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	for _, toolID := range []string{"b-tool", "a-tool", "b-tool"} {
		if err := store.AppendEntry(ctx, &models.HistoryEntry{ToolID: toolID}); err != nil {
			t.Fatalf("failed to append: %v", err)
		}
	}

	ids, err := store.ListToolIDs(ctx)
	if err != nil {
		t.Fatalf("failed to list tool ids: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 distinct tool ids, got %d", len(ids))
	}
	if ids[0] != "a-tool" || ids[1] != "b-tool" {
		t.Errorf("unexpected ids order: %v", ids)
	}
}

func TestClearTool(t *testing.T) {
	store, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	if err := store.AppendEntry(ctx, &models.HistoryEntry{ToolID: "a"}); err != nil {
		t.Fatalf("failed to append: %v", err)
	}
	if err := store.AppendEntry(ctx, &models.HistoryEntry{ToolID: "b"}); err != nil {
		t.Fatalf("failed to append: %v", err)
	}

	if err := store.ClearTool(ctx, "a"); err != nil {
		t.Fatalf("failed to clear: %v", err)
	}

	aEntries, _ := store.ListEntries(ctx, "a", 0)
	bEntries, _ := store.ListEntries(ctx, "b", 0)
	if len(aEntries) != 0 {
		t.Errorf("expected tool a cleared, got %d entries", len(aEntries))
	}
	if len(bEntries) != 1 {
		t.Errorf("expected tool b untouched, got %d entries", len(bEntries))
	}

	// Clearing an already-empty tool id must not fail.
	if err := store.ClearTool(ctx, "a"); err != nil {
		t.Errorf("clear must be idempotent: %v", err)
	}
}

func TestClearAll(t *testing.T) {
	store, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	for _, toolID := range []string{"a", "b", "c"} {
		if err := store.AppendEntry(ctx, &models.HistoryEntry{ToolID: toolID}); err != nil {
			t.Fatalf("failed to append: %v", err)
		}
	}

	if err := store.ClearAll(ctx); err != nil {
		t.Fatalf("failed to clear all: %v", err)
	}

	ids, err := store.ListToolIDs(ctx)
	if err != nil {
		t.Fatalf("failed to list tool ids: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected no tool ids after clear all, got %v", ids)
	}
}

func TestClose(t *testing.T) {
	store, cleanup := setupTestDB(t)
	cleanup()

	// Operations after close should fail rather than hang.
	err := store.AppendEntry(context.Background(), &models.HistoryEntry{ToolID: "x"})
	if err == nil {
		t.Error("expected error appending after close")
	}
}
