package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "gemini.db")
	repo, err := NewRepository(dbPath)
	if err != nil {
		t.Fatalf("NewRepository returned error: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	if err := repo.Init(context.Background()); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	return repo
}

func TestRepository_SaveAndListBookmarks(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	bookmarks := []Bookmark{
		{URL: "gemini://b.example/", Title: "Second", CreatedAt: time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC)},
		{URL: "gemini://a.example/", Title: "First", CreatedAt: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)},
	}
	for _, b := range bookmarks {
		if err := repo.SaveBookmark(ctx, b); err != nil {
			t.Fatalf("SaveBookmark returned error: %v", err)
		}
	}

	listed, err := repo.ListBookmarks(ctx)
	if err != nil {
		t.Fatalf("ListBookmarks returned error: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 bookmarks, got %d", len(listed))
	}
	if listed[0].URL != "gemini://a.example/" || listed[1].Title != "Second" {
		t.Fatalf("expected oldest first, got %+v", listed)
	}
	if !listed[0].CreatedAt.Equal(bookmarks[1].CreatedAt) {
		t.Fatalf("unexpected created_at: %v", listed[0].CreatedAt)
	}
}

func TestRepository_SaveBookmark_UpsertsTitle(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	if err := repo.SaveBookmark(ctx, Bookmark{URL: "gemini://h/", Title: "Original", CreatedAt: created}); err != nil {
		t.Fatalf("initial SaveBookmark returned error: %v", err)
	}
	if err := repo.SaveBookmark(ctx, Bookmark{URL: "gemini://h/", Title: "Updated"}); err != nil {
		t.Fatalf("second SaveBookmark returned error: %v", err)
	}

	listed, err := repo.ListBookmarks(ctx)
	if err != nil {
		t.Fatalf("ListBookmarks returned error: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected 1 bookmark, got %d", len(listed))
	}
	if listed[0].Title != "Updated" || !listed[0].CreatedAt.Equal(created) {
		t.Fatalf("unexpected bookmark after upsert: %+v", listed[0])
	}

	if err := repo.SaveBookmark(ctx, Bookmark{URL: "  "}); err == nil {
		t.Fatal("expected error for empty url")
	}
}

func TestRepository_DeleteBookmark(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if err := repo.SaveBookmark(ctx, Bookmark{URL: "gemini://h/", Title: "H"}); err != nil {
		t.Fatalf("SaveBookmark returned error: %v", err)
	}
	removed, err := repo.DeleteBookmark(ctx, "gemini://h/")
	if err != nil || !removed {
		t.Fatalf("expected bookmark removed, got %v %v", removed, err)
	}
	removed, err = repo.DeleteBookmark(ctx, "gemini://h/")
	if err != nil || removed {
		t.Fatalf("expected nothing to remove, got %v %v", removed, err)
	}
	listed, err := repo.ListBookmarks(ctx)
	if err != nil || len(listed) != 0 {
		t.Fatalf("expected no bookmarks, got %+v %v", listed, err)
	}
}

func TestRepository_PreferencesRoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	prefs, err := repo.LoadPreferences(ctx)
	if err != nil {
		t.Fatalf("LoadPreferences returned error: %v", err)
	}
	if prefs != (Preferences{ShowOutline: true}) {
		t.Fatalf("unexpected default preferences: %+v", prefs)
	}

	want := Preferences{NumberLinks: true, ShowOutline: false, Homepage: "gemini://home.example/"}
	if err := repo.SavePreferences(ctx, want); err != nil {
		t.Fatalf("SavePreferences returned error: %v", err)
	}
	got, err := repo.LoadPreferences(ctx)
	if err != nil {
		t.Fatalf("LoadPreferences returned error: %v", err)
	}
	if got != want {
		t.Fatalf("unexpected preferences: %+v", got)
	}
}

func TestRepository_CheckWritable(t *testing.T) {
	repo := newTestRepository(t)
	if err := repo.CheckWritable(context.Background()); err != nil {
		t.Fatalf("CheckWritable returned error: %v", err)
	}
}

func TestRepository_CheckWritable_ReadOnlyFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("file permissions are not enforced for root")
	}
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "gemini.db")
	repo, err := NewRepository(dbPath)
	if err != nil {
		t.Fatalf("NewRepository returned error: %v", err)
	}
	if err := repo.Init(context.Background()); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	_ = repo.Close()
	if err := os.Chmod(dbPath, 0o444); err != nil {
		t.Fatalf("chmod: %v", err)
	}

	ro, err := NewRepository(dbPath)
	if err != nil {
		t.Fatalf("NewRepository returned error: %v", err)
	}
	t.Cleanup(func() { _ = ro.Close() })
	if err := ro.CheckWritable(context.Background()); err == nil {
		t.Fatal("expected read-only database to fail the write check")
	}
}
