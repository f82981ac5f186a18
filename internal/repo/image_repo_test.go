package repo

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-meme-backend/internal/domain"
)

// test DB helper
func newImageRepoDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("image_repo_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := db.AutoMigrate(&domain.Image{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func strptr(s string) *string { return &s }

func TestCreateImage_AssignsServerFields(t *testing.T) {
	db := newImageRepoDB(t)
	ctx := context.Background()

	img := &domain.Image{
		OriginalImageURL:  "data:image/png;base64,orig",
		GeneratedImageURL: "data:image/jpeg;base64,gen",
		TopText:           strptr("HELLO"),
	}
	if err := CreateImage(ctx, db, img); err != nil {
		t.Fatalf("CreateImage: %v", err)
	}
	if img.ID == 0 {
		t.Fatalf("ID not assigned: %+v", img)
	}
	if img.CreatedAt.IsZero() || time.Since(img.CreatedAt) > time.Minute {
		t.Fatalf("CreatedAt not set reasonably: %v", img.CreatedAt)
	}

	// read it back
	got, err := GetImage(ctx, db, img.ID)
	if err != nil {
		t.Fatalf("GetImage: %v", err)
	}
	if got.OriginalImageURL != img.OriginalImageURL ||
		got.GeneratedImageURL != img.GeneratedImageURL {
		t.Fatalf("roundtrip mismatch: %+v vs %+v", got, img)
	}
	if got.TopText == nil || *got.TopText != "HELLO" {
		t.Fatalf("topText not stored: %+v", got)
	}
	if got.BottomText != nil {
		t.Fatalf("absent bottomText must stay nil, got %q", *got.BottomText)
	}
}

func TestCreateImage_MonotonicIDs(t *testing.T) {
	db := newImageRepoDB(t)
	ctx := context.Background()

	var last int
	for i := 0; i < 3; i++ {
		img := &domain.Image{OriginalImageURL: "o", GeneratedImageURL: "g"}
		if err := CreateImage(ctx, db, img); err != nil {
			t.Fatalf("CreateImage #%d: %v", i, err)
		}
		if img.ID <= last {
			t.Fatalf("IDs not increasing: %d after %d", img.ID, last)
		}
		last = img.ID
	}
}

func TestGetImage_NotFound(t *testing.T) {
	db := newImageRepoDB(t)
	if _, err := GetImage(context.Background(), db, 999); err != ErrNotFound {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestListImages_NewestFirst(t *testing.T) {
	db := newImageRepoDB(t)
	ctx := context.Background()

	// insert out of chronological order on purpose
	t0 := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	for _, offset := range []time.Duration{time.Minute, 0, 2 * time.Minute} {
		img := &domain.Image{
			OriginalImageURL:  "o",
			GeneratedImageURL: "g",
			CreatedAt:         t0.Add(offset),
		}
		if err := CreateImage(ctx, db, img); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	list, err := ListImages(ctx, db)
	if err != nil {
		t.Fatalf("ListImages: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].CreatedAt.Before(list[i].CreatedAt) {
			t.Fatalf("not sorted newest first at %d: %v < %v",
				i, list[i-1].CreatedAt, list[i].CreatedAt)
		}
	}
}

func TestDeleteImagesOlderThan(t *testing.T) {
	db := newImageRepoDB(t)
	ctx := context.Background()

	old := &domain.Image{
		OriginalImageURL:  "o",
		GeneratedImageURL: "g",
		CreatedAt:         time.Now().UTC().Add(-31 * time.Minute),
	}
	fresh := &domain.Image{OriginalImageURL: "o", GeneratedImageURL: "g"}
	if err := CreateImage(ctx, db, old); err != nil {
		t.Fatalf("seed old: %v", err)
	}
	if err := CreateImage(ctx, db, fresh); err != nil {
		t.Fatalf("seed fresh: %v", err)
	}

	n, err := DeleteImagesOlderThan(ctx, db, 30*time.Minute)
	if err != nil {
		t.Fatalf("DeleteImagesOlderThan: %v", err)
	}
	if n != 1 {
		t.Fatalf("deleted %d rows, want 1", n)
	}

	list, err := ListImages(ctx, db)
	if err != nil {
		t.Fatalf("ListImages: %v", err)
	}
	if len(list) != 1 || list[0].ID != fresh.ID {
		t.Fatalf("expected only the fresh row, got %+v", list)
	}
}

func TestDeleteImagesOlderThan_ZeroDeletesEverything(t *testing.T) {
	db := newImageRepoDB(t)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		img := &domain.Image{
			OriginalImageURL:  "o",
			GeneratedImageURL: "g",
			CreatedAt:         time.Now().UTC().Add(-time.Duration(i+1) * time.Second),
		}
		if err := CreateImage(ctx, db, img); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	n, err := DeleteImagesOlderThan(ctx, db, 0)
	if err != nil {
		t.Fatalf("first sweep: %v", err)
	}
	if n != 4 {
		t.Fatalf("first sweep deleted %d, want 4", n)
	}

	// idempotent: nothing left to delete
	n, err = DeleteImagesOlderThan(ctx, db, 0)
	if err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	if n != 0 {
		t.Fatalf("second sweep deleted %d, want 0", n)
	}
}
