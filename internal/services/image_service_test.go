package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"path/filepath"
	"strings"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-meme-backend/internal/domain"
	"github.com/tbourn/go-meme-backend/internal/repo"
)

func newSvc(t *testing.T) *ImageService {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("svc_%d.db", time.Now().UnixNano()))
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
	return &ImageService{DB: db}
}

func strptr(s string) *string { return &s }

func pngDataURI(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 20, 10))); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestCreate_RequiresOriginalImageURL(t *testing.T) {
	s := newSvc(t)
	_, err := s.Create(context.Background(), CreateImageInput{
		GeneratedImageURL: "data:image/jpeg;base64,x",
	})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if ve.Field != "originalImageUrl" {
		t.Fatalf("field = %q, want originalImageUrl", ve.Field)
	}
}

func TestCreate_RequiresGeneratedImageURL(t *testing.T) {
	s := newSvc(t)
	_, err := s.Create(context.Background(), CreateImageInput{
		OriginalImageURL: "data:image/png;base64,x",
		// whitespace-only counts as missing
		GeneratedImageURL: "   ",
	})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if ve.Field != "generatedImageUrl" {
		t.Fatalf("field = %q, want generatedImageUrl", ve.Field)
	}
}

func TestCreate_ThenGetRoundtrip(t *testing.T) {
	s := newSvc(t)
	ctx := context.Background()

	created, err := s.Create(ctx, CreateImageInput{
		OriginalImageURL:  "data:image/png;base64,orig",
		GeneratedImageURL: "data:image/jpeg;base64,gen",
		TopText:           strptr("HELLO"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == 0 || created.CreatedAt.IsZero() {
		t.Fatalf("server-assigned fields not populated: %+v", created)
	}
	if created.BottomText != nil {
		t.Fatalf("absent bottomText must stay nil")
	}

	got, err := s.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != created.ID ||
		got.OriginalImageURL != created.OriginalImageURL ||
		got.GeneratedImageURL != created.GeneratedImageURL {
		t.Fatalf("roundtrip mismatch: %+v vs %+v", got, created)
	}
	if got.TopText == nil || *got.TopText != "HELLO" {
		t.Fatalf("topText lost in roundtrip: %+v", got)
	}
}

func TestGet_NotFound(t *testing.T) {
	s := newSvc(t)
	if _, err := s.Get(context.Background(), 12345); !errors.Is(err, ErrImageNotFound) {
		t.Fatalf("want ErrImageNotFound, got %v", err)
	}
}

func TestList_NewestFirst(t *testing.T) {
	s := newSvc(t)
	ctx := context.Background()

	base := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	for _, offset := range []time.Duration{0, 2 * time.Minute, time.Minute} {
		img := &domain.Image{
			OriginalImageURL:  "o",
			GeneratedImageURL: "g",
			CreatedAt:         base.Add(offset),
		}
		if err := repo.CreateImage(ctx, s.DB, img); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].CreatedAt.Before(list[i].CreatedAt) {
			t.Fatalf("not newest first: %+v", list)
		}
	}
}

func TestGenerate_ComposesAndPersists(t *testing.T) {
	s := newSvc(t)
	ctx := context.Background()
	src := pngDataURI(t)

	img, err := s.Generate(ctx, GenerateInput{
		ImageData: src,
		TopText:   strptr("HELLO"),
		Width:     120,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if img.ID == 0 {
		t.Fatalf("record not persisted: %+v", img)
	}
	if img.OriginalImageURL != src {
		t.Fatalf("original URL must be the uploaded payload")
	}
	if !strings.HasPrefix(img.GeneratedImageURL, "data:image/jpeg;base64,") {
		t.Fatalf("generated URL is not a JPEG data URI: %.40q", img.GeneratedImageURL)
	}
	if img.TopText == nil || *img.TopText != "HELLO" {
		t.Fatalf("caption lost: %+v", img)
	}

	// visible via the normal read path
	if _, err := s.Get(ctx, img.ID); err != nil {
		t.Fatalf("Get after Generate: %v", err)
	}
}

func TestGenerate_RejectsMissingAndBadPayloads(t *testing.T) {
	s := newSvc(t)
	ctx := context.Background()

	_, err := s.Generate(ctx, GenerateInput{})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "imageData" {
		t.Fatalf("empty payload: want ValidationError(imageData), got %v", err)
	}

	if _, err := s.Generate(ctx, GenerateInput{ImageData: "https://example.com/x.png"}); !errors.Is(err, ErrBadImageData) {
		t.Fatalf("non data URI: want ErrBadImageData, got %v", err)
	}
}

func TestCleanupOlderThan(t *testing.T) {
	s := newSvc(t)
	ctx := context.Background()

	old := &domain.Image{
		OriginalImageURL:  "o",
		GeneratedImageURL: "g",
		CreatedAt:         time.Now().UTC().Add(-31 * time.Minute),
	}
	if err := repo.CreateImage(ctx, s.DB, old); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := s.Create(ctx, CreateImageInput{OriginalImageURL: "o", GeneratedImageURL: "g"}); err != nil {
		t.Fatalf("create fresh: %v", err)
	}

	n, err := s.CleanupOlderThan(ctx, 30*time.Minute)
	if err != nil {
		t.Fatalf("CleanupOlderThan: %v", err)
	}
	if n != 1 {
		t.Fatalf("deleted %d, want 1", n)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected the fresh record to survive, got %+v", list)
	}
}
