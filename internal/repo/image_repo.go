// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Image model:
// create, list by recency, fetch by id, and the age-based bulk delete used by
// the cleanup sweep.
//
// Conventions:
//   - Functions are package-level and take the *gorm.DB handle explicitly, so
//     callers can pass a transaction-bound handle where atomicity matters.
//   - "Row absent" is reported as ErrNotFound, never invented as a zero value.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-meme-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
//
// It aliases gorm.ErrRecordNotFound so callers can use errors.Is with either
// sentinel.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateImage inserts a new image row. CreatedAt is stamped here (UTC) so the
// value is set exactly once at insert time; the database assigns the ID.
func CreateImage(ctx context.Context, db *gorm.DB, img *domain.Image) error {
	if img.CreatedAt.IsZero() {
		img.CreatedAt = time.Now().UTC()
	}
	return db.WithContext(ctx).Create(img).Error
}

// ListImages returns every image ordered newest first (CreatedAt DESC, ID DESC
// as a deterministic tiebreak). There is no pagination; the retention sweep
// keeps the table small.
func ListImages(ctx context.Context, db *gorm.DB) ([]domain.Image, error) {
	var out []domain.Image
	err := db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

// GetImage fetches a single image by ID. If the row does not exist it returns
// ErrNotFound; on other DB errors the raw error is returned.
func GetImage(ctx context.Context, db *gorm.DB, id int) (*domain.Image, error) {
	var img domain.Image
	if err := db.WithContext(ctx).Where("id = ?", id).First(&img).Error; err != nil {
		return nil, err
	}
	return &img, nil
}

// DeleteImagesOlderThan removes every row whose CreatedAt is strictly earlier
// than now minus the given age, and reports how many rows were deleted.
//
// It is safe to run concurrently with creates and reads: rows inserted after
// the cutoff is computed can never satisfy the predicate, so no coordination
// with writers is needed.
func DeleteImagesOlderThan(ctx context.Context, db *gorm.DB, age time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-age)
	res := db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&domain.Image{})
	return res.RowsAffected, res.Error
}
