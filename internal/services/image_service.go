// Package services – ImageService
//
// This file implements the ImageService, the single owner of the image record
// lifecycle: validated creation, list-by-recency, fetch-by-id, server-side
// composition, and the age-based bulk delete invoked by the cleanup sweep.
// Predictable failures are returned as service-level errors (ValidationError,
// ErrImageNotFound, ErrBadImageData) so handlers can map them to HTTP results
// consistently; anything else is an unexpected storage error.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-meme-backend/internal/domain"
	"github.com/tbourn/go-meme-backend/internal/meme"
	"github.com/tbourn/go-meme-backend/internal/repo"
)

// CreateImageInput is the validated payload for creating an image record.
// Both URL fields are required non-empty strings (data URIs or URLs); the
// captions are optional and stored as NULL when absent.
type CreateImageInput struct {
	OriginalImageURL  string
	GeneratedImageURL string
	TopText           *string
	BottomText        *string
}

// GenerateInput is the payload for server-side composition: a decodable
// source image data URI plus the captions and an optional output width.
type GenerateInput struct {
	ImageData  string
	TopText    *string
	BottomText *string
	Width      int
}

// ImageService implements the use-cases around image records.
//
// Compose is configured once at construction; all persistence goes through
// the repo package using the provided GORM handle.
type ImageService struct {
	// DB is the database handle used for all image operations.
	DB *gorm.DB
	// Render holds the composition defaults (output width, JPEG quality,
	// wrap flag) used by Generate.
	Render meme.Options
}

// Create validates input, assigns CreatedAt, persists the row, and returns
// the full stored record (ID populated by the database).
//
// Errors:
//   - *ValidationError naming the first missing field when originalImageUrl
//     or generatedImageUrl is empty.
//   - The underlying DB error for unexpected storage failures.
func (s *ImageService) Create(ctx context.Context, in CreateImageInput) (*domain.Image, error) {
	if strings.TrimSpace(in.OriginalImageURL) == "" {
		return nil, required("originalImageUrl")
	}
	if strings.TrimSpace(in.GeneratedImageURL) == "" {
		return nil, required("generatedImageUrl")
	}

	img := &domain.Image{
		OriginalImageURL:  in.OriginalImageURL,
		GeneratedImageURL: in.GeneratedImageURL,
		TopText:           in.TopText,
		BottomText:        in.BottomText,
	}
	if err := repo.CreateImage(ctx, s.DB, img); err != nil {
		return nil, err
	}
	return img, nil
}

// List returns all records newest first. The result set is unbounded; the
// retention sweep keeps it small.
func (s *ImageService) List(ctx context.Context) ([]domain.Image, error) {
	return repo.ListImages(ctx, s.DB)
}

// Get fetches one record by ID, mapping an absent row to ErrImageNotFound.
func (s *ImageService) Get(ctx context.Context, id int) (*domain.Image, error) {
	img, err := repo.GetImage(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrImageNotFound
		}
		return nil, err
	}
	return img, nil
}

// Generate composes the meme server-side and persists the result as a new
// record: the source data URI becomes originalImageUrl and the composited
// JPEG data URI becomes generatedImageUrl.
//
// Errors:
//   - *ValidationError when imageData is empty.
//   - ErrBadImageData when the payload is not a decodable image data URI.
//   - The underlying DB error for storage failures.
func (s *ImageService) Generate(ctx context.Context, in GenerateInput) (*domain.Image, error) {
	if strings.TrimSpace(in.ImageData) == "" {
		return nil, required("imageData")
	}

	src, err := meme.DecodeDataURI(in.ImageData)
	if err != nil {
		return nil, ErrBadImageData
	}

	opts := s.Render
	if in.Width > 0 {
		opts.Width = in.Width
	}
	out, err := meme.Compose(src, deref(in.TopText), deref(in.BottomText), opts)
	if err != nil {
		return nil, err
	}
	generated, err := meme.EncodeJPEGDataURI(out, opts.Quality)
	if err != nil {
		return nil, err
	}

	return s.Create(ctx, CreateImageInput{
		OriginalImageURL:  in.ImageData,
		GeneratedImageURL: generated,
		TopText:           in.TopText,
		BottomText:        in.BottomText,
	})
}

// CleanupOlderThan deletes every record older than the given retention and
// returns the number of rows removed. Invoked by the cleanup scheduler (or
// the external trigger) rather than by user traffic.
func (s *ImageService) CleanupOlderThan(ctx context.Context, retention time.Duration) (int64, error) {
	return repo.DeleteImagesOlderThan(ctx, s.DB, retention)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
