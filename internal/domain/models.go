// Package domain defines the persistence model for generated meme images.
// The single Image type is mapped with GORM and forms the core data layer
// of the meme backend.
package domain

import "time"

// Image represents one generated composite: the user's source photo, the
// captioned output, and the two optional caption strings. Rows are
// short-lived; a background sweep removes anything older than the retention
// window, so the table never grows beyond recent activity.
//
// Fields:
//   - ID: auto-incrementing integer primary key, assigned by the database.
//   - OriginalImageURL: data URI (or URL) of the source photo; required.
//   - GeneratedImageURL: data URI (or URL) of the composited output; required.
//   - TopText / BottomText: optional captions; nil when absent. A row with
//     neither caption is valid (plain recompression of the source).
//   - CreatedAt: set once at insert time; drives list ordering and expiry.
type Image struct {
	ID                int       `json:"id"                gorm:"primaryKey;autoIncrement"`
	OriginalImageURL  string    `json:"originalImageUrl"  gorm:"column:original_image_url;type:text;not null"`
	GeneratedImageURL string    `json:"generatedImageUrl" gorm:"column:generated_image_url;type:text;not null"`
	TopText           *string   `json:"topText"           gorm:"column:top_text;type:text"`
	BottomText        *string   `json:"bottomText"        gorm:"column:bottom_text;type:text"`
	CreatedAt         time.Time `json:"createdAt"         gorm:"index"`
}

// TableName returns the database table name for Image.
func (Image) TableName() string { return "images" }
