package meme

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"strings"

	// Register decoders for the payloads browsers upload.
	_ "image/gif"
	_ "image/png"
)

// ErrInvalidDataURI is returned when a payload is not a base64 image data URI.
var ErrInvalidDataURI = errors.New("invalid image data URI")

// EncodeJPEGDataURI serializes img as a JPEG at the given quality and wraps
// it in a base64 data URI, the inline format the records store in place of a
// separate file-storage layer.
func EncodeJPEGDataURI(img image.Image, quality int) (string, error) {
	if quality <= 0 {
		quality = DefaultQuality
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return "", err
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeDataURI parses a "data:image/*;base64," payload and decodes the
// raster inside it.
func DecodeDataURI(uri string) (image.Image, error) {
	if !strings.HasPrefix(uri, "data:image/") {
		return nil, ErrInvalidDataURI
	}
	idx := strings.Index(uri, ";base64,")
	if idx < 0 {
		return nil, ErrInvalidDataURI
	}
	raw, err := base64.StdEncoding.DecodeString(uri[idx+len(";base64,"):])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	return img, nil
}

// DataURIBytes returns the raw payload of a base64 image data URI together
// with its MIME type, without decoding the raster. Used by the download
// endpoint to serve stored images as files.
func DataURIBytes(uri string) ([]byte, string, error) {
	if !strings.HasPrefix(uri, "data:") {
		return nil, "", ErrInvalidDataURI
	}
	idx := strings.Index(uri, ";base64,")
	if idx < 0 {
		return nil, "", ErrInvalidDataURI
	}
	mime := uri[len("data:"):idx]
	raw, err := base64.StdEncoding.DecodeString(uri[idx+len(";base64,"):])
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	return raw, mime, nil
}
