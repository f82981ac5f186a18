// Image HTTP handlers.
//
// This file exposes the REST endpoints for image records:
//   - GET  /images           (list, newest first)
//   - GET  /images/:id       (fetch one)
//   - GET  /images/:id/file  (download the generated raster)
//   - POST /images           (persist a client-composited record)
//   - POST /images/generate  (compose server-side, then persist)
//
// Handlers are transport-thin: they validate input shape, delegate to the
// ImageService, and translate service errors into HTTP results. Validation
// failures always carry the name of the first rejected field.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-meme-backend/internal/domain"
	"github.com/tbourn/go-meme-backend/internal/meme"
	"github.com/tbourn/go-meme-backend/internal/services"
)

// ImageService is the application-service surface the handlers depend on.
// Declared here (consumer side) so tests can substitute a stub.
type ImageService interface {
	Create(ctx context.Context, in services.CreateImageInput) (*domain.Image, error)
	List(ctx context.Context) ([]domain.Image, error)
	Get(ctx context.Context, id int) (*domain.Image, error)
	Generate(ctx context.Context, in services.GenerateInput) (*domain.Image, error)
}

// Handlers bundles the HTTP handlers and their dependencies.
type Handlers struct {
	images ImageService
}

// New constructs the handler set around the given image service.
func New(images ImageService) *Handlers {
	return &Handlers{images: images}
}

// CreateImageRequest is the JSON payload for persisting a record whose
// composition already happened on the client canvas. Both URL fields are
// required; captions are optional and may be null or absent.
type CreateImageRequest struct {
	OriginalImageURL  string  `json:"originalImageUrl" example:"data:image/jpeg;base64,..."`
	GeneratedImageURL string  `json:"generatedImageUrl" example:"data:image/jpeg;base64,..."`
	TopText           *string `json:"topText,omitempty" example:"HELLO"`
	BottomText        *string `json:"bottomText,omitempty" example:"WORLD"`
}

// GenerateImageRequest is the JSON payload for server-side composition.
type GenerateImageRequest struct {
	ImageData  string  `json:"imageData" example:"data:image/png;base64,..."`
	TopText    *string `json:"topText,omitempty" example:"HELLO"`
	BottomText *string `json:"bottomText,omitempty" example:"WORLD"`
	Width      int     `json:"width,omitempty" example:"600"`
}

// ListImages godoc
// @ID          listImages
// @Summary     List images
// @Description Returns all image records ordered newest first.
// @Tags        Images
// @Produce     json
// @Success     200 {array}  domain.Image
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /images [get]
func (h *Handlers) ListImages(c *gin.Context) {
	list, err := h.images.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not list images")
		return
	}
	if list == nil {
		list = []domain.Image{}
	}
	ok(c, http.StatusOK, list)
}

// GetImage godoc
// @ID          getImage
// @Summary     Get one image
// @Description Fetches a single image record by its numeric ID.
// @Tags        Images
// @Produce     json
// @Param       id path int true "Image ID" example(42)
// @Success     200 {object} domain.Image
// @Failure     400 {object} handlers.ErrorResponse "Malformed ID"
// @Failure     404 {object} handlers.ErrorResponse "Image not found"
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /images/{id} [get]
func (h *Handlers) GetImage(c *gin.Context) {
	img, ok2 := h.fetch(c)
	if !ok2 {
		return
	}
	ok(c, http.StatusOK, img)
}

// DownloadImage godoc
// @ID          downloadImage
// @Summary     Download the generated image
// @Description Serves the stored composite as a raster file with a
// @Description timestamp-suffixed filename. Records whose generated URL
// @Description points at a remote location are redirected.
// @Tags        Images
// @Produce     image/jpeg
// @Param       id path int true "Image ID" example(42)
// @Success     200 {file}   binary
// @Failure     404 {object} handlers.ErrorResponse "Image not found"
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /images/{id}/file [get]
func (h *Handlers) DownloadImage(c *gin.Context) {
	img, ok2 := h.fetch(c)
	if !ok2 {
		return
	}

	if !strings.HasPrefix(img.GeneratedImageURL, "data:") {
		c.Redirect(http.StatusFound, img.GeneratedImageURL)
		return
	}

	raw, mime, err := meme.DataURIBytes(img.GeneratedImageURL)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "stored image is unreadable")
		return
	}

	name := fmt.Sprintf("meme-%d%s", img.CreatedAt.Unix(), extensionFor(mime))
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, mime, raw)
}

// CreateImage godoc
// @ID          createImage
// @Summary     Create an image record
// @Description Persists a record for a composite generated on the client.
// @Description On validation failure the body names the first missing field.
// @Tags        Images
// @Accept      json
// @Produce     json
// @Param       body body handlers.CreateImageRequest true "Image payload"
// @Success     201 {object} domain.Image
// @Failure     400 {object} handlers.ErrorResponse "Validation failure"
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /images [post]
func (h *Handlers) CreateImage(c *gin.Context) {
	var req CreateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	img, err := h.images.Create(c.Request.Context(), services.CreateImageInput{
		OriginalImageURL:  req.OriginalImageURL,
		GeneratedImageURL: req.GeneratedImageURL,
		TopText:           req.TopText,
		BottomText:        req.BottomText,
	})
	if err != nil {
		h.failCreate(c, err)
		return
	}
	ok(c, http.StatusCreated, img)
}

// GenerateImage godoc
// @ID          generateImage
// @Summary     Compose a meme server-side
// @Description Decodes the uploaded source, renders the caption bars onto it,
// @Description persists the result, and returns the stored record.
// @Tags        Images
// @Accept      json
// @Produce     json
// @Param       body body handlers.GenerateImageRequest true "Composition payload"
// @Success     201 {object} domain.Image
// @Failure     400 {object} handlers.ErrorResponse "Validation failure or undecodable image"
// @Failure     500 {object} handlers.ErrorResponse "Internal server error"
// @Router      /images/generate [post]
func (h *Handlers) GenerateImage(c *gin.Context) {
	var req GenerateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	img, err := h.images.Generate(c.Request.Context(), services.GenerateInput{
		ImageData:  req.ImageData,
		TopText:    req.TopText,
		BottomText: req.BottomText,
		Width:      req.Width,
	})
	if err != nil {
		if errors.Is(err, services.ErrBadImageData) {
			failField(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), "imageData")
			return
		}
		h.failCreate(c, err)
		return
	}
	ok(c, http.StatusCreated, img)
}

// fetch parses the :id parameter and loads the record, writing the error
// response itself when either step fails.
func (h *Handlers) fetch(c *gin.Context) (*domain.Image, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "id must be an integer")
		return nil, false
	}

	img, err := h.images.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrImageNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "image not found")
			return nil, false
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not load image")
		return nil, false
	}
	return img, true
}

// failCreate maps service errors from the create path onto HTTP results.
func (h *Handlers) failCreate(c *gin.Context, err error) {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		failField(c, http.StatusBadRequest, ErrCodeBadRequest, ve.Message, ve.Field)
		return
	}
	fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not store image")
}

// extensionFor picks a download filename extension for a data-URI MIME type.
func extensionFor(mime string) string {
	switch mime {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	default:
		return ".jpg"
	}
}
