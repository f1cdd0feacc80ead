package handler

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dtroode/clinic-server/internal/api/rest/response"
	"github.com/dtroode/clinic-server/internal/logger"
)

// Image serves stored images.
type Image struct {
	imageService ImageService
	logger       *logger.Logger
}

// NewImage creates a new Image handler.
func NewImage(imageService ImageService, logger *logger.Logger) *Image {
	return &Image{imageService: imageService, logger: logger}
}

// Get handles GET /images/{name}.
func (h *Image) Get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	body, contentType, err := h.imageService.Open(r.Context(), name)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}
	defer body.Close()

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, body); err != nil {
		h.logger.Warn("Image handler: failed to stream image",
			"name", name,
			"error", err.Error())
	}
}
