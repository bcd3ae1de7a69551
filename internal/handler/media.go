package handler

import (
	"net/http"

	"github.com/campushub/campushub/internal/service"
)

// MediaHandler serves stored media blobs back to clients.
type MediaHandler struct {
	media *service.MediaService
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(media *service.MediaService) *MediaHandler {
	return &MediaHandler{media: media}
}

// HandleGet streams a stored file.
// GET /api/media/{folder}/{key}
func (h *MediaHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("folder") + "/" + r.PathValue("key")

	data, err := h.media.Get(r.Context(), key)
	if err != nil {
		respondError(w, "get media", err)
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(data))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
