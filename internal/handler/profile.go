package handler

import (
	"io"
	"net/http"

	"github.com/campushub/campushub/internal/service"
)

// Multipart profile updates may carry an image; this bounds the whole form.
const maxProfileFormSize = 8 << 20 // 8MB

// ProfileHandler serves the authenticated caller's own profile.
type ProfileHandler struct {
	users *service.UserService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(users *service.UserService) *ProfileHandler {
	return &ProfileHandler{users: users}
}

// HandleGet returns the caller's own user record.
// GET /api/profile (also mounted as GET /api/auth/me)
func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())
	if identity == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	user, err := h.users.GetSelf(r.Context(), identity.UserID)
	if err != nil {
		respondError(w, "get profile", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": toUserDTO(user)})
}

// HandleUpdate applies a multipart profile update: optional name, email,
// password rotation (currentPassword + newPassword together), and an
// optional image file. If the password was rotated the response carries a
// fresh token.
// PUT /api/profile
func (h *ProfileHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())
	if identity == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	if err := r.ParseMultipartForm(maxProfileFormSize); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form.")
		return
	}

	in := service.UpdateSelfInput{
		Name:            r.FormValue("name"),
		Email:           r.FormValue("email"),
		CurrentPassword: r.FormValue("currentPassword"),
		NewPassword:     r.FormValue("newPassword"),
	}

	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Could not read uploaded file.")
			return
		}
		in.Image = &service.Upload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		}
	}

	user, token, err := h.users.UpdateSelf(r.Context(), identity.UserID, in)
	if err != nil {
		respondError(w, "update profile", err)
		return
	}

	resp := map[string]any{"user": toUserDTO(user)}
	if token != "" {
		resp["token"] = token
	}
	writeJSON(w, http.StatusOK, resp)
}
