package handler

import (
	"net/http"

	"github.com/campushub/campushub/internal/domain"
	"github.com/campushub/campushub/internal/service"
)

// AdminHandler handles administrative user management.
type AdminHandler struct {
	users *service.UserService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(users *service.UserService) *AdminHandler {
	return &AdminHandler{users: users}
}

// HandleList returns all users.
// GET /api/users
func (h *AdminHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())
	if identity == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	users, err := h.users.List(r.Context(), identity.Role)
	if err != nil {
		respondError(w, "list users", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"users": toUserDTOs(users)})
}

// HandleGet returns a single user.
// GET /api/users/{id}
func (h *AdminHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())
	if identity == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	user, err := h.users.GetByID(r.Context(), identity.Role, r.PathValue("id"))
	if err != nil {
		respondError(w, "get user", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": toUserDTO(user)})
}

// HandleUpdate applies an administrative update to a user.
// PUT /api/users/{id}
// Request: {"name":"...","email":"...","role":"..."} — all optional
func (h *AdminHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())
	if identity == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, err := h.users.UpdateByAdmin(r.Context(), identity.UserID, identity.Role, r.PathValue("id"), service.UpdateUserInput{
		Name:  req.Name,
		Email: req.Email,
		Role:  domain.Role(req.Role),
	})
	if err != nil {
		respondError(w, "update user", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": toUserDTO(user)})
}

// HandleDelete removes a user.
// DELETE /api/users/{id}
func (h *AdminHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())
	if identity == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	if err := h.users.Delete(r.Context(), identity.UserID, identity.Role, r.PathValue("id")); err != nil {
		respondError(w, "delete user", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
