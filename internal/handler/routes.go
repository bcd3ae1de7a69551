package handler

import (
	"net/http"

	"github.com/campushub/campushub/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux. Credential
// endpoints sit behind the per-IP rate limiter; everything under /api that
// reads or mutates user state sits behind RequireAuth.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, users *service.UserService, media *service.MediaService, limiter *service.LoginLimiter) {
	authHandler := NewAuthHandler(auth)
	profileHandler := NewProfileHandler(users)
	adminHandler := NewAdminHandler(users)
	mediaHandler := NewMediaHandler(media)

	mux.HandleFunc("GET /healthz", HandleHealthz)

	mux.Handle("POST /api/auth/register", RateLimit(limiter, http.HandlerFunc(authHandler.HandleRegister)))
	mux.Handle("POST /api/auth/login", RateLimit(limiter, http.HandlerFunc(authHandler.HandleLogin)))
	mux.HandleFunc("POST /api/auth/logout", authHandler.HandleLogout)
	mux.Handle("GET /api/auth/me", RequireAuth(auth, http.HandlerFunc(profileHandler.HandleGet)))

	mux.Handle("GET /api/profile", RequireAuth(auth, http.HandlerFunc(profileHandler.HandleGet)))
	mux.Handle("PUT /api/profile", RequireAuth(auth, http.HandlerFunc(profileHandler.HandleUpdate)))

	mux.Handle("GET /api/users", RequireAuth(auth, http.HandlerFunc(adminHandler.HandleList)))
	mux.Handle("GET /api/users/{id}", RequireAuth(auth, http.HandlerFunc(adminHandler.HandleGet)))
	mux.Handle("PUT /api/users/{id}", RequireAuth(auth, http.HandlerFunc(adminHandler.HandleUpdate)))
	mux.Handle("DELETE /api/users/{id}", RequireAuth(auth, http.HandlerFunc(adminHandler.HandleDelete)))

	mux.HandleFunc("GET /api/media/{folder}/{key}", mediaHandler.HandleGet)
}
