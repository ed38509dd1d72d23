package httpapi

import (
	"net/http"

	"digiplot/internal/service"

	"go.uber.org/zap"
)

// AuthHandler serves login, logout and session restore.
type AuthHandler struct {
	authService service.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	sess, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, h.logger, "Login", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(sess))
}

// Logout POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authService.Logout(r.Context(), sessionToken(r)); err != nil {
		writeServiceError(w, h.logger, "Logout", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok[any](nil))
}

// Session GET /api/v1/auth/session restores the login on app start.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	sess, err := h.authService.Session(r.Context(), sessionToken(r))
	if err != nil {
		writeServiceError(w, h.logger, "Session", err)
		return
	}
	if sess == nil {
		writeJSON(w, http.StatusUnauthorized, Expired("session expired, please log in again"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(sess))
}
