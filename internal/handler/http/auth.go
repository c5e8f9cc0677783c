package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/attendance-marker/attendance-backend-go/internal/domain/auth"
	"github.com/attendance-marker/attendance-backend-go/internal/handler/http/response"
)

type AuthHandler interface {
	LoginAdmin(w http.ResponseWriter, r *http.Request)
	LoginHR(w http.ResponseWriter, r *http.Request)
	LoginTeamLeader(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService auth.AuthService
}

type loginFunc func(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error)

func (h *AuthHandlerImpl) login(w http.ResponseWriter, r *http.Request, name string, fn loginFunc) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error(name+" decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	token, err := fn(r.Context(), req)
	if err != nil {
		slog.Warn(name+" failed", "emp_id", req.EmpID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Login successful", token)
}

// LoginAdmin implements AuthHandler.
func (h *AuthHandlerImpl) LoginAdmin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, "LoginAdmin", h.authService.LoginAdmin)
}

// LoginHR implements AuthHandler.
func (h *AuthHandlerImpl) LoginHR(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, "LoginHR", h.authService.LoginHR)
}

// LoginTeamLeader implements AuthHandler.
func (h *AuthHandlerImpl) LoginTeamLeader(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, "LoginTeamLeader", h.authService.LoginTeamLeader)
}

func NewAuthHandler(authService auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{authService: authService}
}
