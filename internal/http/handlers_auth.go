package httpx

import (
	"context"
	"net/http"

	domainauth "github.com/jobtracker/jobtracker-api/internal/domain/auth"
	"github.com/jobtracker/jobtracker-api/internal/domain/model"
)

// AuthService is the subset of service.AuthService the handlers use.
type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error)
	UpdateUser(ctx context.Context, id domainauth.Identity, req model.UpdateUserRequest) (*model.AuthResponse, error)
}

// AuthHandlers provides HTTP handlers for account registration and login.
type AuthHandlers struct {
	Svc AuthService
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	resp, err := h.Svc.Register(r.Context(), req)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusCreated, resp)
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	resp, err := h.Svc.Login(r.Context(), req)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, resp)
}

// UpdateUser handles PATCH /api/v1/auth/updateUser.
func (h *AuthHandlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req model.UpdateUserRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	resp, err := h.Svc.UpdateUser(r.Context(), id, req)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, resp)
}
