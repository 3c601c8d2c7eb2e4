package http

import (
	"encoding/json"
	"net/http"

	"booklibrary/internal/apperr"
	"booklibrary/internal/auth"
	"booklibrary/internal/entity"
	"booklibrary/internal/store"
)

// AuthHandler serves login, registration, token refresh and the
// self-service profile endpoints.
type AuthHandler struct {
	svc   *auth.Service
	users *store.UserStore
}

func NewAuthHandler(svc *auth.Service, users *store.UserStore) *AuthHandler {
	return &AuthHandler{svc: svc, users: users}
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, apperr.Validation("", "Invalid JSON body"))
		return
	}
	if err := validateRequest(req); err != nil {
		WriteError(w, err)
		return
	}

	result, err := h.svc.Authenticate(req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteMessage(w, http.StatusOK, result, "Login successful")
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in store.UserInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteError(w, apperr.Validation("", "Invalid JSON body"))
		return
	}
	// Self-registration never grants a role or deactivates the account.
	in.Role = entity.Optional[string]{}
	in.IsActive = entity.Optional[bool]{}

	user, err := h.users.Create(in)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteMessage(w, http.StatusCreated, user, "User created successfully")
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, apperr.Validation("", "Invalid JSON body"))
		return
	}
	if err := validateRequest(req); err != nil {
		WriteError(w, err)
		return
	}

	result, err := h.svc.Refresh(req.RefreshToken)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteMessage(w, http.StatusOK, result, "Token refreshed successfully")
}

// Logout is stateless: tokens are not tracked server side, so this only
// tells the client to discard them.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	WriteMessage(w, http.StatusOK, nil, "Logout successful. Please remove the token from client storage.")
}

func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims := CurrentUser(r)
	user, err := h.users.GetByID(claims.UserID)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteData(w, http.StatusOK, user)
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims := CurrentUser(r)

	var in store.UserInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteError(w, apperr.Validation("", "Invalid JSON body"))
		return
	}
	// Role and activation changes go through the admin endpoints only.
	in.Role = entity.Optional[string]{}
	in.IsActive = entity.Optional[bool]{}

	user, err := h.users.Update(claims.UserID, in, claims.UserID, claims.Role)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteMessage(w, http.StatusOK, user, "User updated successfully")
}
