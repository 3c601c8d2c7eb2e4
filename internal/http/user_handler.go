package http

import (
	"encoding/json"
	"net/http"

	"booklibrary/internal/apperr"
	"booklibrary/internal/store"
)

// UserHandler serves the admin-only user management endpoints.
type UserHandler struct {
	users *store.UserStore
}

func NewUserHandler(users *store.UserStore) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	WriteData(w, http.StatusOK, h.users.List())
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}
	user, err := h.users.GetByID(id)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteData(w, http.StatusOK, user)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := CurrentUser(r)
	id, err := idParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}
	var in store.UserInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteError(w, apperr.Validation("", "Invalid JSON body"))
		return
	}
	user, err := h.users.Update(id, in, claims.UserID, claims.Role)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteMessage(w, http.StatusOK, user, "User updated successfully")
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := CurrentUser(r)
	id, err := idParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}
	user, err := h.users.Delete(id, claims.UserID, claims.Role)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteMessage(w, http.StatusOK, user, "User deleted successfully")
}
