package http

import (
	"encoding/json"
	"net/http"

	"booklibrary/internal/apperr"
	"booklibrary/internal/store"
)

type AuthorHandler struct {
	authors *store.AuthorStore
}

func NewAuthorHandler(authors *store.AuthorStore) *AuthorHandler {
	return &AuthorHandler{authors: authors}
}

func (h *AuthorHandler) List(w http.ResponseWriter, r *http.Request) {
	WriteData(w, http.StatusOK, h.authors.List())
}

func (h *AuthorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}
	author, err := h.authors.GetByID(id)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteData(w, http.StatusOK, author)
}

func (h *AuthorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in store.AuthorInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteError(w, apperr.Validation("", "Invalid JSON body"))
		return
	}
	author, err := h.authors.Create(in)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteMessage(w, http.StatusCreated, author, "Author created successfully")
}

func (h *AuthorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}
	var in store.AuthorInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteError(w, apperr.Validation("", "Invalid JSON body"))
		return
	}
	author, err := h.authors.Update(id, in)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteMessage(w, http.StatusOK, author, "Author updated successfully")
}

func (h *AuthorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}
	author, err := h.authors.Delete(id)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteMessage(w, http.StatusOK, author, "Author deleted successfully")
}
