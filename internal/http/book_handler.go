package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"booklibrary/internal/apperr"
	"booklibrary/internal/query"
	"booklibrary/internal/store"
)

type BookHandler struct {
	books *store.BookStore
}

func NewBookHandler(books *store.BookStore) *BookHandler {
	return &BookHandler{books: books}
}

// pageParams reads page/per_page from the query string. Values that do
// not parse as integers are treated as absent.
func pageParams(r *http.Request) query.Params {
	page := 1
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			page = n
		}
	}
	perPage := 0
	if v := r.URL.Query().Get("per_page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			perPage = n
		}
	}
	return query.Params{Page: page, PerPage: perPage}
}

func idParam(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id < 1 {
		return 0, apperr.Validation(name, "Invalid id")
	}
	return id, nil
}

func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	books, page, err := h.books.List(pageParams(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteList(w, books, page)
}

func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}
	book, err := h.books.GetByID(id)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteData(w, http.StatusOK, book)
}

func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in store.BookInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteError(w, apperr.Validation("", "Invalid JSON body"))
		return
	}
	book, err := h.books.Create(in)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteMessage(w, http.StatusCreated, book, "Book created successfully")
}

func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}
	var in store.BookInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteError(w, apperr.Validation("", "Invalid JSON body"))
		return
	}
	book, err := h.books.Update(id, in)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteMessage(w, http.StatusOK, book, "Book updated successfully")
}

func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}
	book, err := h.books.Delete(id)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteMessage(w, http.StatusOK, book, "Book deleted successfully")
}

func (h *BookHandler) Search(w http.ResponseWriter, r *http.Request) {
	books, page, err := h.books.Search(r.URL.Query().Get("q"), pageParams(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteList(w, books, page)
}

func (h *BookHandler) ByAuthor(w http.ResponseWriter, r *http.Request) {
	author := chi.URLParam(r, "name")
	WriteData(w, http.StatusOK, h.books.ByAuthor(author))
}

func (h *BookHandler) ByGenre(w http.ResponseWriter, r *http.Request) {
	genre := chi.URLParam(r, "genre")
	WriteData(w, http.StatusOK, h.books.ByGenre(genre))
}
