// Package http is the transport boundary: chi routes, middleware and the
// JSON envelope every endpoint answers with.
package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"booklibrary/internal/apperr"
	"booklibrary/internal/query"
)

type Envelope struct {
	Success    bool        `json:"success"`
	Data       any         `json:"data,omitempty"`
	Pagination *query.Page `json:"pagination,omitempty"`
	Message    string      `json:"message,omitempty"`
	Error      *ErrorBody  `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("response encode failed: %v", err)
	}
}

func WriteData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Envelope{Success: true, Data: data})
}

func WriteMessage(w http.ResponseWriter, status int, data any, message string) {
	writeJSON(w, status, Envelope{Success: true, Data: data, Message: message})
}

func WriteList(w http.ResponseWriter, data any, page query.Page) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: data, Pagination: &page})
}

// statusFor is the single kind-to-status mapping. It is total: every
// core error kind lands on a status, and anything that is not a core
// error is a 500.
func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindAuth:
		return http.StatusUnauthorized
	case apperr.KindPermission:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindStorage:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func WriteError(w http.ResponseWriter, err error) {
	var e *apperr.Error
	if !errors.As(err, &e) {
		log.Printf("unexpected error at boundary: %v", err)
		writeJSON(w, http.StatusInternalServerError, Envelope{
			Success: false,
			Error:   &ErrorBody{Code: "internal_error", Message: "Internal server error"},
		})
		return
	}

	writeJSON(w, statusFor(e.Kind), Envelope{
		Success: false,
		Error:   &ErrorBody{Code: string(e.Kind), Message: e.Message, Field: e.Field},
	})
}
