// Package query implements the pagination and search rules shared by the
// record stores.
package query

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"booklibrary/internal/apperr"
)

type Params struct {
	Page    int
	PerPage int
}

// Page describes the slice of a listing that was returned.
type Page struct {
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// Normalize validates the page number and applies the default/maximum
// page size. PerPage <= 0 means "use the default".
func (p Params) Normalize(defaultSize, maxSize int) (Params, error) {
	if p.Page < 1 {
		return Params{}, apperr.Validation("page", "Page number must be greater than 0")
	}
	if p.PerPage <= 0 {
		p.PerPage = defaultSize
	}
	if p.PerPage > maxSize {
		p.PerPage = maxSize
	}
	return p, nil
}

// Paginate slices items according to already-normalized params.
func Paginate[T any](items []T, p Params) ([]T, Page) {
	total := len(items)
	totalPages := (total + p.PerPage - 1) / p.PerPage

	start := (p.Page - 1) * p.PerPage
	end := start + p.PerPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return items[start:end], Page{
		Page:       p.Page,
		PerPage:    p.PerPage,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    p.Page < totalPages,
		HasPrev:    p.Page > 1,
	}
}

// ValidateSearch trims the query and enforces the length bounds. The
// minimum keeps single-character queries from matching nearly everything.
func ValidateSearch(q string, minLen, maxLen int) (string, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return "", apperr.Validation("q", "Search query is required")
	}
	if utf8.RuneCountInString(q) < minLen {
		return "", apperr.Validation("q", fmt.Sprintf("Search query must be at least %d characters", minLen))
	}
	if utf8.RuneCountInString(q) > maxLen {
		return "", apperr.Validation("q", fmt.Sprintf("Search query too long (max %d characters)", maxLen))
	}
	return q, nil
}
