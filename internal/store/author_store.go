package store

import (
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"booklibrary/internal/apperr"
	"booklibrary/internal/config"
	"booklibrary/internal/entity"
)

type AuthorInput struct {
	Name        entity.Optional[string] `json:"name"`
	BirthYear   entity.Optional[int]    `json:"birth_year"`
	DeathYear   entity.Optional[int]    `json:"death_year"`
	Nationality entity.Optional[string] `json:"nationality"`
	Biography   entity.Optional[string] `json:"biography"`
}

type AuthorStore struct {
	mu      sync.Mutex
	cfg     config.Config
	path    string
	authors []entity.Author
}

func NewAuthorStore(cfg config.Config) *AuthorStore {
	return &AuthorStore{
		cfg:     cfg,
		path:    cfg.AuthorsFile,
		authors: loadOrSeed(cfg.AuthorsFile, cfg.DefaultAuthorsFile, fallbackAuthors),
	}
}

func fallbackAuthors() []entity.Author {
	birth := 1990
	nationality := "Unknown"
	bio := "A sample author for testing purposes."
	return []entity.Author{{
		ID:          1,
		Name:        "Sample Author",
		BirthYear:   &birth,
		Nationality: &nationality,
		Biography:   &bio,
		CreatedAt:   time.Now(),
	}}
}

func (s *AuthorStore) validate(in AuthorInput, isUpdate bool) error {
	if !isUpdate {
		if !in.Name.Set || !in.Name.Valid || in.Name.Value == "" {
			return apperr.Validation("name", "Missing required field: name")
		}
	}

	if in.Name.Set {
		name := strings.TrimSpace(in.Name.Value)
		if !in.Name.Valid || name == "" {
			return apperr.Validation("name", "Name cannot be empty")
		}
		if utf8.RuneCountInString(name) > s.cfg.MaxAuthorLength {
			return apperr.Validation("name", fmt.Sprintf("Name too long (max %d characters)", s.cfg.MaxAuthorLength))
		}
	}

	currentYear := time.Now().Year()
	if in.BirthYear.Set && in.BirthYear.Valid {
		if in.BirthYear.Value < 1000 || in.BirthYear.Value > currentYear {
			return apperr.Validation("birth_year", "Birth year must be between 1000 and current year")
		}
	}
	if in.DeathYear.Set && in.DeathYear.Valid {
		if in.DeathYear.Value < 1000 || in.DeathYear.Value > currentYear {
			return apperr.Validation("death_year", "Death year must be between 1000 and current year")
		}
	}
	// Cross-field check only when both years arrive in the same input.
	if in.BirthYear.Set && in.BirthYear.Valid && in.DeathYear.Set && in.DeathYear.Valid {
		if in.BirthYear.Value >= in.DeathYear.Value {
			return apperr.Validation("death_year", "Death year must be after birth year")
		}
	}

	return nil
}

func (s *AuthorStore) nextID() int {
	maxID := 0
	for _, a := range s.authors {
		if a.ID > maxID {
			maxID = a.ID
		}
	}
	return maxID + 1
}

func (s *AuthorStore) persist() error {
	if err := writeArray(s.path, s.authors); err != nil {
		return apperr.Storage("Failed to save authors to storage", err)
	}
	return nil
}

// List returns the whole collection. Author listings are unpaginated.
func (s *AuthorStore) List() []entity.Author {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.Author, len(s.authors))
	copy(out, s.authors)
	return out
}

func (s *AuthorStore) GetByID(id int) (entity.Author, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.authors {
		if a.ID == id {
			return a, nil
		}
	}
	return entity.Author{}, apperr.NotFound("Author", id)
}

func (s *AuthorStore) Create(in AuthorInput) (entity.Author, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.validate(in, false); err != nil {
		return entity.Author{}, err
	}

	author := entity.Author{
		ID:        s.nextID(),
		Name:      strings.TrimSpace(in.Name.Value),
		CreatedAt: time.Now(),
	}
	if in.BirthYear.Set && in.BirthYear.Valid {
		y := in.BirthYear.Value
		author.BirthYear = &y
	}
	if in.DeathYear.Set && in.DeathYear.Valid {
		y := in.DeathYear.Value
		author.DeathYear = &y
	}
	if in.Nationality.Set && in.Nationality.Valid {
		if v := strings.TrimSpace(in.Nationality.Value); v != "" {
			author.Nationality = &v
		}
	}
	if in.Biography.Set && in.Biography.Valid {
		if v := strings.TrimSpace(in.Biography.Value); v != "" {
			author.Biography = &v
		}
	}

	s.authors = append(s.authors, author)
	if err := s.persist(); err != nil {
		s.authors = s.authors[:len(s.authors)-1]
		return entity.Author{}, err
	}
	return author, nil
}

func (s *AuthorStore) Update(id int, in AuthorInput) (entity.Author, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, a := range s.authors {
		if a.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return entity.Author{}, apperr.NotFound("Author", id)
	}

	if err := s.validate(in, true); err != nil {
		return entity.Author{}, err
	}

	prev := s.authors[idx]
	author := prev

	if in.Name.Set {
		author.Name = strings.TrimSpace(in.Name.Value)
	}
	if in.BirthYear.Set {
		author.BirthYear = nil
		if in.BirthYear.Valid {
			y := in.BirthYear.Value
			author.BirthYear = &y
		}
	}
	if in.DeathYear.Set {
		author.DeathYear = nil
		if in.DeathYear.Valid {
			y := in.DeathYear.Value
			author.DeathYear = &y
		}
	}
	if in.Nationality.Set {
		author.Nationality = nil
		if in.Nationality.Valid {
			if v := strings.TrimSpace(in.Nationality.Value); v != "" {
				author.Nationality = &v
			}
		}
	}
	if in.Biography.Set {
		author.Biography = nil
		if in.Biography.Valid {
			if v := strings.TrimSpace(in.Biography.Value); v != "" {
				author.Biography = &v
			}
		}
	}
	now := time.Now()
	author.UpdatedAt = &now

	s.authors[idx] = author
	if err := s.persist(); err != nil {
		s.authors[idx] = prev
		return entity.Author{}, err
	}
	return author, nil
}

func (s *AuthorStore) Delete(id int) (entity.Author, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, a := range s.authors {
		if a.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return entity.Author{}, apperr.NotFound("Author", id)
	}

	removed := s.authors[idx]
	s.authors = append(s.authors[:idx], s.authors[idx+1:]...)
	if err := s.persist(); err != nil {
		s.authors = append(s.authors, removed)
		return entity.Author{}, err
	}
	return removed, nil
}

func (s *AuthorStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.authors)
}
