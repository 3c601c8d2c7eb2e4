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
	"booklibrary/internal/query"
)

// BookInput is the request shape for creating or updating a book. Every
// field is Optional so partial updates can tell omitted from null.
type BookInput struct {
	Title       entity.Optional[string] `json:"title"`
	Author      entity.Optional[string] `json:"author"`
	Year        entity.Optional[int]    `json:"year"`
	Genre       entity.Optional[string] `json:"genre"`
	Description entity.Optional[string] `json:"description"`
}

type BookStore struct {
	mu    sync.Mutex
	cfg   config.Config
	path  string
	books []entity.Book
}

func NewBookStore(cfg config.Config) *BookStore {
	return &BookStore{
		cfg:   cfg,
		path:  cfg.BooksFile,
		books: loadOrSeed(cfg.BooksFile, cfg.DefaultBooksFile, fallbackBooks),
	}
}

func fallbackBooks() []entity.Book {
	year := 2023
	genre := "Fiction"
	return []entity.Book{{
		ID:          1,
		Title:       "Sample Book",
		Author:      "Sample Author",
		Year:        &year,
		Genre:       &genre,
		Description: "A sample book for testing purposes.",
		CreatedAt:   time.Now(),
	}}
}

func (s *BookStore) validate(in BookInput, isUpdate bool) error {
	if !isUpdate {
		if !in.Title.Set || !in.Title.Valid || in.Title.Value == "" {
			return apperr.Validation("title", "Missing required field: title")
		}
		if !in.Author.Set || !in.Author.Valid || in.Author.Value == "" {
			return apperr.Validation("author", "Missing required field: author")
		}
	}

	if in.Title.Set {
		title := strings.TrimSpace(in.Title.Value)
		if !in.Title.Valid || title == "" {
			return apperr.Validation("title", "Title cannot be empty")
		}
		if utf8.RuneCountInString(title) > s.cfg.MaxTitleLength {
			return apperr.Validation("title", fmt.Sprintf("Title too long (max %d characters)", s.cfg.MaxTitleLength))
		}
	}

	if in.Author.Set {
		author := strings.TrimSpace(in.Author.Value)
		if !in.Author.Valid || author == "" {
			return apperr.Validation("author", "Author cannot be empty")
		}
		if utf8.RuneCountInString(author) > s.cfg.MaxAuthorLength {
			return apperr.Validation("author", fmt.Sprintf("Author name too long (max %d characters)", s.cfg.MaxAuthorLength))
		}
	}

	if in.Year.Set && in.Year.Valid {
		if in.Year.Value < s.cfg.MinYear || in.Year.Value > s.cfg.MaxYear() {
			return apperr.Validation("year", fmt.Sprintf("Year must be between %d and %d", s.cfg.MinYear, s.cfg.MaxYear()))
		}
	}

	if in.Genre.Set && in.Genre.Valid {
		if utf8.RuneCountInString(strings.TrimSpace(in.Genre.Value)) > s.cfg.MaxGenreLength {
			return apperr.Validation("genre", fmt.Sprintf("Genre too long (max %d characters)", s.cfg.MaxGenreLength))
		}
	}

	if in.Description.Set && in.Description.Valid {
		if utf8.RuneCountInString(strings.TrimSpace(in.Description.Value)) > s.cfg.MaxDescriptionLength {
			return apperr.Validation("description", fmt.Sprintf("Description too long (max %d characters)", s.cfg.MaxDescriptionLength))
		}
	}

	return nil
}

func (s *BookStore) nextID() int {
	maxID := 0
	for _, b := range s.books {
		if b.ID > maxID {
			maxID = b.ID
		}
	}
	return maxID + 1
}

func (s *BookStore) persist() error {
	if err := writeArray(s.path, s.books); err != nil {
		return apperr.Storage("Failed to save books to storage", err)
	}
	return nil
}

// List returns one page of the full collection.
func (s *BookStore) List(p query.Params) ([]entity.Book, query.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := p.Normalize(s.cfg.DefaultPageSize, s.cfg.MaxPageSize)
	if err != nil {
		return nil, query.Page{}, err
	}
	items, page := query.Paginate(s.books, p)
	return items, page, nil
}

func (s *BookStore) GetByID(id int) (entity.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.books {
		if b.ID == id {
			return b, nil
		}
	}
	return entity.Book{}, apperr.NotFound("Book", id)
}

func (s *BookStore) Create(in BookInput) (entity.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.validate(in, false); err != nil {
		return entity.Book{}, err
	}

	book := entity.Book{
		ID:        s.nextID(),
		Title:     strings.TrimSpace(in.Title.Value),
		Author:    strings.TrimSpace(in.Author.Value),
		CreatedAt: time.Now(),
	}
	if in.Year.Set && in.Year.Valid {
		year := in.Year.Value
		book.Year = &year
	}
	if in.Genre.Set && in.Genre.Valid {
		if genre := strings.TrimSpace(in.Genre.Value); genre != "" {
			book.Genre = &genre
		}
	}
	if in.Description.Set && in.Description.Valid {
		book.Description = strings.TrimSpace(in.Description.Value)
	}

	s.books = append(s.books, book)
	if err := s.persist(); err != nil {
		s.books = s.books[:len(s.books)-1]
		return entity.Book{}, err
	}
	return book, nil
}

// Update applies only the fields present in the input. Null clears the
// nullable fields (year, genre) and empties the description.
func (s *BookStore) Update(id int, in BookInput) (entity.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, b := range s.books {
		if b.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return entity.Book{}, apperr.NotFound("Book", id)
	}

	if err := s.validate(in, true); err != nil {
		return entity.Book{}, err
	}

	prev := s.books[idx]
	book := prev

	if in.Title.Set {
		book.Title = strings.TrimSpace(in.Title.Value)
	}
	if in.Author.Set {
		book.Author = strings.TrimSpace(in.Author.Value)
	}
	if in.Year.Set {
		book.Year = nil
		if in.Year.Valid {
			year := in.Year.Value
			book.Year = &year
		}
	}
	if in.Genre.Set {
		book.Genre = nil
		if in.Genre.Valid {
			if genre := strings.TrimSpace(in.Genre.Value); genre != "" {
				book.Genre = &genre
			}
		}
	}
	if in.Description.Set {
		book.Description = ""
		if in.Description.Valid {
			book.Description = strings.TrimSpace(in.Description.Value)
		}
	}
	now := time.Now()
	book.UpdatedAt = &now

	s.books[idx] = book
	if err := s.persist(); err != nil {
		s.books[idx] = prev
		return entity.Book{}, err
	}
	return book, nil
}

func (s *BookStore) Delete(id int) (entity.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, b := range s.books {
		if b.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return entity.Book{}, apperr.NotFound("Book", id)
	}

	removed := s.books[idx]
	s.books = append(s.books[:idx], s.books[idx+1:]...)
	if err := s.persist(); err != nil {
		s.books = append(s.books, removed)
		return entity.Book{}, err
	}
	return removed, nil
}

// Search matches the query case-insensitively against title, author,
// genre and description, then paginates the matches.
func (s *BookStore) Search(q string, p query.Params) ([]entity.Book, query.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, err := query.ValidateSearch(q, s.cfg.MinSearchQueryLength, s.cfg.MaxSearchQueryLength)
	if err != nil {
		return nil, query.Page{}, err
	}
	p, err = p.Normalize(s.cfg.DefaultPageSize, s.cfg.MaxPageSize)
	if err != nil {
		return nil, query.Page{}, err
	}

	needle := strings.ToLower(q)
	matches := make([]entity.Book, 0)
	for _, b := range s.books {
		if strings.Contains(strings.ToLower(b.Title), needle) ||
			strings.Contains(strings.ToLower(b.Author), needle) ||
			(b.Genre != nil && strings.Contains(strings.ToLower(*b.Genre), needle)) ||
			strings.Contains(strings.ToLower(b.Description), needle) {
			matches = append(matches, b)
		}
	}

	items, page := query.Paginate(matches, p)
	return items, page, nil
}

// ByAuthor returns every book with an exact case-insensitive author
// match. Unpaginated, matching the listing contract for this filter.
func (s *BookStore) ByAuthor(author string) []entity.Book {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.Book, 0)
	for _, b := range s.books {
		if strings.EqualFold(b.Author, author) {
			out = append(out, b)
		}
	}
	return out
}

// ByGenre returns every book with an exact case-insensitive genre match.
func (s *BookStore) ByGenre(genre string) []entity.Book {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.Book, 0)
	for _, b := range s.books {
		if b.Genre != nil && strings.EqualFold(*b.Genre, genre) {
			out = append(out, b)
		}
	}
	return out
}

func (s *BookStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.books)
}
