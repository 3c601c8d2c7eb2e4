package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"booklibrary/internal/auth"
	"booklibrary/internal/config"
	"booklibrary/internal/entity"
	"booklibrary/internal/query"
	"booklibrary/internal/store"
)

// testEnv is a full server wired against temp-dir stores, with one
// account per role, all sharing the password below.
type testEnv struct {
	cfg     config.Config
	handler http.Handler
	books   *store.BookStore
	authors *store.AuthorStore
	users   *store.UserStore
	svc     *auth.Service
}

const testPassword = "password123"

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()

	cfg := config.New(config.EnvTesting)
	cfg.BooksFile = filepath.Join(dir, "books.json")
	cfg.AuthorsFile = filepath.Join(dir, "authors.json")
	cfg.UsersFile = filepath.Join(dir, "users.json")
	cfg.DefaultBooksFile = filepath.Join(dir, "default_books.json")
	cfg.DefaultAuthorsFile = filepath.Join(dir, "default_authors.json")
	cfg.DefaultUsersFile = filepath.Join(dir, "default_users.json")
	cfg.BackupDir = filepath.Join(dir, "backups")

	for _, path := range []string{cfg.BooksFile, cfg.AuthorsFile, cfg.UsersFile} {
		require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))
	}

	books := store.NewBookStore(cfg)
	authors := store.NewAuthorStore(cfg)
	users := store.NewUserStore(cfg)
	svc := auth.NewService(cfg, users)

	env := &testEnv{
		cfg:     cfg,
		handler: NewRouter(cfg, books, authors, users, svc),
		books:   books,
		authors: authors,
		users:   users,
		svc:     svc,
	}
	env.seedUser(t, "regular", entity.RoleUser)
	env.seedUser(t, "mod", entity.RoleModerator)
	env.seedUser(t, "boss", entity.RoleAdmin)
	return env
}

func (e *testEnv) seedUser(t *testing.T, username, role string) {
	t.Helper()
	u, err := e.users.Create(store.UserInput{
		Username: entity.Some(username),
		Email:    entity.Some(username + "@example.com"),
		Password: entity.Some(testPassword),
	})
	require.NoError(t, err)

	if role != entity.RoleUser {
		_, err = e.users.Update(u.ID, store.UserInput{Role: entity.Some(role)}, 0, entity.RoleAdmin)
		require.NoError(t, err)
	}
}

// tokenFor logs the named account in and returns its access token.
func (e *testEnv) tokenFor(t *testing.T, username string) string {
	t.Helper()
	result, err := e.svc.Authenticate(username, testPassword)
	require.NoError(t, err)
	return result.Tokens.AccessToken
}

type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Pagination *query.Page     `json:"pagination"`
	Message    string          `json:"message"`
	Error      *ErrorBody      `json:"error"`
}

// do runs one request through the router and decodes the envelope.
func (e *testEnv) do(t *testing.T, method, path, token, body string) (int, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec.Code, env
}
