package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"booklibrary/internal/auth"
	"booklibrary/internal/config"
	"booklibrary/internal/entity"
	"booklibrary/internal/store"
)

// NewRouter wires every route to its handler and role gate.
func NewRouter(cfg config.Config, books *store.BookStore, authors *store.AuthorStore, users *store.UserStore, svc *auth.Service) http.Handler {
	bookHandler := NewBookHandler(books)
	authorHandler := NewAuthorHandler(authors)
	authHandler := NewAuthHandler(svc, users)
	userHandler := NewUserHandler(users)

	optional := OptionalAuth(svc)
	required := RequireAuth(svc)
	editor := RequireRoles(svc, entity.RoleModerator, entity.RoleAdmin)
	admin := RequireRoles(svc, entity.RoleAdmin)

	r := chi.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(AccessLogMiddleware)
	r.Use(RecoveryMiddleware)
	r.Use(SecurityHeadersMiddleware)
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(CORSMiddleware(cfg.AllowedOrigins))
	}
	if cfg.RateLimitEnabled {
		r.Use(NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst).Middleware)
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		WriteData(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/books", func(r chi.Router) {
		r.With(optional).Get("/", bookHandler.List)
		r.With(optional).Get("/search", bookHandler.Search)
		r.With(optional).Get("/by-author/{name}", bookHandler.ByAuthor)
		r.With(optional).Get("/by-genre/{genre}", bookHandler.ByGenre)
		r.With(optional).Get("/{id}", bookHandler.Get)
		r.With(editor).Post("/", bookHandler.Create)
		r.With(editor).Put("/{id}", bookHandler.Update)
		r.With(editor).Delete("/{id}", bookHandler.Delete)
	})

	r.Route("/api/authors", func(r chi.Router) {
		r.Get("/", authorHandler.List)
		r.Get("/{id}", authorHandler.Get)
		r.With(editor).Post("/", authorHandler.Create)
		r.With(editor).Put("/{id}", authorHandler.Update)
		r.With(editor).Delete("/{id}", authorHandler.Delete)
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", authHandler.Login)
		r.Post("/register", authHandler.Register)
		r.Post("/refresh", authHandler.Refresh)
		r.With(required).Post("/logout", authHandler.Logout)
		r.With(required).Get("/profile", authHandler.GetProfile)
		r.With(required).Put("/profile", authHandler.UpdateProfile)

		r.Route("/users", func(r chi.Router) {
			r.Use(admin)
			r.Get("/", userHandler.List)
			r.Get("/{id}", userHandler.Get)
			r.Put("/{id}", userHandler.Update)
			r.Delete("/{id}", userHandler.Delete)
		})
	})

	return r
}
