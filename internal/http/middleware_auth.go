package http

import (
	"fmt"
	"net/http"
	"strings"

	"booklibrary/internal/apperr"
	"booklibrary/internal/auth"
)

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// RequireAuth rejects requests without a valid access token.
func RequireAuth(svc *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				WriteError(w, apperr.AuthInvalid("Missing or invalid Authorization header"))
				return
			}
			claims, err := svc.VerifyToken(token)
			if err != nil {
				WriteError(w, err)
				return
			}
			if claims.TokenType != auth.TokenTypeAccess {
				WriteError(w, apperr.AuthInvalid("Token is invalid or expired"))
				return
			}
			next.ServeHTTP(w, r.WithContext(contextWithClaims(r.Context(), claims)))
		})
	}
}

// RequireRoles is RequireAuth plus a role gate. The allowed roles appear
// in the rejection message.
func RequireRoles(svc *auth.Service, roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				WriteError(w, apperr.AuthInvalid("Missing or invalid Authorization header"))
				return
			}
			claims, err := svc.VerifyToken(token)
			if err != nil {
				WriteError(w, err)
				return
			}
			if claims.TokenType != auth.TokenTypeAccess {
				WriteError(w, apperr.AuthInvalid("Token is invalid or expired"))
				return
			}
			if !allowed[claims.Role] {
				WriteError(w, apperr.PermissionDenied(fmt.Sprintf(
					"Required roles: %s. Your role: %s", strings.Join(roles, ", "), claims.Role)))
				return
			}
			next.ServeHTTP(w, r.WithContext(contextWithClaims(r.Context(), claims)))
		})
	}
}

// OptionalAuth attaches the identity when a valid access token is
// present; missing or invalid tokens just leave the request anonymous.
func OptionalAuth(svc *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := bearerToken(r); token != "" {
				if claims, err := svc.VerifyToken(token); err == nil && claims.TokenType == auth.TokenTypeAccess {
					r = r.WithContext(contextWithClaims(r.Context(), claims))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
