package http

import (
	"context"
	"net/http"

	"booklibrary/internal/auth"
)

type contextKey string

const (
	claimsKey       contextKey = "claims"
	claimsHolderKey contextKey = "claimsHolder"
	requestIDKey    contextKey = "requestID"
)

// claimsHolder lets middleware that runs before auth observe the identity
// attached further down the chain: auth middleware derives a new request,
// so the outer request's context never carries the claims directly.
type claimsHolder struct {
	claims *auth.Claims
}

func contextWithClaimsHolder(ctx context.Context) (context.Context, *claimsHolder) {
	h := &claimsHolder{}
	return context.WithValue(ctx, claimsHolderKey, h), h
}

func contextWithClaims(ctx context.Context, c *auth.Claims) context.Context {
	if h, ok := ctx.Value(claimsHolderKey).(*claimsHolder); ok {
		h.claims = c
	}
	return context.WithValue(ctx, claimsKey, c)
}

// CurrentUser returns the authenticated identity, or nil on anonymous
// requests (public endpoints and failed optional auth).
func CurrentUser(r *http.Request) *auth.Claims {
	if c, ok := r.Context().Value(claimsKey).(*auth.Claims); ok {
		return c
	}
	return nil
}

func contextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestIDFrom(r *http.Request) string {
	if id, ok := r.Context().Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
