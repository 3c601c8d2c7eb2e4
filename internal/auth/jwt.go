package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"booklibrary/internal/apperr"
	"booklibrary/internal/entity"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

type Claims struct {
	UserID    int    `json:"user_id"`
	Username  string `json:"username"`
	Role      string `json:"role,omitempty"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// TokenPair is what a successful login hands back to the client.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

func signToken(secret string, c Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return t.SignedString([]byte(secret))
}

func issueAccessToken(secret string, u entity.User, ttl time.Duration) (string, error) {
	now := time.Now()
	return signToken(secret, Claims{
		UserID:    u.ID,
		Username:  u.Username,
		Role:      u.Role,
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
}

func issueRefreshToken(secret string, u entity.User, ttl time.Duration) (string, error) {
	now := time.Now()
	// Refresh tokens carry no role: they only mint new access tokens and
	// the role is re-read from the user at that point.
	return signToken(secret, Claims{
		UserID:    u.ID,
		Username:  u.Username,
		TokenType: TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
}

// GenerateTokenPair issues an access and a refresh token for u.
func GenerateTokenPair(secret string, u entity.User, accessTTL, refreshTTL time.Duration) (TokenPair, error) {
	access, err := issueAccessToken(secret, u, accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := issueRefreshToken(secret, u, refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int(accessTTL.Seconds()),
	}, nil
}

// ParseToken verifies the signature and decodes the claims. The expiry is
// re-checked explicitly on top of the library's own validation.
func ParseToken(secret, tokenStr string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, apperr.AuthInvalid("Token is invalid or expired")
	}
	claims, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return nil, apperr.AuthInvalid("Token is invalid or expired")
	}
	if claims.ExpiresAt == nil || time.Now().After(claims.ExpiresAt.Time) {
		return nil, apperr.AuthInvalid("Token is invalid or expired")
	}
	return claims, nil
}
