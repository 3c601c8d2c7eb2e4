package auth

import (
	"time"

	"booklibrary/internal/apperr"
	"booklibrary/internal/config"
	"booklibrary/internal/entity"
)

// UserDirectory is the slice of the user store the auth service needs.
type UserDirectory interface {
	FindByUsername(username string) (entity.User, bool)
	FindByID(id int) (entity.User, bool)
}

type Service struct {
	secret     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	users      UserDirectory
}

type LoginResult struct {
	User   entity.PublicUser `json:"user"`
	Tokens TokenPair         `json:"tokens"`
}

type RefreshResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

func NewService(cfg config.Config, users UserDirectory) *Service {
	return &Service{
		secret:     cfg.JWTSecret,
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
		users:      users,
	}
}

// Authenticate checks the credentials and issues a token pair. Unknown
// username, deactivated account and wrong password all collapse into the
// same AuthInvalid so callers cannot probe for valid usernames.
func (s *Service) Authenticate(username, password string) (LoginResult, error) {
	u, ok := s.users.FindByUsername(username)
	if !ok || !u.IsActive {
		return LoginResult{}, apperr.AuthInvalid("Username or password is incorrect")
	}
	if !VerifyPassword(u.PasswordHash, password) {
		return LoginResult{}, apperr.AuthInvalid("Username or password is incorrect")
	}

	tokens, err := GenerateTokenPair(s.secret, u, s.accessTTL, s.refreshTTL)
	if err != nil {
		return LoginResult{}, apperr.AuthInvalid("Could not issue tokens")
	}
	return LoginResult{User: u.Public(), Tokens: tokens}, nil
}

// VerifyToken validates the signature and expiry, then re-resolves the
// user: a token for a deleted or deactivated account is invalid even
// before it expires.
func (s *Service) VerifyToken(token string) (*Claims, error) {
	claims, err := ParseToken(s.secret, token)
	if err != nil {
		return nil, err
	}
	u, ok := s.users.FindByID(claims.UserID)
	if !ok || !u.IsActive {
		return nil, apperr.AuthInvalid("Token is invalid or expired")
	}
	return claims, nil
}

// Refresh exchanges a refresh token for a new access token. Access tokens
// are rejected here; the refresh token itself is not rotated.
func (s *Service) Refresh(refreshToken string) (RefreshResult, error) {
	claims, err := s.VerifyToken(refreshToken)
	if err != nil {
		return RefreshResult{}, apperr.AuthInvalid("Refresh token is invalid or expired")
	}
	if claims.TokenType != TokenTypeRefresh {
		return RefreshResult{}, apperr.AuthInvalid("Refresh token is invalid or expired")
	}

	u, ok := s.users.FindByID(claims.UserID)
	if !ok || !u.IsActive {
		return RefreshResult{}, apperr.AuthInvalid("Refresh token is invalid or expired")
	}

	access, err := issueAccessToken(s.secret, u, s.accessTTL)
	if err != nil {
		return RefreshResult{}, apperr.AuthInvalid("Could not issue tokens")
	}
	return RefreshResult{
		AccessToken: access,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.accessTTL.Seconds()),
	}, nil
}
