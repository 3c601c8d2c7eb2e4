package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"booklibrary/internal/apperr"
	"booklibrary/internal/config"
	"booklibrary/internal/entity"
)

// fakeDirectory is an in-memory UserDirectory for service tests.
type fakeDirectory struct {
	users map[int]entity.User
}

func (d *fakeDirectory) FindByUsername(username string) (entity.User, bool) {
	for _, u := range d.users {
		if u.Username == username {
			return u, true
		}
	}
	return entity.User{}, false
}

func (d *fakeDirectory) FindByID(id int) (entity.User, bool) {
	u, ok := d.users[id]
	return u, ok
}

func newTestService(t *testing.T) (*Service, *fakeDirectory) {
	t.Helper()

	hash, err := HashPassword("password123", bcrypt.MinCost)
	require.NoError(t, err)

	dir := &fakeDirectory{users: map[int]entity.User{
		1: {ID: 1, Username: "alice", PasswordHash: hash, Role: entity.RoleUser, IsActive: true},
		2: {ID: 2, Username: "mallory", PasswordHash: hash, Role: entity.RoleUser, IsActive: false},
	}}

	cfg := config.New(config.EnvTesting)
	cfg.JWTSecret = testSecret
	return NewService(cfg, dir), dir
}

func TestService_Authenticate(t *testing.T) {
	svc, _ := newTestService(t)

	result, err := svc.Authenticate("alice", "password123")
	require.NoError(t, err)
	assert.Equal(t, "alice", result.User.Username)
	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.NotEmpty(t, result.Tokens.RefreshToken)

	_, err = svc.Authenticate("alice", "wrong-password")
	assert.Equal(t, apperr.KindAuth, apperr.KindOf(err))

	_, err = svc.Authenticate("nobody", "password123")
	assert.Equal(t, apperr.KindAuth, apperr.KindOf(err))

	// deactivated accounts cannot log in
	_, err = svc.Authenticate("mallory", "password123")
	assert.Equal(t, apperr.KindAuth, apperr.KindOf(err))
}

func TestService_VerifyToken(t *testing.T) {
	svc, dir := newTestService(t)

	result, err := svc.Authenticate("alice", "password123")
	require.NoError(t, err)

	claims, err := svc.VerifyToken(result.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, 1, claims.UserID)

	// deleting the user invalidates an otherwise-live token
	saved := dir.users[1]
	delete(dir.users, 1)
	_, err = svc.VerifyToken(result.Tokens.AccessToken)
	assert.Equal(t, apperr.KindAuth, apperr.KindOf(err))

	// so does deactivation
	saved.IsActive = false
	dir.users[1] = saved
	_, err = svc.VerifyToken(result.Tokens.AccessToken)
	assert.Equal(t, apperr.KindAuth, apperr.KindOf(err))
}

func TestService_Refresh(t *testing.T) {
	svc, _ := newTestService(t)

	result, err := svc.Authenticate("alice", "password123")
	require.NoError(t, err)

	refreshed, err := svc.Refresh(result.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, "Bearer", refreshed.TokenType)

	// the minted token is a usable access token
	claims, err := svc.VerifyToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.Equal(t, entity.RoleUser, claims.Role)
}

func TestService_RefreshRejectsAccessToken(t *testing.T) {
	svc, _ := newTestService(t)

	result, err := svc.Authenticate("alice", "password123")
	require.NoError(t, err)

	_, err = svc.Refresh(result.Tokens.AccessToken)
	assert.Equal(t, apperr.KindAuth, apperr.KindOf(err))
}

func TestService_RefreshExpired(t *testing.T) {
	svc, _ := newTestService(t)

	// a refresh token that is already expired
	u, _ := svc.users.FindByID(1)
	expired, err := issueRefreshToken(testSecret, u, -time.Minute)
	require.NoError(t, err)

	_, err = svc.Refresh(expired)
	assert.Equal(t, apperr.KindAuth, apperr.KindOf(err))
}
