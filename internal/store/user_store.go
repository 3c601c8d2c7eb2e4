package store

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"booklibrary/internal/apperr"
	"booklibrary/internal/auth"
	"booklibrary/internal/config"
	"booklibrary/internal/entity"
)

type UserInput struct {
	Username entity.Optional[string] `json:"username"`
	Email    entity.Optional[string] `json:"email"`
	Password entity.Optional[string] `json:"password"`
	Role     entity.Optional[string] `json:"role"`
	IsActive entity.Optional[bool]   `json:"is_active"`
}

type UserStore struct {
	mu    sync.Mutex
	cfg   config.Config
	path  string
	users []entity.User
}

func NewUserStore(cfg config.Config) *UserStore {
	s := &UserStore{cfg: cfg, path: cfg.UsersFile}
	s.users = loadOrSeed(cfg.UsersFile, cfg.DefaultUsersFile, s.fallbackUsers)
	return s
}

// fallbackUsers seeds a single active admin so a fresh deployment is
// never locked out.
func (s *UserStore) fallbackUsers() []entity.User {
	hash, err := auth.HashPassword("admin123", s.cfg.BcryptCost)
	if err != nil {
		log.Printf("user store: could not hash fallback admin password: %v", err)
	}
	return []entity.User{{
		ID:           1,
		Username:     "admin",
		Email:        "admin@example.com",
		PasswordHash: hash,
		Role:         entity.RoleAdmin,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}}
}

func (s *UserStore) validate(in UserInput, isUpdate bool) error {
	if !isUpdate {
		if !in.Username.Set || !in.Username.Valid || in.Username.Value == "" {
			return apperr.Validation("username", "Missing required field: username")
		}
		if !in.Email.Set || !in.Email.Valid || in.Email.Value == "" {
			return apperr.Validation("email", "Missing required field: email")
		}
		if !in.Password.Set || !in.Password.Valid || in.Password.Value == "" {
			return apperr.Validation("password", "Missing required field: password")
		}
	}

	if in.Username.Set {
		username := strings.TrimSpace(in.Username.Value)
		if !in.Username.Valid || username == "" {
			return apperr.Validation("username", "Username cannot be empty")
		}
		if utf8.RuneCountInString(username) < s.cfg.MinUsernameLength {
			return apperr.Validation("username", fmt.Sprintf("Username too short (min %d characters)", s.cfg.MinUsernameLength))
		}
		if utf8.RuneCountInString(username) > s.cfg.MaxUsernameLength {
			return apperr.Validation("username", fmt.Sprintf("Username too long (max %d characters)", s.cfg.MaxUsernameLength))
		}
		if !isUpdate {
			for _, u := range s.users {
				if u.Username == username {
					return apperr.Conflict("Username already exists")
				}
			}
		}
	}

	if in.Email.Set {
		email := strings.ToLower(strings.TrimSpace(in.Email.Value))
		if !in.Email.Valid || email == "" {
			return apperr.Validation("email", "Email cannot be empty")
		}
		if utf8.RuneCountInString(email) > s.cfg.MaxEmailLength {
			return apperr.Validation("email", fmt.Sprintf("Email too long (max %d characters)", s.cfg.MaxEmailLength))
		}
		if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
			return apperr.Validation("email", "Invalid email format")
		}
		if !isUpdate {
			for _, u := range s.users {
				if u.Email == email {
					return apperr.Conflict("Email already exists")
				}
			}
		}
	}

	if in.Password.Set && in.Password.Valid {
		if utf8.RuneCountInString(in.Password.Value) < s.cfg.MinPasswordLength {
			return apperr.Validation("password", fmt.Sprintf("Password too short (min %d characters)", s.cfg.MinPasswordLength))
		}
		if utf8.RuneCountInString(in.Password.Value) > s.cfg.MaxPasswordLength {
			return apperr.Validation("password", fmt.Sprintf("Password too long (max %d characters)", s.cfg.MaxPasswordLength))
		}
	}

	if in.Role.Set && in.Role.Valid {
		if !entity.ValidRole(in.Role.Value) {
			return apperr.Validation("role", "Invalid role. Must be one of: user, moderator, admin")
		}
	}

	return nil
}

func (s *UserStore) nextID() int {
	maxID := 0
	for _, u := range s.users {
		if u.ID > maxID {
			maxID = u.ID
		}
	}
	return maxID + 1
}

func (s *UserStore) persist() error {
	if err := writeArray(s.path, s.users); err != nil {
		return apperr.Storage("Failed to save users to storage", err)
	}
	return nil
}

// FindByUsername is the auth service's lookup. Returns the full record,
// hash included; callers must not expose it.
func (s *UserStore) FindByUsername(username string) (entity.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			return u, true
		}
	}
	return entity.User{}, false
}

func (s *UserStore) FindByID(id int) (entity.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return entity.User{}, false
}

func (s *UserStore) Create(in UserInput) (entity.PublicUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.validate(in, false); err != nil {
		return entity.PublicUser{}, err
	}

	hash, err := auth.HashPassword(in.Password.Value, s.cfg.BcryptCost)
	if err != nil {
		return entity.PublicUser{}, apperr.Storage("Failed to hash password", err)
	}

	user := entity.User{
		ID:           s.nextID(),
		Username:     strings.TrimSpace(in.Username.Value),
		Email:        strings.ToLower(strings.TrimSpace(in.Email.Value)),
		PasswordHash: hash,
		Role:         entity.RoleUser,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	if in.Role.Set && in.Role.Valid {
		user.Role = in.Role.Value
	}
	if in.IsActive.Set && in.IsActive.Valid {
		user.IsActive = in.IsActive.Value
	}

	s.users = append(s.users, user)
	if err := s.persist(); err != nil {
		s.users = s.users[:len(s.users)-1]
		return entity.PublicUser{}, err
	}
	return user.Public(), nil
}

func (s *UserStore) GetByID(id int) (entity.PublicUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ID == id {
			return u.Public(), nil
		}
	}
	return entity.PublicUser{}, apperr.NotFound("User", id)
}

func (s *UserStore) List() []entity.PublicUser {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.PublicUser, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u.Public())
	}
	return out
}

// Update applies a partial update. Only the account owner and admins may
// update; role and is_active changes are applied for admin actors only
// and silently ignored for everyone else.
func (s *UserStore) Update(id int, in UserInput, actorID int, actorRole string) (entity.PublicUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, u := range s.users {
		if u.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return entity.PublicUser{}, apperr.NotFound("User", id)
	}

	if actorRole != entity.RoleAdmin && actorID != id {
		return entity.PublicUser{}, apperr.PermissionDenied("Insufficient permissions")
	}

	if err := s.validate(in, true); err != nil {
		return entity.PublicUser{}, err
	}

	prev := s.users[idx]
	user := prev

	if in.Username.Set {
		user.Username = strings.TrimSpace(in.Username.Value)
	}
	if in.Email.Set {
		user.Email = strings.ToLower(strings.TrimSpace(in.Email.Value))
	}
	if in.Password.Set && in.Password.Valid {
		hash, err := auth.HashPassword(in.Password.Value, s.cfg.BcryptCost)
		if err != nil {
			return entity.PublicUser{}, apperr.Storage("Failed to hash password", err)
		}
		user.PasswordHash = hash
	}
	if actorRole == entity.RoleAdmin {
		if in.Role.Set && in.Role.Valid {
			user.Role = in.Role.Value
		}
		if in.IsActive.Set && in.IsActive.Valid {
			user.IsActive = in.IsActive.Value
		}
	}

	s.users[idx] = user
	if err := s.persist(); err != nil {
		s.users[idx] = prev
		return entity.PublicUser{}, err
	}
	return user.Public(), nil
}

// Delete removes the account. The owner and admins may delete, but the
// last active admin can never be removed.
func (s *UserStore) Delete(id int, actorID int, actorRole string) (entity.PublicUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, u := range s.users {
		if u.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return entity.PublicUser{}, apperr.NotFound("User", id)
	}

	if actorRole != entity.RoleAdmin && actorID != id {
		return entity.PublicUser{}, apperr.PermissionDenied("Insufficient permissions")
	}

	if s.users[idx].Role == entity.RoleAdmin {
		activeAdmins := 0
		for _, u := range s.users {
			if u.Role == entity.RoleAdmin && u.IsActive {
				activeAdmins++
			}
		}
		if activeAdmins <= 1 {
			return entity.PublicUser{}, apperr.Conflict("Cannot delete the last admin user")
		}
	}

	removed := s.users[idx]
	s.users = append(s.users[:idx], s.users[idx+1:]...)
	if err := s.persist(); err != nil {
		s.users = append(s.users, removed)
		return entity.PublicUser{}, err
	}
	return removed.Public(), nil
}

func (s *UserStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}
