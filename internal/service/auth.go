package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/Skotchmaster/laptop_store/internal/events"
	"github.com/Skotchmaster/laptop_store/internal/hash"
	"github.com/Skotchmaster/laptop_store/internal/logging"
	"github.com/Skotchmaster/laptop_store/internal/models"
	"github.com/Skotchmaster/laptop_store/internal/repo"
)

var defaultHasher = &hash.Hasher{}

type AuthService struct {
	Users  UserStore
	Hasher *hash.Hasher
	Events Publisher
}

func (s *AuthService) hasher() *hash.Hasher {
	if s.Hasher == nil {
		return defaultHasher
	}
	return s.Hasher
}

// Authenticate verifies a username/password pair. Unknown users and wrong
// passwords fail with the same ErrUnauthorized.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.Users.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.hasher().BurnCompare(password)
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user.PasswordHash == "" {
		if !s.checkLegacy(ctx, user, password) {
			return nil, ErrUnauthorized
		}
	} else if !s.hasher().CheckPassword(user.PasswordHash, password) {
		return nil, ErrUnauthorized
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	return user, nil
}

// checkLegacy verifies a plaintext password kept by an older store and
// replaces it with a hash once it matches.
func (s *AuthService) checkLegacy(ctx context.Context, user *models.User, password string) bool {
	if user.LegacyPassword == "" {
		s.hasher().BurnCompare(password)
		return false
	}
	if subtle.ConstantTimeCompare([]byte(user.LegacyPassword), []byte(password)) != 1 {
		return false
	}

	l := logging.FromContext(ctx).With("svc", "auth.rehash", "username", user.Username)
	pwHash, err := s.hasher().HashPassword(password)
	if err != nil {
		l.Warn("rehash_error", "error", err)
		return true
	}
	if err := s.Users.SetPasswordHash(ctx, user.Username, pwHash); err != nil {
		l.Warn("rehash_error", "error", err)
		return true
	}
	user.PasswordHash, user.LegacyPassword = pwHash, ""
	l.Info("password_rehashed")
	return true
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", username)

	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			l.Warn("login failed", "status", 401, "reason", "invalid username or password")
		}
		return "", err
	}
	return user.Role, nil
}

func (s *AuthService) Register(ctx context.Context, username, password string) error {
	l := logging.FromContext(ctx).With("svc", "auth.register", "username", username)

	if strings.TrimSpace(username) == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	if _, err := s.Users.GetUser(ctx, username); err == nil {
		l.Warn("register_error", "status", 400, "reason", "user already exists")
		return fmt.Errorf("%w: user %q already exists", ErrConflict, username)
	} else if !errors.Is(err, repo.ErrNotFound) {
		return fmt.Errorf("get user: %w", err)
	}

	pwHash, err := s.hasher().HashPassword(password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return fmt.Errorf("%w: password is too long", ErrValidation)
		}
		return fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{Username: username, PasswordHash: pwHash, Role: models.RoleUser}
	if err := s.Users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return fmt.Errorf("%w: user %q already exists", ErrConflict, username)
		}
		return fmt.Errorf("create user: %w", err)
	}

	l.Info("user_registered")
	publish(ctx, s.Events, events.TopicUsers, username, "user_registered", map[string]any{
		"username": username,
		"role":     user.Role,
	})
	return nil
}

// EnsureAdmin creates the bootstrap administrator when it is missing. An
// existing admin without any password gets the configured one.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	existing, err := s.Users.GetUser(ctx, username)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return false, fmt.Errorf("get admin: %w", err)
	}

	if existing != nil && (existing.PasswordHash != "" || existing.LegacyPassword != "") {
		return false, nil
	}

	pwHash, err := s.hasher().HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}
	if existing != nil {
		if err := s.Users.SetPasswordHash(ctx, username, pwHash); err != nil {
			return false, fmt.Errorf("set admin password: %w", err)
		}
		return false, nil
	}

	admin := &models.User{Username: username, PasswordHash: pwHash, Role: models.RoleAdmin}
	if err := s.Users.CreateUser(ctx, admin); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return false, nil
		}
		return false, fmt.Errorf("create admin: %w", err)
	}
	return true, nil
}
