package service

import (
	"context"
	"sync"
	"time"

	"storefront-service/internal/models"
	"storefront-service/internal/util"

	"go.uber.org/zap"
)

// Authenticator accepts credentials and returns the authenticated user.
// Keeping this behind an interface decouples the session flow from any
// specific credential source.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
}

// StaticAuthenticator compares against a single configured credential pair
// and yields the admin user on an exact match.
type StaticAuthenticator struct {
	Email    string
	Password string
	Name     string
}

func (a StaticAuthenticator) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	if email != a.Email || password != a.Password {
		return nil, ErrInvalidCredentials
	}
	return &models.User{
		ID:       "admin",
		Name:     a.Name,
		Email:    a.Email,
		JoinedAt: time.Now(),
		Role:     models.RoleAdmin,
	}, nil
}

// AuthService holds the session-active user: exactly one at a time, or none.
type AuthService struct {
	mu            sync.Mutex
	authenticator Authenticator
	current       *models.User
	writer        Notifier
	logger        *zap.Logger
}

// NewAuthService creates an auth service seeded with the persisted user.
func NewAuthService(authenticator Authenticator, current *models.User, writer Notifier) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		current:       current,
		writer:        writer,
		logger:        util.GetLogger(),
	}
}

// Login authenticates and activates the session user. A failed attempt
// leaves the current user unchanged.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		util.LoginFailuresTotal.Inc()
		s.logger.Warn("Login rejected", zap.String("email", email))
		return nil, err
	}

	s.mu.Lock()
	s.current = user
	s.mu.Unlock()
	s.notify()

	s.logger.Info("Login succeeded", zap.String("email", email))
	return s.Current(), nil
}

// Logout clears the session-active user.
func (s *AuthService) Logout() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	s.notify()
}

// Current returns a copy of the session-active user, or nil.
func (s *AuthService) Current() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}
	u := *s.current
	return &u
}

// IsAdmin reports whether the session-active user has the admin role.
func (s *AuthService) IsAdmin() bool {
	u := s.Current()
	return u != nil && u.Role == models.RoleAdmin
}

func (s *AuthService) notify() {
	if s.writer != nil {
		s.writer.Notify()
	}
}
