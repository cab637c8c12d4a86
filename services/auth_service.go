package services

import (
	"github.com/katsunaka/court-booking/models"
	"github.com/katsunaka/court-booking/repositories"
)

// AuthService compares submitted credentials against the single configured
// username/password pair and owns the persisted session flag. There is one
// shared session for the whole deployment.
type AuthService struct {
	username    string
	password    string
	sessionRepo repositories.SessionRepository
}

func NewAuthService(username, password string, sessionRepo repositories.SessionRepository) *AuthService {
	return &AuthService{
		username:    username,
		password:    password,
		sessionRepo: sessionRepo,
	}
}

// Authenticate reports whether both fields match the configured secrets
// exactly. No hashing, no rate limiting, no lockout.
func (s *AuthService) Authenticate(username, password string) bool {
	return username == s.username && password == s.password
}

// Login validates the credentials and persists the authenticated flag. On
// failure the persisted state is left as it was.
func (s *AuthService) Login(username, password string) error {
	if !s.Authenticate(username, password) {
		return ErrInvalidCredentials
	}
	return s.sessionRepo.Save(models.Session{Authenticated: true})
}

// Logout clears and persists the session flag.
func (s *AuthService) Logout() error {
	return s.sessionRepo.Save(models.Session{Authenticated: false})
}

// IsAuthenticated reads the current persisted state. An unreadable session
// file counts as logged out.
func (s *AuthService) IsAuthenticated() bool {
	session, err := s.sessionRepo.Load()
	if err != nil {
		return false
	}
	return session.Authenticated
}
