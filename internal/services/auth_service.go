package services

import (
	"errors"
	"fmt"

	"fintrack/internal/models"
	"fintrack/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrPasswordTooShort   = errors.New("password too short")
)

// authService handles registration and credential verification
type authService struct {
	userRepo          repositories.UserRepositoryInterface
	metrics           MetricsRecorderInterface
	bcryptCost        int
	passwordMinLength int
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepositoryInterface, metrics MetricsRecorderInterface, bcryptCost, passwordMinLength int) AuthServiceInterface {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &authService{
		userRepo:          userRepo,
		metrics:           metrics,
		bcryptCost:        bcryptCost,
		passwordMinLength: passwordMinLength,
	}
}

// Register creates a new user with a bcrypt password hash
func (s *authService) Register(email, name, password string) (*models.User, error) {
	if len(password) < s.passwordMinLength {
		s.metrics.RecordAuthEvent("register", "rejected")
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.GetByEmail(email); err == nil {
		s.metrics.RecordAuthEvent("register", "rejected")
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		s.metrics.RecordAuthEvent("register", "error")
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		s.metrics.RecordAuthEvent("register", "error")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	}

	if err := s.userRepo.Create(user); err != nil {
		s.metrics.RecordAuthEvent("register", "error")
		return nil, err
	}

	s.metrics.RecordAuthEvent("register", "ok")
	return user, nil
}

// Login verifies credentials and returns the matching user. A missing user
// and a wrong password are indistinguishable to the caller.
func (s *authService) Login(email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			s.metrics.RecordAuthEvent("login", "rejected")
			return nil, ErrInvalidCredentials
		}
		s.metrics.RecordAuthEvent("login", "error")
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.metrics.RecordAuthEvent("login", "rejected")
		return nil, ErrInvalidCredentials
	}

	s.metrics.RecordAuthEvent("login", "ok")
	return user, nil
}
