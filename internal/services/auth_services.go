package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"ManageMyLunchAPI/internal/model"
	"ManageMyLunchAPI/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLen = 8

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type AuthService struct {
	Users *repository.AuthRepository
}

func NewAuthService(u *repository.AuthRepository) *AuthService {
	return &AuthService{Users: u}
}

func (s *AuthService) validateEmail(email string) error {
	if email == "" {
		return errors.New("email is required")
	}
	if !emailRegex.MatchString(email) {
		return errors.New("invalid email format")
	}
	return nil
}

func (s *AuthService) validatePassword(pw string) error {
	if len(pw) < MinPasswordLen {
		return fmt.Errorf("password too short: must be at least %d characters", MinPasswordLen)
	}
	return nil
}

// RegisterStudent creates a student account.
func (s *AuthService) RegisterStudent(ctx context.Context, email, password string) (int64, error) {
	return s.register(ctx, email, password, model.RoleStudent)
}

// RegisterByManager creates restaurant and manager accounts; student signup is
// self-service only.
func (s *AuthService) RegisterByManager(ctx context.Context, email, password, role string) (int64, error) {
	if role != model.RoleRestaurant && role != model.RoleManager {
		return 0, errors.New("role must be restaurant or manager")
	}
	return s.register(ctx, email, password, role)
}

func (s *AuthService) register(ctx context.Context, email, password, role string) (int64, error) {
	if err := s.validateEmail(email); err != nil {
		return 0, err
	}
	if err := s.validatePassword(password); err != nil {
		return 0, err
	}
	exists, err := s.Users.EmailExists(ctx, email)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, errors.New("email already registered")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}
	return s.Users.CreateUser(ctx, email, string(hash), role)
}

// Login authenticates with email + password and returns the user without the
// password hash.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.Auth, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		// do not reveal whether email exists
		return nil, errors.New("invalid credentials")
	}
	if u.DeletedAt != nil {
		return nil, errors.New("account disabled")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, errors.New("invalid credentials")
	}
	u.PasswordHash = ""
	return u, nil
}
