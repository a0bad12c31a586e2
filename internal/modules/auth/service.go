package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"carmarket/internal/domain"
	"carmarket/internal/pkg/validator"
)

// Service contains all business logic for authentication
type Service struct {
	users UserRepositoryInterface
	jwt   jwtService
}

func NewService(users UserRepositoryInterface, jwt jwtService) *Service {
	return &Service{users: users, jwt: jwt}
}

// Register creates the user and returns a token for it.
func (s *Service) Register(ctx context.Context, req CredentialsRequest) (string, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := validator.Struct(req); err != nil {
		return "", err
	}

	exists, err := s.users.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return "", err
	}
	if exists {
		return "", ErrUsernameTaken
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return "", err
	}

	user := &domain.User{Username: req.Username, Password: hash}
	if err := s.users.Create(ctx, user); err != nil {
		return "", err
	}

	return s.jwt.GenerateToken(user.ID, user.Username)
}

// Login checks the password against the stored hash and returns a fresh token.
func (s *Service) Login(ctx context.Context, req CredentialsRequest) (string, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := validator.Struct(req); err != nil {
		return "", err
	}

	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if domain.IsNotFound(err) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.jwt.GenerateToken(user.ID, user.Username)
}

func (s *Service) Me(ctx context.Context, userID int64) (*domain.Identity, error) {
	if userID <= 0 {
		return nil, ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	return &domain.Identity{ID: user.ID, Username: user.Username}, nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
