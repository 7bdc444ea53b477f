package service

import (
	"context"
	"errors"
	"strings"

	"easyrent-backend/internal/domain"
	"easyrent-backend/internal/logger"
	"easyrent-backend/internal/repository"
	"easyrent-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	userRepo     repository.UserRepository
	tokenManager security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokenManager security.TokenManager) AuthService {
	return &authService{
		userRepo:     userRepo,
		tokenManager: tokenManager,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", nil, domain.Validationf("email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.Unauthenticatedf("invalid credentials")
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Debug("Password mismatch", "user_id", user.ID)
		return "", nil, domain.Unauthenticatedf("invalid credentials")
	}

	token, err := s.tokenManager.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return "", nil, err
	}

	logger.Info("User logged in", "user_id", user.ID)
	return token, user, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.Unauthenticatedf("access token not provided")
	}

	claims, err := s.tokenManager.ValidateToken(token)
	if err != nil {
		if errors.Is(err, security.ErrExpiredToken) {
			return nil, domain.Unauthenticatedf("token has expired")
		}
		return nil, domain.Unauthenticatedf("invalid token")
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Unauthenticatedf("user not found")
		}
		return nil, err
	}
	return user, nil
}
