package services

import (
	"context"
	"errors"
	"strings"

	"academy_backend/internal/auth"
	"academy_backend/internal/logger"
	"academy_backend/internal/metrics"
	"academy_backend/internal/models"
	"academy_backend/internal/repositories"
	"academy_backend/internal/services/dto"
	"academy_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const tokenTypeBearer = "bearer"

type AuthService interface {
	Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	// EnsureAdmin создает администратора, если пользователя с таким email еще нет
	EnsureAdmin(ctx context.Context, db *gorm.DB, email, password, name string) (bool, error)
}

type authService struct {
	userRepo repositories.UserRepository
	hasher   *auth.PasswordHasher
	tokens   *auth.TokenManager
}

func NewAuthService(
	userRepo repositories.UserRepository,
	hasher *auth.PasswordHasher,
	tokens *auth.TokenManager,
) AuthService {
	return &authService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// Register - регистрация нового пользователя с ролью user
func (s *authService) Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ValidationError(map[string]string{"password": err.Error()})
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        models.NormalizeEmail(req.Email),
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hash,
		Role:         models.UserRoleUser,
	}

	if err := s.userRepo.Create(db, user); err != nil {
		metrics.AuthEvents.WithLabelValues("register", "error").Inc()
		return nil, mapRepoError(err)
	}

	metrics.AuthEvents.WithLabelValues("register", "ok").Inc()
	logger.CtxInfo(ctx, "User registered", "user_id", user.ID)

	return s.issue(user)
}

// Login - проверка email и пароля
func (s *authService) Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			metrics.AuthEvents.WithLabelValues("login", "invalid").Inc()
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		metrics.AuthEvents.WithLabelValues("login", "invalid").Inc()
		return nil, apperrors.ErrInvalidCredentials
	}

	metrics.AuthEvents.WithLabelValues("login", "ok").Inc()
	logger.CtxInfo(ctx, "User logged in", "user_id", user.ID)

	return s.issue(user)
}

func (s *authService) EnsureAdmin(ctx context.Context, db *gorm.DB, email, password, name string) (bool, error) {
	if email == "" || password == "" {
		return false, nil
	}

	_, err := s.userRepo.FindByEmail(db, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return false, apperrors.InternalError(err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return false, apperrors.InternalError(err)
	}

	admin := &models.User{
		Email:        models.NormalizeEmail(email),
		Name:         name,
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
	}
	if err := s.userRepo.Create(db, admin); err != nil {
		// Параллельный старт второго инстанса
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return false, nil
		}
		return false, mapRepoError(err)
	}

	logger.CtxInfo(ctx, "First admin created", "user_id", admin.ID)
	return true, nil
}

func (s *authService) issue(user *models.User) (*dto.AuthResponse, error) {
	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		AccessToken: token,
		TokenType:   tokenTypeBearer,
		ExpiresAt:   expiresAt,
		User:        dto.NewUserResponse(user),
	}, nil
}
