package middleware

import (
	"context"
	"errors"
	"strings"

	"academy_backend/internal/auth"
	"academy_backend/internal/logger"
	"academy_backend/internal/models"
	"academy_backend/internal/repositories"
	"academy_backend/pkg/apperrors"
	"academy_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const bearerPrefix = "Bearer "

// Authenticator - проверка JWT и загрузка пользователя.
// На каждый запрос с валидным токеном ровно одно чтение из базы.
type Authenticator struct {
	tokens *auth.TokenManager
	users  repositories.UserRepository
}

func NewAuthenticator(tokens *auth.TokenManager, users repositories.UserRepository) *Authenticator {
	return &Authenticator{tokens: tokens, users: users}
}

// Required - пользователь обязателен
func (a *Authenticator) Required(ctx context.Context, db *gorm.DB, header string) (*models.User, error) {
	token, ok := bearerToken(header)
	if !ok {
		return nil, apperrors.ErrNotAuthenticated
	}

	subject, err := a.tokens.Verify(token)
	if err != nil {
		logger.CtxDebug(ctx, "Token rejected", "error", err)
		return nil, apperrors.ErrInvalidToken
	}

	user, err := a.users.FindByID(db, subject)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			// Токен валиден, но пользователя уже нет
			return nil, apperrors.ErrNotAuthenticated
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

// Optional - nil при любой ошибке
func (a *Authenticator) Optional(ctx context.Context, db *gorm.DB, header string) *models.User {
	if header == "" {
		return nil
	}
	user, err := a.Required(ctx, db, header)
	if err != nil {
		return nil
	}
	return user
}

func (a *Authenticator) AdminRequired(ctx context.Context, db *gorm.DB, header string) (*models.User, error) {
	user, err := a.Required(ctx, db, header)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, apperrors.ErrAdminRequired
	}
	return user, nil
}

// ---------------- Gin adapters ----------------

func (a *Authenticator) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := a.Required(c.Request.Context(), dbFromContext(c), c.GetHeader("Authorization"))
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		setCurrentUser(c, user)
		c.Next()
	}
}

func (a *Authenticator) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := a.Optional(c.Request.Context(), dbFromContext(c), c.GetHeader("Authorization")); user != nil {
			setCurrentUser(c, user)
		}
		c.Next()
	}
}

func (a *Authenticator) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := a.AdminRequired(c.Request.Context(), dbFromContext(c), c.GetHeader("Authorization"))
		if err != nil {
			if errors.Is(err, apperrors.ErrAdminRequired) {
				logger.CtxWarn(c.Request.Context(), "Admin access denied", "path", c.Request.URL.Path)
			}
			apperrors.HandleError(c, err)
			return
		}
		setCurrentUser(c, user)
		c.Next()
	}
}

// CurrentUser возвращает пользователя, загруженного auth middleware (или nil)
func CurrentUser(c *gin.Context) *models.User {
	val, ok := c.Get(string(contextkeys.CurrentUserKey))
	if !ok {
		return nil
	}
	user, _ := val.(*models.User)
	return user
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(c *gin.Context) string {
	return c.GetString(string(contextkeys.UserIDKey))
}

func setCurrentUser(c *gin.Context, user *models.User) {
	c.Set(string(contextkeys.CurrentUserKey), user)
	c.Set(string(contextkeys.UserIDKey), user.ID)
	c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), user.ID))
}

func bearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	return token, token != ""
}
