package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

const (
	// DBContextKey - ключ, по которому хранится *gorm.DB в gin.Context
	DBContextKey = contextKey("db")

	// CurrentUserKey - загруженный *models.User после auth middleware
	CurrentUserKey = contextKey("currentUser")

	// UserIDKey - id текущего пользователя (string)
	UserIDKey = contextKey("userID")
)
