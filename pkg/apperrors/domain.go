package apperrors

import (
	"net/http"
)

/*
Предопределенные ошибки бизнес-логики.
Сравниваются через errors.Is (по коду, домену и сообщению).
*/

// --- Auth ---

var (
	ErrInvalidCredentials = New(CodeInvalidCredentials, "auth", "Invalid email or password", http.StatusUnauthorized)
	ErrInvalidToken       = New(CodeInvalidToken, "auth", "Invalid or expired token", http.StatusUnauthorized)
	ErrNotAuthenticated   = New(CodeUnauthorized, "auth", "Not authenticated", http.StatusUnauthorized)
	ErrAdminRequired      = New(CodeForbidden, "auth", "Admin access required", http.StatusForbidden)
	ErrCourseAccessDenied = New(CodeForbidden, "auth", "Access denied. Please subscribe to the program.", http.StatusForbidden)
)

// --- Users ---

var (
	ErrUserNotFound       = New(CodeNotFound, "user", "User not found", http.StatusNotFound)
	ErrEmailAlreadyExists = New(CodeAlreadyExists, "user", "Email already registered", http.StatusConflict)
	ErrInvalidUserRole    = New(CodeInvalidOperation, "user", "Invalid role", http.StatusBadRequest)
)

// --- Catalog ---

var (
	ErrProgramNotFound = New(CodeNotFound, "program", "Program not found", http.StatusNotFound)
	ErrCourseNotFound  = New(CodeNotFound, "course", "Course not found", http.StatusNotFound)
	ErrLessonNotFound  = New(CodeNotFound, "lesson", "Lesson not found", http.StatusNotFound)
	ErrModuleNotFound  = New(CodeNotFound, "module", "Module not found", http.StatusNotFound)
	ErrVideoNotFound   = New(CodeNotFound, "video", "Video not found", http.StatusNotFound)
	ErrProductNotFound = New(CodeNotFound, "shop", "Product not found", http.StatusNotFound)
	ErrFAQNotFound     = New(CodeNotFound, "content", "FAQ not found", http.StatusNotFound)
	ErrResultNotFound  = New(CodeNotFound, "content", "Result not found", http.StatusNotFound)
)

// --- Payments ---

var (
	ErrTransactionNotFound    = New(CodeNotFound, "payment", "Transaction not found", http.StatusNotFound)
	ErrPaymentNotConfigured   = New(CodePaymentProviderError, "payment", "Payment provider is not configured", http.StatusServiceUnavailable)
	ErrTransactionForbidden   = New(CodeForbidden, "payment", "Transaction belongs to another user", http.StatusForbidden)
	ErrUnsupportedPaymentKind = New(CodeInvalidOperation, "payment", "Unsupported payment kind", http.StatusBadRequest)
)
