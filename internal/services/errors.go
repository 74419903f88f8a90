package services

import (
	"errors"

	"academy_backend/internal/repositories"
	"academy_backend/pkg/apperrors"
)

// mapRepoError переводит ошибки репозиториев в AppError
func mapRepoError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}

	switch {
	case errors.Is(err, repositories.ErrUserNotFound):
		return apperrors.ErrUserNotFound
	case errors.Is(err, repositories.ErrUserAlreadyExists):
		return apperrors.ErrEmailAlreadyExists
	case errors.Is(err, repositories.ErrProgramNotFound):
		return apperrors.ErrProgramNotFound
	case errors.Is(err, repositories.ErrCourseNotFound):
		return apperrors.ErrCourseNotFound
	case errors.Is(err, repositories.ErrLessonNotFound):
		return apperrors.ErrLessonNotFound
	case errors.Is(err, repositories.ErrModuleNotFound):
		return apperrors.ErrModuleNotFound
	case errors.Is(err, repositories.ErrVideoNotFound):
		return apperrors.ErrVideoNotFound
	case errors.Is(err, repositories.ErrProductNotFound):
		return apperrors.ErrProductNotFound
	case errors.Is(err, repositories.ErrFAQNotFound):
		return apperrors.ErrFAQNotFound
	case errors.Is(err, repositories.ErrResultNotFound):
		return apperrors.ErrResultNotFound
	case errors.Is(err, repositories.ErrTransactionNotFound):
		return apperrors.ErrTransactionNotFound
	default:
		return apperrors.InternalError(err)
	}
}
