package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// TxManager открывает транзакцию поверх переданного *gorm.DB
// (это может быть пул или уже открытая транзакция из DBMiddleware).
type TxManager interface {
	WithinTransaction(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error
}

type GormTxManager struct{}

func NewTxManager() TxManager {
	return GormTxManager{}
}

func (GormTxManager) WithinTransaction(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.WithContext(ctx).Transaction(fn)
}

// isUniqueViolation - нарушение уникального индекса (23505)
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// notFound переводит gorm.ErrRecordNotFound в доменную ошибку репозитория
func notFound(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
