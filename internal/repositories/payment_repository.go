package repositories

import (
	"errors"
	"time"

	"academy_backend/internal/models"

	"gorm.io/gorm"
)

var ErrTransactionNotFound = errors.New("payment transaction not found")

type PaymentRepository interface {
	Create(db *gorm.DB, txn *models.PaymentTransaction) error
	FindBySessionID(db *gorm.DB, sessionID string) (*models.PaymentTransaction, error)
	FindByUser(db *gorm.DB, userID string) ([]models.PaymentTransaction, error)
	// FindPending - pending транзакции, созданные в окне [from, to), старые первыми
	FindPending(db *gorm.DB, from, to time.Time, limit int) ([]models.PaymentTransaction, error)

	// MarkPaid переводит pending -> paid. Возвращает false, если
	// транзакция уже была оплачена (переход выполнил кто-то другой).
	MarkPaid(db *gorm.DB, sessionID string, paidAt time.Time) (bool, error)
}

type PaymentRepositoryImpl struct{}

func NewPaymentRepository() PaymentRepository {
	return &PaymentRepositoryImpl{}
}

func (r *PaymentRepositoryImpl) Create(db *gorm.DB, txn *models.PaymentTransaction) error {
	if txn.PaymentStatus == "" {
		txn.PaymentStatus = models.PaymentStatusPending
	}
	return db.Create(txn).Error
}

func (r *PaymentRepositoryImpl) FindBySessionID(db *gorm.DB, sessionID string) (*models.PaymentTransaction, error) {
	var txn models.PaymentTransaction
	if err := db.First(&txn, "session_id = ?", sessionID).Error; err != nil {
		return nil, notFound(err, ErrTransactionNotFound)
	}
	return &txn, nil
}

func (r *PaymentRepositoryImpl) FindByUser(db *gorm.DB, userID string) ([]models.PaymentTransaction, error) {
	var txns []models.PaymentTransaction
	err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&txns).Error
	return txns, err
}

func (r *PaymentRepositoryImpl) FindPending(db *gorm.DB, from, to time.Time, limit int) ([]models.PaymentTransaction, error) {
	var txns []models.PaymentTransaction
	err := db.Where("payment_status = ? AND created_at >= ? AND created_at < ?", models.PaymentStatusPending, from, to).
		Order("created_at ASC").
		Limit(limit).
		Find(&txns).Error
	return txns, err
}

func (r *PaymentRepositoryImpl) MarkPaid(db *gorm.DB, sessionID string, paidAt time.Time) (bool, error) {
	// Условный UPDATE - единственная точка линеаризации между
	// опросом статуса и вебхуком
	result := db.Model(&models.PaymentTransaction{}).
		Where("session_id = ? AND payment_status = ?", sessionID, models.PaymentStatusPending).
		Updates(map[string]interface{}{
			"payment_status": models.PaymentStatusPaid,
			"paid_at":        paidAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
