package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentTransaction - локальная запись о checkout-сессии Stripe.
// Статус монотонный: pending -> paid, paid_at выставляется один раз.
type PaymentTransaction struct {
	ID            string        `gorm:"type:varchar(36);primaryKey" json:"id"`
	SessionID     string        `gorm:"uniqueIndex;not null" json:"session_id"`
	UserID        string        `gorm:"index;not null" json:"user_id"`
	ProgramID     *string       `json:"program_id,omitempty"`
	ProductID     *string       `json:"product_id,omitempty"`
	Amount        float64       `gorm:"not null" json:"amount"`
	Currency      string        `gorm:"type:varchar(3);not null" json:"currency"`
	Kind          PaymentKind   `gorm:"type:varchar(16);not null" json:"type"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(16);not null;default:'pending';index" json:"payment_status"`
	CreatedAt     time.Time     `json:"created_at"`
	PaidAt        *time.Time    `json:"paid_at,omitempty"`
}

func (t *PaymentTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

func (t *PaymentTransaction) IsPaid() bool {
	return t.PaymentStatus == PaymentStatusPaid
}

// TargetID - program_id для подписки, product_id для товара
func (t *PaymentTransaction) TargetID() string {
	switch t.Kind {
	case PaymentKindSubscription:
		if t.ProgramID != nil {
			return *t.ProgramID
		}
	case PaymentKindProduct:
		if t.ProductID != nil {
			return *t.ProductID
		}
	}
	return ""
}
