package models

type UserRole string
type PaymentStatus string
type PaymentKind string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"

	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"

	PaymentKindSubscription PaymentKind = "subscription"
	PaymentKindProduct      PaymentKind = "product"
)

func (r UserRole) IsValid() bool {
	return r == UserRoleUser || r == UserRoleAdmin
}

func (s PaymentStatus) IsValid() bool {
	return s == PaymentStatusPending || s == PaymentStatusPaid
}

func (k PaymentKind) IsValid() bool {
	return k == PaymentKindSubscription || k == PaymentKindProduct
}
