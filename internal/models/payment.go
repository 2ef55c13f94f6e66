package models

import (
	"gorm.io/gorm"
)

type PaymentMethod string
type PaymentStatus string

const (
	PaymentMethodGCash   PaymentMethod = "gcash"
	PaymentMethodPayMaya PaymentMethod = "paymaya"
	PaymentMethodCOD     PaymentMethod = "cod"

	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Payment records a payment attempt against a ride. It always starts out
// pending; only an admin moves it afterwards, and any status is reachable
// from any other so operator mistakes can be corrected.
type Payment struct {
	gorm.Model
	RideID    uint          `json:"rideId" gorm:"column:ride_id;not null"`
	PayerID   uint          `json:"payerId" gorm:"column:payer_id;not null"`
	Method    PaymentMethod `json:"method" gorm:"column:method;not null"`
	Amount    float64       `json:"amount" gorm:"column:amount;not null"`
	Reference string        `json:"reference" gorm:"column:reference"`
	Status    PaymentStatus `json:"status" gorm:"column:status;not null;default:'pending'"`
	Ride      *Ride         `json:"ride,omitempty" gorm:"foreignKey:RideID"`
	Payer     *User         `json:"payer,omitempty" gorm:"foreignKey:PayerID"`
}

// TableName specifies the table name
func (Payment) TableName() string {
	return "payments"
}

func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodGCash, PaymentMethodPayMaya, PaymentMethodCOD:
		return true
	}
	return false
}

func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}
