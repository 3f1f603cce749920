package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentRefunded  = "refunded"
)

type Payment struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	AppointmentID uuid.UUID `gorm:"type:uuid;index;not null" json:"appointmentId"`
	Amount        float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	Currency      string    `gorm:"type:varchar(3);not null;default:'usd'" json:"currency"`
	Status        string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	StripePaymentIntentID string `gorm:"index" json:"stripePaymentIntentId"`
	StripeRefundID        string `json:"stripeRefundId"`

	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"-"`

	gorm.Model `json:"-"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
