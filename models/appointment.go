package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment statuses. Transitions into 'completed' drive the VIP
// streak evaluator; transitions into 'cancelled' drive refunds.
const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

type Appointment struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	StaffID   uuid.UUID `gorm:"type:uuid;index;not null" json:"staffId"`
	ServiceID uuid.UUID `gorm:"type:uuid;index;not null" json:"serviceId"`

	Status          string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	AppointmentDate time.Time `gorm:"not null" json:"appointmentDate"`
	AppointmentTime string    `gorm:"type:varchar(5);not null" json:"appointmentTime"` // "15:04"
	TotalPrice      float64   `gorm:"type:decimal(10,2);not null" json:"totalPrice"`
	Notes           string    `json:"notes"`

	User    User    `gorm:"foreignKey:UserID" json:"-"`
	Staff   Staff   `gorm:"foreignKey:StaffID" json:"-"`
	Service Service `gorm:"foreignKey:ServiceID" json:"service"`

	gorm.Model `json:"-"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
