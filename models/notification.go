package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification types. Notifications are append-only; only IsRead is
// ever mutated after insert.
const (
	NotificationBookingConfirmed = "booking_confirmed"
	NotificationPaymentReceived  = "payment_received"
	NotificationReminder24h      = "reminder_24h"
	NotificationReminder2h       = "reminder_2h"
	NotificationBookingCancelled = "booking_cancelled"
	NotificationVIPAchieved      = "vip_achieved"
	NotificationGeneral          = "general"
)

type Notification struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID  `gorm:"type:uuid;index;not null" json:"userId"`
	Type          string     `gorm:"type:varchar(30);not null;default:'general'" json:"type"`
	Title         string     `gorm:"not null" json:"title"`
	Message       string     `gorm:"type:text;not null" json:"message"`
	AppointmentID *uuid.UUID `gorm:"type:uuid;index" json:"appointmentId"`
	IsRead        bool       `gorm:"default:false" json:"isRead"`

	User User `gorm:"foreignKey:UserID" json:"-"`

	gorm.Model `json:"-"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return
}
