package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Staff struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`
	Specialty string    `json:"specialty"`
	Bio       string    `gorm:"type:text" json:"bio"`
	IsActive  bool      `gorm:"default:true" json:"isActive"`

	User  User        `gorm:"foreignKey:UserID" json:"-"`
	Notes []StaffNote `gorm:"foreignKey:StaffID" json:"-"`

	gorm.Model `json:"-"`
}

func (s *Staff) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// StaffNote is a private note a staff member leaves for themselves,
// optionally with a reminder that the note sweeper turns into a
// notification. ReminderSent guards against duplicate sends.
type StaffNote struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	StaffID          uuid.UUID  `gorm:"type:uuid;index;not null" json:"staffId"`
	Text             string     `gorm:"type:text;not null" json:"text"`
	ReminderDatetime *time.Time `json:"reminderDatetime"`
	ReminderSent     bool       `gorm:"default:false" json:"reminderSent"`

	gorm.Model `json:"-"`
}

func (n *StaffNote) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return
}
