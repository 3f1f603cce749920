package models

import (
	"time"

	"lashbook-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles. A VIPProfile row exists if and only if the role is 'vip'.
const (
	RoleUser    = "user"
	RoleVIP     = "vip"
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// Number of completed bookings that triggers VIP promotion.
const VIPStreakThreshold = 10

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email    string    `gorm:"uniqueIndex;not null" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Name     string    `gorm:"not null" json:"name"`
	Phone    string    `json:"phone"`

	Role            string     `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	VIPStreak       int        `gorm:"column:vip_streak;default:0" json:"vipStreak"`
	LastBookingDate *time.Time `json:"lastBookingDate"`

	ReferredBy               *uuid.UUID `gorm:"type:uuid;index" json:"referredBy"`
	ReferralBookingCompleted bool       `gorm:"default:false" json:"referralBookingCompleted"`

	LastLogin *time.Time `json:"lastLogin"`
	IsActive  bool       `gorm:"default:true" json:"isActive"`

	gorm.Model `json:"-"`
}

// Initialize UUID and hash the password before creating
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}
