package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EnrollmentPending   = "pending"
	EnrollmentPaid      = "paid"
	EnrollmentCancelled = "cancelled"
)

type Course struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	StartDate   time.Time `json:"startDate"`
	Capacity    int       `gorm:"default:0" json:"capacity"` // 0 means unlimited
	IsActive    bool      `gorm:"default:true" json:"isActive"`

	Enrollments []CourseEnrollment `gorm:"foreignKey:CourseID" json:"-"`

	gorm.Model `json:"-"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

type CourseEnrollment struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CourseID uuid.UUID `gorm:"type:uuid;index;not null" json:"courseId"`
	UserID   uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	Status   string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	StripePaymentIntentID string `json:"stripePaymentIntentId"`

	Course Course `gorm:"foreignKey:CourseID" json:"-"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`

	gorm.Model `json:"-"`
}

func (e *CourseEnrollment) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}
