package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VIPProfile defaults applied on promotion.
const (
	DefaultVIPTier     = "gold"
	DefaultVIPDiscount = 10
)

// VIPProfile is created when a user is promoted to vip and deleted on
// demotion; it never exists for a non-vip role.
type VIPProfile struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID             uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`
	Tier               string    `gorm:"type:varchar(20);not null;default:'gold'" json:"tier"`
	PointsBalance      int       `gorm:"default:0" json:"pointsBalance"`
	DiscountPercentage float64   `gorm:"type:decimal(5,2);default:10.0" json:"discountPercentage"`

	User User `gorm:"foreignKey:UserID" json:"-"`

	gorm.Model `json:"-"`
}

func (p *VIPProfile) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
