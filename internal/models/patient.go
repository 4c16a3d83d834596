package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Patient profile, one per patient user.
type Patient struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User   User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	Gender    string `gorm:"size:20" json:"gender"`
	BloodType string `gorm:"size:5" json:"blood_type"`
	Allergies string `gorm:"size:255" json:"allergies"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Patient) BeforeCreate(*gorm.DB) error {
	ensureID(&p.ID)
	return nil
}
