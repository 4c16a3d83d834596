package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Doctor struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User   User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	Specialization  string  `gorm:"size:100" json:"specialization"`
	Qualifications  string  `gorm:"size:255" json:"qualifications"`
	Biography       string  `gorm:"type:text" json:"biography"`
	ConsultationFee float64 `json:"consultation_fee"`
	AvatarURL       string  `gorm:"size:512" json:"avatar_url"`

	Availabilities []Availability `gorm:"constraint:OnDelete:CASCADE;" json:"availabilities,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d *Doctor) BeforeCreate(*gorm.DB) error {
	ensureID(&d.ID)
	return nil
}
