package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Payment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	AppointmentID uuid.UUID `gorm:"type:uuid;index;not null" json:"appointment_id"`

	Provider          string  `gorm:"size:30;not null" json:"provider"`
	Method            string  `gorm:"size:30;not null" json:"method"`
	Reference         string  `gorm:"size:64;uniqueIndex;not null" json:"reference"`
	ProviderPaymentID string  `gorm:"size:64" json:"provider_payment_id"`
	CheckoutURL       string  `gorm:"size:512" json:"checkout_url,omitempty"`
	Amount            float64 `json:"amount"`
	Currency          string  `gorm:"size:3" json:"currency"`
	Status            string  `gorm:"size:30;default:'pending'" json:"status"`
	StatusDetail      string  `gorm:"size:100" json:"status_detail"`
	PayerEmail        string  `gorm:"size:100" json:"payer_email"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Payment) BeforeCreate(*gorm.DB) error {
	ensureID(&p.ID)
	return nil
}
