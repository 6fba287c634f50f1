package model

import (
	"time"
)

type User struct {
	ID                    int64      `gorm:"primaryKey" json:"id"`
	Email                 string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash          *string    `gorm:"size:255" json:"-"`
	Name                  string     `gorm:"size:100" json:"name"`
	Language              string     `gorm:"size:10;default:pt" json:"language"`
	HasAcceptedTerms      bool       `gorm:"default:false" json:"has_accepted_terms"`
	TermsAcceptedAt       *time.Time `json:"terms_accepted_at,omitempty"`
	EmailVerified         bool       `gorm:"default:false" json:"email_verified"`
	VerificationCode      *string    `gorm:"size:100" json:"-"`
	VerificationExpiresAt *time.Time `json:"-"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
