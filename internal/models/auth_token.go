package models

import "time"

// AuthToken is the issuance record of a bearer token. A token is only honoured
// while its record exists and has not expired.
type AuthToken struct {
	ID        string    `gorm:"primaryKey;size:36"`
	UserID    uint      `gorm:"not null;index"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
