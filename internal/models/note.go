package models

import "time"

type Note struct {
	ID        uint   `gorm:"primaryKey"`
	AuthorID  uint   `gorm:"not null;index"`
	Text      string `gorm:"not null"`
	Private   bool   `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships
	Author User `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
