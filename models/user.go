package models

import (
	"time"
)

// Permissions is the set of capability labels a user holds.
// Persisted as a JSON array column via gorm's json serializer.
type Permissions []string

func (p Permissions) Has(label string) bool {
	for _, l := range p {
		if l == label {
			return true
		}
	}
	return false
}

type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name             string      `gorm:"not null" json:"name"`
	Email            string      `gorm:"not null;unique" json:"email"`
	Password         string      `gorm:"not null" json:"-"`
	Permissions      Permissions `gorm:"serializer:json;not null" json:"permissions"`
	ResetToken       *string     `json:"-"`
	ResetTokenExpiry *time.Time  `json:"-"`
	Items            []Item      `gorm:"constraint:OnDelete:CASCADE;" json:"items,omitempty"`
	CartItems        []CartItem  `gorm:"constraint:OnDelete:CASCADE;" json:"cart,omitempty"`
}
