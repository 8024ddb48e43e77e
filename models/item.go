package models

import "time"

type Item struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"not null" json:"description"`
	Image       string `json:"image"`
	LargeImage  string `json:"largeImage"`
	// Price is stored in cents.
	Price  int   `gorm:"not null" json:"price"`
	UserID uint  `gorm:"not null;index" json:"-"`
	User   *User `json:"user,omitempty"`
}
