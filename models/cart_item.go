package models

import "time"

// CartItem links a user and an item with a quantity. The composite unique
// index guarantees at most one row per (user, item) pair, which lets
// addToCart run as a single ON CONFLICT upsert instead of a racy
// find-then-increment sequence.
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Quantity int   `gorm:"not null;default:1" json:"quantity"`
	UserID   uint  `gorm:"not null;uniqueIndex:idx_cart_user_item" json:"-"`
	ItemID   uint  `gorm:"not null;uniqueIndex:idx_cart_user_item" json:"-"`
	User     *User `json:"user,omitempty"`
	Item     *Item `json:"item,omitempty"`
}
