package repositories

import (
	"gql-storefront/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ICartRepository interface {
	Upsert(userID uint, itemID uint) (*models.CartItem, error)
	FindByID(cartItemID uint) (*models.CartItem, error)
	Delete(cartItemID uint) error
}

type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) ICartRepository {
	return &CartRepository{db: db}
}

// Upsert inserts a cart row with quantity 1, or bumps the quantity when a
// row for the (user, item) pair already exists. The ON CONFLICT clause rides
// on the idx_cart_user_item unique index, so concurrent adds cannot produce
// duplicate rows.
func (r *CartRepository) Upsert(userID uint, itemID uint) (*models.CartItem, error) {
	cartItem := models.CartItem{
		UserID:   userID,
		ItemID:   itemID,
		Quantity: 1,
	}
	result := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "item_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("quantity + 1"),
		}),
	}).Create(&cartItem)
	if result.Error != nil {
		return nil, result.Error
	}

	// Re-read to pick up the incremented quantity on the conflict path.
	var out models.CartItem
	if err := r.db.Preload("Item").First(&out, "user_id = ? AND item_id = ?", userID, itemID).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *CartRepository) FindByID(cartItemID uint) (*models.CartItem, error) {
	var cartItem models.CartItem
	result := r.db.Preload("Item").First(&cartItem, "id = ?", cartItemID)
	if result.Error != nil {
		return nil, result.Error
	}
	return &cartItem, nil
}

func (r *CartRepository) Delete(cartItemID uint) error {
	result := r.db.Delete(&models.CartItem{}, "id = ?", cartItemID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
