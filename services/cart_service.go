package services

import (
	"errors"

	"gql-storefront/models"
	"gql-storefront/repositories"

	"gorm.io/gorm"
)

type ICartService interface {
	AddToCart(userID uint, itemID uint) (*models.CartItem, error)
	RemoveFromCart(userID uint, cartItemID uint) (*models.CartItem, error)
}

type CartService struct {
	repository     repositories.ICartRepository
	itemRepository repositories.IItemRepository
}

func NewCartService(repository repositories.ICartRepository, itemRepository repositories.IItemRepository) ICartService {
	return &CartService{
		repository:     repository,
		itemRepository: itemRepository,
	}
}

func (s *CartService) AddToCart(userID uint, itemID uint) (*models.CartItem, error) {
	// SQLite does not enforce the FK, so verify the item before the upsert.
	if _, err := s.itemRepository.FindByID(itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return s.repository.Upsert(userID, itemID)
}

func (s *CartService) RemoveFromCart(userID uint, cartItemID uint) (*models.CartItem, error) {
	cartItem, err := s.repository.FindByID(cartItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}

	if cartItem.UserID != userID {
		return nil, ErrNotCartOwner
	}

	if err := s.repository.Delete(cartItemID); err != nil {
		return nil, err
	}
	return cartItem, nil
}
