package services

import (
	"errors"

	"gql-storefront/dto"
	"gql-storefront/models"
	"gql-storefront/repositories"

	"gorm.io/gorm"
)

type IItemService interface {
	FindAll() (*[]models.Item, error)
	FindByID(itemID uint) (*models.Item, error)
	Create(input dto.CreateItemInput, userID uint) (*models.Item, error)
	Update(input dto.UpdateItemInput) (*models.Item, error)
	Delete(itemID uint) (*models.Item, error)
}

type ItemService struct {
	repository repositories.IItemRepository
}

func NewItemService(repository repositories.IItemRepository) IItemService {
	return &ItemService{repository: repository}
}

func (s *ItemService) FindAll() (*[]models.Item, error) {
	return s.repository.FindAll()
}

func (s *ItemService) FindByID(itemID uint) (*models.Item, error) {
	item, err := s.repository.FindByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *ItemService) Create(input dto.CreateItemInput, userID uint) (*models.Item, error) {
	newItem := models.Item{
		Title:       input.Title,
		Description: input.Description,
		Image:       input.Image,
		LargeImage:  input.LargeImage,
		Price:       input.Price,
		UserID:      userID,
	}
	return s.repository.Create(newItem)
}

// Update applies the provided fields to the item. Callers other than the
// owner are not rejected here; see the resolver notes.
func (s *ItemService) Update(input dto.UpdateItemInput) (*models.Item, error) {
	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Price != nil {
		updates["price"] = *input.Price
	}
	if len(updates) == 0 {
		return s.FindByID(input.ID)
	}

	item, err := s.repository.Update(input.ID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *ItemService) Delete(itemID uint) (*models.Item, error) {
	item, err := s.repository.FindByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	// TODO: require ownership or the ITEMDELETE permission before deleting.
	if err := s.repository.Delete(itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}
