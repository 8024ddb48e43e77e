package services

import (
	"testing"

	"gql-storefront/dto"
	"gql-storefront/models"
	"gql-storefront/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newItemService(t *testing.T) (IItemService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	return NewItemService(repositories.NewItemRepository(db)), db
}

func strptr(s string) *string { return &s }
func intptr(i int) *int       { return &i }

func TestItemCreate(t *testing.T) {
	service, _ := newItemService(t)

	item, err := service.Create(dto.CreateItemInput{
		Title:       "Dogs are the best",
		Description: "A framed print",
		Image:       "dog.jpg",
		LargeImage:  "dog-large.jpg",
		Price:       4999,
	}, 42)
	require.NoError(t, err)

	assert.NotZero(t, item.ID)
	assert.Equal(t, "Dogs are the best", item.Title)
	assert.Equal(t, 4999, item.Price)
	assert.Equal(t, uint(42), item.UserID)
}

func TestItemUpdatePartial(t *testing.T) {
	service, _ := newItemService(t)

	item, err := service.Create(dto.CreateItemInput{Title: "Old title", Description: "desc", Price: 100}, 1)
	require.NoError(t, err)

	updated, err := service.Update(dto.UpdateItemInput{
		ID:    item.ID,
		Title: strptr("New title"),
	})
	require.NoError(t, err)
	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, "desc", updated.Description)
	assert.Equal(t, 100, updated.Price)

	updated, err = service.Update(dto.UpdateItemInput{
		ID:    item.ID,
		Price: intptr(250),
	})
	require.NoError(t, err)
	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, 250, updated.Price)
}

func TestItemUpdateNotFound(t *testing.T) {
	service, _ := newItemService(t)

	_, err := service.Update(dto.UpdateItemInput{ID: 9999, Title: strptr("nope")})
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestItemDelete(t *testing.T) {
	service, db := newItemService(t)

	item, err := service.Create(dto.CreateItemInput{Title: "Doomed", Description: "desc", Price: 100}, 1)
	require.NoError(t, err)

	deleted, err := service.Delete(item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, deleted.ID)
	assert.Equal(t, "Doomed", deleted.Title)

	var count int64
	require.NoError(t, db.Model(&models.Item{}).Count(&count).Error)
	assert.Zero(t, count)

	_, err = service.Delete(item.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestItemFindAll(t *testing.T) {
	service, _ := newItemService(t)

	_, err := service.Create(dto.CreateItemInput{Title: "One", Description: "d", Price: 1}, 1)
	require.NoError(t, err)
	_, err = service.Create(dto.CreateItemInput{Title: "Two", Description: "d", Price: 2}, 1)
	require.NoError(t, err)

	items, err := service.FindAll()
	require.NoError(t, err)
	assert.Len(t, *items, 2)
}
