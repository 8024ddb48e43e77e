package repositories

import (
	"time"

	"gql-storefront/models"

	"gorm.io/gorm"
)

type IUserRepository interface {
	Create(user *models.User) error
	FindByEmail(email string) (*models.User, error)
	FindByID(id uint) (*models.User, error)
	FindByValidResetToken(token string, now time.Time) (*models.User, error)
	SaveResetToken(id uint, token string, expiry time.Time) error
	ResetPassword(id uint, hashedPassword string) error
	UpdatePermissions(id uint, permissions models.Permissions) (*models.User, error)
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) IUserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(id uint) (*models.User, error) {
	var user models.User
	result := r.db.
		Preload("Items").
		Preload("CartItems.Item").
		First(&user, "id = ?", id)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

// FindByValidResetToken matches a user whose reset token equals the given
// value and whose stored expiry has not yet passed.
func (r *UserRepository) FindByValidResetToken(token string, now time.Time) (*models.User, error) {
	var user models.User
	result := r.db.First(&user, "reset_token = ? AND reset_token_expiry >= ?", token, now)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

func (r *UserRepository) SaveResetToken(id uint, token string, expiry time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"reset_token":        token,
			"reset_token_expiry": expiry,
		}).Error
}

// ResetPassword stores the new hash and clears the reset token fields in a
// single update.
func (r *UserRepository) ResetPassword(id uint, hashedPassword string) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"password":           hashedPassword,
			"reset_token":        nil,
			"reset_token_expiry": nil,
		}).Error
}

func (r *UserRepository) UpdatePermissions(id uint, permissions models.Permissions) (*models.User, error) {
	result := r.db.Model(&models.User{}).Where("id = ?", id).
		Update("permissions", permissions)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
