package services

import (
	"testing"
	"time"

	"gql-storefront/constants"
	"gql-storefront/dto"
	"gql-storefront/models"
	"gql-storefront/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Item{}, &models.CartItem{}))
	return db
}

type fakeMailService struct {
	to     []string
	tokens []string
	err    error
}

func (f *fakeMailService) SendPasswordReset(to string, resetToken string) error {
	if f.err != nil {
		return f.err
	}
	f.to = append(f.to, to)
	f.tokens = append(f.tokens, resetToken)
	return nil
}

func newAuthService(t *testing.T) (IAuthService, *fakeMailService, *gorm.DB) {
	t.Helper()
	t.Setenv("SECRET_KEY", "test-secret")

	db := setupTestDB(t)
	mail := &fakeMailService{}
	service := NewAuthService(repositories.NewUserRepository(db), mail)
	return service, mail, db
}

func TestSignup(t *testing.T) {
	service, _, _ := newAuthService(t)

	user, token, err := service.Signup(dto.SignupInput{
		Email:    "Alice@Example.COM",
		Password: "password123",
		Name:     "Alice",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, models.Permissions{constants.PermissionUser}, user.Permissions)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))

	require.NotEmpty(t, token)
	userID, err := service.GetUserIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestSignupDuplicateEmail(t *testing.T) {
	service, _, _ := newAuthService(t)

	_, _, err := service.Signup(dto.SignupInput{Email: "alice@example.com", Password: "password123", Name: "Alice"})
	require.NoError(t, err)

	_, _, err = service.Signup(dto.SignupInput{Email: "ALICE@example.com", Password: "otherpassword", Name: "Imposter"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignin(t *testing.T) {
	service, _, _ := newAuthService(t)

	created, _, err := service.Signup(dto.SignupInput{Email: "alice@example.com", Password: "password123", Name: "Alice"})
	require.NoError(t, err)

	user, token, err := service.Signin("Alice@Example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	userID, err := service.GetUserIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, userID)
}

func TestSigninWrongPassword(t *testing.T) {
	service, _, _ := newAuthService(t)

	_, _, err := service.Signup(dto.SignupInput{Email: "alice@example.com", Password: "password123", Name: "Alice"})
	require.NoError(t, err)

	_, token, err := service.Signin("alice@example.com", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidPassword)
	assert.Empty(t, token)
}

func TestSigninUnknownEmail(t *testing.T) {
	service, _, _ := newAuthService(t)

	_, _, err := service.Signin("nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRequestReset(t *testing.T) {
	service, mail, db := newAuthService(t)

	created, _, err := service.Signup(dto.SignupInput{Email: "alice@example.com", Password: "password123", Name: "Alice"})
	require.NoError(t, err)

	require.NoError(t, service.RequestReset("alice@example.com"))

	require.Len(t, mail.tokens, 1)
	assert.Equal(t, []string{"alice@example.com"}, mail.to)
	// 20 random bytes, hex encoded.
	assert.Len(t, mail.tokens[0], 40)

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", created.ID).Error)
	require.NotNil(t, stored.ResetToken)
	assert.Equal(t, mail.tokens[0], *stored.ResetToken)
	require.NotNil(t, stored.ResetTokenExpiry)
	assert.WithinDuration(t, time.Now().Add(constants.ResetTokenTTL), *stored.ResetTokenExpiry, time.Minute)
}

func TestRequestResetUnknownEmail(t *testing.T) {
	service, _, _ := newAuthService(t)

	err := service.RequestReset("nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRequestResetMailFailureStillSucceeds(t *testing.T) {
	service, mail, db := newAuthService(t)
	mail.err = assert.AnError

	created, _, err := service.Signup(dto.SignupInput{Email: "alice@example.com", Password: "password123", Name: "Alice"})
	require.NoError(t, err)

	// The send failure is logged, not surfaced; the token must still be
	// persisted so a retry email could use it.
	require.NoError(t, service.RequestReset("alice@example.com"))

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", created.ID).Error)
	assert.NotNil(t, stored.ResetToken)
}

func TestResetPassword(t *testing.T) {
	service, mail, db := newAuthService(t)

	created, _, err := service.Signup(dto.SignupInput{Email: "alice@example.com", Password: "password123", Name: "Alice"})
	require.NoError(t, err)
	require.NoError(t, service.RequestReset("alice@example.com"))

	user, token, err := service.ResetPassword(dto.ResetPasswordInput{
		ResetToken:      mail.tokens[0],
		Password:        "newpassword456",
		ConfirmPassword: "newpassword456",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.NotEmpty(t, token)

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", created.ID).Error)
	assert.Nil(t, stored.ResetToken)
	assert.Nil(t, stored.ResetTokenExpiry)

	_, _, err = service.Signin("alice@example.com", "newpassword456")
	assert.NoError(t, err)
	_, _, err = service.Signin("alice@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestResetPasswordConfirmMismatch(t *testing.T) {
	service, _, _ := newAuthService(t)

	_, _, err := service.ResetPassword(dto.ResetPasswordInput{
		ResetToken:      "irrelevant",
		Password:        "one",
		ConfirmPassword: "two",
	})
	assert.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestResetPasswordUnknownToken(t *testing.T) {
	service, _, _ := newAuthService(t)

	_, _, err := service.ResetPassword(dto.ResetPasswordInput{
		ResetToken:      "deadbeef",
		Password:        "newpassword456",
		ConfirmPassword: "newpassword456",
	})
	assert.ErrorIs(t, err, ErrResetToken)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	service, mail, db := newAuthService(t)

	created, _, err := service.Signup(dto.SignupInput{Email: "alice@example.com", Password: "password123", Name: "Alice"})
	require.NoError(t, err)
	require.NoError(t, service.RequestReset("alice@example.com"))

	expired := time.Now().Add(-time.Minute)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", created.ID).
		Update("reset_token_expiry", expired).Error)

	_, _, err = service.ResetPassword(dto.ResetPasswordInput{
		ResetToken:      mail.tokens[0],
		Password:        "newpassword456",
		ConfirmPassword: "newpassword456",
	})
	assert.ErrorIs(t, err, ErrResetToken)
}

func TestUpdatePermissionsDenied(t *testing.T) {
	service, _, _ := newAuthService(t)

	caller, _, err := service.Signup(dto.SignupInput{Email: "alice@example.com", Password: "password123", Name: "Alice"})
	require.NoError(t, err)
	target, _, err := service.Signup(dto.SignupInput{Email: "bob@example.com", Password: "password123", Name: "Bob"})
	require.NoError(t, err)

	// A plain USER lacks both required capabilities.
	_, err = service.UpdatePermissions(caller.ID, dto.UpdatePermissionsInput{
		UserID:      target.ID,
		Permissions: []string{constants.PermissionAdmin},
	})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestUpdatePermissionsAdminOnlyIsNotEnough(t *testing.T) {
	service, _, db := newAuthService(t)

	caller, _, err := service.Signup(dto.SignupInput{Email: "alice@example.com", Password: "password123", Name: "Alice"})
	require.NoError(t, err)
	target, _, err := service.Signup(dto.SignupInput{Email: "bob@example.com", Password: "password123", Name: "Bob"})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.User{}).Where("id = ?", caller.ID).
		Update("permissions", models.Permissions{constants.PermissionAdmin}).Error)

	_, err = service.UpdatePermissions(caller.ID, dto.UpdatePermissionsInput{
		UserID:      target.ID,
		Permissions: []string{constants.PermissionUser},
	})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestUpdatePermissionsOverwrites(t *testing.T) {
	service, _, db := newAuthService(t)

	caller, _, err := service.Signup(dto.SignupInput{Email: "alice@example.com", Password: "password123", Name: "Alice"})
	require.NoError(t, err)
	target, _, err := service.Signup(dto.SignupInput{Email: "bob@example.com", Password: "password123", Name: "Bob"})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.User{}).Where("id = ?", caller.ID).
		Update("permissions", models.Permissions{
			constants.PermissionAdmin,
			constants.PermissionPermissionUpdate,
		}).Error)

	updated, err := service.UpdatePermissions(caller.ID, dto.UpdatePermissionsInput{
		UserID:      target.ID,
		Permissions: []string{constants.PermissionUser, constants.PermissionItemCreate},
	})
	require.NoError(t, err)
	assert.Equal(t, target.ID, updated.ID)
	assert.Equal(t, models.Permissions{constants.PermissionUser, constants.PermissionItemCreate}, updated.Permissions)
}

func TestUpdatePermissionsUnknownLabel(t *testing.T) {
	service, _, db := newAuthService(t)

	caller, _, err := service.Signup(dto.SignupInput{Email: "alice@example.com", Password: "password123", Name: "Alice"})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.User{}).Where("id = ?", caller.ID).
		Update("permissions", models.Permissions{
			constants.PermissionAdmin,
			constants.PermissionPermissionUpdate,
		}).Error)

	_, err = service.UpdatePermissions(caller.ID, dto.UpdatePermissionsInput{
		UserID:      caller.ID,
		Permissions: []string{"SUPERUSER"},
	})
	assert.ErrorIs(t, err, ErrUnknownPermission)
}
