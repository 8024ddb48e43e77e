package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gql-storefront/constants"
	"gql-storefront/dto"
	"gql-storefront/models"
	"gql-storefront/repositories"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type IAuthService interface {
	Signup(input dto.SignupInput) (*models.User, string, error)
	Signin(email string, password string) (*models.User, string, error)
	RequestReset(email string) error
	ResetPassword(input dto.ResetPasswordInput) (*models.User, string, error)
	UpdatePermissions(callerID uint, input dto.UpdatePermissionsInput) (*models.User, error)
	GetUser(id uint) (*models.User, error)
	GetUserIDFromToken(tokenString string) (uint, error)
}

type AuthService struct {
	repository  repositories.IUserRepository
	mailService IMailService
}

func NewAuthService(repository repositories.IUserRepository, mailService IMailService) IAuthService {
	return &AuthService{
		repository:  repository,
		mailService: mailService,
	}
}

func (s *AuthService) Signup(input dto.SignupInput) (*models.User, string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := models.User{
		Name:        input.Name,
		Email:       strings.ToLower(input.Email),
		Password:    string(hashedPassword),
		Permissions: models.Permissions{constants.PermissionUser},
	}
	if err := s.repository.Create(&user); err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := CreateToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

func (s *AuthService) Signin(email string, password string) (*models.User, string, error) {
	user, err := s.repository.FindByEmail(strings.ToLower(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidPassword
	}

	token, err := CreateToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// RequestReset stores a fresh reset token on the user and mails it out.
// A failed send is logged but does not fail the mutation; the token stays
// valid so the user can retry.
func (s *AuthService) RequestReset(email string) error {
	user, err := s.repository.FindByEmail(strings.ToLower(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	buf := make([]byte, constants.ResetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return err
	}
	resetToken := hex.EncodeToString(buf)
	expiry := time.Now().Add(constants.ResetTokenTTL)

	if err := s.repository.SaveResetToken(user.ID, resetToken, expiry); err != nil {
		return err
	}

	if err := s.mailService.SendPasswordReset(user.Email, resetToken); err != nil {
		log.Printf("Failed to send password reset email to %s: %v", user.Email, err)
	}
	return nil
}

func (s *AuthService) ResetPassword(input dto.ResetPasswordInput) (*models.User, string, error) {
	if input.Password != input.ConfirmPassword {
		return nil, "", ErrPasswordMismatch
	}

	user, err := s.repository.FindByValidResetToken(input.ResetToken, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrResetToken
		}
		return nil, "", err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}
	if err := s.repository.ResetPassword(user.ID, string(hashedPassword)); err != nil {
		return nil, "", err
	}

	updated, err := s.repository.FindByID(user.ID)
	if err != nil {
		return nil, "", err
	}
	token, err := CreateToken(updated.ID)
	if err != nil {
		return nil, "", err
	}
	return updated, token, nil
}

// UpdatePermissions overwrites the target user's permission set. The caller
// must hold both ADMIN and PERMISSIONUPDATE; the check runs against the
// caller's stored record, not the token.
func (s *AuthService) UpdatePermissions(callerID uint, input dto.UpdatePermissionsInput) (*models.User, error) {
	caller, err := s.repository.FindByID(callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if !caller.Permissions.Has(constants.PermissionAdmin) ||
		!caller.Permissions.Has(constants.PermissionPermissionUpdate) {
		return nil, ErrPermissionDenied
	}

	for _, label := range input.Permissions {
		if !validPermission(label) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPermission, label)
		}
	}

	updated, err := s.repository.UpdatePermissions(input.UserID, models.Permissions(input.Permissions))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *AuthService) GetUser(id uint) (*models.User, error) {
	user, err := s.repository.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func validPermission(label string) bool {
	for _, known := range constants.AllPermissions {
		if label == known {
			return true
		}
	}
	return false
}

// CreateToken issues the stateless session credential: an HS256 JWT whose
// sub claim carries the user id, valid for a year to match the cookie.
func CreateToken(userID uint) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(constants.SessionDuration).Unix(),
	})
	return token.SignedString([]byte(os.Getenv("SECRET_KEY")))
}

func (s *AuthService) GetUserIDFromToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected method: %v", token.Header["alg"])
		}
		return []byte(os.Getenv("SECRET_KEY")), nil
	})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, jwt.ErrTokenInvalidClaims
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, jwt.ErrTokenInvalidClaims
	}
	return uint(sub), nil
}
