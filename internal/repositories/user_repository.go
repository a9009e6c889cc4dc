package repositories

import (
	"errors"

	"gorm.io/gorm"

	"vfxworks_backend/internal/models"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProfileNotFound = errors.New("profile not found")
)

type UserRepository interface {
	CreateUser(db *gorm.DB, user *models.User) error
	FindUserByID(db *gorm.DB, id string) (*models.User, error)
	FindUserByEmail(db *gorm.DB, email string) (*models.User, error)
	CountAdmins(db *gorm.DB) (int64, error)

	CreateProfile(db *gorm.DB, profile *models.Profile) error
	FindProfileByUserID(db *gorm.DB, userID string) (*models.Profile, error)

	// UpdateRating writes the aggregate rating; a nil value clears it back
	// to "not yet rated".
	UpdateRating(db *gorm.DB, userID string, rating *float64) error
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) CreateUser(db *gorm.DB, user *models.User) error {
	return db.Create(user).Error
}

func (r *UserRepositoryImpl) FindUserByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := db.Preload("Profile").First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindUserByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.Preload("Profile").First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) CountAdmins(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.User{}).Where("role = ?", models.UserRoleAdmin).Count(&count).Error
	return count, err
}

func (r *UserRepositoryImpl) CreateProfile(db *gorm.DB, profile *models.Profile) error {
	return db.Create(profile).Error
}

func (r *UserRepositoryImpl) FindProfileByUserID(db *gorm.DB, userID string) (*models.Profile, error) {
	var profile models.Profile
	err := db.First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *UserRepositoryImpl) UpdateRating(db *gorm.DB, userID string, rating *float64) error {
	return db.Model(&models.Profile{}).Where("user_id = ?", userID).
		Update("rating", rating).Error
}
