package repositories

import (
	"errors"

	"gorm.io/gorm"

	"vfxworks_backend/internal/models"
)

var ErrReviewNotFound = errors.New("review not found")

type ReviewRepository interface {
	CreateReview(db *gorm.DB, review *models.Review) error
	FindReviewByID(db *gorm.DB, id string) (*models.Review, error)
	FindReviewByContract(db *gorm.DB, contractID string) (*models.Review, error)
	FindReviewsByTarget(db *gorm.DB, targetID string) ([]models.Review, error)
	FindPublicReviewsByTarget(db *gorm.DB, targetID string) ([]models.Review, error)
	UpdateReview(db *gorm.DB, review *models.Review) error
	DeleteReview(db *gorm.DB, id string) error
}

type ReviewRepositoryImpl struct{}

func NewReviewRepository() ReviewRepository {
	return &ReviewRepositoryImpl{}
}

func (r *ReviewRepositoryImpl) CreateReview(db *gorm.DB, review *models.Review) error {
	return db.Create(review).Error
}

func (r *ReviewRepositoryImpl) FindReviewByID(db *gorm.DB, id string) (*models.Review, error) {
	var review models.Review
	err := db.First(&review, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) FindReviewByContract(db *gorm.DB, contractID string) (*models.Review, error) {
	var review models.Review
	err := db.First(&review, "contract_id = ?", contractID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) FindReviewsByTarget(db *gorm.DB, targetID string) ([]models.Review, error) {
	var reviews []models.Review
	err := db.Where("target_id = ?", targetID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// FindPublicReviewsByTarget feeds the rating recompute; hidden reviews never
// count toward the aggregate.
func (r *ReviewRepositoryImpl) FindPublicReviewsByTarget(db *gorm.DB, targetID string) ([]models.Review, error) {
	var reviews []models.Review
	err := db.Where("target_id = ? AND is_public = ?", targetID, true).
		Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepositoryImpl) UpdateReview(db *gorm.DB, review *models.Review) error {
	result := db.Model(&models.Review{}).Where("id = ?", review.ID).Updates(map[string]interface{}{
		"rating":      review.Rating,
		"review_text": review.ReviewText,
		"aspects":     review.Aspects,
		"is_public":   review.IsPublic,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *ReviewRepositoryImpl) DeleteReview(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Review{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}
