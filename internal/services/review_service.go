package services

import (
	"encoding/json"
	"errors"
	"math"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"vfxworks_backend/internal/logger"
	"vfxworks_backend/internal/models"
	"vfxworks_backend/internal/repositories"
	"vfxworks_backend/internal/services/dto"
	"vfxworks_backend/pkg/apperrors"
)

type ReviewService interface {
	CreateReview(db *gorm.DB, requesterID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	GetReview(db *gorm.DB, reviewID string) (*dto.ReviewResponse, error)
	ListTargetReviews(db *gorm.DB, targetID string, includeHidden bool) (*dto.ReviewListResponse, error)
	UpdateReview(db *gorm.DB, reviewID, requesterID string, req *dto.UpdateReviewRequest) (*dto.ReviewResponse, error)
	DeleteReview(db *gorm.DB, reviewID, requesterID string, role models.UserRole) error
	GetRating(db *gorm.DB, targetID string) (*dto.RatingResponse, error)
}

type reviewService struct {
	reviewRepo   repositories.ReviewRepository
	contractRepo repositories.ContractRepository
	userRepo     repositories.UserRepository
}

func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	contractRepo repositories.ContractRepository,
	userRepo repositories.UserRepository,
) ReviewService {
	return &reviewService{
		reviewRepo:   reviewRepo,
		contractRepo: contractRepo,
		userRepo:     userRepo,
	}
}

func (s *reviewService) CreateReview(db *gorm.DB, requesterID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	contract, err := s.contractRepo.FindContractByID(db, req.ContractID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err, "contract")
	}
	if contract.ClientID != requesterID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if contract.Status != models.ContractStatusCompleted {
		return nil, apperrors.ErrContractNotCompleted
	}

	// One review per contract.
	if _, err := s.reviewRepo.FindReviewByContract(db, contract.ID); err == nil {
		return nil, apperrors.ErrDuplicateReview
	} else if !errors.Is(err, repositories.ErrReviewNotFound) {
		return nil, apperrors.InternalError(err)
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	review := &models.Review{
		ContractID: contract.ID,
		JobID:      contract.JobID,
		ReviewerID: requesterID,
		TargetID:   contract.VendorID,
		Rating:     req.Rating,
		ReviewText: req.ReviewText,
		Aspects:    encodeAspects(req.Aspects),
		IsPublic:   isPublic,
	}

	if err := s.reviewRepo.CreateReview(db, review); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.recomputeRating(db, review.TargetID)
	return dto.NewReviewResponse(review), nil
}

func (s *reviewService) GetReview(db *gorm.DB, reviewID string) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.FindReviewByID(db, reviewID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err, "review")
	}
	return dto.NewReviewResponse(review), nil
}

func (s *reviewService) ListTargetReviews(db *gorm.DB, targetID string, includeHidden bool) (*dto.ReviewListResponse, error) {
	var (
		reviews []models.Review
		err     error
	)
	if includeHidden {
		reviews, err = s.reviewRepo.FindReviewsByTarget(db, targetID)
	} else {
		reviews, err = s.reviewRepo.FindPublicReviewsByTarget(db, targetID)
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.ReviewListResponse{
		Reviews: make([]dto.ReviewResponse, 0, len(reviews)),
		Total:   len(reviews),
	}
	for i := range reviews {
		resp.Reviews = append(resp.Reviews, *dto.NewReviewResponse(&reviews[i]))
	}
	return resp, nil
}

func (s *reviewService) UpdateReview(db *gorm.DB, reviewID, requesterID string, req *dto.UpdateReviewRequest) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.FindReviewByID(db, reviewID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err, "review")
	}
	if review.ReviewerID != requesterID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.ReviewText != nil {
		review.ReviewText = *req.ReviewText
	}
	if req.Aspects != nil {
		review.Aspects = encodeAspects(req.Aspects)
	}
	if req.IsPublic != nil {
		review.IsPublic = *req.IsPublic
	}

	if err := s.reviewRepo.UpdateReview(db, review); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.recomputeRating(db, review.TargetID)
	return dto.NewReviewResponse(review), nil
}

func (s *reviewService) DeleteReview(db *gorm.DB, reviewID, requesterID string, role models.UserRole) error {
	review, err := s.reviewRepo.FindReviewByID(db, reviewID)
	if err != nil {
		return apperrors.ErrNotFound(err, "review")
	}
	if review.ReviewerID != requesterID && role != models.UserRoleAdmin {
		return apperrors.ErrInsufficientPermissions
	}

	if err := s.reviewRepo.DeleteReview(db, reviewID); err != nil {
		return apperrors.InternalError(err)
	}

	s.recomputeRating(db, review.TargetID)
	return nil
}

func (s *reviewService) GetRating(db *gorm.DB, targetID string) (*dto.RatingResponse, error) {
	profile, err := s.userRepo.FindProfileByUserID(db, targetID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err, "profile")
	}
	reviews, err := s.reviewRepo.FindPublicReviewsByTarget(db, targetID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.RatingResponse{
		TargetID:    targetID,
		Rating:      profile.Rating,
		ReviewCount: len(reviews),
	}, nil
}

// recomputeRating refreshes the vendor's aggregate after any review change.
// A failure here is logged and swallowed; it must never fail the request
// that triggered it.
func (s *reviewService) recomputeRating(db *gorm.DB, targetID string) {
	reviews, err := s.reviewRepo.FindPublicReviewsByTarget(db, targetID)
	if err != nil {
		logger.Error("rating recompute failed", "target_id", targetID, "error", err)
		return
	}

	var rating *float64
	if len(reviews) > 0 {
		sum := 0
		for _, review := range reviews {
			sum += review.Rating
		}
		rounded := RoundToHalf(float64(sum) / float64(len(reviews)))
		rating = &rounded
	}

	if err := s.userRepo.UpdateRating(db, targetID, rating); err != nil {
		logger.Error("rating recompute failed", "target_id", targetID, "error", err)
	}
}

// RoundToHalf rounds to the nearest 0.5 star.
func RoundToHalf(v float64) float64 {
	return math.Round(v*2) / 2
}

func encodeAspects(aspects map[string]int) datatypes.JSON {
	if len(aspects) == 0 {
		return nil
	}
	raw, err := json.Marshal(aspects)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}
