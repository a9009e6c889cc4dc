package dto

import (
	"encoding/json"
	"time"

	"vfxworks_backend/internal/models"
)

type CreateReviewRequest struct {
	ContractID string         `json:"contract_id" validate:"required,uuid"`
	Rating     int            `json:"rating" validate:"required,min=1,max=5"`
	ReviewText string         `json:"review_text" validate:"max=5000"`
	Aspects    map[string]int `json:"aspects,omitempty" validate:"omitempty,dive,min=1,max=5"`
	IsPublic   *bool          `json:"is_public,omitempty"`
}

type UpdateReviewRequest struct {
	Rating     *int           `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	ReviewText *string        `json:"review_text,omitempty" validate:"omitempty,max=5000"`
	Aspects    map[string]int `json:"aspects,omitempty" validate:"omitempty,dive,min=1,max=5"`
	IsPublic   *bool          `json:"is_public,omitempty"`
}

type ReviewResponse struct {
	ID         string         `json:"id"`
	ContractID string         `json:"contract_id"`
	JobID      string         `json:"job_id"`
	ReviewerID string         `json:"reviewer_id"`
	TargetID   string         `json:"target_id"`
	Rating     int            `json:"rating"`
	ReviewText string         `json:"review_text"`
	Aspects    map[string]int `json:"aspects,omitempty"`
	IsPublic   bool           `json:"is_public"`
	CreatedAt  time.Time      `json:"created_at"`
}

type ReviewListResponse struct {
	Reviews []ReviewResponse `json:"reviews"`
	Total   int              `json:"total"`
}

// RatingResponse reports the vendor's aggregate. Rating is nil until the
// first public review lands.
type RatingResponse struct {
	TargetID    string   `json:"target_id"`
	Rating      *float64 `json:"rating"`
	ReviewCount int      `json:"review_count"`
}

func NewReviewResponse(review *models.Review) *ReviewResponse {
	resp := &ReviewResponse{
		ID:         review.ID,
		ContractID: review.ContractID,
		JobID:      review.JobID,
		ReviewerID: review.ReviewerID,
		TargetID:   review.TargetID,
		Rating:     review.Rating,
		ReviewText: review.ReviewText,
		IsPublic:   review.IsPublic,
		CreatedAt:  review.CreatedAt,
	}
	if len(review.Aspects) > 0 {
		var aspects map[string]int
		if err := json.Unmarshal(review.Aspects, &aspects); err == nil {
			resp.Aspects = aspects
		}
	}
	return resp
}
