package dto

import (
	"encoding/json"
	"time"

	"vfxworks_backend/internal/models"
)

type CreateBidRequest struct {
	JobID            string             `json:"job_id" validate:"required,uuid"`
	Amount           float64            `json:"amount" validate:"required,gt=0"`
	Currency         string             `json:"currency" validate:"omitempty,is-currency"`
	Breakdown        map[string]float64 `json:"breakdown,omitempty"`
	EstimatedDays    *int               `json:"estimated_days,omitempty" validate:"omitempty,gt=0"`
	EarliestStart    *time.Time         `json:"earliest_start,omitempty"`
	Notes            string             `json:"notes" validate:"max=5000"`
	IncludedServices []string           `json:"included_services,omitempty"`
}

type UpdateBidRequest struct {
	Amount           *float64           `json:"amount,omitempty" validate:"omitempty,gt=0"`
	Currency         *string            `json:"currency,omitempty" validate:"omitempty,is-currency"`
	Breakdown        map[string]float64 `json:"breakdown,omitempty"`
	EstimatedDays    *int               `json:"estimated_days,omitempty" validate:"omitempty,gt=0"`
	EarliestStart    *time.Time         `json:"earliest_start,omitempty"`
	Notes            *string            `json:"notes,omitempty" validate:"omitempty,max=5000"`
	IncludedServices []string           `json:"included_services,omitempty"`
}

type UpdateBidStatusRequest struct {
	Status string `json:"status" validate:"required,is-bid-status"`
}

type BidResponse struct {
	ID         string `json:"id"`
	JobID      string `json:"job_id"`
	BidderID   string `json:"bidder_id"`
	BidderType string `json:"bidder_type"`

	Amount    float64            `json:"amount"`
	Currency  string             `json:"currency"`
	Breakdown map[string]float64 `json:"breakdown,omitempty"`

	EstimatedDays    *int       `json:"estimated_days,omitempty"`
	EarliestStart    *time.Time `json:"earliest_start,omitempty"`
	Notes            string     `json:"notes"`
	IncludedServices []string   `json:"included_services,omitempty"`

	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BidListResponse struct {
	Bids  []BidResponse `json:"bids"`
	Total int           `json:"total"`
}

func NewBidResponse(bid *models.Bid) *BidResponse {
	resp := &BidResponse{
		ID:               bid.ID,
		JobID:            bid.JobID,
		BidderID:         bid.BidderID,
		BidderType:       string(bid.BidderType),
		Amount:           bid.Amount,
		Currency:         bid.Currency,
		EstimatedDays:    bid.EstimatedDays,
		EarliestStart:    bid.EarliestStart,
		Notes:            bid.Notes,
		IncludedServices: decodeStringList(bid.IncludedServices),
		Status:           string(bid.Status),
		CreatedAt:        bid.CreatedAt,
		UpdatedAt:        bid.UpdatedAt,
	}
	if len(bid.Breakdown) > 0 {
		var breakdown map[string]float64
		if err := json.Unmarshal(bid.Breakdown, &breakdown); err == nil {
			resp.Breakdown = breakdown
		}
	}
	return resp
}
