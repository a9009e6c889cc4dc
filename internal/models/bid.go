package models

import (
	"time"

	"gorm.io/datatypes"
)

// Bid is an offer submitted by an artist or studio against an open job.
// At most one bid exists per (job, bidder) pair, and at most one bid per job
// may ever reach accepted.
type Bid struct {
	BaseModel
	JobID      string   `gorm:"not null;index;uniqueIndex:idx_bids_job_bidder" json:"job_id"`
	BidderID   string   `gorm:"not null;index;uniqueIndex:idx_bids_job_bidder" json:"bidder_id"`
	BidderType UserRole `gorm:"type:varchar(20);not null" json:"bidder_type"`

	Amount    float64        `gorm:"not null" json:"amount"`
	Currency  string         `gorm:"type:varchar(3);default:'USD'" json:"currency"`
	Breakdown datatypes.JSON `gorm:"type:jsonb" json:"breakdown,omitempty"`

	EstimatedDays    *int           `json:"estimated_days,omitempty"`
	EarliestStart    *time.Time     `json:"earliest_start,omitempty"`
	Notes            string         `json:"notes"`
	IncludedServices datatypes.JSON `gorm:"type:jsonb" json:"included_services,omitempty"`

	Status BidStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`

	// Relations
	Job    *Job  `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Bidder *User `gorm:"foreignKey:BidderID" json:"bidder,omitempty"`
}
