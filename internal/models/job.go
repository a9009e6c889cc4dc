package models

import (
	"time"

	"gorm.io/datatypes"
)

// Job is a unit of VFX work posted by a studio or admin.
type Job struct {
	BaseModel
	CreatedBy   string  `gorm:"not null;index" json:"created_by"`
	Title       string  `gorm:"not null" json:"title"`
	Description string  `json:"description"`
	MovieRef    *string `json:"movie_ref,omitempty"`

	JobType        JobType        `gorm:"type:varchar(20);not null" json:"job_type"`
	AssignmentMode AssignmentMode `gorm:"type:varchar(10);default:'open'" json:"assignment_mode"`
	AssignedTo     datatypes.JSON `gorm:"type:jsonb" json:"assigned_to,omitempty"` // user IDs

	PaymentType PaymentType `gorm:"type:varchar(10);default:'fixed'" json:"payment_type"`
	Currency    string      `gorm:"type:varchar(3);default:'USD'" json:"currency"`
	BudgetMin   *float64    `json:"budget_min,omitempty"`
	BudgetMax   *float64    `json:"budget_max,omitempty"`

	// VFX metadata
	ShotCount     *int           `json:"shot_count,omitempty"`
	FrameCount    *int           `json:"frame_count,omitempty"`
	Resolution    *string        `json:"resolution,omitempty"`
	FrameRate     *float64       `json:"frame_rate,omitempty"`
	ShotBreakdown datatypes.JSON `gorm:"type:jsonb" json:"shot_breakdown,omitempty"`

	RequiredSkills   datatypes.JSON `gorm:"type:jsonb" json:"required_skills,omitempty"`
	RequiredSoftware datatypes.JSON `gorm:"type:jsonb" json:"required_software,omitempty"`
	Deliverables     datatypes.JSON `gorm:"type:jsonb" json:"deliverables,omitempty"`

	BidDeadline   *time.Time `json:"bid_deadline,omitempty"`
	ExpectedStart *time.Time `json:"expected_start,omitempty"`
	FinalDelivery *time.Time `json:"final_delivery,omitempty"`

	PosterURL *string   `json:"poster_url,omitempty"`
	Status    JobStatus `gorm:"type:varchar(20);default:'draft';index" json:"status"`
	Views     int       `gorm:"default:0" json:"views"`

	// Relations
	Bids []Bid `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"bids,omitempty"`
}
