package dto

import (
	"encoding/json"
	"time"

	"vfxworks_backend/internal/models"
)

type CreateJobRequest struct {
	Title       string  `json:"title" validate:"required,min=3,max=200"`
	Description string  `json:"description" validate:"max=10000"`
	MovieRef    *string `json:"movie_ref,omitempty"`

	JobType        string   `json:"job_type" validate:"required,is-job-type"`
	AssignmentMode string   `json:"assignment_mode" validate:"omitempty,oneof=direct open"`
	AssignedTo     []string `json:"assigned_to,omitempty"`

	PaymentType string   `json:"payment_type" validate:"omitempty,is-payment-type"`
	Currency    string   `json:"currency" validate:"omitempty,is-currency"`
	BudgetMin   *float64 `json:"budget_min,omitempty" validate:"omitempty,gt=0"`
	BudgetMax   *float64 `json:"budget_max,omitempty" validate:"omitempty,gt=0"`

	ShotCount     *int            `json:"shot_count,omitempty" validate:"omitempty,gt=0"`
	FrameCount    *int            `json:"frame_count,omitempty" validate:"omitempty,gt=0"`
	Resolution    *string         `json:"resolution,omitempty"`
	FrameRate     *float64        `json:"frame_rate,omitempty" validate:"omitempty,gt=0"`
	ShotBreakdown json.RawMessage `json:"shot_breakdown,omitempty"`

	RequiredSkills   []string `json:"required_skills,omitempty"`
	RequiredSoftware []string `json:"required_software,omitempty"`
	Deliverables     []string `json:"deliverables,omitempty"`

	BidDeadline   *time.Time `json:"bid_deadline,omitempty"`
	ExpectedStart *time.Time `json:"expected_start,omitempty"`
	FinalDelivery *time.Time `json:"final_delivery,omitempty"`

	// Poster is a data URI or a pre-hosted URL; the media resolver turns it
	// into a stable hosted URL.
	Poster string `json:"poster,omitempty"`
}

// UpdateJobRequest carries only the fields being changed.
type UpdateJobRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=10000"`
	MovieRef    *string `json:"movie_ref,omitempty"`

	// AssignmentMode may only change while the job is still a draft.
	AssignmentMode *string  `json:"assignment_mode,omitempty" validate:"omitempty,oneof=direct open"`
	AssignedTo     []string `json:"assigned_to,omitempty"`

	PaymentType *string  `json:"payment_type,omitempty" validate:"omitempty,is-payment-type"`
	Currency    *string  `json:"currency,omitempty" validate:"omitempty,is-currency"`
	BudgetMin   *float64 `json:"budget_min,omitempty" validate:"omitempty,gt=0"`
	BudgetMax   *float64 `json:"budget_max,omitempty" validate:"omitempty,gt=0"`

	ShotCount     *int            `json:"shot_count,omitempty" validate:"omitempty,gt=0"`
	FrameCount    *int            `json:"frame_count,omitempty" validate:"omitempty,gt=0"`
	Resolution    *string         `json:"resolution,omitempty"`
	FrameRate     *float64        `json:"frame_rate,omitempty" validate:"omitempty,gt=0"`
	ShotBreakdown json.RawMessage `json:"shot_breakdown,omitempty"`

	RequiredSkills   []string `json:"required_skills,omitempty"`
	RequiredSoftware []string `json:"required_software,omitempty"`
	Deliverables     []string `json:"deliverables,omitempty"`

	BidDeadline   *time.Time `json:"bid_deadline,omitempty"`
	ExpectedStart *time.Time `json:"expected_start,omitempty"`
	FinalDelivery *time.Time `json:"final_delivery,omitempty"`

	Poster *string `json:"poster,omitempty"`
}

type UpdateJobStatusRequest struct {
	Status string `json:"status" validate:"required,is-job-status"`

	// BidDeadline may be supplied together with publish for freelance
	// open-bid jobs that do not carry one yet.
	BidDeadline *time.Time `json:"bid_deadline,omitempty"`
}

type ListJobsQuery struct {
	Status      string `form:"status" validate:"omitempty,is-job-status"`
	JobType     string `form:"job_type" validate:"omitempty,is-job-type"`
	PaymentType string `form:"payment_type" validate:"omitempty,is-payment-type"`
	Mine        bool   `form:"mine"`
	Search      string `form:"search" validate:"omitempty,max=200"`
	Page        int    `form:"page" validate:"omitempty,gte=1"`
	PageSize    int    `form:"page_size" validate:"omitempty,gte=1,lte=100"`
}

type JobResponse struct {
	ID          string  `json:"id"`
	CreatedBy   string  `json:"created_by"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	MovieRef    *string `json:"movie_ref,omitempty"`

	JobType        string   `json:"job_type"`
	AssignmentMode string   `json:"assignment_mode"`
	AssignedTo     []string `json:"assigned_to,omitempty"`

	PaymentType string   `json:"payment_type"`
	Currency    string   `json:"currency"`
	BudgetMin   *float64 `json:"budget_min,omitempty"`
	BudgetMax   *float64 `json:"budget_max,omitempty"`

	ShotCount     *int            `json:"shot_count,omitempty"`
	FrameCount    *int            `json:"frame_count,omitempty"`
	Resolution    *string         `json:"resolution,omitempty"`
	FrameRate     *float64        `json:"frame_rate,omitempty"`
	ShotBreakdown json.RawMessage `json:"shot_breakdown,omitempty"`

	RequiredSkills   []string `json:"required_skills,omitempty"`
	RequiredSoftware []string `json:"required_software,omitempty"`
	Deliverables     []string `json:"deliverables,omitempty"`

	BidDeadline   *time.Time `json:"bid_deadline,omitempty"`
	ExpectedStart *time.Time `json:"expected_start,omitempty"`
	FinalDelivery *time.Time `json:"final_delivery,omitempty"`

	PosterURL *string   `json:"poster_url,omitempty"`
	Status    string    `json:"status"`
	Views     int       `json:"views"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type JobListResponse struct {
	Jobs     []JobResponse `json:"jobs"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

func NewJobResponse(job *models.Job) *JobResponse {
	resp := &JobResponse{
		ID:               job.ID,
		CreatedBy:        job.CreatedBy,
		Title:            job.Title,
		Description:      job.Description,
		MovieRef:         job.MovieRef,
		JobType:          string(job.JobType),
		AssignmentMode:   string(job.AssignmentMode),
		AssignedTo:       decodeStringList(job.AssignedTo),
		PaymentType:      string(job.PaymentType),
		Currency:         job.Currency,
		BudgetMin:        job.BudgetMin,
		BudgetMax:        job.BudgetMax,
		ShotCount:        job.ShotCount,
		FrameCount:       job.FrameCount,
		Resolution:       job.Resolution,
		FrameRate:        job.FrameRate,
		RequiredSkills:   decodeStringList(job.RequiredSkills),
		RequiredSoftware: decodeStringList(job.RequiredSoftware),
		Deliverables:     decodeStringList(job.Deliverables),
		BidDeadline:      job.BidDeadline,
		ExpectedStart:    job.ExpectedStart,
		FinalDelivery:    job.FinalDelivery,
		PosterURL:        job.PosterURL,
		Status:           string(job.Status),
		Views:            job.Views,
		CreatedAt:        job.CreatedAt,
		UpdatedAt:        job.UpdatedAt,
	}
	if len(job.ShotBreakdown) > 0 {
		resp.ShotBreakdown = json.RawMessage(job.ShotBreakdown)
	}
	return resp
}

func decodeStringList(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil
	}
	return list
}
