package dto

import (
	"time"

	"vfxworks_backend/internal/models"
)

type CreateDeliverableRequest struct {
	ContractID  string `json:"contract_id" validate:"required,uuid"`
	Label       string `json:"label" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=5000"`

	// File is a data URI or a pre-hosted URL.
	File       string `json:"file" validate:"required"`
	FileType   string `json:"file_type" validate:"omitempty,max=20"`
	FileFormat string `json:"file_format" validate:"omitempty,max=20"`

	ShotCode   *string `json:"shot_code,omitempty" validate:"omitempty,max=40"`
	FrameRange *string `json:"frame_range,omitempty" validate:"omitempty,is-frame-range"`
}

type UpdateDeliverableRequest struct {
	Label       *string `json:"label,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`

	// File replaces the current payload; the old managed file is released.
	File       *string `json:"file,omitempty"`
	FileType   *string `json:"file_type,omitempty" validate:"omitempty,max=20"`
	FileFormat *string `json:"file_format,omitempty" validate:"omitempty,max=20"`

	ShotCode   *string `json:"shot_code,omitempty" validate:"omitempty,max=40"`
	FrameRange *string `json:"frame_range,omitempty" validate:"omitempty,is-frame-range"`
}

type ReviewDeliverableRequest struct {
	Status string `json:"status" validate:"required,oneof=approved changes_requested submitted"`
	Notes  string `json:"notes" validate:"max=5000"`
}

type DeliverableResponse struct {
	ID         string `json:"id"`
	JobID      string `json:"job_id"`
	ContractID string `json:"contract_id"`
	UploaderID string `json:"uploader_id"`

	Label       string `json:"label"`
	Description string `json:"description"`
	FileURL     string `json:"file_url"`
	FileType    string `json:"file_type"`
	FileFormat  string `json:"file_format"`

	ShotCode   *string `json:"shot_code,omitempty"`
	FrameRange *string `json:"frame_range,omitempty"`

	Status      string     `json:"status"`
	ReviewNotes string     `json:"review_notes"`
	ReviewedBy  *string    `json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

type DeliverableListResponse struct {
	Deliverables []DeliverableResponse `json:"deliverables"`
	Total        int                   `json:"total"`
}

func NewDeliverableResponse(d *models.Deliverable) *DeliverableResponse {
	return &DeliverableResponse{
		ID:          d.ID,
		JobID:       d.JobID,
		ContractID:  d.ContractID,
		UploaderID:  d.UploaderID,
		Label:       d.Label,
		Description: d.Description,
		FileURL:     d.FileURL,
		FileType:    d.FileType,
		FileFormat:  d.FileFormat,
		ShotCode:    d.ShotCode,
		FrameRange:  d.FrameRange,
		Status:      string(d.Status),
		ReviewNotes: d.ReviewNotes,
		ReviewedBy:  d.ReviewedBy,
		ReviewedAt:  d.ReviewedAt,
		CreatedAt:   d.CreatedAt,
	}
}
