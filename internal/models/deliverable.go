package models

import "time"

// Deliverable is a piece of work (a rendered shot, a comp, a breakdown reel)
// uploaded by the vendor against an active contract.
type Deliverable struct {
	BaseModel
	JobID      string `gorm:"not null;index" json:"job_id"`
	ContractID string `gorm:"not null;index" json:"contract_id"`
	UploaderID string `gorm:"not null" json:"uploader_id"`

	Label       string `gorm:"not null" json:"label"`
	Description string `json:"description"`
	FileURL     string `gorm:"not null" json:"file_url"`
	FileType    string `gorm:"type:varchar(20)" json:"file_type"`
	FileFormat  string `gorm:"type:varchar(20)" json:"file_format"`

	// Shot-level addressing, e.g. "SEQ010_SH0040", frames "1001-1120".
	ShotCode   *string `json:"shot_code,omitempty"`
	FrameRange *string `json:"frame_range,omitempty"`

	Status      DeliverableStatus `gorm:"type:varchar(20);default:'submitted';index" json:"status"`
	ReviewNotes string            `json:"review_notes"`
	ReviewedBy  *string           `json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time        `json:"reviewed_at,omitempty"`
}
