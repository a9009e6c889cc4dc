package models

import "gorm.io/datatypes"

// Review is the client's one-shot feedback on a completed contract. The
// unique index on ContractID is the last line of defense against duplicates;
// the service layer checks first so callers get a clean error.
type Review struct {
	BaseModel
	ContractID string `gorm:"not null;uniqueIndex" json:"contract_id"`
	JobID      string `gorm:"not null;index" json:"job_id"`
	ReviewerID string `gorm:"not null" json:"reviewer_id"`
	TargetID   string `gorm:"not null;index" json:"target_id"`

	Rating     int            `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	ReviewText string         `json:"review_text"`
	Aspects    datatypes.JSON `gorm:"type:jsonb" json:"aspects,omitempty"`
	IsPublic   bool           `gorm:"default:true" json:"is_public"`
}
