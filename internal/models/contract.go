package models

import (
	"time"

	"gorm.io/datatypes"
)

// Contract binds a client and a vendor after a bid is accepted. A job carries
// at most one contract, enforced with a unique index on JobID.
type Contract struct {
	BaseModel
	JobID    string `gorm:"not null;uniqueIndex" json:"job_id"`
	BidID    string `gorm:"not null" json:"bid_id"`
	ClientID string `gorm:"not null;index" json:"client_id"`
	VendorID string `gorm:"not null;index" json:"vendor_id"`

	Amount   float64 `gorm:"not null" json:"amount"`
	Currency string  `gorm:"type:varchar(3);default:'USD'" json:"currency"`

	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Terms     string     `json:"terms"`

	DeliverablesStatus DeliverablesState `gorm:"type:varchar(20);default:'pending'" json:"deliverables_status"`
	Status             ContractStatus    `gorm:"type:varchar(20);default:'active';index" json:"status"`

	// Relations
	Job        *Job        `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Milestones []Milestone `gorm:"foreignKey:ContractID;constraint:OnDelete:CASCADE" json:"milestones,omitempty"`
}

// Milestone is a payment checkpoint within a contract. CompletedAt is stamped
// when the milestone reaches approved.
type Milestone struct {
	BaseModel
	ContractID  string `gorm:"not null;index" json:"contract_id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`

	DueDate      *time.Time     `json:"due_date,omitempty"`
	Amount       float64        `gorm:"not null" json:"amount"`
	Deliverables datatypes.JSON `gorm:"type:jsonb" json:"deliverables,omitempty"`

	Status      MilestoneStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}
