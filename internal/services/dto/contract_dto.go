package dto

import (
	"time"

	"vfxworks_backend/internal/models"
)

type UpdateContractStatusRequest struct {
	Status string `json:"status" validate:"required,is-contract-status"`
}

type UpdateContractTermsRequest struct {
	Terms     *string    `json:"terms,omitempty" validate:"omitempty,max=20000"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

type CreateMilestoneRequest struct {
	Title        string     `json:"title" validate:"required,min=3,max=200"`
	Description  string     `json:"description" validate:"max=5000"`
	Amount       float64    `json:"amount" validate:"required,gt=0"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	Deliverables []string   `json:"deliverables,omitempty"`
}

type UpdateMilestoneStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_review approved paid"`
}

type MilestoneResponse struct {
	ID           string     `json:"id"`
	ContractID   string     `json:"contract_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Amount       float64    `json:"amount"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	Deliverables []string   `json:"deliverables,omitempty"`
	Status       string     `json:"status"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

type ContractResponse struct {
	ID       string `json:"id"`
	JobID    string `json:"job_id"`
	BidID    string `json:"bid_id"`
	ClientID string `json:"client_id"`
	VendorID string `json:"vendor_id"`

	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`

	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Terms     string     `json:"terms"`

	DeliverablesStatus string `json:"deliverables_status"`
	Status             string `json:"status"`

	Milestones []MilestoneResponse `json:"milestones,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ContractListResponse struct {
	Contracts []ContractResponse `json:"contracts"`
	Total     int                `json:"total"`
}

func NewMilestoneResponse(m *models.Milestone) *MilestoneResponse {
	return &MilestoneResponse{
		ID:           m.ID,
		ContractID:   m.ContractID,
		Title:        m.Title,
		Description:  m.Description,
		Amount:       m.Amount,
		DueDate:      m.DueDate,
		Deliverables: decodeStringList(m.Deliverables),
		Status:       string(m.Status),
		CompletedAt:  m.CompletedAt,
		CreatedAt:    m.CreatedAt,
	}
}

func NewContractResponse(contract *models.Contract) *ContractResponse {
	resp := &ContractResponse{
		ID:                 contract.ID,
		JobID:              contract.JobID,
		BidID:              contract.BidID,
		ClientID:           contract.ClientID,
		VendorID:           contract.VendorID,
		Amount:             contract.Amount,
		Currency:           contract.Currency,
		StartDate:          contract.StartDate,
		EndDate:            contract.EndDate,
		Terms:              contract.Terms,
		DeliverablesStatus: string(contract.DeliverablesStatus),
		Status:             string(contract.Status),
		CreatedAt:          contract.CreatedAt,
		UpdatedAt:          contract.UpdatedAt,
	}
	for i := range contract.Milestones {
		resp.Milestones = append(resp.Milestones, *NewMilestoneResponse(&contract.Milestones[i]))
	}
	return resp
}
