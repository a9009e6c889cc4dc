package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"vfxworks_backend/internal/lifecycle"
	"vfxworks_backend/internal/logger"
	"vfxworks_backend/internal/models"
	"vfxworks_backend/internal/repositories"
	"vfxworks_backend/internal/services/dto"
	"vfxworks_backend/pkg/apperrors"
)

type ContractService interface {
	GetContract(db *gorm.DB, contractID, requesterID string, role models.UserRole) (*dto.ContractResponse, error)
	GetContractByJob(db *gorm.DB, jobID, requesterID string, role models.UserRole) (*dto.ContractResponse, error)
	ListMyContracts(db *gorm.DB, requesterID string) (*dto.ContractListResponse, error)
	UpdateContractStatus(db *gorm.DB, contractID, requesterID string, role models.UserRole, req *dto.UpdateContractStatusRequest) (*dto.ContractResponse, error)
	UpdateContractTerms(db *gorm.DB, contractID, requesterID string, role models.UserRole, req *dto.UpdateContractTermsRequest) (*dto.ContractResponse, error)

	CreateMilestone(db *gorm.DB, contractID, requesterID string, role models.UserRole, req *dto.CreateMilestoneRequest) (*dto.MilestoneResponse, error)
	UpdateMilestoneStatus(db *gorm.DB, milestoneID, requesterID string, role models.UserRole, req *dto.UpdateMilestoneStatusRequest) (*dto.MilestoneResponse, error)
	DeleteMilestone(db *gorm.DB, milestoneID, requesterID string, role models.UserRole) error
}

type contractService struct {
	contractRepo     repositories.ContractRepository
	jobRepo          repositories.JobRepository
	notificationRepo repositories.NotificationRepository
}

func NewContractService(
	contractRepo repositories.ContractRepository,
	jobRepo repositories.JobRepository,
	notificationRepo repositories.NotificationRepository,
) ContractService {
	return &contractService{
		contractRepo:     contractRepo,
		jobRepo:          jobRepo,
		notificationRepo: notificationRepo,
	}
}

func (s *contractService) GetContract(db *gorm.DB, contractID, requesterID string, role models.UserRole) (*dto.ContractResponse, error) {
	contract, err := s.authorizedContract(db, contractID, requesterID, role)
	if err != nil {
		return nil, err
	}
	return dto.NewContractResponse(contract), nil
}

func (s *contractService) GetContractByJob(db *gorm.DB, jobID, requesterID string, role models.UserRole) (*dto.ContractResponse, error) {
	contract, err := s.contractRepo.FindContractByJob(db, jobID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err, "contract")
	}
	if !contractParty(contract, requesterID) && role != models.UserRoleAdmin {
		return nil, apperrors.ErrInsufficientPermissions
	}
	return dto.NewContractResponse(contract), nil
}

func (s *contractService) ListMyContracts(db *gorm.DB, requesterID string) (*dto.ContractListResponse, error) {
	contracts, err := s.contractRepo.FindContractsByParty(db, requesterID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.ContractListResponse{
		Contracts: make([]dto.ContractResponse, 0, len(contracts)),
		Total:     len(contracts),
	}
	for i := range contracts {
		resp.Contracts = append(resp.Contracts, *dto.NewContractResponse(&contracts[i]))
	}
	return resp, nil
}

func (s *contractService) UpdateContractStatus(db *gorm.DB, contractID, requesterID string, role models.UserRole, req *dto.UpdateContractStatusRequest) (*dto.ContractResponse, error) {
	contract, err := s.authorizedContract(db, contractID, requesterID, role)
	if err != nil {
		return nil, err
	}

	if lifecycle.Terminal(lifecycle.ContractTransitions, string(contract.Status)) {
		return nil, apperrors.ErrContractClosed
	}

	target := models.ContractStatus(req.Status)
	if err := lifecycle.Transition(lifecycle.ContractTransitions, "contract", string(contract.Status), string(target)); err != nil {
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.contractRepo.UpdateContractStatus(tx, contract.ID, target); err != nil {
			return err
		}
		if target == models.ContractStatusCompleted {
			return s.completeJob(tx, contract.JobID)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	contract.Status = target

	if target == models.ContractStatusCompleted {
		s.notifyParties(db, contract, "contract_completed", "Contract completed",
			"The contract has been marked completed")
	}

	return dto.NewContractResponse(contract), nil
}

func (s *contractService) UpdateContractTerms(db *gorm.DB, contractID, requesterID string, role models.UserRole, req *dto.UpdateContractTermsRequest) (*dto.ContractResponse, error) {
	contract, err := s.authorizedContract(db, contractID, requesterID, role)
	if err != nil {
		return nil, err
	}
	if contract.ClientID != requesterID && role != models.UserRoleAdmin {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if contract.Status != models.ContractStatusActive {
		return nil, apperrors.ErrContractNotActive
	}

	updates := map[string]interface{}{}
	if req.Terms != nil {
		updates["terms"] = *req.Terms
		contract.Terms = *req.Terms
	}
	if req.StartDate != nil {
		updates["start_date"] = req.StartDate
		contract.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		updates["end_date"] = req.EndDate
		contract.EndDate = req.EndDate
	}
	if len(updates) > 0 {
		if err := db.Model(&models.Contract{}).Where("id = ?", contract.ID).Updates(updates).Error; err != nil {
			return nil, apperrors.InternalError(err)
		}
	}
	return dto.NewContractResponse(contract), nil
}

func (s *contractService) CreateMilestone(db *gorm.DB, contractID, requesterID string, role models.UserRole, req *dto.CreateMilestoneRequest) (*dto.MilestoneResponse, error) {
	contract, err := s.authorizedContract(db, contractID, requesterID, role)
	if err != nil {
		return nil, err
	}
	if contract.ClientID != requesterID && role != models.UserRoleAdmin {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if contract.Status != models.ContractStatusActive {
		return nil, apperrors.ErrContractNotActive
	}

	milestone := &models.Milestone{
		ContractID:   contract.ID,
		Title:        req.Title,
		Description:  req.Description,
		Amount:       req.Amount,
		DueDate:      req.DueDate,
		Deliverables: encodeStringList(req.Deliverables),
		Status:       models.MilestoneStatusPending,
	}
	if err := s.contractRepo.CreateMilestone(db, milestone); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewMilestoneResponse(milestone), nil
}

func (s *contractService) UpdateMilestoneStatus(db *gorm.DB, milestoneID, requesterID string, role models.UserRole, req *dto.UpdateMilestoneStatusRequest) (*dto.MilestoneResponse, error) {
	milestone, err := s.contractRepo.FindMilestoneByID(db, milestoneID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err, "milestone")
	}
	contract, err := s.authorizedContract(db, milestone.ContractID, requesterID, role)
	if err != nil {
		return nil, err
	}

	target := models.MilestoneStatus(req.Status)
	if err := lifecycle.Transition(lifecycle.MilestoneTransitions, "milestone", string(milestone.Status), string(target)); err != nil {
		return nil, err
	}

	// The vendor submits work for review; approval and payment are the
	// client's calls.
	switch target {
	case models.MilestoneStatusInReview:
		if contract.VendorID != requesterID && role != models.UserRoleAdmin {
			return nil, apperrors.ErrInsufficientPermissions
		}
	case models.MilestoneStatusApproved, models.MilestoneStatusPaid:
		if contract.ClientID != requesterID && role != models.UserRoleAdmin {
			return nil, apperrors.ErrInsufficientPermissions
		}
	}

	milestone.Status = target
	if target == models.MilestoneStatusApproved {
		now := time.Now()
		milestone.CompletedAt = &now
	}

	if err := s.contractRepo.UpdateMilestone(db, milestone); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewMilestoneResponse(milestone), nil
}

func (s *contractService) DeleteMilestone(db *gorm.DB, milestoneID, requesterID string, role models.UserRole) error {
	milestone, err := s.contractRepo.FindMilestoneByID(db, milestoneID)
	if err != nil {
		return apperrors.ErrNotFound(err, "milestone")
	}
	contract, err := s.authorizedContract(db, milestone.ContractID, requesterID, role)
	if err != nil {
		return err
	}
	if contract.ClientID != requesterID && role != models.UserRoleAdmin {
		return apperrors.ErrInsufficientPermissions
	}
	if contract.Status != models.ContractStatusActive {
		return apperrors.ErrContractNotActive
	}
	if milestone.Status != models.MilestoneStatusPending {
		return apperrors.ErrMilestoneNotPending
	}

	if err := s.contractRepo.DeleteMilestone(db, milestone.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// completeJob walks the job to completed along the legal path: a job still in
// awarded passes through in_progress first.
func (s *contractService) completeJob(db *gorm.DB, jobID string) error {
	job, err := s.jobRepo.FindJobByID(db, jobID)
	if err != nil {
		return err
	}
	if job.Status == models.JobStatusAwarded {
		if err := s.jobRepo.UpdateJobStatus(db, jobID, models.JobStatusInProgress); err != nil {
			return err
		}
		job.Status = models.JobStatusInProgress
	}
	if job.Status == models.JobStatusInProgress {
		return s.jobRepo.UpdateJobStatus(db, jobID, models.JobStatusCompleted)
	}
	return nil
}

func (s *contractService) authorizedContract(db *gorm.DB, contractID, requesterID string, role models.UserRole) (*models.Contract, error) {
	contract, err := s.contractRepo.FindContractByID(db, contractID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err, "contract")
	}
	if !contractParty(contract, requesterID) && role != models.UserRoleAdmin {
		return nil, apperrors.ErrInsufficientPermissions
	}
	return contract, nil
}

func (s *contractService) notifyParties(db *gorm.DB, contract *models.Contract, kind, title, message string) {
	for _, userID := range []string{contract.ClientID, contract.VendorID} {
		notification := &models.Notification{
			UserID:     userID,
			Type:       kind,
			Title:      title,
			Message:    fmt.Sprintf("%s (contract %s)", message, contract.ID),
			EntityType: strPtr("contract"),
			EntityID:   &contract.ID,
		}
		if err := s.notificationRepo.CreateNotification(db, notification); err != nil {
			logger.Warn("failed to create notification", "user_id", notification.UserID, "error", err)
		}
	}
}

func contractParty(contract *models.Contract, userID string) bool {
	return contract.ClientID == userID || contract.VendorID == userID
}
