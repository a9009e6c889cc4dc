package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"vfxworks_backend/internal/lifecycle"
	"vfxworks_backend/internal/logger"
	"vfxworks_backend/internal/media"
	"vfxworks_backend/internal/models"
	"vfxworks_backend/internal/repositories"
	"vfxworks_backend/internal/services/dto"
	"vfxworks_backend/pkg/apperrors"
)

type DeliverableService interface {
	CreateDeliverable(db *gorm.DB, requesterID string, role models.UserRole, req *dto.CreateDeliverableRequest) (*dto.DeliverableResponse, error)
	ListContractDeliverables(db *gorm.DB, contractID, requesterID string, role models.UserRole) (*dto.DeliverableListResponse, error)
	UpdateDeliverable(db *gorm.DB, deliverableID, requesterID string, role models.UserRole, req *dto.UpdateDeliverableRequest) (*dto.DeliverableResponse, error)
	ReviewDeliverable(db *gorm.DB, deliverableID, requesterID string, role models.UserRole, req *dto.ReviewDeliverableRequest) (*dto.DeliverableResponse, error)
	DeleteDeliverable(db *gorm.DB, deliverableID, requesterID string, role models.UserRole) error
}

type deliverableService struct {
	deliverableRepo  repositories.DeliverableRepository
	contractRepo     repositories.ContractRepository
	notificationRepo repositories.NotificationRepository
	resolver         *media.Resolver
}

func NewDeliverableService(
	deliverableRepo repositories.DeliverableRepository,
	contractRepo repositories.ContractRepository,
	notificationRepo repositories.NotificationRepository,
	resolver *media.Resolver,
) DeliverableService {
	return &deliverableService{
		deliverableRepo:  deliverableRepo,
		contractRepo:     contractRepo,
		notificationRepo: notificationRepo,
		resolver:         resolver,
	}
}

func (s *deliverableService) CreateDeliverable(db *gorm.DB, requesterID string, role models.UserRole, req *dto.CreateDeliverableRequest) (*dto.DeliverableResponse, error) {
	contract, err := s.contractRepo.FindContractByID(db, req.ContractID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err, "contract")
	}
	if contract.VendorID != requesterID && role != models.UserRoleAdmin {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if contract.Status != models.ContractStatusActive {
		return nil, apperrors.ErrContractNotActive
	}

	fileURL, err := s.resolver.Ingest(context.Background(), req.File, "deliverables")
	if err != nil {
		return nil, err
	}

	deliverable := &models.Deliverable{
		JobID:       contract.JobID,
		ContractID:  contract.ID,
		UploaderID:  requesterID,
		Label:       req.Label,
		Description: req.Description,
		FileURL:     fileURL,
		FileType:    req.FileType,
		FileFormat:  req.FileFormat,
		ShotCode:    req.ShotCode,
		FrameRange:  req.FrameRange,
		Status:      models.DeliverableStatusSubmitted,
	}
	if err := s.deliverableRepo.CreateDeliverable(db, deliverable); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notify(db, contract.ClientID, "deliverable_submitted", "Deliverable submitted",
		"A new deliverable is waiting for review", deliverable.ID)

	return dto.NewDeliverableResponse(deliverable), nil
}

func (s *deliverableService) ListContractDeliverables(db *gorm.DB, contractID, requesterID string, role models.UserRole) (*dto.DeliverableListResponse, error) {
	contract, err := s.contractRepo.FindContractByID(db, contractID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err, "contract")
	}
	if !contractParty(contract, requesterID) && role != models.UserRoleAdmin {
		return nil, apperrors.ErrInsufficientPermissions
	}

	deliverables, err := s.deliverableRepo.FindDeliverablesByContract(db, contractID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.DeliverableListResponse{
		Deliverables: make([]dto.DeliverableResponse, 0, len(deliverables)),
		Total:        len(deliverables),
	}
	for i := range deliverables {
		resp.Deliverables = append(resp.Deliverables, *dto.NewDeliverableResponse(&deliverables[i]))
	}
	return resp, nil
}

func (s *deliverableService) ReviewDeliverable(db *gorm.DB, deliverableID, requesterID string, role models.UserRole, req *dto.ReviewDeliverableRequest) (*dto.DeliverableResponse, error) {
	deliverable, err := s.deliverableRepo.FindDeliverableByID(db, deliverableID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err, "deliverable")
	}
	contract, err := s.contractRepo.FindContractByID(db, deliverable.ContractID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err, "contract")
	}
	if contract.ClientID != requesterID && role != models.UserRoleAdmin {
		return nil, apperrors.ErrInsufficientPermissions
	}

	target := models.DeliverableStatus(req.Status)
	if err := lifecycle.Transition(lifecycle.DeliverableTransitions, "deliverable", string(deliverable.Status), string(target)); err != nil {
		return nil, err
	}

	now := time.Now()
	deliverable.Status = target
	deliverable.ReviewNotes = req.Notes
	deliverable.ReviewedBy = &requesterID
	deliverable.ReviewedAt = &now

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.deliverableRepo.UpdateDeliverable(tx, deliverable); err != nil {
			return err
		}
		return s.recomputeDeliverablesState(tx, contract)
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notify(db, deliverable.UploaderID, "deliverable_reviewed", "Deliverable reviewed",
		"Your deliverable was reviewed: "+string(target), deliverable.ID)

	return dto.NewDeliverableResponse(deliverable), nil
}

// UpdateDeliverable lets the uploader revise a submission before it is
// approved. Replacing the file re-submits work that had changes requested.
func (s *deliverableService) UpdateDeliverable(db *gorm.DB, deliverableID, requesterID string, role models.UserRole, req *dto.UpdateDeliverableRequest) (*dto.DeliverableResponse, error) {
	deliverable, err := s.deliverableRepo.FindDeliverableByID(db, deliverableID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err, "deliverable")
	}
	if deliverable.UploaderID != requesterID && role != models.UserRoleAdmin {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if deliverable.Status == models.DeliverableStatusApproved {
		return nil, apperrors.ErrImmutableState("deliverable", "an approved deliverable can no longer be edited")
	}

	if req.Label != nil {
		deliverable.Label = *req.Label
	}
	if req.Description != nil {
		deliverable.Description = *req.Description
	}
	if req.FileType != nil {
		deliverable.FileType = *req.FileType
	}
	if req.FileFormat != nil {
		deliverable.FileFormat = *req.FileFormat
	}
	if req.ShotCode != nil {
		deliverable.ShotCode = req.ShotCode
	}
	if req.FrameRange != nil {
		deliverable.FrameRange = req.FrameRange
	}

	oldFileURL := ""
	if req.File != nil {
		fileURL, err := s.resolver.Ingest(context.Background(), *req.File, "deliverables")
		if err != nil {
			return nil, err
		}
		oldFileURL = deliverable.FileURL
		deliverable.FileURL = fileURL

		// A fresh upload puts work with changes requested back in the
		// review queue.
		if deliverable.Status == models.DeliverableStatusChangesRequested {
			deliverable.Status = models.DeliverableStatusSubmitted
			deliverable.ReviewNotes = ""
			deliverable.ReviewedBy = nil
			deliverable.ReviewedAt = nil
		}
	}

	if err := s.deliverableRepo.UpdateDeliverable(db, deliverable); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if oldFileURL != "" {
		if err := s.resolver.Release(context.Background(), oldFileURL); err != nil {
			logger.Warn("failed to release replaced deliverable file", "deliverable_id", deliverableID, "error", err)
		}
	}

	return dto.NewDeliverableResponse(deliverable), nil
}

func (s *deliverableService) DeleteDeliverable(db *gorm.DB, deliverableID, requesterID string, role models.UserRole) error {
	deliverable, err := s.deliverableRepo.FindDeliverableByID(db, deliverableID)
	if err != nil {
		return apperrors.ErrNotFound(err, "deliverable")
	}
	if deliverable.UploaderID != requesterID && role != models.UserRoleAdmin {
		return apperrors.ErrInsufficientPermissions
	}
	if deliverable.Status == models.DeliverableStatusApproved {
		return apperrors.ErrImmutableState("deliverable", "an approved deliverable can no longer be deleted")
	}

	if err := s.deliverableRepo.DeleteDeliverable(db, deliverableID); err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.resolver.Release(context.Background(), deliverable.FileURL); err != nil {
		logger.Warn("failed to release deliverable file", "deliverable_id", deliverableID, "error", err)
	}
	return nil
}

// recomputeDeliverablesState rolls the per-deliverable verdicts up to the
// contract: every one approved -> approved, any changes requested ->
// changes_requested, otherwise leave the contract state untouched.
func (s *deliverableService) recomputeDeliverablesState(db *gorm.DB, contract *models.Contract) error {
	total, err := s.deliverableRepo.CountByContract(db, contract.ID)
	if err != nil {
		return err
	}
	if total == 0 {
		return nil
	}

	approved, err := s.deliverableRepo.CountByContractAndStatus(db, contract.ID, models.DeliverableStatusApproved)
	if err != nil {
		return err
	}
	changesRequested, err := s.deliverableRepo.CountByContractAndStatus(db, contract.ID, models.DeliverableStatusChangesRequested)
	if err != nil {
		return err
	}

	var state models.DeliverablesState
	switch {
	case approved == total:
		state = models.DeliverablesStateApproved
	case changesRequested > 0:
		state = models.DeliverablesStateChangesRequested
	default:
		return nil
	}

	if state == contract.DeliverablesStatus {
		return nil
	}
	contract.DeliverablesStatus = state
	return s.contractRepo.UpdateDeliverablesStatus(db, contract.ID, state)
}

func (s *deliverableService) notify(db *gorm.DB, userID, kind, title, message, deliverableID string) {
	notification := &models.Notification{
		UserID:     userID,
		Type:       kind,
		Title:      title,
		Message:    message,
		EntityType: strPtr("deliverable"),
		EntityID:   &deliverableID,
	}
	if err := s.notificationRepo.CreateNotification(db, notification); err != nil {
		logger.Warn("failed to create notification", "user_id", userID, "error", err)
	}
}
