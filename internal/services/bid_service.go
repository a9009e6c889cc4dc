package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"vfxworks_backend/internal/lifecycle"
	"vfxworks_backend/internal/logger"
	"vfxworks_backend/internal/models"
	"vfxworks_backend/internal/repositories"
	"vfxworks_backend/internal/services/dto"
	"vfxworks_backend/pkg/apperrors"
)

type BidService interface {
	SubmitBid(db *gorm.DB, requesterID string, role models.UserRole, req *dto.CreateBidRequest) (*dto.BidResponse, error)
	GetBid(db *gorm.DB, bidID, requesterID string, role models.UserRole) (*dto.BidResponse, error)
	ListJobBids(db *gorm.DB, jobID, requesterID string, role models.UserRole) (*dto.BidListResponse, error)
	ListMyBids(db *gorm.DB, requesterID string) (*dto.BidListResponse, error)
	UpdateBid(db *gorm.DB, bidID, requesterID string, req *dto.UpdateBidRequest) (*dto.BidResponse, error)
	WithdrawBid(db *gorm.DB, bidID, requesterID string) error
	UpdateBidStatus(db *gorm.DB, bidID, requesterID string, role models.UserRole, req *dto.UpdateBidStatusRequest) (*dto.BidResponse, error)
}

type bidService struct {
	bidRepo          repositories.BidRepository
	jobRepo          repositories.JobRepository
	contractRepo     repositories.ContractRepository
	notificationRepo repositories.NotificationRepository
}

func NewBidService(
	bidRepo repositories.BidRepository,
	jobRepo repositories.JobRepository,
	contractRepo repositories.ContractRepository,
	notificationRepo repositories.NotificationRepository,
) BidService {
	return &bidService{
		bidRepo:          bidRepo,
		jobRepo:          jobRepo,
		contractRepo:     contractRepo,
		notificationRepo: notificationRepo,
	}
}

func (s *bidService) SubmitBid(db *gorm.DB, requesterID string, role models.UserRole, req *dto.CreateBidRequest) (*dto.BidResponse, error) {
	if role != models.UserRoleArtist && role != models.UserRoleStudio {
		return nil, apperrors.ErrInvalidUserRole
	}

	job, err := s.jobRepo.FindJobByID(db, req.JobID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err, "job")
	}
	if job.Status != models.JobStatusOpen || job.AssignmentMode != models.AssignmentModeOpen {
		return nil, apperrors.ErrJobNotOpen
	}
	if deadlinePassed(job.BidDeadline, time.Now()) {
		return nil, apperrors.ErrBidDeadlinePassed
	}
	if job.CreatedBy == requesterID {
		return nil, apperrors.ErrInvalidOperation("bid", "cannot bid on your own job")
	}

	if _, err := s.bidRepo.FindBidByJobAndBidder(db, req.JobID, requesterID); err == nil {
		return nil, apperrors.ErrDuplicateBid
	} else if !errors.Is(err, repositories.ErrBidNotFound) {
		return nil, apperrors.InternalError(err)
	}

	currency := req.Currency
	if currency == "" {
		currency = job.Currency
	}

	bid := &models.Bid{
		JobID:            req.JobID,
		BidderID:         requesterID,
		BidderType:       role,
		Amount:           req.Amount,
		Currency:         currency,
		Breakdown:        encodeBreakdown(req.Breakdown),
		EstimatedDays:    req.EstimatedDays,
		EarliestStart:    req.EarliestStart,
		Notes:            req.Notes,
		IncludedServices: encodeStringList(req.IncludedServices),
		Status:           models.BidStatusPending,
	}

	if err := s.bidRepo.CreateBid(db, bid); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notify(db, job.CreatedBy, "bid_received", "New bid received",
		fmt.Sprintf("A new bid arrived on %q", job.Title), "bid", bid.ID)

	return dto.NewBidResponse(bid), nil
}

func (s *bidService) GetBid(db *gorm.DB, bidID, requesterID string, role models.UserRole) (*dto.BidResponse, error) {
	bid, err := s.bidRepo.FindBidByID(db, bidID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err, "bid")
	}
	if err := s.authorizeBidAccess(db, bid, requesterID, role); err != nil {
		return nil, err
	}
	return dto.NewBidResponse(bid), nil
}

func (s *bidService) ListJobBids(db *gorm.DB, jobID, requesterID string, role models.UserRole) (*dto.BidListResponse, error) {
	job, err := s.jobRepo.FindJobByID(db, jobID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err, "job")
	}
	if job.CreatedBy != requesterID && role != models.UserRoleAdmin {
		return nil, apperrors.ErrInsufficientPermissions
	}

	bids, err := s.bidRepo.FindBidsByJob(db, jobID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return newBidListResponse(bids), nil
}

func (s *bidService) ListMyBids(db *gorm.DB, requesterID string) (*dto.BidListResponse, error) {
	bids, err := s.bidRepo.FindBidsByBidder(db, requesterID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return newBidListResponse(bids), nil
}

func (s *bidService) UpdateBid(db *gorm.DB, bidID, requesterID string, req *dto.UpdateBidRequest) (*dto.BidResponse, error) {
	bid, err := s.editableBid(db, bidID, requesterID)
	if err != nil {
		return nil, err
	}

	if req.Amount != nil {
		bid.Amount = *req.Amount
	}
	if req.Currency != nil {
		bid.Currency = *req.Currency
	}
	if req.Breakdown != nil {
		bid.Breakdown = encodeBreakdown(req.Breakdown)
	}
	if req.EstimatedDays != nil {
		bid.EstimatedDays = req.EstimatedDays
	}
	if req.EarliestStart != nil {
		bid.EarliestStart = req.EarliestStart
	}
	if req.Notes != nil {
		bid.Notes = *req.Notes
	}
	if req.IncludedServices != nil {
		bid.IncludedServices = encodeStringList(req.IncludedServices)
	}

	if err := s.bidRepo.UpdateBid(db, bid); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewBidResponse(bid), nil
}

func (s *bidService) WithdrawBid(db *gorm.DB, bidID, requesterID string) error {
	bid, err := s.editableBid(db, bidID, requesterID)
	if err != nil {
		return err
	}
	if err := s.bidRepo.DeleteBid(db, bid.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *bidService) UpdateBidStatus(db *gorm.DB, bidID, requesterID string, role models.UserRole, req *dto.UpdateBidStatusRequest) (*dto.BidResponse, error) {
	bid, err := s.bidRepo.FindBidByID(db, bidID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err, "bid")
	}

	job, err := s.jobRepo.FindJobByID(db, bid.JobID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err, "job")
	}
	if job.CreatedBy != requesterID && role != models.UserRoleAdmin {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if bid.Status == models.BidStatusAccepted {
		return nil, apperrors.ErrBidAccepted
	}

	target := models.BidStatus(req.Status)
	if err := lifecycle.Transition(lifecycle.BidTransitions, "bid", string(bid.Status), string(target)); err != nil {
		return nil, err
	}

	if target == models.BidStatusAccepted {
		if err := s.acceptBid(db, job, bid); err != nil {
			return nil, err
		}
	} else {
		if err := s.bidRepo.UpdateBidStatus(db, bid.ID, target); err != nil {
			return nil, apperrors.InternalError(err)
		}
		bid.Status = target
	}

	s.notify(db, bid.BidderID, "bid_status_changed", "Bid status changed",
		fmt.Sprintf("Your bid on %q is now %s", job.Title, string(bid.Status)), "bid", bid.ID)

	return dto.NewBidResponse(bid), nil
}

// acceptBid runs the one multi-entity transaction in the system: contract and
// default milestone creation, job award, sibling rejection, and the
// conditional status flip that fails closed when two accepts race.
func (s *bidService) acceptBid(db *gorm.DB, job *models.Job, bid *models.Bid) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		accepted, err := s.bidRepo.CountAcceptedSiblings(tx, job.ID, bid.ID)
		if err != nil {
			return err
		}
		if accepted > 0 {
			return apperrors.ErrJobAlreadyAwarded
		}

		if err := s.bidRepo.AcceptBidConditional(tx, bid.ID); err != nil {
			if errors.Is(err, repositories.ErrBidStatusConflict) {
				return apperrors.ErrJobAlreadyAwarded
			}
			return err
		}

		contract := &models.Contract{
			JobID:              job.ID,
			BidID:              bid.ID,
			ClientID:           job.CreatedBy,
			VendorID:           bid.BidderID,
			Amount:             bid.Amount,
			Currency:           bid.Currency,
			StartDate:          bid.EarliestStart,
			EndDate:            job.FinalDelivery,
			DeliverablesStatus: models.DeliverablesStatePending,
			Status:             models.ContractStatusActive,
		}
		if err := s.contractRepo.CreateContract(tx, contract); err != nil {
			return err
		}

		milestone := &models.Milestone{
			ContractID:   contract.ID,
			Title:        "Full delivery",
			Amount:       bid.Amount,
			DueDate:      job.FinalDelivery,
			Deliverables: job.Deliverables,
			Status:       models.MilestoneStatusPending,
		}
		if err := s.contractRepo.CreateMilestone(tx, milestone); err != nil {
			return err
		}

		if err := s.jobRepo.UpdateJobStatus(tx, job.ID, models.JobStatusAwarded); err != nil {
			return err
		}

		return s.bidRepo.RejectSiblings(tx, job.ID, bid.ID)
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return apperrors.InternalError(err)
	}

	bid.Status = models.BidStatusAccepted
	return nil
}

// editableBid loads a bid and checks the shared edit/withdraw preconditions:
// own bid, still pending, job deadline not passed.
func (s *bidService) editableBid(db *gorm.DB, bidID, requesterID string) (*models.Bid, error) {
	bid, err := s.bidRepo.FindBidByID(db, bidID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err, "bid")
	}
	if bid.BidderID != requesterID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if bid.Status == models.BidStatusAccepted {
		return nil, apperrors.ErrBidAccepted
	}
	if bid.Status != models.BidStatusPending {
		return nil, apperrors.ErrBidNotPending
	}

	job, err := s.jobRepo.FindJobByID(db, bid.JobID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err, "job")
	}
	if deadlinePassed(job.BidDeadline, time.Now()) {
		return nil, apperrors.ErrBidDeadlinePassed
	}
	return bid, nil
}

func (s *bidService) authorizeBidAccess(db *gorm.DB, bid *models.Bid, requesterID string, role models.UserRole) error {
	if role == models.UserRoleAdmin || bid.BidderID == requesterID {
		return nil
	}
	job, err := s.jobRepo.FindJobByID(db, bid.JobID)
	if err != nil {
		return apperrors.ErrNotFound(err, "job")
	}
	if job.CreatedBy != requesterID {
		return apperrors.ErrInsufficientPermissions
	}
	return nil
}

func (s *bidService) notify(db *gorm.DB, userID, kind, title, message, entityType, entityID string) {
	notification := &models.Notification{
		UserID:     userID,
		Type:       kind,
		Title:      title,
		Message:    message,
		EntityType: &entityType,
		EntityID:   &entityID,
	}
	if err := s.notificationRepo.CreateNotification(db, notification); err != nil {
		logger.Warn("failed to create notification", "user_id", userID, "error", err)
	}
}

// deadlinePassed treats the deadline as exclusive: a bid exactly at the
// deadline is already late. A job without a deadline never expires.
func deadlinePassed(deadline *time.Time, now time.Time) bool {
	return deadline != nil && !now.Before(*deadline)
}

func newBidListResponse(bids []models.Bid) *dto.BidListResponse {
	resp := &dto.BidListResponse{
		Bids:  make([]dto.BidResponse, 0, len(bids)),
		Total: len(bids),
	}
	for i := range bids {
		resp.Bids = append(resp.Bids, *dto.NewBidResponse(&bids[i]))
	}
	return resp
}

func encodeBreakdown(breakdown map[string]float64) datatypes.JSON {
	if len(breakdown) == 0 {
		return nil
	}
	raw, err := json.Marshal(breakdown)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}
