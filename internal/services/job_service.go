package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"vfxworks_backend/internal/lifecycle"
	"vfxworks_backend/internal/logger"
	"vfxworks_backend/internal/media"
	"vfxworks_backend/internal/models"
	"vfxworks_backend/internal/repositories"
	"vfxworks_backend/internal/services/dto"
	"vfxworks_backend/pkg/apperrors"
)

type JobService interface {
	CreateJob(db *gorm.DB, requesterID string, role models.UserRole, req *dto.CreateJobRequest) (*dto.JobResponse, error)
	GetJob(db *gorm.DB, jobID, requesterID string, role models.UserRole) (*dto.JobResponse, error)
	ListJobs(db *gorm.DB, requesterID string, role models.UserRole, query *dto.ListJobsQuery) (*dto.JobListResponse, error)
	UpdateJob(db *gorm.DB, jobID, requesterID string, role models.UserRole, req *dto.UpdateJobRequest) (*dto.JobResponse, error)
	UpdateJobStatus(db *gorm.DB, jobID, requesterID string, role models.UserRole, req *dto.UpdateJobStatusRequest) (*dto.JobResponse, error)
	DeleteJob(db *gorm.DB, jobID, requesterID string, role models.UserRole) error
}

type jobService struct {
	jobRepo          repositories.JobRepository
	userRepo         repositories.UserRepository
	notificationRepo repositories.NotificationRepository
	resolver         *media.Resolver
}

func NewJobService(
	jobRepo repositories.JobRepository,
	userRepo repositories.UserRepository,
	notificationRepo repositories.NotificationRepository,
	resolver *media.Resolver,
) JobService {
	return &jobService{
		jobRepo:          jobRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		resolver:         resolver,
	}
}

func (s *jobService) CreateJob(db *gorm.DB, requesterID string, role models.UserRole, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	if role != models.UserRoleStudio && role != models.UserRoleAdmin {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if req.BudgetMin != nil && req.BudgetMax != nil && *req.BudgetMax < *req.BudgetMin {
		return nil, apperrors.ValidationError("maximum budget cannot be less than minimum budget")
	}

	jobType := models.JobType(req.JobType)

	mode := models.AssignmentMode(req.AssignmentMode)
	if mode == "" {
		// Open bidding only makes sense for freelance work; salaried
		// positions are assigned directly.
		if jobType == models.JobTypeStudioSalaried {
			mode = models.AssignmentModeDirect
		} else {
			mode = models.AssignmentModeOpen
		}
	}
	if mode == models.AssignmentModeDirect && len(req.AssignedTo) == 0 {
		return nil, apperrors.ErrAssigneeRequired
	}
	if err := s.checkAssignees(db, req.AssignedTo); err != nil {
		return nil, err
	}

	paymentType := models.PaymentType(req.PaymentType)
	if paymentType == "" {
		paymentType = models.PaymentTypeFixed
	}
	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	job := &models.Job{
		CreatedBy:        requesterID,
		Title:            req.Title,
		Description:      req.Description,
		MovieRef:         req.MovieRef,
		JobType:          jobType,
		AssignmentMode:   mode,
		AssignedTo:       encodeStringList(req.AssignedTo),
		PaymentType:      paymentType,
		Currency:         currency,
		BudgetMin:        req.BudgetMin,
		BudgetMax:        req.BudgetMax,
		ShotCount:        req.ShotCount,
		FrameCount:       req.FrameCount,
		Resolution:       req.Resolution,
		FrameRate:        req.FrameRate,
		RequiredSkills:   encodeStringList(req.RequiredSkills),
		RequiredSoftware: encodeStringList(req.RequiredSoftware),
		Deliverables:     encodeStringList(req.Deliverables),
		BidDeadline:      req.BidDeadline,
		ExpectedStart:    req.ExpectedStart,
		FinalDelivery:    req.FinalDelivery,
		Status:           models.JobStatusDraft,
	}
	if len(req.ShotBreakdown) > 0 {
		job.ShotBreakdown = datatypes.JSON(req.ShotBreakdown)
	}

	if req.Poster != "" {
		posterURL, err := s.resolver.Ingest(context.Background(), req.Poster, "posters")
		if err != nil {
			return nil, err
		}
		job.PosterURL = &posterURL
	}

	if err := s.jobRepo.CreateJob(db, job); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return dto.NewJobResponse(job), nil
}

func (s *jobService) GetJob(db *gorm.DB, jobID, requesterID string, role models.UserRole) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindJobByID(db, jobID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err, "job")
	}

	if !s.canSeeJob(job, requesterID, role) {
		// Present invisible jobs as absent rather than confirming they exist.
		return nil, apperrors.ErrNotFound(repositories.ErrJobNotFound, "job")
	}

	if requesterID != job.CreatedBy {
		if err := s.jobRepo.IncrementJobViews(db, jobID); err != nil {
			logger.Warn("failed to increment job views", "job_id", jobID, "error", err)
		} else {
			job.Views++
		}
	}

	return dto.NewJobResponse(job), nil
}

func (s *jobService) ListJobs(db *gorm.DB, requesterID string, role models.UserRole, query *dto.ListJobsQuery) (*dto.JobListResponse, error) {
	filter := repositories.JobFilter{
		Search:   query.Search,
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	if query.Status != "" {
		status := models.JobStatus(query.Status)
		filter.Status = &status
	}
	if query.JobType != "" {
		jobType := models.JobType(query.JobType)
		filter.JobType = &jobType
	}
	if query.PaymentType != "" {
		paymentType := models.PaymentType(query.PaymentType)
		filter.PaymentType = &paymentType
	}
	if query.Mine {
		filter.CreatedBy = requesterID
	}

	visibility := repositories.JobVisibility{
		UserID: requesterID,
		Admin:  role == models.UserRoleAdmin,
	}

	jobs, total, err := s.jobRepo.ListJobs(db, filter, visibility)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.JobListResponse{
		Jobs:     make([]dto.JobResponse, 0, len(jobs)),
		Total:    total,
		Page:     max(query.Page, 1),
		PageSize: query.PageSize,
	}
	if resp.PageSize < 1 || resp.PageSize > 100 {
		resp.PageSize = 20
	}
	for i := range jobs {
		resp.Jobs = append(resp.Jobs, *dto.NewJobResponse(&jobs[i]))
	}
	return resp, nil
}

func (s *jobService) UpdateJob(db *gorm.DB, jobID, requesterID string, role models.UserRole, req *dto.UpdateJobRequest) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindJobByID(db, jobID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err, "job")
	}
	if job.CreatedBy != requesterID && role != models.UserRoleAdmin {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if jobLocked(job.Status) {
		return nil, apperrors.ErrJobLocked
	}

	if req.AssignmentMode != nil {
		if job.Status != models.JobStatusDraft {
			return nil, apperrors.ErrInvalidOperation("job", "assignment mode can only change while the job is a draft")
		}
		job.AssignmentMode = models.AssignmentMode(*req.AssignmentMode)
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.MovieRef != nil {
		job.MovieRef = req.MovieRef
	}
	if req.AssignedTo != nil {
		if err := s.checkAssignees(db, req.AssignedTo); err != nil {
			return nil, err
		}
		job.AssignedTo = encodeStringList(req.AssignedTo)
	}
	if req.PaymentType != nil {
		job.PaymentType = models.PaymentType(*req.PaymentType)
	}
	if req.Currency != nil {
		job.Currency = *req.Currency
	}
	if req.BudgetMin != nil {
		job.BudgetMin = req.BudgetMin
	}
	if req.BudgetMax != nil {
		job.BudgetMax = req.BudgetMax
	}
	if job.BudgetMin != nil && job.BudgetMax != nil && *job.BudgetMax < *job.BudgetMin {
		return nil, apperrors.ValidationError("maximum budget cannot be less than minimum budget")
	}
	if req.ShotCount != nil {
		job.ShotCount = req.ShotCount
	}
	if req.FrameCount != nil {
		job.FrameCount = req.FrameCount
	}
	if req.Resolution != nil {
		job.Resolution = req.Resolution
	}
	if req.FrameRate != nil {
		job.FrameRate = req.FrameRate
	}
	if len(req.ShotBreakdown) > 0 {
		job.ShotBreakdown = datatypes.JSON(req.ShotBreakdown)
	}
	if req.RequiredSkills != nil {
		job.RequiredSkills = encodeStringList(req.RequiredSkills)
	}
	if req.RequiredSoftware != nil {
		job.RequiredSoftware = encodeStringList(req.RequiredSoftware)
	}
	if req.Deliverables != nil {
		job.Deliverables = encodeStringList(req.Deliverables)
	}
	if req.BidDeadline != nil {
		job.BidDeadline = req.BidDeadline
	}
	if req.ExpectedStart != nil {
		job.ExpectedStart = req.ExpectedStart
	}
	if req.FinalDelivery != nil {
		job.FinalDelivery = req.FinalDelivery
	}

	if req.Poster != nil {
		oldPoster := job.PosterURL
		posterURL, err := s.resolver.Ingest(context.Background(), *req.Poster, "posters")
		if err != nil {
			return nil, err
		}
		job.PosterURL = &posterURL
		if oldPoster != nil && *oldPoster != posterURL {
			if err := s.resolver.Release(context.Background(), *oldPoster); err != nil {
				logger.Warn("failed to release replaced poster", "url", *oldPoster, "error", err)
			}
		}
	}

	if err := s.jobRepo.UpdateJob(db, job); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewJobResponse(job), nil
}

func (s *jobService) UpdateJobStatus(db *gorm.DB, jobID, requesterID string, role models.UserRole, req *dto.UpdateJobStatusRequest) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindJobByID(db, jobID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err, "job")
	}
	if job.CreatedBy != requesterID && role != models.UserRoleAdmin {
		return nil, apperrors.ErrInsufficientPermissions
	}

	target := models.JobStatus(req.Status)
	if err := lifecycle.Transition(lifecycle.JobTransitions, "job", string(job.Status), string(target)); err != nil {
		return nil, err
	}

	if target == models.JobStatusOpen && job.Status == models.JobStatusDraft {
		if req.BidDeadline != nil {
			job.BidDeadline = req.BidDeadline
		}
		if job.JobType == models.JobTypeFreelance &&
			job.AssignmentMode == models.AssignmentModeOpen && job.BidDeadline == nil {
			return nil, apperrors.ErrBidDeadlineRequired
		}
		if job.AssignmentMode == models.AssignmentModeDirect && len(dtoAssignees(job)) == 0 {
			return nil, apperrors.ErrAssigneeRequired
		}
	}

	job.Status = target
	if err := s.jobRepo.UpdateJob(db, job); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if target == models.JobStatusOpen {
		s.notifyAssignees(db, job)
	}

	return dto.NewJobResponse(job), nil
}

func (s *jobService) DeleteJob(db *gorm.DB, jobID, requesterID string, role models.UserRole) error {
	job, err := s.jobRepo.FindJobByID(db, jobID)
	if err != nil {
		return apperrors.ErrNotFound(err, "job")
	}
	if job.CreatedBy != requesterID && role != models.UserRoleAdmin {
		return apperrors.ErrInsufficientPermissions
	}
	if job.Status != models.JobStatusDraft && job.Status != models.JobStatusOpen {
		return apperrors.ErrJobLocked
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		return s.jobRepo.DeleteJobCascade(tx, jobID)
	})
	if err != nil {
		return apperrors.InternalError(err)
	}

	if job.PosterURL != nil {
		if err := s.resolver.Release(context.Background(), *job.PosterURL); err != nil {
			logger.Warn("failed to release job poster", "job_id", jobID, "error", err)
		}
	}
	return nil
}

func (s *jobService) canSeeJob(job *models.Job, requesterID string, role models.UserRole) bool {
	if role == models.UserRoleAdmin || job.CreatedBy == requesterID {
		return true
	}
	for _, assignee := range dtoAssignees(job) {
		if assignee == requesterID {
			return true
		}
	}
	if job.Status != models.JobStatusOpen {
		return false
	}
	return job.JobType == models.JobTypeStudioSalaried || job.AssignmentMode == models.AssignmentModeOpen
}

// checkAssignees verifies every listed user exists before the job points at
// them.
func (s *jobService) checkAssignees(db *gorm.DB, assignees []string) error {
	for _, assignee := range assignees {
		if _, err := s.userRepo.FindUserByID(db, assignee); err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return apperrors.ValidationError(fmt.Sprintf("assigned user %s does not exist", assignee))
			}
			return apperrors.InternalError(err)
		}
	}
	return nil
}

func (s *jobService) notifyAssignees(db *gorm.DB, job *models.Job) {
	for _, assignee := range dtoAssignees(job) {
		notification := &models.Notification{
			UserID:     assignee,
			Type:       "job_published",
			Title:      "New job assignment",
			Message:    fmt.Sprintf("You were assigned to %q", job.Title),
			EntityType: strPtr("job"),
			EntityID:   &job.ID,
		}
		if err := s.notificationRepo.CreateNotification(db, notification); err != nil {
			logger.Warn("failed to create notification", "user_id", notification.UserID, "error", err)
		}
	}
}

// jobLocked reports whether edits are rejected for the current status.
func jobLocked(status models.JobStatus) bool {
	switch status {
	case models.JobStatusAwarded, models.JobStatusInProgress, models.JobStatusCompleted:
		return true
	}
	return false
}

func dtoAssignees(job *models.Job) []string {
	if len(job.AssignedTo) == 0 {
		return nil
	}
	var assignees []string
	if err := json.Unmarshal(job.AssignedTo, &assignees); err != nil {
		return nil
	}
	return assignees
}

func encodeStringList(list []string) datatypes.JSON {
	if len(list) == 0 {
		return nil
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}

func strPtr(s string) *string { return &s }
