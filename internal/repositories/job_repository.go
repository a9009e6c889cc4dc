package repositories

import (
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"vfxworks_backend/internal/models"
)

var ErrJobNotFound = errors.New("job not found")

// JobVisibility is the caller-dependent half of a job listing query. Admins
// see everything; everyone else sees their own jobs, jobs they are assigned
// to, and open jobs (freelance jobs must also be open-bid).
type JobVisibility struct {
	UserID string
	Admin  bool
}

// Scope renders the visibility rule as a gorm scope.
func (v JobVisibility) Scope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if v.Admin {
			return db
		}
		member, _ := json.Marshal([]string{v.UserID})
		return db.Where(
			db.Session(&gorm.Session{NewDB: true}).
				Where("created_by = ?", v.UserID).
				Or("assigned_to @> ?", string(member)).
				Or("status = ? AND (job_type = ? OR assignment_mode = ?)",
					models.JobStatusOpen, models.JobTypeStudioSalaried, models.AssignmentModeOpen),
		)
	}
}

// JobFilter is the caller-chosen half of a listing query.
type JobFilter struct {
	Status      *models.JobStatus
	JobType     *models.JobType
	PaymentType *models.PaymentType
	CreatedBy   string
	Search      string
	Page        int
	PageSize    int
}

func (f JobFilter) Scope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Status != nil {
			db = db.Where("status = ?", *f.Status)
		}
		if f.JobType != nil {
			db = db.Where("job_type = ?", *f.JobType)
		}
		if f.PaymentType != nil {
			db = db.Where("payment_type = ?", *f.PaymentType)
		}
		if f.CreatedBy != "" {
			db = db.Where("created_by = ?", f.CreatedBy)
		}
		if f.Search != "" {
			pattern := "%" + f.Search + "%"
			db = db.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
		}
		return db
	}
}

type JobRepository interface {
	CreateJob(db *gorm.DB, job *models.Job) error
	FindJobByID(db *gorm.DB, id string) (*models.Job, error)
	ListJobs(db *gorm.DB, filter JobFilter, visibility JobVisibility) ([]models.Job, int64, error)
	UpdateJob(db *gorm.DB, job *models.Job) error
	UpdateJobStatus(db *gorm.DB, id string, status models.JobStatus) error
	DeleteJobCascade(db *gorm.DB, id string) error
	IncrementJobViews(db *gorm.DB, id string) error
}

type JobRepositoryImpl struct{}

func NewJobRepository() JobRepository {
	return &JobRepositoryImpl{}
}

func (r *JobRepositoryImpl) CreateJob(db *gorm.DB, job *models.Job) error {
	return db.Create(job).Error
}

func (r *JobRepositoryImpl) FindJobByID(db *gorm.DB, id string) (*models.Job, error) {
	var job models.Job
	err := db.First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) ListJobs(db *gorm.DB, filter JobFilter, visibility JobVisibility) ([]models.Job, int64, error) {
	query := db.Model(&models.Job{}).Scopes(visibility.Scope(), filter.Scope())

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var jobs []models.Job
	err := query.Order("created_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&jobs).Error
	return jobs, total, err
}

func (r *JobRepositoryImpl) UpdateJob(db *gorm.DB, job *models.Job) error {
	result := db.Save(job)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) UpdateJobStatus(db *gorm.DB, id string, status models.JobStatus) error {
	result := db.Model(&models.Job{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

// DeleteJobCascade removes the job and every bid on it. Callers run it inside
// a transaction.
func (r *JobRepositoryImpl) DeleteJobCascade(db *gorm.DB, id string) error {
	if err := db.Where("job_id = ?", id).Delete(&models.Bid{}).Error; err != nil {
		return err
	}
	result := db.Where("id = ?", id).Delete(&models.Job{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) IncrementJobViews(db *gorm.DB, id string) error {
	return db.Model(&models.Job{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}
