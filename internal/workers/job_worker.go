package workers

import (
	"context"
	"time"

	"gorm.io/gorm"

	"vfxworks_backend/internal/logger"
	"vfxworks_backend/internal/models"
)

// JobWorker runs the background maintenance tasks for jobs.
type JobWorker struct {
	db       *gorm.DB
	interval time.Duration
}

func NewJobWorker(db *gorm.DB) *JobWorker {
	return &JobWorker{db: db, interval: 10 * time.Minute}
}

func (w *JobWorker) Start(ctx context.Context) {
	go w.closeExpiredBidding(ctx)
}

// closeExpiredBidding moves open jobs whose bid deadline has passed into
// under_review, so owners can pick a bid without late arrivals.
func (w *JobWorker) closeExpiredBidding(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("job worker stopped")
			return
		case <-ticker.C:
			result := w.db.Model(&models.Job{}).
				Where("status = ? AND bid_deadline IS NOT NULL AND bid_deadline <= NOW()", models.JobStatusOpen).
				Update("status", models.JobStatusUnderReview)
			if result.Error != nil {
				logger.WorkerLog("job", "close expired bidding windows", result.Error)
			} else if result.RowsAffected > 0 {
				logger.Info("bidding windows closed", "jobs", result.RowsAffected)
			}
		}
	}
}
