package repositories

import (
	"errors"

	"gorm.io/gorm"

	"vfxworks_backend/internal/models"
)

var (
	ErrBidNotFound       = errors.New("bid not found")
	ErrBidStatusConflict = errors.New("bid status changed concurrently")
)

type BidRepository interface {
	CreateBid(db *gorm.DB, bid *models.Bid) error
	FindBidByID(db *gorm.DB, id string) (*models.Bid, error)
	FindBidByJobAndBidder(db *gorm.DB, jobID, bidderID string) (*models.Bid, error)
	FindBidsByJob(db *gorm.DB, jobID string) ([]models.Bid, error)
	FindBidsByBidder(db *gorm.DB, bidderID string) ([]models.Bid, error)
	CountAcceptedSiblings(db *gorm.DB, jobID, excludeBidID string) (int64, error)
	UpdateBid(db *gorm.DB, bid *models.Bid) error
	UpdateBidStatus(db *gorm.DB, id string, status models.BidStatus) error
	AcceptBidConditional(db *gorm.DB, id string) error
	RejectSiblings(db *gorm.DB, jobID, acceptedBidID string) error
	DeleteBid(db *gorm.DB, id string) error
}

type BidRepositoryImpl struct{}

func NewBidRepository() BidRepository {
	return &BidRepositoryImpl{}
}

func (r *BidRepositoryImpl) CreateBid(db *gorm.DB, bid *models.Bid) error {
	return db.Create(bid).Error
}

func (r *BidRepositoryImpl) FindBidByID(db *gorm.DB, id string) (*models.Bid, error) {
	var bid models.Bid
	err := db.First(&bid, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBidNotFound
		}
		return nil, err
	}
	return &bid, nil
}

func (r *BidRepositoryImpl) FindBidByJobAndBidder(db *gorm.DB, jobID, bidderID string) (*models.Bid, error) {
	var bid models.Bid
	err := db.Where("job_id = ? AND bidder_id = ?", jobID, bidderID).First(&bid).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBidNotFound
		}
		return nil, err
	}
	return &bid, nil
}

func (r *BidRepositoryImpl) FindBidsByJob(db *gorm.DB, jobID string) ([]models.Bid, error) {
	var bids []models.Bid
	err := db.Where("job_id = ?", jobID).Order("created_at ASC").Find(&bids).Error
	return bids, err
}

func (r *BidRepositoryImpl) FindBidsByBidder(db *gorm.DB, bidderID string) ([]models.Bid, error) {
	var bids []models.Bid
	err := db.Preload("Job").Where("bidder_id = ?", bidderID).
		Order("created_at DESC").Find(&bids).Error
	return bids, err
}

func (r *BidRepositoryImpl) CountAcceptedSiblings(db *gorm.DB, jobID, excludeBidID string) (int64, error) {
	var count int64
	err := db.Model(&models.Bid{}).
		Where("job_id = ? AND id <> ? AND status = ?", jobID, excludeBidID, models.BidStatusAccepted).
		Count(&count).Error
	return count, err
}

func (r *BidRepositoryImpl) UpdateBid(db *gorm.DB, bid *models.Bid) error {
	result := db.Model(&models.Bid{}).Where("id = ?", bid.ID).Updates(map[string]interface{}{
		"amount":            bid.Amount,
		"currency":          bid.Currency,
		"breakdown":         bid.Breakdown,
		"estimated_days":    bid.EstimatedDays,
		"earliest_start":    bid.EarliestStart,
		"notes":             bid.Notes,
		"included_services": bid.IncludedServices,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBidNotFound
	}
	return nil
}

func (r *BidRepositoryImpl) UpdateBidStatus(db *gorm.DB, id string, status models.BidStatus) error {
	result := db.Model(&models.Bid{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBidNotFound
	}
	return nil
}

// AcceptBidConditional flips the bid to accepted only if it is still in an
// acceptable state. Zero rows affected means a concurrent writer got there
// first; the caller's transaction must treat that as a conflict and roll back.
func (r *BidRepositoryImpl) AcceptBidConditional(db *gorm.DB, id string) error {
	result := db.Model(&models.Bid{}).
		Where("id = ? AND status IN ?", id, []models.BidStatus{models.BidStatusPending, models.BidStatusShortlisted}).
		Update("status", models.BidStatusAccepted)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBidStatusConflict
	}
	return nil
}

func (r *BidRepositoryImpl) RejectSiblings(db *gorm.DB, jobID, acceptedBidID string) error {
	return db.Model(&models.Bid{}).
		Where("job_id = ? AND id <> ? AND status <> ?", jobID, acceptedBidID, models.BidStatusAccepted).
		Update("status", models.BidStatusRejected).Error
}

func (r *BidRepositoryImpl) DeleteBid(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Bid{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBidNotFound
	}
	return nil
}
