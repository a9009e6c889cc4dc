package repositories

import (
	"errors"

	"gorm.io/gorm"

	"vfxworks_backend/internal/models"
)

var ErrDeliverableNotFound = errors.New("deliverable not found")

type DeliverableRepository interface {
	CreateDeliverable(db *gorm.DB, deliverable *models.Deliverable) error
	FindDeliverableByID(db *gorm.DB, id string) (*models.Deliverable, error)
	FindDeliverablesByContract(db *gorm.DB, contractID string) ([]models.Deliverable, error)
	UpdateDeliverable(db *gorm.DB, deliverable *models.Deliverable) error
	DeleteDeliverable(db *gorm.DB, id string) error
	CountByContractAndStatus(db *gorm.DB, contractID string, status models.DeliverableStatus) (int64, error)
	CountByContract(db *gorm.DB, contractID string) (int64, error)
}

type DeliverableRepositoryImpl struct{}

func NewDeliverableRepository() DeliverableRepository {
	return &DeliverableRepositoryImpl{}
}

func (r *DeliverableRepositoryImpl) CreateDeliverable(db *gorm.DB, deliverable *models.Deliverable) error {
	return db.Create(deliverable).Error
}

func (r *DeliverableRepositoryImpl) FindDeliverableByID(db *gorm.DB, id string) (*models.Deliverable, error) {
	var deliverable models.Deliverable
	err := db.First(&deliverable, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeliverableNotFound
		}
		return nil, err
	}
	return &deliverable, nil
}

func (r *DeliverableRepositoryImpl) FindDeliverablesByContract(db *gorm.DB, contractID string) ([]models.Deliverable, error) {
	var deliverables []models.Deliverable
	err := db.Where("contract_id = ?", contractID).
		Order("created_at ASC").
		Find(&deliverables).Error
	return deliverables, err
}

func (r *DeliverableRepositoryImpl) UpdateDeliverable(db *gorm.DB, deliverable *models.Deliverable) error {
	// Save writes every column, so clears (nil ReviewedBy) persist too.
	return db.Save(deliverable).Error
}

func (r *DeliverableRepositoryImpl) DeleteDeliverable(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Deliverable{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDeliverableNotFound
	}
	return nil
}

func (r *DeliverableRepositoryImpl) CountByContractAndStatus(db *gorm.DB, contractID string, status models.DeliverableStatus) (int64, error) {
	var count int64
	err := db.Model(&models.Deliverable{}).
		Where("contract_id = ? AND status = ?", contractID, status).
		Count(&count).Error
	return count, err
}

func (r *DeliverableRepositoryImpl) CountByContract(db *gorm.DB, contractID string) (int64, error) {
	var count int64
	err := db.Model(&models.Deliverable{}).
		Where("contract_id = ?", contractID).
		Count(&count).Error
	return count, err
}
