package repositories

import (
	"errors"

	"gorm.io/gorm"

	"vfxworks_backend/internal/models"
)

var (
	ErrContractNotFound  = errors.New("contract not found")
	ErrMilestoneNotFound = errors.New("milestone not found")
)

type ContractRepository interface {
	CreateContract(db *gorm.DB, contract *models.Contract) error
	FindContractByID(db *gorm.DB, id string) (*models.Contract, error)
	FindContractByJob(db *gorm.DB, jobID string) (*models.Contract, error)
	FindContractsByParty(db *gorm.DB, userID string) ([]models.Contract, error)
	UpdateContractStatus(db *gorm.DB, id string, status models.ContractStatus) error
	UpdateDeliverablesStatus(db *gorm.DB, id string, state models.DeliverablesState) error

	CreateMilestone(db *gorm.DB, milestone *models.Milestone) error
	FindMilestoneByID(db *gorm.DB, id string) (*models.Milestone, error)
	UpdateMilestone(db *gorm.DB, milestone *models.Milestone) error
	DeleteMilestone(db *gorm.DB, id string) error
}

type ContractRepositoryImpl struct{}

func NewContractRepository() ContractRepository {
	return &ContractRepositoryImpl{}
}

func (r *ContractRepositoryImpl) CreateContract(db *gorm.DB, contract *models.Contract) error {
	return db.Create(contract).Error
}

func (r *ContractRepositoryImpl) FindContractByID(db *gorm.DB, id string) (*models.Contract, error) {
	var contract models.Contract
	err := db.Preload("Milestones").First(&contract, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContractNotFound
		}
		return nil, err
	}
	return &contract, nil
}

func (r *ContractRepositoryImpl) FindContractByJob(db *gorm.DB, jobID string) (*models.Contract, error) {
	var contract models.Contract
	err := db.Preload("Milestones").First(&contract, "job_id = ?", jobID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContractNotFound
		}
		return nil, err
	}
	return &contract, nil
}

func (r *ContractRepositoryImpl) FindContractsByParty(db *gorm.DB, userID string) ([]models.Contract, error) {
	var contracts []models.Contract
	err := db.Preload("Milestones").
		Where("client_id = ? OR vendor_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&contracts).Error
	return contracts, err
}

func (r *ContractRepositoryImpl) UpdateContractStatus(db *gorm.DB, id string, status models.ContractStatus) error {
	result := db.Model(&models.Contract{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrContractNotFound
	}
	return nil
}

func (r *ContractRepositoryImpl) UpdateDeliverablesStatus(db *gorm.DB, id string, state models.DeliverablesState) error {
	result := db.Model(&models.Contract{}).Where("id = ?", id).Update("deliverables_status", state)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrContractNotFound
	}
	return nil
}

func (r *ContractRepositoryImpl) CreateMilestone(db *gorm.DB, milestone *models.Milestone) error {
	return db.Create(milestone).Error
}

func (r *ContractRepositoryImpl) FindMilestoneByID(db *gorm.DB, id string) (*models.Milestone, error) {
	var milestone models.Milestone
	err := db.First(&milestone, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMilestoneNotFound
		}
		return nil, err
	}
	return &milestone, nil
}

func (r *ContractRepositoryImpl) UpdateMilestone(db *gorm.DB, milestone *models.Milestone) error {
	result := db.Model(&models.Milestone{}).Where("id = ?", milestone.ID).Updates(map[string]interface{}{
		"title":        milestone.Title,
		"description":  milestone.Description,
		"due_date":     milestone.DueDate,
		"amount":       milestone.Amount,
		"deliverables": milestone.Deliverables,
		"status":       milestone.Status,
		"completed_at": milestone.CompletedAt,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMilestoneNotFound
	}
	return nil
}

func (r *ContractRepositoryImpl) DeleteMilestone(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Milestone{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMilestoneNotFound
	}
	return nil
}
