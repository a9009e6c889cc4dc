package helpers

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"vfxworks_backend/internal/auth"
	"vfxworks_backend/internal/models"
)

// CreateUser inserts a user with a hashed password and an empty profile.
func CreateUser(t *testing.T, tx *gorm.DB, name, email, password string, role models.UserRole) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err, "hashing test password should not fail")

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	require.NoError(t, tx.Create(user).Error, "creating test user should not fail")

	profile := &models.Profile{UserID: user.ID, DisplayName: name}
	require.NoError(t, tx.Create(profile).Error, "creating test profile should not fail")

	return user
}

// CreateUserWithToken creates a user with a unique email and returns a valid
// bearer token for them.
func CreateUserWithToken(t *testing.T, tx *gorm.DB, role models.UserRole) (string, *models.User) {
	t.Helper()

	email := fmt.Sprintf("%s_%d@test.com", role, time.Now().UnixNano())
	user := CreateUser(t, tx, "Test "+string(role), email, "password123", role)

	token, err := auth.GenerateToken(user.ID, string(user.Role))
	require.NoError(t, err, "issuing test token should not fail")

	return token, user
}

// CreateTestJob inserts a job owned by creatorID. The default is an open
// freelance job accepting bids for another week.
func CreateTestJob(t *testing.T, tx *gorm.DB, creatorID string, status models.JobStatus) *models.Job {
	t.Helper()

	deadline := time.Now().Add(7 * 24 * time.Hour)
	delivery := time.Now().Add(30 * 24 * time.Hour)
	job := &models.Job{
		CreatedBy:      creatorID,
		Title:          "Creature comp for reel shot",
		Description:    "Composite the hero creature into plates 010-040.",
		JobType:        models.JobTypeFreelance,
		AssignmentMode: models.AssignmentModeOpen,
		PaymentType:    models.PaymentTypeFixed,
		Currency:       "USD",
		BidDeadline:    &deadline,
		FinalDelivery:  &delivery,
		Status:         status,
	}
	require.NoError(t, tx.Create(job).Error, "creating test job should not fail")
	return job
}

// CreateTestBid inserts a pending bid on a job.
func CreateTestBid(t *testing.T, tx *gorm.DB, jobID, bidderID string, amount float64) *models.Bid {
	t.Helper()

	bid := &models.Bid{
		JobID:      jobID,
		BidderID:   bidderID,
		BidderType: models.UserRoleArtist,
		Amount:     amount,
		Currency:   "USD",
		Status:     models.BidStatusPending,
	}
	require.NoError(t, tx.Create(bid).Error, "creating test bid should not fail")
	return bid
}

// CreateTestContract inserts a contract (and its backing job and bid) between
// a client and a vendor, in the given status.
func CreateTestContract(t *testing.T, tx *gorm.DB, clientID, vendorID string, status models.ContractStatus) *models.Contract {
	t.Helper()

	jobStatus := models.JobStatusAwarded
	if status == models.ContractStatusCompleted {
		jobStatus = models.JobStatusCompleted
	}
	job := CreateTestJob(t, tx, clientID, jobStatus)
	bid := CreateTestBid(t, tx, job.ID, vendorID, 5000)

	contract := &models.Contract{
		JobID:    job.ID,
		BidID:    bid.ID,
		ClientID: clientID,
		VendorID: vendorID,
		Amount:   bid.Amount,
		Currency: bid.Currency,
		Status:   status,
	}
	require.NoError(t, tx.Create(contract).Error, "creating test contract should not fail")
	return contract
}

// CreateTestDeliverable inserts a submitted deliverable on a contract.
func CreateTestDeliverable(t *testing.T, tx *gorm.DB, contract *models.Contract, uploaderID string) *models.Deliverable {
	t.Helper()

	deliverable := &models.Deliverable{
		JobID:      contract.JobID,
		ContractID: contract.ID,
		UploaderID: uploaderID,
		Label:      "sh010_comp_v001",
		FileURL:    "https://cdn.example.com/sh010_comp_v001.mov",
		FileType:   "video/quicktime",
		Status:     models.DeliverableStatusSubmitted,
	}
	require.NoError(t, tx.Create(deliverable).Error, "creating test deliverable should not fail")
	return deliverable
}
