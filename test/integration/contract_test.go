package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vfxworks_backend/internal/models"
	"vfxworks_backend/test/helpers"
)

func TestContract_PartyAccessOnly(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	clientToken, client := helpers.CreateUserWithToken(t, tx, models.UserRoleStudio)
	vendorToken, vendor := helpers.CreateUserWithToken(t, tx, models.UserRoleArtist)
	strangerToken, _ := helpers.CreateUserWithToken(t, tx, models.UserRoleArtist)

	contract := helpers.CreateTestContract(t, tx, client.ID, vendor.ID, models.ContractStatusActive)

	for _, token := range []string{clientToken, vendorToken} {
		res, _ := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/contracts/"+contract.ID, token, nil)
		assert.Equal(t, http.StatusOK, res.StatusCode)
	}

	res, _ := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/contracts/"+contract.ID, strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	// Lookup by job works for parties too.
	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/contracts/job/"+contract.JobID, vendorToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, contract.ID)
}

func TestContract_CompletionClosesJob(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	clientToken, client := helpers.CreateUserWithToken(t, tx, models.UserRoleStudio)
	_, vendor := helpers.CreateUserWithToken(t, tx, models.UserRoleArtist)

	contract := helpers.CreateTestContract(t, tx, client.ID, vendor.ID, models.ContractStatusActive)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPut, "/api/v1/contracts/"+contract.ID+"/status", clientToken,
		map[string]interface{}{"status": "completed"})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var freshJob models.Job
	require.NoError(t, tx.First(&freshJob, "id = ?", contract.JobID).Error)
	assert.Equal(t, models.JobStatusCompleted, freshJob.Status)

	// Terminal contracts refuse further changes.
	res, bodyStr = ts.SendRequest(t, tx, http.MethodPut, "/api/v1/contracts/"+contract.ID+"/status", clientToken,
		map[string]interface{}{"status": "disputed"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "terminal")
}

func TestContract_DisputeRoundTrip(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, client := helpers.CreateUserWithToken(t, tx, models.UserRoleStudio)
	vendorToken, vendor := helpers.CreateUserWithToken(t, tx, models.UserRoleArtist)

	contract := helpers.CreateTestContract(t, tx, client.ID, vendor.ID, models.ContractStatusActive)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPut, "/api/v1/contracts/"+contract.ID+"/status", vendorToken,
		map[string]interface{}{"status": "disputed"})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	res, bodyStr = ts.SendRequest(t, tx, http.MethodPut, "/api/v1/contracts/"+contract.ID+"/status", vendorToken,
		map[string]interface{}{"status": "active"})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, `"status":"active"`)
}

func TestMilestone_LifecycleAndRoles(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	clientToken, client := helpers.CreateUserWithToken(t, tx, models.UserRoleStudio)
	vendorToken, vendor := helpers.CreateUserWithToken(t, tx, models.UserRoleArtist)

	contract := helpers.CreateTestContract(t, tx, client.ID, vendor.ID, models.ContractStatusActive)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/contracts/"+contract.ID+"/milestones", clientToken,
		map[string]interface{}{"title": "First pass comp", "amount": 2000})
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)

	var created struct {
		Milestone struct {
			ID string `json:"id"`
		} `json:"milestone"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &created))
	milestoneID := created.Milestone.ID
	base := "/api/v1/contracts/" + contract.ID + "/milestones/" + milestoneID

	// Only the vendor sends work for review.
	res, _ = ts.SendRequest(t, tx, http.MethodPut, base, clientToken,
		map[string]interface{}{"status": "in_review"})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, bodyStr = ts.SendRequest(t, tx, http.MethodPut, base, vendorToken,
		map[string]interface{}{"status": "in_review"})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	// Only the client approves; skipping to paid is an illegal transition.
	res, _ = ts.SendRequest(t, tx, http.MethodPut, base, vendorToken,
		map[string]interface{}{"status": "approved"})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, bodyStr = ts.SendRequest(t, tx, http.MethodPut, base, clientToken,
		map[string]interface{}{"status": "approved"})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var fresh models.Milestone
	require.NoError(t, tx.First(&fresh, "id = ?", milestoneID).Error)
	assert.NotNil(t, fresh.CompletedAt)

	// Approved milestones can no longer be deleted.
	res, _ = ts.SendRequest(t, tx, http.MethodDelete, base, clientToken, nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, bodyStr = ts.SendRequest(t, tx, http.MethodPut, base, clientToken,
		map[string]interface{}{"status": "paid"})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, `"status":"paid"`)
}

func TestContract_ListMine(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, client := helpers.CreateUserWithToken(t, tx, models.UserRoleStudio)
	vendorToken, vendor := helpers.CreateUserWithToken(t, tx, models.UserRoleArtist)
	otherToken, _ := helpers.CreateUserWithToken(t, tx, models.UserRoleArtist)

	contract := helpers.CreateTestContract(t, tx, client.ID, vendor.ID, models.ContractStatusActive)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/contracts", vendorToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, contract.ID)

	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/contracts", otherToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotContains(t, bodyStr, contract.ID)
}
