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

func TestReview_OnlyOnCompletedContract(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	clientToken, client := helpers.CreateUserWithToken(t, tx, models.UserRoleStudio)
	vendorToken, vendor := helpers.CreateUserWithToken(t, tx, models.UserRoleArtist)

	active := helpers.CreateTestContract(t, tx, client.ID, vendor.ID, models.ContractStatusActive)

	// Active contracts cannot be reviewed yet.
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/reviews", clientToken,
		map[string]interface{}{"contract_id": active.ID, "rating": 5})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "completed")

	completed := helpers.CreateTestContract(t, tx, client.ID, vendor.ID, models.ContractStatusCompleted)

	// The vendor cannot review; only the client rates the work.
	res, _ = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/reviews", vendorToken,
		map[string]interface{}{"contract_id": completed.ID, "rating": 5})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, bodyStr = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/reviews", clientToken,
		map[string]interface{}{"contract_id": completed.ID, "rating": 5, "review_text": "Delivered ahead of schedule."})
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, vendor.ID)

	// One review per contract.
	res, bodyStr = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/reviews", clientToken,
		map[string]interface{}{"contract_id": completed.ID, "rating": 4})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "already exists")
}

// The target's aggregate rating is the mean of public reviews rounded to the
// nearest half point, and clears back to null when nothing public remains.
func TestReview_RatingAggregation(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	clientToken, client := helpers.CreateUserWithToken(t, tx, models.UserRoleStudio)
	_, vendor := helpers.CreateUserWithToken(t, tx, models.UserRoleArtist)

	ratings := []int{5, 4, 4} // mean 4.33 -> 4.5
	reviewIDs := make([]string, 0, len(ratings))
	for _, rating := range ratings {
		contract := helpers.CreateTestContract(t, tx, client.ID, vendor.ID, models.ContractStatusCompleted)
		res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/reviews", clientToken,
			map[string]interface{}{"contract_id": contract.ID, "rating": rating})
		require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)

		var created struct {
			Review struct {
				ID string `json:"id"`
			} `json:"review"`
		}
		require.NoError(t, json.Unmarshal([]byte(bodyStr), &created))
		reviewIDs = append(reviewIDs, created.Review.ID)
	}

	var profile models.Profile
	require.NoError(t, tx.First(&profile, "user_id = ?", vendor.ID).Error)
	require.NotNil(t, profile.Rating)
	assert.Equal(t, 4.5, *profile.Rating)

	// The rating endpoint reports the same aggregate.
	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/reviews/user/"+vendor.ID+"/rating", clientToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, `"rating":4.5`)
	assert.Contains(t, bodyStr, `"review_count":3`)

	// Hiding a review recomputes: mean of 4,4 is 4.0.
	res, bodyStr = ts.SendRequest(t, tx, http.MethodPut, "/api/v1/reviews/"+reviewIDs[0], clientToken,
		map[string]interface{}{"is_public": false})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	require.NoError(t, tx.First(&profile, "user_id = ?", vendor.ID).Error)
	require.NotNil(t, profile.Rating)
	assert.Equal(t, 4.0, *profile.Rating)

	// Deleting the rest clears the rating entirely.
	for _, id := range reviewIDs[1:] {
		res, bodyStr = ts.SendRequest(t, tx, http.MethodDelete, "/api/v1/reviews/"+id, clientToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	}
	require.NoError(t, tx.First(&profile, "user_id = ?", vendor.ID).Error)
	assert.Nil(t, profile.Rating)
}

func TestReview_HiddenReviewsVisibility(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	clientToken, client := helpers.CreateUserWithToken(t, tx, models.UserRoleStudio)
	vendorToken, vendor := helpers.CreateUserWithToken(t, tx, models.UserRoleArtist)
	strangerToken, _ := helpers.CreateUserWithToken(t, tx, models.UserRoleArtist)

	contract := helpers.CreateTestContract(t, tx, client.ID, vendor.ID, models.ContractStatusCompleted)
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/reviews", clientToken,
		map[string]interface{}{"contract_id": contract.ID, "rating": 2, "is_public": false})
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)

	// Strangers only see public reviews.
	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/reviews/user/"+vendor.ID, strangerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, `"total":0`)

	// The target sees reviews about them, hidden included.
	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/reviews/user/"+vendor.ID, vendorToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, `"total":1`)

	// A private review never counts toward the rating.
	var profile models.Profile
	require.NoError(t, tx.First(&profile, "user_id = ?", vendor.ID).Error)
	assert.Nil(t, profile.Rating)
}
