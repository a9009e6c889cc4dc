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

func TestNotification_BidReceivedFlow(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	studioToken, studio := helpers.CreateUserWithToken(t, tx, models.UserRoleStudio)
	artistToken, _ := helpers.CreateUserWithToken(t, tx, models.UserRoleArtist)
	job := helpers.CreateTestJob(t, tx, studio.ID, models.JobStatusOpen)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/bids", artistToken,
		map[string]interface{}{"job_id": job.ID, "amount": 2000})
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)

	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/notifications", studioToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var list struct {
		Notifications []struct {
			ID     string  `json:"id"`
			Type   string  `json:"type"`
			ReadAt *string `json:"read_at"`
		} `json:"notifications"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &list))
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "bid_received", list.Notifications[0].Type)
	assert.Nil(t, list.Notifications[0].ReadAt)

	notificationID := list.Notifications[0].ID

	// Another user cannot mark it read.
	res, _ = ts.SendRequest(t, tx, http.MethodPut, "/api/v1/notifications/"+notificationID+"/read", artistToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, bodyStr = ts.SendRequest(t, tx, http.MethodPut, "/api/v1/notifications/"+notificationID+"/read", studioToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	// Unread filter no longer returns it.
	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/notifications?unread=true", studioToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, `"total":0`)
}
