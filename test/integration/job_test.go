package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vfxworks_backend/internal/models"
	"vfxworks_backend/test/helpers"
)

func TestJob_CreateAndPublishFlow(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	studioToken, _ := helpers.CreateUserWithToken(t, tx, models.UserRoleStudio)

	// Draft without a bid deadline.
	jobBody := map[string]interface{}{
		"title":        "Set extension for night market sequence",
		"description":  "Extend the practical set for shots 120-180.",
		"job_type":     "freelance",
		"payment_type": "fixed",
		"budget_min":   8000,
		"budget_max":   15000,
	}
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/jobs", studioToken, jobBody)
	require.Equal(t, http.StatusCreated, res.StatusCode, "create: "+bodyStr)

	var created struct {
		Job struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"job"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &created))
	assert.Equal(t, "draft", created.Job.Status)
	jobID := created.Job.ID

	// Publishing an open-bidding job without a deadline is rejected.
	res, bodyStr = ts.SendRequest(t, tx, http.MethodPut, "/api/v1/jobs/"+jobID+"/publish", studioToken, nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "bid deadline")

	// With a deadline it goes through.
	deadline := time.Now().Add(72 * time.Hour).Format(time.RFC3339)
	res, bodyStr = ts.SendRequest(t, tx, http.MethodPut, "/api/v1/jobs/"+jobID+"/publish", studioToken,
		map[string]interface{}{"bid_deadline": deadline})
	require.Equal(t, http.StatusOK, res.StatusCode, "publish: "+bodyStr)
	assert.Contains(t, bodyStr, `"status":"open"`)
}

func TestJob_CreateRejectedForArtist(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	artistToken, _ := helpers.CreateUserWithToken(t, tx, models.UserRoleArtist)

	jobBody := map[string]interface{}{
		"title":    "Roto cleanup",
		"job_type": "freelance",
	}
	res, _ := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/jobs", artistToken, jobBody)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestJob_DirectAssignmentRequiresAssignees(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	studioToken, _ := helpers.CreateUserWithToken(t, tx, models.UserRoleStudio)
	_, artist := helpers.CreateUserWithToken(t, tx, models.UserRoleArtist)

	// Direct mode with no assignees is rejected outright.
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/jobs", studioToken, map[string]interface{}{
		"title":           "Lighting supervisor",
		"job_type":        "studio_salaried",
		"assignment_mode": "direct",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "assignee")

	// With an assignee it is accepted, and publish works without a deadline.
	res, bodyStr = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/jobs", studioToken, map[string]interface{}{
		"title":       "Lighting supervisor",
		"job_type":    "studio_salaried",
		"assigned_to": []string{artist.ID},
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)

	var created struct {
		Job struct {
			ID string `json:"id"`
		} `json:"job"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &created))

	res, bodyStr = ts.SendRequest(t, tx, http.MethodPut, "/api/v1/jobs/"+created.Job.ID+"/publish", studioToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	// The assignee is notified.
	var count int64
	require.NoError(t, tx.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", artist.ID, "job_published").
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestJob_IllegalTransitionsRejected(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	studioToken, studio := helpers.CreateUserWithToken(t, tx, models.UserRoleStudio)

	// draft cannot jump straight to completed.
	draft := helpers.CreateTestJob(t, tx, studio.ID, models.JobStatusDraft)
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPut, "/api/v1/jobs/"+draft.ID+"/status", studioToken,
		map[string]interface{}{"status": "completed"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "transition")

	// awarded cannot reopen.
	awarded := helpers.CreateTestJob(t, tx, studio.ID, models.JobStatusAwarded)
	res, bodyStr = ts.SendRequest(t, tx, http.MethodPut, "/api/v1/jobs/"+awarded.ID+"/status", studioToken,
		map[string]interface{}{"status": "open"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "transition")

	// under_review may fall back to open.
	underReview := helpers.CreateTestJob(t, tx, studio.ID, models.JobStatusUnderReview)
	res, bodyStr = ts.SendRequest(t, tx, http.MethodPut, "/api/v1/jobs/"+underReview.ID+"/status", studioToken,
		map[string]interface{}{"status": "open"})
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
}

func TestJob_EditLockedOnceAwarded(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	studioToken, studio := helpers.CreateUserWithToken(t, tx, models.UserRoleStudio)
	job := helpers.CreateTestJob(t, tx, studio.ID, models.JobStatusAwarded)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPut, "/api/v1/jobs/"+job.ID, studioToken,
		map[string]interface{}{"title": "Changed title"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "no longer be modified")
}

func TestJob_VisibilityRules(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, studio := helpers.CreateUserWithToken(t, tx, models.UserRoleStudio)
	artistToken, _ := helpers.CreateUserWithToken(t, tx, models.UserRoleArtist)
	adminToken, _ := helpers.CreateUserWithToken(t, tx, models.UserRoleAdmin)

	draft := helpers.CreateTestJob(t, tx, studio.ID, models.JobStatusDraft)
	open := helpers.CreateTestJob(t, tx, studio.ID, models.JobStatusOpen)

	// A stranger cannot see a draft; it reads as not found.
	res, _ := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/jobs/"+draft.ID, artistToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	// Open jobs with open bidding are visible to everyone.
	res, _ = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/jobs/"+open.ID, artistToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	// Admins see drafts.
	res, _ = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/jobs/"+draft.ID, adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	// Listing as the artist only surfaces the open job.
	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/jobs", artistToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, open.ID)
	assert.NotContains(t, bodyStr, draft.ID)
}

func TestJob_ViewCounter(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	studioToken, studio := helpers.CreateUserWithToken(t, tx, models.UserRoleStudio)
	artistToken, _ := helpers.CreateUserWithToken(t, tx, models.UserRoleArtist)
	job := helpers.CreateTestJob(t, tx, studio.ID, models.JobStatusOpen)

	// The owner's own reads do not count.
	res, _ := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/jobs/"+job.ID, studioToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	// A visitor's read does.
	res, _ = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/jobs/"+job.ID, artistToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var fresh models.Job
	require.NoError(t, tx.First(&fresh, "id = ?", job.ID).Error)
	assert.Equal(t, 1, fresh.Views)
}

func TestJob_DeleteOnlyBeforeAward(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	studioToken, studio := helpers.CreateUserWithToken(t, tx, models.UserRoleStudio)
	_, artist := helpers.CreateUserWithToken(t, tx, models.UserRoleArtist)

	// Deleting an open job also removes its bids.
	open := helpers.CreateTestJob(t, tx, studio.ID, models.JobStatusOpen)
	bid := helpers.CreateTestBid(t, tx, open.ID, artist.ID, 3000)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodDelete, "/api/v1/jobs/"+open.ID, studioToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var bidCount int64
	require.NoError(t, tx.Model(&models.Bid{}).Where("id = ?", bid.ID).Count(&bidCount).Error)
	assert.EqualValues(t, 0, bidCount)

	// An awarded job refuses deletion.
	awarded := helpers.CreateTestJob(t, tx, studio.ID, models.JobStatusAwarded)
	res, _ = ts.SendRequest(t, tx, http.MethodDelete, "/api/v1/jobs/"+awarded.ID, studioToken, nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestJob_ListFilters(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	studioToken, studio := helpers.CreateUserWithToken(t, tx, models.UserRoleStudio)

	helpers.CreateTestJob(t, tx, studio.ID, models.JobStatusOpen)
	helpers.CreateTestJob(t, tx, studio.ID, models.JobStatusDraft)

	url := fmt.Sprintf("/api/v1/jobs?status=%s&page=1&page_size=10", models.JobStatusDraft)
	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, url, studioToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var list struct {
		Jobs  []json.RawMessage `json:"jobs"`
		Total int64             `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &list))
	assert.EqualValues(t, 1, list.Total)
	assert.Contains(t, bodyStr, `"status":"draft"`)
}
