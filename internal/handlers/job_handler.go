package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vfxworks_backend/internal/middleware"
	"vfxworks_backend/internal/models"
	"vfxworks_backend/internal/services"
	"vfxworks_backend/internal/services/dto"
)

type JobHandler struct {
	*BaseHandler
	jobService services.JobService
}

func NewJobHandler(base *BaseHandler, jobService services.JobService) *JobHandler {
	return &JobHandler{BaseHandler: base, jobService: jobService}
}

func (h *JobHandler) RegisterRoutes(r *gin.RouterGroup) {
	jobs := r.Group("/jobs")
	jobs.Use(middleware.AuthMiddleware())
	{
		jobs.POST("", middleware.RequireRoles(models.UserRoleStudio, models.UserRoleAdmin), h.CreateJob)
		jobs.GET("", h.ListJobs)
		jobs.GET("/:jobId", h.GetJob)
		jobs.PUT("/:jobId", h.UpdateJob)
		jobs.PUT("/:jobId/publish", h.PublishJob)
		jobs.PUT("/:jobId/status", h.UpdateJobStatus)
		jobs.DELETE("/:jobId", h.DeleteJob)
	}
}

func (h *JobHandler) CreateJob(c *gin.Context) {
	userID, role, ok := h.Requester(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !h.BindJSON(c, &req) {
		return
	}

	job, err := h.jobService.CreateJob(h.GetDB(c), userID, role, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Job created successfully", "job": job})
}

func (h *JobHandler) ListJobs(c *gin.Context) {
	userID, role, ok := h.Requester(c)
	if !ok {
		return
	}

	var query dto.ListJobsQuery
	if !h.BindQuery(c, &query) {
		return
	}

	list, err := h.jobService.ListJobs(h.GetDB(c), userID, role, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *JobHandler) GetJob(c *gin.Context) {
	userID, role, ok := h.Requester(c)
	if !ok {
		return
	}

	job, err := h.jobService.GetJob(h.GetDB(c), c.Param("jobId"), userID, role)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": job})
}

func (h *JobHandler) UpdateJob(c *gin.Context) {
	userID, role, ok := h.Requester(c)
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if !h.BindJSON(c, &req) {
		return
	}

	job, err := h.jobService.UpdateJob(h.GetDB(c), c.Param("jobId"), userID, role, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job updated successfully", "job": job})
}

// PublishJob is the draft -> open shortcut; the deadline may ride along.
func (h *JobHandler) PublishJob(c *gin.Context) {
	userID, role, ok := h.Requester(c)
	if !ok {
		return
	}

	req := dto.UpdateJobStatusRequest{Status: string(models.JobStatusOpen)}
	if c.Request.ContentLength > 0 {
		var body dto.UpdateJobStatusRequest
		if err := c.ShouldBindJSON(&body); err == nil {
			req.BidDeadline = body.BidDeadline
		}
	}

	job, err := h.jobService.UpdateJobStatus(h.GetDB(c), c.Param("jobId"), userID, role, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job published successfully", "job": job})
}

func (h *JobHandler) UpdateJobStatus(c *gin.Context) {
	userID, role, ok := h.Requester(c)
	if !ok {
		return
	}

	var req dto.UpdateJobStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	job, err := h.jobService.UpdateJobStatus(h.GetDB(c), c.Param("jobId"), userID, role, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job status updated successfully", "job": job})
}

func (h *JobHandler) DeleteJob(c *gin.Context) {
	userID, role, ok := h.Requester(c)
	if !ok {
		return
	}

	if err := h.jobService.DeleteJob(h.GetDB(c), c.Param("jobId"), userID, role); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job deleted successfully"})
}
