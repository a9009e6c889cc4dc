package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vfxworks_backend/internal/middleware"
	"vfxworks_backend/internal/services"
	"vfxworks_backend/internal/services/dto"
)

type ContractHandler struct {
	*BaseHandler
	contractService services.ContractService
}

func NewContractHandler(base *BaseHandler, contractService services.ContractService) *ContractHandler {
	return &ContractHandler{BaseHandler: base, contractService: contractService}
}

func (h *ContractHandler) RegisterRoutes(r *gin.RouterGroup) {
	contracts := r.Group("/contracts")
	contracts.Use(middleware.AuthMiddleware())
	{
		contracts.GET("", h.ListMyContracts)
		contracts.GET("/job/:jobId", h.GetContractByJob)
		contracts.GET("/:contractId", h.GetContract)
		contracts.PUT("/:contractId", h.UpdateContractTerms)
		contracts.PUT("/:contractId/status", h.UpdateContractStatus)
		contracts.POST("/:contractId/milestones", h.CreateMilestone)
		contracts.PUT("/:contractId/milestones/:milestoneId", h.UpdateMilestoneStatus)
		contracts.DELETE("/:contractId/milestones/:milestoneId", h.DeleteMilestone)
	}
}

func (h *ContractHandler) ListMyContracts(c *gin.Context) {
	userID, _, ok := h.Requester(c)
	if !ok {
		return
	}

	list, err := h.contractService.ListMyContracts(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ContractHandler) GetContract(c *gin.Context) {
	userID, role, ok := h.Requester(c)
	if !ok {
		return
	}

	contract, err := h.contractService.GetContract(h.GetDB(c), c.Param("contractId"), userID, role)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contract": contract})
}

func (h *ContractHandler) GetContractByJob(c *gin.Context) {
	userID, role, ok := h.Requester(c)
	if !ok {
		return
	}

	contract, err := h.contractService.GetContractByJob(h.GetDB(c), c.Param("jobId"), userID, role)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contract": contract})
}

func (h *ContractHandler) UpdateContractTerms(c *gin.Context) {
	userID, role, ok := h.Requester(c)
	if !ok {
		return
	}

	var req dto.UpdateContractTermsRequest
	if !h.BindJSON(c, &req) {
		return
	}

	contract, err := h.contractService.UpdateContractTerms(h.GetDB(c), c.Param("contractId"), userID, role, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Contract updated successfully", "contract": contract})
}

func (h *ContractHandler) UpdateContractStatus(c *gin.Context) {
	userID, role, ok := h.Requester(c)
	if !ok {
		return
	}

	var req dto.UpdateContractStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	contract, err := h.contractService.UpdateContractStatus(h.GetDB(c), c.Param("contractId"), userID, role, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Contract status updated successfully", "contract": contract})
}

func (h *ContractHandler) CreateMilestone(c *gin.Context) {
	userID, role, ok := h.Requester(c)
	if !ok {
		return
	}

	var req dto.CreateMilestoneRequest
	if !h.BindJSON(c, &req) {
		return
	}

	milestone, err := h.contractService.CreateMilestone(h.GetDB(c), c.Param("contractId"), userID, role, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Milestone created successfully", "milestone": milestone})
}

func (h *ContractHandler) UpdateMilestoneStatus(c *gin.Context) {
	userID, role, ok := h.Requester(c)
	if !ok {
		return
	}

	var req dto.UpdateMilestoneStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	milestone, err := h.contractService.UpdateMilestoneStatus(h.GetDB(c), c.Param("milestoneId"), userID, role, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Milestone updated successfully", "milestone": milestone})
}

func (h *ContractHandler) DeleteMilestone(c *gin.Context) {
	userID, role, ok := h.Requester(c)
	if !ok {
		return
	}

	if err := h.contractService.DeleteMilestone(h.GetDB(c), c.Param("milestoneId"), userID, role); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Milestone deleted successfully"})
}
