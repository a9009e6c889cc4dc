package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vfxworks_backend/internal/middleware"
	"vfxworks_backend/internal/services"
	"vfxworks_backend/internal/services/dto"
)

type DeliverableHandler struct {
	*BaseHandler
	deliverableService services.DeliverableService
}

func NewDeliverableHandler(base *BaseHandler, deliverableService services.DeliverableService) *DeliverableHandler {
	return &DeliverableHandler{BaseHandler: base, deliverableService: deliverableService}
}

func (h *DeliverableHandler) RegisterRoutes(r *gin.RouterGroup) {
	deliverables := r.Group("/deliverables")
	deliverables.Use(middleware.AuthMiddleware())
	{
		deliverables.POST("", h.CreateDeliverable)
		deliverables.GET("/contract/:contractId", h.ListContractDeliverables)
		deliverables.PUT("/:deliverableId", h.UpdateDeliverable)
		deliverables.PUT("/:deliverableId/review", h.ReviewDeliverable)
		deliverables.DELETE("/:deliverableId", h.DeleteDeliverable)
	}
}

func (h *DeliverableHandler) CreateDeliverable(c *gin.Context) {
	userID, role, ok := h.Requester(c)
	if !ok {
		return
	}

	var req dto.CreateDeliverableRequest
	if !h.BindJSON(c, &req) {
		return
	}

	deliverable, err := h.deliverableService.CreateDeliverable(h.GetDB(c), userID, role, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Deliverable submitted successfully", "deliverable": deliverable})
}

func (h *DeliverableHandler) ListContractDeliverables(c *gin.Context) {
	userID, role, ok := h.Requester(c)
	if !ok {
		return
	}

	list, err := h.deliverableService.ListContractDeliverables(h.GetDB(c), c.Param("contractId"), userID, role)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *DeliverableHandler) UpdateDeliverable(c *gin.Context) {
	userID, role, ok := h.Requester(c)
	if !ok {
		return
	}

	var req dto.UpdateDeliverableRequest
	if !h.BindJSON(c, &req) {
		return
	}

	deliverable, err := h.deliverableService.UpdateDeliverable(h.GetDB(c), c.Param("deliverableId"), userID, role, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deliverable updated successfully", "deliverable": deliverable})
}

func (h *DeliverableHandler) ReviewDeliverable(c *gin.Context) {
	userID, role, ok := h.Requester(c)
	if !ok {
		return
	}

	var req dto.ReviewDeliverableRequest
	if !h.BindJSON(c, &req) {
		return
	}

	deliverable, err := h.deliverableService.ReviewDeliverable(h.GetDB(c), c.Param("deliverableId"), userID, role, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deliverable reviewed successfully", "deliverable": deliverable})
}

func (h *DeliverableHandler) DeleteDeliverable(c *gin.Context) {
	userID, role, ok := h.Requester(c)
	if !ok {
		return
	}

	if err := h.deliverableService.DeleteDeliverable(h.GetDB(c), c.Param("deliverableId"), userID, role); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deliverable deleted successfully"})
}
