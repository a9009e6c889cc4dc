package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"vfxworks_backend/internal/middleware"
	"vfxworks_backend/internal/models"
	"vfxworks_backend/internal/services"
	"vfxworks_backend/internal/services/dto"
)

type BidHandler struct {
	*BaseHandler
	bidService services.BidService
}

func NewBidHandler(base *BaseHandler, bidService services.BidService) *BidHandler {
	return &BidHandler{BaseHandler: base, bidService: bidService}
}

func (h *BidHandler) RegisterRoutes(r *gin.RouterGroup) {
	bids := r.Group("/bids")
	bids.Use(middleware.AuthMiddleware())
	{
		// Submission gets its own rate limit on top of the global one;
		// bid spam is the cheapest abuse vector on the platform.
		bids.POST("",
			middleware.RequireRoles(models.UserRoleArtist, models.UserRoleStudio),
			middleware.RateLimitMiddleware(20, time.Minute),
			h.SubmitBid)
		bids.GET("/my", h.ListMyBids)
		bids.GET("/job/:jobId", h.ListJobBids)
		bids.GET("/:bidId", h.GetBid)
		bids.PUT("/:bidId", h.UpdateBid)
		bids.PUT("/:bidId/status", h.UpdateBidStatus)
		bids.DELETE("/:bidId", h.WithdrawBid)
	}
}

func (h *BidHandler) SubmitBid(c *gin.Context) {
	userID, role, ok := h.Requester(c)
	if !ok {
		return
	}

	var req dto.CreateBidRequest
	if !h.BindJSON(c, &req) {
		return
	}

	bid, err := h.bidService.SubmitBid(h.GetDB(c), userID, role, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Bid submitted successfully", "bid": bid})
}

func (h *BidHandler) ListMyBids(c *gin.Context) {
	userID, _, ok := h.Requester(c)
	if !ok {
		return
	}

	list, err := h.bidService.ListMyBids(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *BidHandler) ListJobBids(c *gin.Context) {
	userID, role, ok := h.Requester(c)
	if !ok {
		return
	}

	list, err := h.bidService.ListJobBids(h.GetDB(c), c.Param("jobId"), userID, role)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *BidHandler) GetBid(c *gin.Context) {
	userID, role, ok := h.Requester(c)
	if !ok {
		return
	}

	bid, err := h.bidService.GetBid(h.GetDB(c), c.Param("bidId"), userID, role)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bid": bid})
}

func (h *BidHandler) UpdateBid(c *gin.Context) {
	userID, _, ok := h.Requester(c)
	if !ok {
		return
	}

	var req dto.UpdateBidRequest
	if !h.BindJSON(c, &req) {
		return
	}

	bid, err := h.bidService.UpdateBid(h.GetDB(c), c.Param("bidId"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bid updated successfully", "bid": bid})
}

func (h *BidHandler) UpdateBidStatus(c *gin.Context) {
	userID, role, ok := h.Requester(c)
	if !ok {
		return
	}

	var req dto.UpdateBidStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	bid, err := h.bidService.UpdateBidStatus(h.GetDB(c), c.Param("bidId"), userID, role, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bid status updated successfully", "bid": bid})
}

func (h *BidHandler) WithdrawBid(c *gin.Context) {
	userID, _, ok := h.Requester(c)
	if !ok {
		return
	}

	if err := h.bidService.WithdrawBid(h.GetDB(c), c.Param("bidId"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bid withdrawn successfully"})
}
