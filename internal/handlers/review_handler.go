package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vfxworks_backend/internal/middleware"
	"vfxworks_backend/internal/models"
	"vfxworks_backend/internal/services"
	"vfxworks_backend/internal/services/dto"
)

type ReviewHandler struct {
	*BaseHandler
	reviewService services.ReviewService
}

func NewReviewHandler(base *BaseHandler, reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{BaseHandler: base, reviewService: reviewService}
}

func (h *ReviewHandler) RegisterRoutes(r *gin.RouterGroup) {
	reviews := r.Group("/reviews")
	reviews.Use(middleware.AuthMiddleware())
	{
		reviews.POST("", h.CreateReview)
		reviews.GET("/user/:userId", h.ListUserReviews)
		reviews.GET("/user/:userId/rating", h.GetUserRating)
		reviews.GET("/:reviewId", h.GetReview)
		reviews.PUT("/:reviewId", h.UpdateReview)
		reviews.DELETE("/:reviewId", h.DeleteReview)
	}
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, _, ok := h.Requester(c)
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if !h.BindJSON(c, &req) {
		return
	}

	review, err := h.reviewService.CreateReview(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Review created successfully", "review": review})
}

func (h *ReviewHandler) ListUserReviews(c *gin.Context) {
	userID, role, ok := h.Requester(c)
	if !ok {
		return
	}

	targetID := c.Param("userId")
	// Admins and the review target see hidden reviews too.
	includeHidden := role == models.UserRoleAdmin || userID == targetID

	list, err := h.reviewService.ListTargetReviews(h.GetDB(c), targetID, includeHidden)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ReviewHandler) GetUserRating(c *gin.Context) {
	if _, _, ok := h.Requester(c); !ok {
		return
	}

	rating, err := h.reviewService.GetRating(h.GetDB(c), c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rating)
}

func (h *ReviewHandler) GetReview(c *gin.Context) {
	if _, _, ok := h.Requester(c); !ok {
		return
	}

	review, err := h.reviewService.GetReview(h.GetDB(c), c.Param("reviewId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"review": review})
}

func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	userID, _, ok := h.Requester(c)
	if !ok {
		return
	}

	var req dto.UpdateReviewRequest
	if !h.BindJSON(c, &req) {
		return
	}

	review, err := h.reviewService.UpdateReview(h.GetDB(c), c.Param("reviewId"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review updated successfully", "review": review})
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	userID, role, ok := h.Requester(c)
	if !ok {
		return
	}

	if err := h.reviewService.DeleteReview(h.GetDB(c), c.Param("reviewId"), userID, role); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}
