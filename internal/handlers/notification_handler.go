package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vfxworks_backend/internal/middleware"
	"vfxworks_backend/internal/services"
)

type NotificationHandler struct {
	*BaseHandler
	notificationService services.NotificationService
}

func NewNotificationHandler(base *BaseHandler, notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{BaseHandler: base, notificationService: notificationService}
}

func (h *NotificationHandler) RegisterRoutes(r *gin.RouterGroup) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	{
		notifications.GET("", h.ListNotifications)
		notifications.PUT("/:notificationId/read", h.MarkRead)
	}
}

func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, _, ok := h.Requester(c)
	if !ok {
		return
	}

	unreadOnly := c.Query("unread") == "true"
	notifications, err := h.notificationService.ListNotifications(h.GetDB(c), userID, unreadOnly)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications, "total": len(notifications)})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, _, ok := h.Requester(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(h.GetDB(c), c.Param("notificationId"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}
