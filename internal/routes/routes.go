package routes

import (
	"github.com/gin-gonic/gin"

	"vfxworks_backend/internal/handlers"
)

// RegisterRoutes mounts the versioned HTTP API.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.JobHandler.RegisterRoutes(api)
		appHandlers.BidHandler.RegisterRoutes(api)
		appHandlers.ContractHandler.RegisterRoutes(api)
		appHandlers.DeliverableHandler.RegisterRoutes(api)
		appHandlers.ReviewHandler.RegisterRoutes(api)
		appHandlers.NotificationHandler.RegisterRoutes(api)
	}
}
