package routes

import (
	"github.com/gin-gonic/gin"

	"cloudedumatch_backend/internal/handlers"
	"cloudedumatch_backend/internal/logger"
)

// RegisterRoutes mounts every handler group under /api/v1.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.Health.RegisterRoutes(api)
		appHandlers.Auth.RegisterRoutes(api)
		appHandlers.Verification.RegisterRoutes(api)
		appHandlers.TeacherPool.RegisterRoutes(api)
		appHandlers.Matching.RegisterRoutes(api)
		appHandlers.Points.RegisterRoutes(api)
		appHandlers.Organization.RegisterRoutes(api)
		appHandlers.Announcement.RegisterRoutes(api)
		appHandlers.Admin.RegisterRoutes(api)
		appHandlers.Community.RegisterRoutes(api)
		appHandlers.Campus.RegisterRoutes(api)
		appHandlers.Qa.RegisterRoutes(api)
		appHandlers.Conversation.RegisterRoutes(api)
		appHandlers.Notification.RegisterRoutes(api)
		appHandlers.Aid.RegisterRoutes(api)
		appHandlers.Association.RegisterRoutes(api)
		appHandlers.File.RegisterRoutes(api)
	}

	logger.Info("API routes registered", "prefix", "/api/v1")
}
