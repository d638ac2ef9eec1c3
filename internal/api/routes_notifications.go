package api

import (
	"github.com/gin-gonic/gin"

	iauth "github.com/campustrade/campustrade/internal/auth"
	"github.com/campustrade/campustrade/internal/handlers"
	"github.com/campustrade/campustrade/internal/middleware"
	"github.com/campustrade/campustrade/internal/models"
)

func registerNotificationRoutes(api *gin.RouterGroup, jwt *iauth.JWTService, handler *handlers.NotificationHandler) {
	group := api.Group("/notifications", middleware.Auth(jwt))

	group.GET("", handler.Feed)
	group.POST("/:id/read", handler.MarkRead)
	group.POST("/read-all", handler.MarkAllRead)

	admin := group.Group("", middleware.RequireRole(models.RoleAdmin))
	admin.POST("", handler.Create)
	admin.DELETE("/:id", handler.Delete)
	admin.GET("/admin", handler.AdminList)
}
