package api

import (
	"github.com/gin-gonic/gin"

	iauth "github.com/campustrade/campustrade/internal/auth"
	"github.com/campustrade/campustrade/internal/handlers"
	"github.com/campustrade/campustrade/internal/middleware"
	"github.com/campustrade/campustrade/internal/models"
)

func registerCategoryRoutes(api *gin.RouterGroup, jwt *iauth.JWTService, handler *handlers.CategoryHandler) {
	group := api.Group("/categories")

	group.GET("", handler.List)

	admin := group.Group("", middleware.Auth(jwt), middleware.RequireRole(models.RoleAdmin))
	admin.POST("", handler.Create)
	admin.PUT("/:id", handler.Update)
	admin.DELETE("/:id", handler.Delete)
}
