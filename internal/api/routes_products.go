package api

import (
	"github.com/gin-gonic/gin"

	iauth "github.com/campustrade/campustrade/internal/auth"
	"github.com/campustrade/campustrade/internal/handlers"
	"github.com/campustrade/campustrade/internal/middleware"
	"github.com/campustrade/campustrade/internal/models"
)

func registerProductRoutes(api *gin.RouterGroup, jwt *iauth.JWTService, handler *handlers.ProductHandler) {
	group := api.Group("/products")

	// Browsing is public; the storefront works without an account.
	group.GET("", handler.List)
	group.GET("/:id", handler.Get)

	sellers := group.Group("", middleware.Auth(jwt), middleware.RequireRole(models.RoleSeller, models.RoleAdmin))
	sellers.POST("", handler.Create)
	sellers.PUT("/:id", handler.Update)
	sellers.DELETE("/:id", handler.Delete)
}
