package api

import (
	"github.com/gin-gonic/gin"

	iauth "github.com/campustrade/campustrade/internal/auth"
	"github.com/campustrade/campustrade/internal/handlers"
	"github.com/campustrade/campustrade/internal/middleware"
	"github.com/campustrade/campustrade/internal/models"
)

func registerSiteRoutes(api *gin.RouterGroup, jwt *iauth.JWTService, handler *handlers.SiteHandler) {
	group := api.Group("/site")

	group.GET("/status", handler.Status)
	group.PUT("/status", middleware.Auth(jwt), middleware.RequireRole(models.RoleAdmin), handler.SetStatus)
}
