package api

import (
	"github.com/gin-gonic/gin"

	iauth "github.com/campustrade/campustrade/internal/auth"
	"github.com/campustrade/campustrade/internal/handlers"
	"github.com/campustrade/campustrade/internal/middleware"
	"github.com/campustrade/campustrade/internal/models"
)

func registerUserRoutes(api *gin.RouterGroup, jwt *iauth.JWTService, handler *handlers.UserHandler) {
	group := api.Group("/users", middleware.Auth(jwt), middleware.RequireRole(models.RoleAdmin))

	group.GET("", handler.List)
	group.GET("/:id", handler.Get)
	group.PATCH("/:id/active", handler.SetActive)
}
