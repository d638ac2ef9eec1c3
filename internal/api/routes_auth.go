package api

import (
	"github.com/gin-gonic/gin"

	iauth "github.com/campustrade/campustrade/internal/auth"
	"github.com/campustrade/campustrade/internal/handlers"
	"github.com/campustrade/campustrade/internal/middleware"
)

func registerAuthRoutes(api *gin.RouterGroup, jwt *iauth.JWTService, handler *handlers.AuthHandler) {
	group := api.Group("/auth")

	group.POST("/register", handler.Register)
	group.POST("/login", handler.Login)
	group.GET("/me", middleware.Auth(jwt), handler.Me)
}
