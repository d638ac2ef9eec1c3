package api

import (
	"github.com/gin-gonic/gin"

	iauth "github.com/campustrade/campustrade/internal/auth"
	"github.com/campustrade/campustrade/internal/handlers"
	"github.com/campustrade/campustrade/internal/middleware"
	"github.com/campustrade/campustrade/internal/models"
)

func registerReviewRoutes(api *gin.RouterGroup, jwt *iauth.JWTService, handler *handlers.ReviewHandler) {
	group := api.Group("/products/:id/reviews")

	group.GET("", handler.ListByProduct)

	group.POST("", middleware.Auth(jwt), middleware.RequireRole(models.RoleBuyer), handler.Create)
	group.DELETE("/:reviewId", middleware.Auth(jwt), handler.Delete)
}
