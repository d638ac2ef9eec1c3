package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/campustrade/campustrade/internal/middleware"
	"github.com/campustrade/campustrade/internal/services"
	"github.com/campustrade/campustrade/internal/targeting"
)

// currentUserID reads the authenticated user's ID set by the auth middleware.
func currentUserID(c *gin.Context) string {
	return c.GetString(middleware.CtxUserIDKey)
}

// currentRole reads the authenticated user's role.
func currentRole(c *gin.Context) string {
	return c.GetString(middleware.CtxRoleKey)
}

// currentCaller assembles the service-layer caller identity from the request
// context. Token claims carry everything targeting needs, so no directory
// lookup happens per request.
func currentCaller(c *gin.Context) services.Caller {
	return services.Caller{
		UserID: currentUserID(c),
		Profile: targeting.Profile{
			Role:            currentRole(c),
			InstitutionalID: c.GetString(middleware.CtxInstitutionalIDKey),
		},
	}
}
