package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/campustrade/campustrade/pkg/errors"
	"github.com/campustrade/campustrade/pkg/metrics"
	"github.com/campustrade/campustrade/pkg/response"
)

// RequireRole checks that the authenticated caller holds one of the provided roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get(CtxRoleKey)
		if !ok {
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}

		role, _ := v.(string)
		for _, allowed := range roles {
			if role == allowed {
				metrics.RoleChecks.WithLabelValues(role, "allowed").Inc()
				c.Next()
				return
			}
		}

		metrics.RoleChecks.WithLabelValues(role, "denied").Inc()
		response.Error(c, errors.ErrForbidden)
		c.Abort()
	}
}
