package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	apperrors "github.com/campustrade/campustrade/pkg/errors"
	"github.com/campustrade/campustrade/pkg/response"
)

// HealthHandler reports process and database liveness.
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health responds with service status, pinging the database.
func (h *HealthHandler) Health(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		response.Error(c, apperrors.New("SERVICE_UNAVAILABLE", "database unreachable", http.StatusServiceUnavailable))
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "ok"})
}
