package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/campustrade/campustrade/internal/models"
	"github.com/campustrade/campustrade/internal/targeting"
	apperrors "github.com/campustrade/campustrade/pkg/errors"
)

// SiteStatus reports whether the marketplace is open plus the maintenance
// message shown while it is closed.
type SiteStatus struct {
	Active             bool   `json:"active"`
	MaintenanceMessage string `json:"maintenance_message,omitempty"`
}

// SiteService manages the site-wide availability toggle. Closing the site also
// publishes a permanent warning notification to everyone.
type SiteService struct {
	db    *gorm.DB
	store *NotificationStore
}

// NewSiteService constructs a SiteService.
func NewSiteService(db *gorm.DB, store *NotificationStore) (*SiteService, error) {
	if db == nil {
		return nil, errors.New("site service: db is required")
	}
	if store == nil {
		return nil, errors.New("site service: notification store is required")
	}
	return &SiteService{db: db, store: store}, nil
}

// Status reads the current availability flag. A missing row counts as open.
func (s *SiteService) Status(ctx context.Context) (*SiteStatus, error) {
	ctx = ensureContext(ctx)

	status := SiteStatus{Active: true}

	var settings []models.SiteSetting
	err := s.db.WithContext(ctx).
		Where("key IN ?", []string{models.SettingSiteActive, models.SettingMaintenanceMessage}).
		Find(&settings).Error
	if err != nil {
		return nil, fmt.Errorf("site service: load settings: %w", err)
	}

	for _, setting := range settings {
		switch setting.Key {
		case models.SettingSiteActive:
			active, err := strconv.ParseBool(setting.Value)
			if err == nil {
				status.Active = active
			}
		case models.SettingMaintenanceMessage:
			status.MaintenanceMessage = setting.Value
		}
	}

	if status.Active {
		status.MaintenanceMessage = ""
	}
	return &status, nil
}

// SetStatus flips the availability flag. Disabling the site stores the
// maintenance message and broadcasts it as a permanent warning; the
// notification carries top priority so it pins above everything else.
func (s *SiteService) SetStatus(ctx context.Context, adminID string, active bool, message string) (*SiteStatus, error) {
	ctx = ensureContext(ctx)

	message = strings.TrimSpace(message)
	if !active && len(message) < 10 {
		return nil, apperrors.NewValidation("maintenance message must be at least 10 characters")
	}

	now := time.Now().UTC()
	settings := []models.SiteSetting{
		{Key: models.SettingSiteActive, Value: strconv.FormatBool(active), UpdatedBy: adminID, UpdatedAt: now},
	}
	if !active {
		settings = append(settings, models.SiteSetting{
			Key: models.SettingMaintenanceMessage, Value: message, UpdatedBy: adminID, UpdatedAt: now,
		})
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_by", "updated_at"}),
		}).
		Create(&settings).Error
	if err != nil {
		return nil, fmt.Errorf("site service: save settings: %w", err)
	}

	if !active {
		_, err := s.store.Create(ctx, NotificationDraft{
			Title:       "Marketplace temporarily unavailable",
			Body:        message,
			Severity:    models.SeverityWarning,
			Target:      targeting.Rule{Kind: targeting.KindEveryone},
			Priority:    100,
			IsPermanent: true,
			CreatedBy:   adminID,
		})
		if err != nil {
			return nil, fmt.Errorf("site service: publish maintenance notice: %w", err)
		}
	}

	return s.Status(ctx)
}
