package models

import "time"

// Site setting keys.
const (
	SettingSiteActive         = "site_active"
	SettingMaintenanceMessage = "maintenance_message"
)

// SiteSetting stores a site-wide key/value configuration row.
type SiteSetting struct {
	Key       string    `gorm:"primaryKey;type:varchar(64)" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedBy string    `gorm:"type:uuid" json:"updated_by"`
	UpdatedAt time.Time `json:"updated_at"`
}
