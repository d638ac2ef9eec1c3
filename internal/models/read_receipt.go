package models

import "time"

// ReadReceipt marks that a user has seen a notification. The composite
// primary key guarantees at most one receipt per (notification, user) pair;
// absence of a row means unread. Receipts are created once and only removed
// by cascade when their notification is deleted.
type ReadReceipt struct {
	NotificationID uint      `gorm:"primaryKey;autoIncrement:false" json:"notification_id"`
	UserID         string    `gorm:"primaryKey;type:uuid" json:"user_id"`
	ReadAt         time.Time `gorm:"not null" json:"read_at"`
}
