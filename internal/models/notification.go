package models

import (
	"time"

	"github.com/campustrade/campustrade/internal/targeting"
)

// Severity classifies a notification for display purposes.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// Valid reports whether the severity is one of the four enumerated values.
func (s Severity) Valid() bool {
	switch s {
	case SeverityInfo, SeveritySuccess, SeverityWarning, SeverityDanger:
		return true
	default:
		return false
	}
}

// Notification is a site announcement addressed by a targeting rule rather
// than fanned out per recipient. Rows are immutable after creation except for
// hard deletion, which cascades to read receipts.
//
// The integer primary key doubles as the insertion sequence: feed ordering
// breaks priority/timestamp ties by creation order, and a monotonically
// increasing ID is what makes that deterministic.
type Notification struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Title    string   `gorm:"type:varchar(200);not null" json:"title"`
	Body     string   `gorm:"type:text;not null" json:"body"`
	Severity Severity `gorm:"type:varchar(16);not null;default:'info'" json:"severity"`

	TargetKind            targeting.RuleKind `gorm:"type:varchar(32);not null" json:"target_kind"`
	TargetRole            string             `gorm:"type:varchar(16)" json:"target_role,omitempty"`
	TargetInstitutionalID string             `gorm:"type:varchar(16)" json:"target_institutional_id,omitempty"`

	Priority    int  `gorm:"not null;default:0;index" json:"priority"`
	IsPermanent bool `gorm:"not null;default:false" json:"is_permanent"`

	CreatedBy string    `gorm:"type:uuid" json:"created_by"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	Receipts []ReadReceipt `gorm:"foreignKey:NotificationID;constraint:OnDelete:CASCADE" json:"-"`
}

// Target reassembles the stored columns into the rule value type.
func (n *Notification) Target() targeting.Rule {
	return targeting.Rule{
		Kind:            n.TargetKind,
		Role:            n.TargetRole,
		InstitutionalID: n.TargetInstitutionalID,
	}
}
