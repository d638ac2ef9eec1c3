package models

import "github.com/campustrade/campustrade/internal/targeting"

// Marketplace roles. The set is closed: there is no custom-role facility.
const (
	RoleAdmin  = "admin"
	RoleSeller = "seller"
	RoleBuyer  = "buyer"
)

// ValidRole reports whether the value is one of the three marketplace roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleSeller, RoleBuyer:
		return true
	default:
		return false
	}
}

// User describes a registered marketplace member. The institutional ID is the
// university-issued identifier; its length is a deployment constant validated
// by the user service, so the column stays generously sized.
type User struct {
	BaseModel

	InstitutionalID string `gorm:"type:varchar(16);uniqueIndex;not null" json:"institutional_id"`
	Email           string `gorm:"uniqueIndex;not null" json:"email"`
	Name            string `gorm:"type:varchar(100);not null" json:"name"`
	Password        string `gorm:"not null" json:"-"`
	Role            string `gorm:"type:varchar(16);not null;index" json:"role"`

	IsActive bool `gorm:"default:true" json:"is_active"`
}

// Profile projects the user attributes used for notification targeting.
func (u *User) Profile() targeting.Profile {
	return targeting.Profile{
		Role:            u.Role,
		InstitutionalID: u.InstitutionalID,
	}
}
