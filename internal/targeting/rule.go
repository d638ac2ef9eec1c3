// Package targeting decides which users a notification is addressed to.
//
// Rules are pure data and Matches is a total function of (rule, profile); the
// feed calls it once per (notification, user) pair, so it must stay free of
// I/O and side effects.
package targeting

import (
	"errors"
	"fmt"
)

// RuleKind discriminates the supported targeting rule variants.
type RuleKind string

const (
	// KindEveryone addresses every user.
	KindEveryone RuleKind = "everyone"
	// KindRole addresses users holding a specific role.
	KindRole RuleKind = "role"
	// KindInstitutionalID addresses the single user with a given institutional ID.
	KindInstitutionalID RuleKind = "institutional_id"
)

// ErrInvalidRule reports a rule kind outside the supported set. The store
// validates rules at creation time, so hitting this indicates corrupted data
// or a programming error; callers treat it as internal, never as user input.
var ErrInvalidRule = errors.New("targeting: unrecognised rule kind")

// Rule is the stored predicate determining a notification's recipient set.
// Role is meaningful only when Kind == KindRole, InstitutionalID only when
// Kind == KindInstitutionalID.
type Rule struct {
	Kind            RuleKind `json:"kind"`
	Role            string   `json:"role,omitempty"`
	InstitutionalID string   `json:"institutional_id,omitempty"`
}

// Profile carries the caller attributes a rule can match against.
type Profile struct {
	Role            string `json:"role"`
	InstitutionalID string `json:"institutional_id"`
}

// Matches reports whether the profile satisfies the rule.
func Matches(rule Rule, profile Profile) (bool, error) {
	switch rule.Kind {
	case KindEveryone:
		return true, nil
	case KindRole:
		return profile.Role == rule.Role, nil
	case KindInstitutionalID:
		return profile.InstitutionalID == rule.InstitutionalID, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrInvalidRule, rule.Kind)
	}
}
