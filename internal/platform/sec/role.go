// Copyright (c) 2026 Aegis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "fmt"

// # User Roles

// UserRole represents the authorization level granted to an account.
//
// The set is closed: every role check in the portal goes through
// [UserRole.AtLeast] rather than ad hoc string comparison, and unknown
// values are rejected at the boundary by [ParseRole].
type UserRole string

const (
	// Unrestricted system access, including audit-log review
	RoleAdmin UserRole = "ADMIN"

	// Can create and manage portal content (documents, FAQ, media)
	RoleEditor UserRole = "EDITOR"

	// Default read-only role for standard registered users
	RoleViewer UserRole = "VIEWER"
)

// ParseRole validates a raw role string against the closed role set.
func ParseRole(raw string) (UserRole, error) {
	switch UserRole(raw) {
	case RoleAdmin, RoleEditor, RoleViewer:
		return UserRole(raw), nil
	default:
		return "", fmt.Errorf("sec: unknown role %q", raw)
	}
}

// IsValid reports whether the role belongs to the closed set.
func (r UserRole) IsValid() bool {
	return r.level() > 0
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
//
// This is the single role-check capability consumed by every other module
// of the portal (content, documents, FAQ, HR, media, branding).
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-30) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 30
	case RoleEditor:
		return 20
	case RoleViewer:
		return 10
	default:
		return 0
	}
}
