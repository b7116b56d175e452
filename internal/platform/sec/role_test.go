// Copyright (c) 2026 Aegis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/aegis/internal/platform/sec"
)

/*
TestParseRole verifies the closed role set.
*/
func TestParseRole(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    sec.UserRole
		isValid bool
	}{
		{"admin", "ADMIN", sec.RoleAdmin, true},
		{"editor", "EDITOR", sec.RoleEditor, true},
		{"viewer", "VIEWER", sec.RoleViewer, true},
		{"lowercase_rejected", "admin", "", false},
		{"unknown", "SUPERUSER", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, err := sec.ParseRole(tt.raw)

			if tt.isValid {
				require.NoError(t, err)
				assert.Equal(t, tt.want, role)
				assert.True(t, role.IsValid())
			} else {
				assert.Error(t, err)
			}
		})
	}
}

/*
TestUserRole_AtLeast verifies the role hierarchy ordering.
*/
func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleViewer))
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleAdmin))
	assert.True(t, sec.RoleEditor.AtLeast(sec.RoleViewer))

	assert.False(t, sec.RoleViewer.AtLeast(sec.RoleEditor))
	assert.False(t, sec.RoleEditor.AtLeast(sec.RoleAdmin))

	// An unknown role never satisfies any requirement.
	assert.False(t, sec.UserRole("GHOST").AtLeast(sec.RoleViewer))
}
