package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_IsManager(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		expected bool
	}{
		{name: "Manager role", role: RoleManager, expected: true},
		{name: "Staff role", role: RoleStaff, expected: false},
		{name: "Empty role", role: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &User{Role: tt.role}
			assert.Equal(t, tt.expected, user.IsManager())
		})
	}
}

func TestUser_UpdateFromClaims(t *testing.T) {
	t.Run("Updates display name and email", func(t *testing.T) {
		user := &User{DisplayName: "旧名"}
		email := "hanako@example.com"

		user.UpdateFromClaims("山田 花子", &email)

		assert.Equal(t, "山田 花子", user.DisplayName)
		assert.Equal(t, &email, user.Email)
		assert.NotNil(t, user.LastLoginAt)
	})

	t.Run("Keeps existing values when claims are empty", func(t *testing.T) {
		existing := "hanako@example.com"
		user := &User{DisplayName: "山田 花子", Email: &existing}

		user.UpdateFromClaims("", nil)

		assert.Equal(t, "山田 花子", user.DisplayName)
		assert.Equal(t, &existing, user.Email)
		assert.NotNil(t, user.LastLoginAt)
	})
}
