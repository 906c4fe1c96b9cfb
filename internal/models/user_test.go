package models

import "testing"

func TestUserCanGrant(t *testing.T) {
	tests := []struct {
		name   string
		caller User
		role   UserRole
		want   bool
	}{
		{"super admin to super admin", User{Role: "super_admin", IsActive: true}, SuperAdmin, true},
		{"super admin to admin", User{Role: "super_admin", IsActive: true}, Admin, true},
		{"admin to user", User{Role: "admin", IsActive: true}, Users, true},
		{"admin to admin", User{Role: "admin", IsActive: true}, Admin, false},
		{"admin to super admin", User{Role: "admin", IsActive: true}, SuperAdmin, false},
		{"user to user", User{Role: "user", IsActive: true}, Users, false},
		{"disabled super admin", User{Role: "super_admin"}, Users, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.caller.CanGrant(tt.role); got != tt.want {
				t.Errorf("CanGrant(%s) = %v, want %v", tt.role, got, tt.want)
			}
		})
	}
}
