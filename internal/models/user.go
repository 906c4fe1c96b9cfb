package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a back-office account allowed to call the API.
type User struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Username     string         `json:"username" gorm:"unique;not null"`
	Email        string         `json:"email" gorm:"unique;not null"`
	PasswordHash string         `json:"-" gorm:"not null"`
	Role         string         `json:"role" gorm:"default:'user'"` // super_admin, admin, user
	EmployeeID   *uint          `json:"employee_id" gorm:"index"`
	IsActive     bool           `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

type UserRole string

const (
	SuperAdmin UserRole = "super_admin"
	Admin      UserRole = "admin"
	Users      UserRole = "user"
)

// CanManageUsers reports whether the role may create other accounts.
func (u *User) CanManageUsers() bool {
	return u.IsActive && (u.Role == string(SuperAdmin) || u.Role == string(Admin))
}

// CanGrant reports whether u may create an account with role. Only a super
// admin hands out admin rights.
func (u *User) CanGrant(role UserRole) bool {
	if !u.CanManageUsers() {
		return false
	}
	if u.Role == string(SuperAdmin) {
		return true
	}
	return role == Users
}
