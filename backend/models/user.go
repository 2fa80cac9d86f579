package models

import "gorm.io/gorm"

// Admin and Student are deliberately separate tables. Login resolves the role
// by which table the email was found in, so no shared users table exists.

type Admin struct {
	gorm.Model
	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"unique;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"default:admin" json:"role"`
	ProfileImage string `json:"profileImage"`
}

type Student struct {
	gorm.Model
	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"unique;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"default:student" json:"role"`
	ProfileImage string `json:"profileImage"`
	Grade        string `gorm:"index" json:"grade"`
}

const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)
