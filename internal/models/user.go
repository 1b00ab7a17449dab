package models

import (
	"time"
)

// AccountStatus 帳號狀態
type AccountStatus int

const (
	StatusActive    AccountStatus = 0
	StatusSuspended AccountStatus = 1
	StatusBanned    AccountStatus = 2
)

type User struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	Username     string        `gorm:"size:20;uniqueIndex;not null" json:"username"`
	Email        string        `gorm:"uniqueIndex;not null" json:"email"`
	Password     string        `gorm:"not null" json:"-"` // bcrypt hash
	Role         Role          `gorm:"not null;default:1" json:"role"`
	Status       AccountStatus `gorm:"not null;default:0" json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	LastLoginAt  *time.Time    `json:"last_login_at"`
	LastActiveAt *time.Time    `gorm:"index" json:"last_active_at"`
}
