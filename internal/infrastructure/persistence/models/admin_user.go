package models

import (
	"time"

	"github.com/eujim/backend/internal/domain/identity"
)

// AdminUserModel is the persistence model for dashboard admin accounts
type AdminUserModel struct {
	AggregateModel
	Username       string `gorm:"uniqueIndex;size:50;not null"`
	Email          string `gorm:"size:255"`
	DisplayName    string `gorm:"size:100"`
	PasswordHash   string `gorm:"size:100;not null"`
	Active         bool   `gorm:"not null;default:true"`
	LastLoginAt    *time.Time
	FailedAttempts int `gorm:"not null;default:0"`
	LockedUntil    *time.Time
}

// TableName returns the table name for AdminUserModel
func (AdminUserModel) TableName() string {
	return "admin_users"
}

// ToDomain converts AdminUserModel to a domain AdminUser
func (m *AdminUserModel) ToDomain() *identity.AdminUser {
	return &identity.AdminUser{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Username:          m.Username,
		Email:             m.Email,
		DisplayName:       m.DisplayName,
		PasswordHash:      m.PasswordHash,
		Active:            m.Active,
		LastLoginAt:       m.LastLoginAt,
		FailedAttempts:    m.FailedAttempts,
		LockedUntil:       m.LockedUntil,
	}
}

// AdminUserModelFromDomain converts a domain AdminUser to AdminUserModel
func AdminUserModelFromDomain(u *identity.AdminUser) *AdminUserModel {
	m := &AdminUserModel{
		Username:       u.Username,
		Email:          u.Email,
		DisplayName:    u.DisplayName,
		PasswordHash:   u.PasswordHash,
		Active:         u.Active,
		LastLoginAt:    u.LastLoginAt,
		FailedAttempts: u.FailedAttempts,
		LockedUntil:    u.LockedUntil,
	}
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	return m
}
