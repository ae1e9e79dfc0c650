package domain

import (
	"time"
)

// User is a tenant-local account. Every tenant schema holds its own auth_user
// table, so the same username may exist in several tenants with different credentials.
type User struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Password    string     `gorm:"type:varchar(128);not null" json:"-"`
	LastLogin   *time.Time `gorm:"type:timestamp with time zone" json:"last_login,omitempty"`
	IsSuperuser bool       `gorm:"not null;default:false" json:"is_superuser"`
	Username    string     `gorm:"type:varchar(150);not null;unique" json:"username"`
	FirstName   string     `gorm:"type:varchar(150);not null" json:"first_name"`
	LastName    string     `gorm:"type:varchar(150);not null" json:"last_name"`
	Email       string     `gorm:"type:varchar(254);not null" json:"email"`
	IsStaff     bool       `gorm:"not null;default:false" json:"is_staff"`
	IsActive    bool       `gorm:"not null;default:true" json:"is_active"`
	DateJoined  time.Time  `gorm:"type:timestamp with time zone;not null;default:CURRENT_TIMESTAMP" json:"date_joined"`
}

func (User) TableName() string {
	return "auth_user"
}
