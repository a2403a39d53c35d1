package auth

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account holder: a host who creates events, or an
// invited collaborator who accepted a team invite.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	FullName     string         `gorm:"column:full_name;size:100;not null" json:"name"`
	Email        string         `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone        string         `gorm:"size:20" json:"phone"`
	PasswordHash string         `gorm:"column:password_hash;size:255;not null" json:"-"`
	Status       string         `gorm:"default:active" json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
