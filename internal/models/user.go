package models

import (
	"time"

	"fixly/internal/domain"

	"gorm.io/gorm"
)

type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Email        string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string         `gorm:"size:255" json:"-"`
	Role         string         `gorm:"size:20;not null;index" json:"role"` // CUSTOMER | PROFESSIONAL | ADMIN
	Status       string         `gorm:"size:20;not null;default:offline;index" json:"status"`
	// TrackingEnabled gates visibility in proximity search. Toggling it off
	// hides the professional without touching stored location data. No column
	// default: gorm drops zero-valued fields carrying a default tag from the
	// INSERT, which would turn an explicit false into true.
	TrackingEnabled bool           `json:"tracking_enabled"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) IsProfessional() bool { return u.Role == domain.RoleProfessional }
func (u *User) IsCustomer() bool     { return u.Role == domain.RoleCustomer }
