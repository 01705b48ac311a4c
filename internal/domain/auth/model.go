package auth

import "time"

const (
	RoleAdmin     = "admin"
	RoleAttendant = "attendant"
	RoleViewer    = "viewer"
)

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleAttendant, RoleViewer:
		return true
	}
	return false
}

type User struct {
	ID           string    `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"not null;uniqueIndex"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"type:varchar(16);not null;default:attendant"`
	Active       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// Actor identifies the authenticated caller of a service operation.
// It is passed explicitly into every mutating call instead of being read
// from ambient request state.
type Actor struct {
	UserID string
	Role   string
}

// IsStaff reports whether the actor may perform writes. Admins and
// attendants are staff; viewers are read-only.
func (a Actor) IsStaff() bool {
	return a.Role == RoleAdmin || a.Role == RoleAttendant
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
