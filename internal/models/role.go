package models

type Role string

const (
	RoleNone    Role = "none"
	RoleStudent Role = "student"
	RoleEditor  Role = "editor"
)

// ParseRole maps a stored value onto the closed role set. Anything unknown is RoleNone.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleStudent:
		return RoleStudent
	case RoleEditor:
		return RoleEditor
	default:
		return RoleNone
	}
}

type UserRole struct {
	ID     uint `gorm:"primarykey"`
	UserID uint `gorm:"uniqueIndex"`
	Role   Role
}
