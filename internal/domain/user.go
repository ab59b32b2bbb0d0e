package domain

import "time"

// Role роль пользователя в маркетплейсе
type Role string

const (
	RoleGuest  Role = "guest"
	RoleUser   Role = "user"
	RoleVendor Role = "vendor"
	RoleAdmin  Role = "admin"
)

// IsValid returns true for a known role
func (r Role) IsValid() bool {
	switch r {
	case RoleGuest, RoleUser, RoleVendor, RoleAdmin:
		return true
	default:
		return false
	}
}

// Identity resolved caller: who is acting and with which role
type Identity struct {
	UserID      int64
	Email       string
	DisplayName string
	PhotoURL    *string
	Role        Role
}

// IsAdmin returns true for administrators
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}

// User учётная запись в каталоге пользователей
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	DisplayName  string
	PhotoURL     *string
	Role         Role
	CreatedAt    time.Time
}

// Identity returns the caller view of the user
func (u *User) Identity() *Identity {
	return &Identity{
		UserID:      u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		PhotoURL:    u.PhotoURL,
		Role:        u.Role,
	}
}
