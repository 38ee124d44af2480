package domain

import "time"

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User — учётная запись покупателя или администратора.
type User struct {
	ID               int64
	Email            string
	PasswordHash     string
	Name             string
	Role             string
	ResetToken       *string
	ResetTokenExpiry *time.Time
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}

func NewUser(email, passwordHash, name string) *User {
	return &User{
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		Role:         RoleUser,
	}
}

// IsAdmin сообщает, имеет ли пользователь административную роль.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
