package domain

import (
	"strings"
	"time"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleClub    Role = "club"
	RoleAdmin   Role = "admin"
)

const (
	StudentEmailSuffix = "@student.usm.my"
	ClubEmailSuffix    = "@club.usm.my"
)

type User struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Student struct {
	User
	Matric string `json:"matric"`
}

type Club struct {
	User
	ClubName string `json:"club_name"`
}

type Admin struct {
	User
}

// ResolveRole derives the role from a verified email address. Only the
// suffix is trusted; adminEmail comes from configuration.
func ResolveRole(email, adminEmail string) (Role, error) {
	switch {
	case email == adminEmail:
		return RoleAdmin, nil
	case strings.HasSuffix(email, ClubEmailSuffix):
		return RoleClub, nil
	case strings.HasSuffix(email, StudentEmailSuffix):
		return RoleStudent, nil
	default:
		return "", ErrInvalidIdentity
	}
}
