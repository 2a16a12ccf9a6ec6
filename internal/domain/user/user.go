package user

import (
	"fmt"
	"strings"
	"time"
)

// Role determines ticket visibility on the dashboard and who receives
// broadcast notifications from this core.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleAgent Role = "agent"
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleAgent
}

func (r Role) String() string {
	return string(r)
}

// User is the account record shared with the dashboard. Authentication and
// password management live entirely on the dashboard side; this core only
// reads accounts to route notifications.
type User struct {
	id        uint
	email     string
	role      Role
	createdAt time.Time
	updatedAt time.Time
}

func NewUser(email string, role Role) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if len(email) == 0 {
		return nil, fmt.Errorf("email is required")
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email: %s", email)
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	now := time.Now()
	return &User{
		email:     email,
		role:      role,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructUser(id uint, email string, role Role, createdAt, updatedAt time.Time) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	return &User{
		id:        id,
		email:     email,
		role:      role,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (u *User) ID() uint             { return u.id }
func (u *User) Email() string        { return u.email }
func (u *User) Role() Role           { return u.role }
func (u *User) IsAdmin() bool        { return u.role == RoleAdmin }
func (u *User) IsAgent() bool        { return u.role == RoleAgent }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}
