package user

import "context"

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)

	// ListByRole backs the admin-broadcast and agent-assignment paths.
	ListByRole(ctx context.Context, role Role) ([]*User, error)
}
