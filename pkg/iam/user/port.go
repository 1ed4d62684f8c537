package user

import (
	"context"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
)

type UserRepository interface {
	// Create inserts a user; username and email must be unique
	Create(ctx context.Context, u *User) error

	FindByID(ctx context.Context, id kernel.UserID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByEmail(ctx context.Context, email kernel.Email) (*User, error)
}
