package auth

import "context"

// UserRepository defines the contract for account lookup.
type UserRepository interface {
	FindByLogin(ctx context.Context, login string) (User, error)
}
