package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository persists users and their active token sets.
//
// AddToken and RemoveToken must be single atomic document updates, not
// read-then-write, so concurrent logins and logouts on the same user cannot
// lose each other's writes.
type UserRepository interface {
	// Create inserts the user. A duplicate email fails with
	// apperrors.ErrEmailAlreadyInUse.
	Create(ctx context.Context, user *User) error

	// GetByEmail returns (nil, nil) when no user has that exact email.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByID returns (nil, nil) when the user does not exist.
	GetByID(ctx context.Context, id primitive.ObjectID) (*User, error)

	// AddToken appends a token to the user's active set.
	AddToken(ctx context.Context, id primitive.ObjectID, token Token) error

	// RemoveToken removes the matching token string from the user's active
	// set. Removing a token that is not present is not an error.
	RemoveToken(ctx context.Context, id primitive.ObjectID, token string) error

	// GetByActiveToken returns the user whose active token set contains the
	// given token string, or (nil, nil) when no such user exists.
	GetByActiveToken(ctx context.Context, token string) (*User, error)
}
