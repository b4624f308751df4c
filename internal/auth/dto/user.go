package dto

import (
	"github.com/romeo-folie/Todo-api/internal/auth/domain"
)

// UserOutput is the public view of a user: id and email, nothing else.
type UserOutput struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
}

func NewUserOutput(u *domain.User) UserOutput {
	return UserOutput{
		ID:    u.ID.Hex(),
		Email: u.Email,
	}
}
