package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TokenPurposeAuth is the only token purpose issued today. The purpose tag
// exists so new use-cases can be added without changing the token format.
const TokenPurposeAuth = "auth"

// Token is one entry of a user's active token set, unique by token value.
type Token struct {
	Purpose string `bson:"purpose" json:"purpose"`
	Token   string `bson:"token" json:"token"`
}

// User is a stored account. The password hash and the token set never leave
// the process in a response body.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password" json:"-"`
	Tokens       []Token            `bson:"tokens" json:"-"`
	CreatedAt    time.Time          `bson:"createdAt" json:"-"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"-"`
}

// HasToken reports whether the given token string is in the active set.
func (u *User) HasToken(token string) bool {
	for _, t := range u.Tokens {
		if t.Token == token {
			return true
		}
	}
	return false
}
