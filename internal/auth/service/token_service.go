package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/romeo-folie/Todo-api/internal/apperrors"
)

// TokenVerifier is the stateless half of token checking, consumed by the
// auth middleware. Verification here proves the token was signed by this
// process; it says nothing about revocation.
type TokenVerifier interface {
	VerifyStructure(token string) (*AuthClaims, error)
}

// AuthClaims is the payload carried inside every issued token.
type AuthClaims struct {
	jwt.RegisteredClaims
	UserID  string `json:"user_id"`
	Purpose string `json:"purpose"`
}

// TokenService signs and verifies bearer tokens with a process-wide secret.
// The secret is loaded once at startup and read-only afterwards.
type TokenService struct {
	secret []byte
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// Issue produces a signed token binding the user id to a purpose. The jti
// claim makes every issued token string unique, so two logins by the same
// user in the same second still yield distinct tokens.
func (ts *TokenService) Issue(userID, purpose string) (string, error) {
	claims := AuthClaims{
		UserID:  userID,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ts.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return token, nil
}

// VerifyStructure checks the signature and decodes the payload without
// touching storage. A structurally valid token may still have been revoked;
// that is the repository's call to make.
func (ts *TokenService) VerifyStructure(tokenString string) (*AuthClaims, error) {
	claims := &AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return ts.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}

	return claims, nil
}
