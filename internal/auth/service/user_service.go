package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/romeo-folie/Todo-api/internal/apperrors"
	"github.com/romeo-folie/Todo-api/internal/auth/domain"
	"github.com/romeo-folie/Todo-api/internal/auth/dto"
)

const minPasswordLength = 6

// UserService implements the credential store: account creation, password
// verification and the active-token set.
type UserService struct {
	repo   domain.UserRepository
	tokens *TokenService
}

func NewUserService(repo domain.UserRepository, tokens *TokenService) *UserService {
	return &UserService{
		repo:   repo,
		tokens: tokens,
	}
}

// Register validates and stores a new account, then logs it in: the returned
// token is already persisted in the user's active set.
//
// The password is hashed exactly once, here, on the only path where the
// plaintext is ever present. No other operation rewrites the hash.
func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*domain.User, string, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, "", fmt.Errorf("%w: email is required", apperrors.ErrValidation)
	}
	if len(input.Password) < minPasswordLength {
		return nil, "", fmt.Errorf("%w: password must be at least %d characters", apperrors.ErrValidation, minPasswordLength)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           primitive.NewObjectID(),
		Email:        email,
		PasswordHash: string(hashed),
		Tokens:       []domain.Token{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.issueAndStore(ctx, user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Login verifies credentials and issues a fresh token. An unknown email and
// a wrong password fail with the same error so callers cannot enumerate
// accounts.
func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*domain.User, string, error) {
	user, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, "", err
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.issueAndStore(ctx, user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Logout revokes one specific token. Revoking a token that was already
// removed succeeds; the end state is the same.
func (s *UserService) Logout(ctx context.Context, userID primitive.ObjectID, token string) error {
	return s.repo.RemoveToken(ctx, userID, token)
}

// GetByActiveToken resolves a token string to its owner, honoring
// revocation: a signed token that has been removed from the set no longer
// resolves.
func (s *UserService) GetByActiveToken(ctx context.Context, token string) (*domain.User, error) {
	user, err := s.repo.GetByActiveToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) issueAndStore(ctx context.Context, user *domain.User) (string, error) {
	token, err := s.tokens.Issue(user.ID.Hex(), domain.TokenPurposeAuth)
	if err != nil {
		return "", err
	}

	entry := domain.Token{Purpose: domain.TokenPurposeAuth, Token: token}
	if err := s.repo.AddToken(ctx, user.ID, entry); err != nil {
		return "", err
	}
	user.Tokens = append(user.Tokens, entry)

	return token, nil
}
