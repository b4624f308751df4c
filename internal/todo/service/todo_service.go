package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/romeo-folie/Todo-api/internal/apperrors"
	"github.com/romeo-folie/Todo-api/internal/todo/domain"
	"github.com/romeo-folie/Todo-api/internal/todo/dto"
	"github.com/romeo-folie/Todo-api/pkg/identifier"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TodoService validates input, resolves external identifiers and enforces
// the completed/completedAt derivation. Todos are not scoped to a user.
type TodoService struct {
	repo domain.TodoRepository
}

func NewTodoService(repo domain.TodoRepository) *TodoService {
	return &TodoService{repo: repo}
}

func (s *TodoService) Create(ctx context.Context, input dto.CreateTodoInput) (*domain.Todo, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", apperrors.ErrValidation)
	}

	todo := &domain.Todo{
		ID:   primitive.NewObjectID(),
		Text: text,
	}

	if err := s.repo.Insert(ctx, todo); err != nil {
		return nil, err
	}

	return todo, nil
}

func (s *TodoService) List(ctx context.Context) ([]domain.Todo, error) {
	return s.repo.FindAll(ctx)
}

func (s *TodoService) Get(ctx context.Context, rawID string) (*domain.Todo, error) {
	id, err := s.parseID(rawID)
	if err != nil {
		return nil, err
	}

	todo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, apperrors.ErrNotFound
	}

	return todo, nil
}

// Update applies a partial update. Completion drives the timestamp: setting
// completed=true stamps the current time, setting completed=false clears it
// no matter what the caller sent, and leaving completed out touches neither.
func (s *TodoService) Update(ctx context.Context, rawID string, input dto.UpdateTodoInput) (*domain.Todo, error) {
	id, err := s.parseID(rawID)
	if err != nil {
		return nil, err
	}

	patch := domain.TodoPatch{}

	if input.Text != nil {
		text := strings.TrimSpace(*input.Text)
		if text == "" {
			return nil, fmt.Errorf("%w: text must not be empty", apperrors.ErrValidation)
		}
		patch.Text = &text
	}

	if input.Completed != nil {
		patch.Completed = input.Completed
		if *input.Completed {
			now := time.Now().UnixMilli()
			patch.CompletedAt = &now
		}
		// completed=false leaves patch.CompletedAt nil, which stores null.
	}

	todo, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, apperrors.ErrNotFound
	}

	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, rawID string) (*domain.Todo, error) {
	id, err := s.parseID(rawID)
	if err != nil {
		return nil, err
	}

	todo, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, apperrors.ErrNotFound
	}

	return todo, nil
}

// parseID folds a malformed identifier into not-found so callers cannot
// tell a bad id from a missing document.
func (s *TodoService) parseID(rawID string) (primitive.ObjectID, error) {
	id, err := identifier.Parse(rawID)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidIdentifier) {
			return primitive.NilObjectID, apperrors.ErrNotFound
		}
		return primitive.NilObjectID, err
	}
	return id, nil
}
