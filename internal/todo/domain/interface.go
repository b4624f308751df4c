package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TodoRepository persists todo items.
//
// Update must apply the whole patch as one atomic document update so
// concurrent completion toggles on the same todo cannot interleave.
// Lookup-style methods return (nil, nil) when the document is absent.
type TodoRepository interface {
	Insert(ctx context.Context, todo *Todo) error
	FindAll(ctx context.Context) ([]Todo, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*Todo, error)

	// Update applies the patch and returns the post-update document.
	Update(ctx context.Context, id primitive.ObjectID, patch TodoPatch) (*Todo, error)

	// Delete removes the document and returns it.
	Delete(ctx context.Context, id primitive.ObjectID) (*Todo, error)
}
