package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/romeo-folie/Todo-api/internal/todo/domain"
)

const todosCollection = "todos"

type MongoTodoRepository struct {
	coll *mongo.Collection
}

func NewMongoTodoRepository(db *mongo.Database) *MongoTodoRepository {
	return &MongoTodoRepository{coll: db.Collection(todosCollection)}
}

func (r *MongoTodoRepository) Insert(ctx context.Context, todo *domain.Todo) error {
	_, err := r.coll.InsertOne(ctx, todo)
	if err != nil {
		return fmt.Errorf("insert todo: %w", err)
	}
	return nil
}

func (r *MongoTodoRepository) FindAll(ctx context.Context) ([]domain.Todo, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find todos: %w", err)
	}
	defer cursor.Close(ctx)

	todos := []domain.Todo{}
	if err := cursor.All(ctx, &todos); err != nil {
		return nil, fmt.Errorf("decode todos: %w", err)
	}
	return todos, nil
}

func (r *MongoTodoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Todo, error) {
	var todo domain.Todo
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&todo)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find todo: %w", err)
	}
	return &todo, nil
}

// Update applies the whole patch in one findOneAndUpdate, so a concurrent
// toggle on the same todo can never interleave with this write. Returns the
// post-update document.
func (r *MongoTodoRepository) Update(ctx context.Context, id primitive.ObjectID, patch domain.TodoPatch) (*domain.Todo, error) {
	set := updateDocument(patch)
	if len(set) == 0 {
		// Nothing to change; behave like a read.
		return r.FindByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var todo domain.Todo
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&todo)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("update todo: %w", err)
	}
	return &todo, nil
}

// updateDocument maps a patch onto a $set document. A set Completed always
// writes completedAt too; nil CompletedAt becomes an explicit null,
// mirroring what the serialized document promises to readers.
func updateDocument(patch domain.TodoPatch) bson.M {
	set := bson.M{}
	if patch.Text != nil {
		set["text"] = *patch.Text
	}
	if patch.Completed != nil {
		set["completed"] = *patch.Completed
		set["completedAt"] = patch.CompletedAt
	}
	return set
}

func (r *MongoTodoRepository) Delete(ctx context.Context, id primitive.ObjectID) (*domain.Todo, error) {
	var todo domain.Todo
	err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&todo)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("delete todo: %w", err)
	}
	return &todo, nil
}
