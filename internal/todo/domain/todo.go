package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Todo is a stored todo item. CompletedAt is epoch milliseconds and is
// present exactly when Completed is true; it serializes as null otherwise.
type Todo struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Text        string             `bson:"text" json:"text"`
	Completed   bool               `bson:"completed" json:"completed"`
	CompletedAt *int64             `bson:"completedAt" json:"completedAt"`
}

// TodoPatch is the full set of fields an update may touch. Nil means
// "leave as is". CompletedAt is only consulted when Completed is set; a nil
// CompletedAt alongside Completed stores null.
type TodoPatch struct {
	Text        *string
	Completed   *bool
	CompletedAt *int64
}
