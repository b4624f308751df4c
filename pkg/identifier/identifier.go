// Package identifier validates externally supplied resource identifiers and
// parses them into the store's native object id type.
package identifier

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/romeo-folie/Todo-api/internal/apperrors"
)

// Parse accepts only the canonical 24-character hexadecimal form and returns
// the decoded object id. Anything else fails with ErrInvalidIdentifier.
func Parse(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", apperrors.ErrInvalidIdentifier, raw)
	}
	return id, nil
}
