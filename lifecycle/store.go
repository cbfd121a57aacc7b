package lifecycle

import (
	"context"

	"citylens-be/models"
)

// Store is the persistence seam the manager drives. Implementations must
// return ErrNotFound when a document is missing and wrap any other backend
// failure in ErrStoreUnavailable.
type Store interface {
	GetIssue(ctx context.Context, id string) (*models.Issue, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	// UpdateIssue applies a single field-level update. Keys may use dotted
	// paths ("workProof.rejected") to touch nested fields in place.
	UpdateIssue(ctx context.Context, id string, fields map[string]interface{}) error
}
