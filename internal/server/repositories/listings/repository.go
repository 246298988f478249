// Package listings persists rental properties. The owner column never
// changes after insert; updates are compare-and-swap on the version column.
package listings

import (
	"context"

	"github.com/Amrit-pandey/airbnb-clone/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, listing *models.Listing) (*models.Listing, error)
	GetByID(ctx context.Context, id string) (*models.Listing, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Listing, error)
	ListAll(ctx context.Context) ([]*models.Listing, error)

	// Update persists the editable fields of the listing, guarded by the
	// listing's current version. A stale version yields
	// common.ErrVersionConflict; a missing row yields common.ErrNotFound.
	// OwnerID and ID are never written.
	Update(ctx context.Context, listing *models.Listing) (*models.Listing, error)
}
