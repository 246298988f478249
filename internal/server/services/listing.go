package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Amrit-pandey/airbnb-clone/internal/common"
	"github.com/Amrit-pandey/airbnb-clone/internal/server/models"
	"github.com/Amrit-pandey/airbnb-clone/internal/server/repositories/repomanager"
)

// ListingService owns the listing lifecycle. Every mutation is gated on the
// caller's identity: creation stamps the owner from the session, updates
// require the caller to be the owner.
type ListingService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewListingService(db *sql.DB, m repomanager.RepositoryManager) *ListingService {
	return &ListingService{db: db, repomanager: m}
}

func applyFields(l *models.Listing, fields models.ListingFields) {
	l.Title = fields.Title
	l.Address = fields.Address
	l.Photos = fields.Photos
	l.Description = fields.Description
	l.Perks = fields.Perks
	l.ExtraInfo = fields.ExtraInfo
	l.CheckIn = fields.CheckIn
	l.CheckOut = fields.CheckOut
	l.MaxGuests = fields.MaxGuests
	l.Price = fields.Price
}

// Create persists a new listing owned by the caller. A client-supplied owner
// is never honored.
func (s *ListingService) Create(ctx context.Context, identity Identity, fields models.ListingFields) (*models.Listing, error) {
	if identity.IsAnonymous() {
		return nil, common.ErrUnauthenticated
	}

	listing := &models.Listing{OwnerID: identity.UserID}
	applyFields(listing, fields)

	repo := s.repomanager.Listings(s.db)
	l, err := repo.Create(ctx, listing)
	if err != nil {
		return nil, fmt.Errorf("error creating listing: %w", err)
	}
	return l, nil
}

// Update fetches the listing, checks ownership, applies the fields and
// persists with a compare-and-swap on the version read here. Non-owners get
// an explicit common.ErrForbidden; nothing is written for them.
func (s *ListingService) Update(ctx context.Context, identity Identity, listingID string, fields models.ListingFields) (*models.Listing, error) {
	if identity.IsAnonymous() {
		return nil, common.ErrUnauthenticated
	}

	repo := s.repomanager.Listings(s.db)

	listing, err := repo.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, common.ErrInternal
	}

	if !CanMutateListing(identity, listing) {
		return nil, common.ErrForbidden
	}

	applyFields(listing, fields)

	updated, err := repo.Update(ctx, listing)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) || errors.Is(err, common.ErrVersionConflict) {
			return nil, err
		}
		return nil, common.ErrInternal
	}
	return updated, nil
}

// ListOwned returns the caller's listings, and only those.
func (s *ListingService) ListOwned(ctx context.Context, identity Identity) ([]*models.Listing, error) {
	if identity.IsAnonymous() {
		return nil, common.ErrUnauthenticated
	}

	repo := s.repomanager.Listings(s.db)
	result, err := repo.ListByOwner(ctx, identity.UserID)
	if err != nil {
		return nil, common.ErrInternal
	}
	return result, nil
}

// Get returns a single listing. Public, no identity required.
func (s *ListingService) Get(ctx context.Context, listingID string) (*models.Listing, error) {
	repo := s.repomanager.Listings(s.db)

	listing, err := repo.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, common.ErrInternal
	}
	return listing, nil
}

// ListAll returns every listing. Public, no identity required.
func (s *ListingService) ListAll(ctx context.Context) ([]*models.Listing, error) {
	repo := s.repomanager.Listings(s.db)

	result, err := repo.ListAll(ctx)
	if err != nil {
		return nil, common.ErrInternal
	}
	return result, nil
}
