package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Amrit-pandey/airbnb-clone/internal/common"
	"github.com/Amrit-pandey/airbnb-clone/internal/server/models"
	"github.com/Amrit-pandey/airbnb-clone/internal/server/repositories/repomanager"
)

// BookingFields is a booking request as supplied by the guest. The guest id
// is never part of it; it always comes from the session.
type BookingFields struct {
	ListingID      string
	CheckIn        time.Time
	CheckOut       time.Time
	NumberOfGuests int
	GuestName      string
	GuestPhone     string
	Price          int
}

// BookingService creates reservations and lists them scoped to the guest.
// Bookings are immutable; there is no edit or cancel path.
type BookingService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewBookingService(db *sql.DB, m repomanager.RepositoryManager) *BookingService {
	return &BookingService{db: db, repomanager: m}
}

// Create books a listing for the caller. Any authenticated user may book any
// listing, their own included. The listing must exist.
func (s *BookingService) Create(ctx context.Context, identity Identity, fields BookingFields) (*models.Booking, error) {
	if !CanCreateBooking(identity) {
		return nil, common.ErrUnauthenticated
	}

	if _, err := s.repomanager.Listings(s.db).GetByID(ctx, fields.ListingID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, common.ErrInternal
	}

	booking := &models.Booking{
		ListingID:      fields.ListingID,
		GuestUserID:    identity.UserID,
		CheckIn:        fields.CheckIn,
		CheckOut:       fields.CheckOut,
		NumberOfGuests: fields.NumberOfGuests,
		GuestName:      fields.GuestName,
		GuestPhone:     fields.GuestPhone,
		Price:          fields.Price,
	}

	repo := s.repomanager.Bookings(s.db)
	b, err := repo.Create(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("error creating booking: %w", err)
	}
	return b, nil
}

// ListMy returns the caller's bookings with each referenced listing resolved.
func (s *BookingService) ListMy(ctx context.Context, identity Identity) ([]*models.BookingWithListing, error) {
	if identity.IsAnonymous() {
		return nil, common.ErrUnauthenticated
	}

	repo := s.repomanager.Bookings(s.db)
	result, err := repo.ListByGuest(ctx, BookingScope(identity))
	if err != nil {
		return nil, common.ErrInternal
	}
	return result, nil
}
