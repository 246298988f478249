// Package bookings persists reservations. Bookings are immutable after
// insert; visibility is scoped to the guest who created them.
package bookings

import (
	"context"

	"github.com/Amrit-pandey/airbnb-clone/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, booking *models.Booking) (*models.Booking, error)

	// ListByGuest returns the guest's bookings with the referenced listing
	// resolved eagerly.
	ListByGuest(ctx context.Context, guestUserID string) ([]*models.BookingWithListing, error)
}
