package bookings

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Amrit-pandey/airbnb-clone/internal/dbx"
	"github.com/Amrit-pandey/airbnb-clone/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, booking *models.Booking) (*models.Booking, error) {

	query :=
		`INSERT INTO bookings (listing_id, guest_user_id, check_in, check_out,
			number_of_guests, guest_name, guest_phone, price)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		booking.ListingID, booking.GuestUserID, booking.CheckIn, booking.CheckOut,
		booking.NumberOfGuests, booking.GuestName, booking.GuestPhone,
		booking.Price).Scan(&booking.ID, &booking.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return booking, nil
}

// ListByGuest joins each booking to its listing so the caller gets the
// reservation and the property in one round trip.
func (r *PostgresRepository) ListByGuest(ctx context.Context, guestUserID string) ([]*models.BookingWithListing, error) {

	query :=
		`SELECT b.id, b.listing_id, b.guest_user_id, b.check_in, b.check_out,
			b.number_of_guests, b.guest_name, b.guest_phone, b.price, b.created_at,
			l.id, l.owner_id, l.title, l.address, l.photos, l.description, l.perks,
			l.extra_info, l.check_in, l.check_out, l.max_guests, l.price, l.version,
			l.created_at
		 FROM bookings b
		 JOIN listings l ON l.id = b.listing_id
		 WHERE b.guest_user_id = $1
		 ORDER BY b.created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, guestUserID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.BookingWithListing, 0)
	for rows.Next() {
		b := &models.BookingWithListing{Listing: &models.Listing{}}
		l := b.Listing
		var photos, perks []byte
		err := rows.Scan(
			&b.ID, &b.ListingID, &b.GuestUserID, &b.CheckIn, &b.CheckOut,
			&b.NumberOfGuests, &b.GuestName, &b.GuestPhone, &b.Price, &b.CreatedAt,
			&l.ID, &l.OwnerID, &l.Title, &l.Address, &photos, &l.Description, &perks,
			&l.ExtraInfo, &l.CheckIn, &l.CheckOut, &l.MaxGuests, &l.Price, &l.Version,
			&l.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if err := json.Unmarshal(photos, &l.Photos); err != nil {
			return nil, fmt.Errorf("decoding photos: %w", err)
		}
		if err := json.Unmarshal(perks, &l.Perks); err != nil {
			return nil, fmt.Errorf("decoding perks: %w", err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
