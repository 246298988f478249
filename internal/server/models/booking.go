package models

import "time"

// Booking is an immutable reservation created by an authenticated guest.
// GuestUserID is always taken from the session identity, never the payload.
type Booking struct {
	ID             string    `json:"id"`
	ListingID      string    `json:"place"`
	GuestUserID    string    `json:"user"`
	CheckIn        time.Time `json:"checkIn"`
	CheckOut       time.Time `json:"checkOut"`
	NumberOfGuests int       `json:"numberOfGuests"`
	GuestName      string    `json:"name"`
	GuestPhone     string    `json:"phone"`
	Price          int       `json:"price"`
	CreatedAt      time.Time `json:"createdAt"`
}

// BookingWithListing is a Booking with its referenced Listing resolved, the
// shape returned by the "my bookings" query.
type BookingWithListing struct {
	Booking
	Listing *Listing `json:"listing"`
}
