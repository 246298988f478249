// Package services contains the server-side business logic: registration and
// login, listing CRUD gated on ownership, bookings scoped to the guest, and
// photo uploads to object storage.
package services

import "github.com/Amrit-pandey/airbnb-clone/internal/server/models"

// Identity is the authenticated caller, derived from a verified session
// token. The zero value means anonymous.
type Identity struct {
	UserID string
	Email  string
}

// IsAnonymous reports whether no authenticated user stands behind the call.
func (i Identity) IsAnonymous() bool {
	return i.UserID == ""
}

// CanMutateListing decides whether the caller may edit the listing: only the
// owner may.
func CanMutateListing(identity Identity, listing *models.Listing) bool {
	return !identity.IsAnonymous() && identity.UserID == listing.OwnerID
}

// CanCreateBooking decides whether the caller may book a listing: any
// authenticated user may, including the listing's own owner.
func CanCreateBooking(identity Identity) bool {
	return !identity.IsAnonymous()
}

// BookingScope returns the guest id whose bookings the caller may see.
// Booking visibility is never cross-user.
func BookingScope(identity Identity) string {
	return identity.UserID
}
