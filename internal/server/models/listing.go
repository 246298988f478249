package models

import "time"

// Listing is a rental property. OwnerID is set once at creation and is the
// sole authorization anchor for edits. Version backs the compare-and-swap
// update path.
type Listing struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner"`
	Title       string    `json:"title"`
	Address     string    `json:"address"`
	Photos      []string  `json:"photos"`
	Description string    `json:"description"`
	Perks       []string  `json:"perks"`
	ExtraInfo   string    `json:"extraInfo"`
	CheckIn     string    `json:"checkIn"`
	CheckOut    string    `json:"checkOut"`
	MaxGuests   int       `json:"maxGuests"`
	Price       int       `json:"price"`
	Version     int64     `json:"version"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ListingFields are the owner-editable fields of a Listing. Owner and id are
// never taken from the client.
type ListingFields struct {
	Title       string   `json:"title"`
	Address     string   `json:"address"`
	Photos      []string `json:"addedPhoto"`
	Description string   `json:"description"`
	Perks       []string `json:"perks"`
	ExtraInfo   string   `json:"extraInfo"`
	CheckIn     string   `json:"checkIn"`
	CheckOut    string   `json:"checkOut"`
	MaxGuests   int      `json:"maxGuests"`
	Price       int      `json:"price"`
}
