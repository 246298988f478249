package listings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Amrit-pandey/airbnb-clone/internal/common"
	"github.com/Amrit-pandey/airbnb-clone/internal/dbx"
	"github.com/Amrit-pandey/airbnb-clone/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const listingColumns = `id, owner_id, title, address, photos, description, perks,
	extra_info, check_in, check_out, max_guests, price, version, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanListing(row rowScanner) (*models.Listing, error) {
	l := &models.Listing{}
	var photos, perks []byte
	err := row.Scan(&l.ID, &l.OwnerID, &l.Title, &l.Address, &photos, &l.Description,
		&perks, &l.ExtraInfo, &l.CheckIn, &l.CheckOut, &l.MaxGuests, &l.Price,
		&l.Version, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(photos, &l.Photos); err != nil {
		return nil, fmt.Errorf("decoding photos: %w", err)
	}
	if err := json.Unmarshal(perks, &l.Perks); err != nil {
		return nil, fmt.Errorf("decoding perks: %w", err)
	}
	return l, nil
}

func encodeJSON(v []string) ([]byte, error) {
	if v == nil {
		v = []string{}
	}
	return json.Marshal(v)
}

func (r *PostgresRepository) Create(ctx context.Context, listing *models.Listing) (*models.Listing, error) {

	photos, err := encodeJSON(listing.Photos)
	if err != nil {
		return nil, err
	}
	perks, err := encodeJSON(listing.Perks)
	if err != nil {
		return nil, err
	}

	query :=
		`INSERT INTO listings (owner_id, title, address, photos, description, perks,
			extra_info, check_in, check_out, max_guests, price)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id, version, created_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		listing.OwnerID, listing.Title, listing.Address, photos, listing.Description,
		perks, listing.ExtraInfo, listing.CheckIn, listing.CheckOut,
		listing.MaxGuests, listing.Price).Scan(&listing.ID, &listing.Version, &listing.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return listing, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`

	l, err := scanListing(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return l, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE owner_id = $1 ORDER BY created_at DESC`
	return r.queryListings(ctx, query, ownerID)
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]*models.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings ORDER BY created_at DESC`
	return r.queryListings(ctx, query)
}

func (r *PostgresRepository) queryListings(ctx context.Context, query string, args ...any) ([]*models.Listing, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Listing, 0)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// Update writes the editable fields guarded by the current version. The
// owner_id column is deliberately absent from the SET list.
func (r *PostgresRepository) Update(ctx context.Context, listing *models.Listing) (*models.Listing, error) {

	photos, err := encodeJSON(listing.Photos)
	if err != nil {
		return nil, err
	}
	perks, err := encodeJSON(listing.Perks)
	if err != nil {
		return nil, err
	}

	query :=
		`UPDATE listings
		 SET title = $1, address = $2, photos = $3, description = $4, perks = $5,
			 extra_info = $6, check_in = $7, check_out = $8, max_guests = $9,
			 price = $10, version = version + 1
		 WHERE id = $11 AND version = $12
		 RETURNING version
		 `

	err = r.db.QueryRowContext(ctx, query,
		listing.Title, listing.Address, photos, listing.Description, perks,
		listing.ExtraInfo, listing.CheckIn, listing.CheckOut, listing.MaxGuests,
		listing.Price, listing.ID, listing.Version).Scan(&listing.Version)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Either the row is gone or another session won the write.
			if _, getErr := r.GetByID(ctx, listing.ID); errors.Is(getErr, common.ErrNotFound) {
				return nil, common.ErrNotFound
			}
			return nil, common.ErrVersionConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return listing, nil
}
