package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Amrit-pandey/airbnb-clone/internal/dbx"
	"github.com/Amrit-pandey/airbnb-clone/internal/server/config"
	"github.com/Amrit-pandey/airbnb-clone/internal/server/models"
	bookingsrepo "github.com/Amrit-pandey/airbnb-clone/internal/server/repositories/bookings"
	listingsrepo "github.com/Amrit-pandey/airbnb-clone/internal/server/repositories/listings"
	usersrepo "github.com/Amrit-pandey/airbnb-clone/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) *sql.DB {
	t.Helper()
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:             "test-secret",
		TokenValidityDuration: time.Hour,
		S3Bucket:              "photos",
		S3Region:              "eu-north-1",
		S3PublicBaseURL:       "https://photos.s3.amazonaws.com",
	}
}

// --- fake repositories ---

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	byEmailOut *models.User
	byEmailErr error

	byIDOut *models.User
	byIDErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	u.ID = "u-new"
	u.CreatedAt = time.Now()
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.byEmailErr != nil {
		return nil, f.byEmailErr
	}
	return f.byEmailOut, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byIDOut, nil
}

type fakeListingsRepo struct {
	createErr error
	created   *models.Listing

	byIDOut *models.Listing
	byIDErr error

	updateErr error
	updated   *models.Listing

	byOwnerOut []*models.Listing
	byOwnerErr error
	byOwnerID  string

	allOut []*models.Listing
	allErr error
}

func (f *fakeListingsRepo) Create(ctx context.Context, l *models.Listing) (*models.Listing, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	l.ID = "l-new"
	l.Version = 1
	l.CreatedAt = time.Now()
	f.created = l
	return l, nil
}

func (f *fakeListingsRepo) GetByID(ctx context.Context, id string) (*models.Listing, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	// copy so a caller mutating the result does not touch the "stored" row
	cp := *f.byIDOut
	return &cp, nil
}

func (f *fakeListingsRepo) ListByOwner(ctx context.Context, ownerID string) ([]*models.Listing, error) {
	f.byOwnerID = ownerID
	if f.byOwnerErr != nil {
		return nil, f.byOwnerErr
	}
	return f.byOwnerOut, nil
}

func (f *fakeListingsRepo) ListAll(ctx context.Context) ([]*models.Listing, error) {
	if f.allErr != nil {
		return nil, f.allErr
	}
	return f.allOut, nil
}

func (f *fakeListingsRepo) Update(ctx context.Context, l *models.Listing) (*models.Listing, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	l.Version++
	f.updated = l
	return l, nil
}

type fakeBookingsRepo struct {
	createErr error
	created   *models.Booking

	byGuestOut []*models.BookingWithListing
	byGuestErr error
	byGuestID  string
}

func (f *fakeBookingsRepo) Create(ctx context.Context, b *models.Booking) (*models.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	b.ID = "b-new"
	b.CreatedAt = time.Now()
	f.created = b
	return b, nil
}

func (f *fakeBookingsRepo) ListByGuest(ctx context.Context, guestUserID string) ([]*models.BookingWithListing, error) {
	f.byGuestID = guestUserID
	if f.byGuestErr != nil {
		return nil, f.byGuestErr
	}
	return f.byGuestOut, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	l *fakeListingsRepo
	b *fakeBookingsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error      { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository            { return m.u }
func (m *fakeRepoManager) Listings(db dbx.DBTX) listingsrepo.Repository      { return m.l }
func (m *fakeRepoManager) Bookings(db dbx.DBTX) bookingsrepo.Repository      { return m.b }
