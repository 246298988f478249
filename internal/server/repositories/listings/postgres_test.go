package listings

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Amrit-pandey/airbnb-clone/internal/common"
	"github.com/Amrit-pandey/airbnb-clone/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func listingRow(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "owner_id", "title", "address", "photos", "description", "perks",
		"extra_info", "check_in", "check_out", "max_guests", "price", "version", "created_at",
	}).AddRow(
		"l1", "u-alice", "Cabin", "Forest rd 1", []byte(`["https://x/1.jpg"]`), "cozy",
		[]byte(`["wifi"]`), "", "14:00", "11:00", 4, 100, 3, now)
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "version", "created_at"}).AddRow("l1", int64(1), now)
	mock.ExpectQuery(`INSERT\s+INTO\s+listings`).
		WithArgs("u-alice", "Cabin", "Forest rd 1", []byte(`["https://x/1.jpg"]`), "cozy",
			[]byte(`["wifi"]`), "", "14:00", "11:00", 4, 100).
		WillReturnRows(rows)

	l := &models.Listing{
		OwnerID: "u-alice", Title: "Cabin", Address: "Forest rd 1",
		Photos: []string{"https://x/1.jpg"}, Description: "cozy", Perks: []string{"wifi"},
		CheckIn: "14:00", CheckOut: "11:00", MaxGuests: 4, Price: 100,
	}
	got, err := repo.Create(context.Background(), l)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "l1" || got.Version != 1 {
		t.Fatalf("unexpected listing: %+v", got)
	}
}

func TestCreate_NilSlicesStoredAsEmptyArrays(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "version", "created_at"}).AddRow("l1", int64(1), time.Now())
	mock.ExpectQuery(`INSERT\s+INTO\s+listings`).
		WithArgs("u-alice", "Cabin", "", []byte(`[]`), "", []byte(`[]`), "", "", "", 0, 0).
		WillReturnRows(rows)

	_, err := repo.Create(context.Background(), &models.Listing{OwnerID: "u-alice", Title: "Cabin"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
}

func TestGetByID_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM listings WHERE id = \$1`).
		WithArgs("l1").
		WillReturnRows(listingRow(time.Now()))

	got, err := repo.GetByID(context.Background(), "l1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.Title != "Cabin" || got.OwnerID != "u-alice" {
		t.Fatalf("unexpected listing: %+v", got)
	}
	if len(got.Photos) != 1 || got.Photos[0] != "https://x/1.jpg" {
		t.Fatalf("photos not decoded: %+v", got.Photos)
	}
	if len(got.Perks) != 1 || got.Perks[0] != "wifi" {
		t.Fatalf("perks not decoded: %+v", got.Perks)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM listings WHERE id = \$1`).
		WithArgs("l-missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "l-missing")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListByOwner_FiltersByOwner(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM listings WHERE owner_id = \$1`).
		WithArgs("u-alice").
		WillReturnRows(listingRow(time.Now()))

	got, err := repo.ListByOwner(context.Background(), "u-alice")
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}
	if len(got) != 1 || got[0].OwnerID != "u-alice" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestListAll_EmptyIsNotNil(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM listings ORDER BY created_at DESC`).
		WillReturnRows(listingRow(time.Now()).AddRow(
			"l2", "u-bob", "Loft", "", []byte(`[]`), "", []byte(`[]`), "", "", "", 2, 80, 1, time.Now()))

	got, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(got))
	}
}

func TestUpdate_CASBumpsVersion(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`UPDATE\s+listings\s+SET .* WHERE id = \$11 AND version = \$12`).
		WithArgs("Cabin deluxe", "Forest rd 1", []byte(`["https://x/1.jpg"]`), "cozy",
			[]byte(`["wifi"]`), "", "14:00", "11:00", 4, 150, "l1", int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(int64(4)))

	l := &models.Listing{
		ID: "l1", OwnerID: "u-alice", Title: "Cabin deluxe", Address: "Forest rd 1",
		Photos: []string{"https://x/1.jpg"}, Description: "cozy", Perks: []string{"wifi"},
		CheckIn: "14:00", CheckOut: "11:00", MaxGuests: 4, Price: 150, Version: 3,
	}
	got, err := repo.Update(context.Background(), l)
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if got.Version != 4 {
		t.Fatalf("expected version 4, got %d", got.Version)
	}
}

func TestUpdate_StaleVersionConflict(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`UPDATE\s+listings\s+SET`).
		WillReturnError(sql.ErrNoRows)
	// the row still exists, so the miss is a lost race, not a deletion
	mock.ExpectQuery(`SELECT .* FROM listings WHERE id = \$1`).
		WithArgs("l1").
		WillReturnRows(listingRow(time.Now()))

	l := &models.Listing{ID: "l1", Title: "Cabin", Version: 2}
	_, err := repo.Update(context.Background(), l)
	if !errors.Is(err, common.ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}
}

func TestUpdate_RowGoneIsNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`UPDATE\s+listings\s+SET`).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`SELECT .* FROM listings WHERE id = \$1`).
		WithArgs("l-gone").
		WillReturnError(sql.ErrNoRows)

	l := &models.Listing{ID: "l-gone", Title: "Cabin", Version: 2}
	_, err := repo.Update(context.Background(), l)
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
