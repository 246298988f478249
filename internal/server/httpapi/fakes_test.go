package httpapi

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"

	"github.com/Amrit-pandey/airbnb-clone/internal/common"
	"github.com/Amrit-pandey/airbnb-clone/internal/dbx"
	"github.com/Amrit-pandey/airbnb-clone/internal/logging"
	"github.com/Amrit-pandey/airbnb-clone/internal/server/auth"
	"github.com/Amrit-pandey/airbnb-clone/internal/server/config"
	"github.com/Amrit-pandey/airbnb-clone/internal/server/models"
	bookingsrepo "github.com/Amrit-pandey/airbnb-clone/internal/server/repositories/bookings"
	listingsrepo "github.com/Amrit-pandey/airbnb-clone/internal/server/repositories/listings"
	usersrepo "github.com/Amrit-pandey/airbnb-clone/internal/server/repositories/users"
	"github.com/Amrit-pandey/airbnb-clone/internal/server/services"
)

// In-memory repositories backing the handler tests. The handler stack runs
// the real services; only persistence is faked.

type memUsersRepo struct {
	byEmail map[string]*models.User
	byID    map[string]*models.User
	nextID  int
}

func newMemUsersRepo() *memUsersRepo {
	return &memUsersRepo{byEmail: map[string]*models.User{}, byID: map[string]*models.User{}}
}

func (m *memUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if _, ok := m.byEmail[u.Email]; ok {
		return nil, common.ErrConflict
	}
	m.nextID++
	u.ID = "u" + string(rune('0'+m.nextID))
	u.CreatedAt = time.Now()
	m.byEmail[u.Email] = u
	m.byID[u.ID] = u
	return u, nil
}

func (m *memUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, common.ErrNotFound
}

func (m *memUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, common.ErrNotFound
}

type memListingsRepo struct {
	byID   map[string]*models.Listing
	nextID int
}

func newMemListingsRepo() *memListingsRepo {
	return &memListingsRepo{byID: map[string]*models.Listing{}}
}

func (m *memListingsRepo) Create(ctx context.Context, l *models.Listing) (*models.Listing, error) {
	m.nextID++
	l.ID = "l" + string(rune('0'+m.nextID))
	l.Version = 1
	l.CreatedAt = time.Now()
	cp := *l
	m.byID[l.ID] = &cp
	return l, nil
}

func (m *memListingsRepo) GetByID(ctx context.Context, id string) (*models.Listing, error) {
	if l, ok := m.byID[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, common.ErrNotFound
}

func (m *memListingsRepo) ListByOwner(ctx context.Context, ownerID string) ([]*models.Listing, error) {
	result := make([]*models.Listing, 0)
	for _, l := range m.byID {
		if l.OwnerID == ownerID {
			cp := *l
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (m *memListingsRepo) ListAll(ctx context.Context) ([]*models.Listing, error) {
	result := make([]*models.Listing, 0)
	for _, l := range m.byID {
		cp := *l
		result = append(result, &cp)
	}
	return result, nil
}

func (m *memListingsRepo) Update(ctx context.Context, l *models.Listing) (*models.Listing, error) {
	stored, ok := m.byID[l.ID]
	if !ok {
		return nil, common.ErrNotFound
	}
	if stored.Version != l.Version {
		return nil, common.ErrVersionConflict
	}
	l.Version++
	cp := *l
	m.byID[l.ID] = &cp
	return l, nil
}

type memBookingsRepo struct {
	bookings []*models.Booking
	listings *memListingsRepo
	nextID   int
}

func (m *memBookingsRepo) Create(ctx context.Context, b *models.Booking) (*models.Booking, error) {
	m.nextID++
	b.ID = "b" + string(rune('0'+m.nextID))
	b.CreatedAt = time.Now()
	cp := *b
	m.bookings = append(m.bookings, &cp)
	return b, nil
}

func (m *memBookingsRepo) ListByGuest(ctx context.Context, guestUserID string) ([]*models.BookingWithListing, error) {
	result := make([]*models.BookingWithListing, 0)
	for _, b := range m.bookings {
		if b.GuestUserID != guestUserID {
			continue
		}
		l, err := m.listings.GetByID(ctx, b.ListingID)
		if err != nil {
			return nil, err
		}
		result = append(result, &models.BookingWithListing{Booking: *b, Listing: l})
	}
	return result, nil
}

type memRepoManager struct {
	u *memUsersRepo
	l *memListingsRepo
	b *memBookingsRepo
}

func newMemRepoManager() *memRepoManager {
	u := newMemUsersRepo()
	l := newMemListingsRepo()
	return &memRepoManager{u: u, l: l, b: &memBookingsRepo{listings: l}}
}

func (m *memRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *memRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }
func (m *memRepoManager) Listings(db dbx.DBTX) listingsrepo.Repository { return m.l }
func (m *memRepoManager) Bookings(db dbx.DBTX) bookingsrepo.Repository { return m.b }

// --- test server ---

type testServer struct {
	router *gin.Engine
	cfg    *config.Config
	rm     *memRepoManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "test-secret"

	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	rm := newMemRepoManager()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	srv := NewHTTPServer(cfg, logger,
		services.NewUserService(db, rm, cfg),
		services.NewListingService(db, rm),
		services.NewBookingService(db, rm),
		services.NewUploadService(cfg),
	)

	return &testServer{router: srv.Router(), cfg: cfg, rm: rm}
}

// seedUser registers a user directly in the store and returns its session
// cookie.
func (ts *testServer) seedUser(t *testing.T, username, email, password string) (*models.User, *http.Cookie) {
	t.Helper()

	digest, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	u, err := ts.rm.u.Create(context.Background(), &models.User{Username: username, Email: email, PasswordHash: digest})
	if err != nil {
		t.Fatalf("seed error: %v", err)
	}

	token, err := auth.GenerateToken(u.ID, u.Email, []byte(ts.cfg.SecretKey), time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	return u, &http.Cookie{Name: ts.cfg.CookieName, Value: token}
}

func (ts *testServer) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}
