// Package repomanager hands out repositories bound to a DB handle, so
// services can run the same repository against *sql.DB or a transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/Amrit-pandey/airbnb-clone/internal/dbx"
	"github.com/Amrit-pandey/airbnb-clone/internal/server/repositories/bookings"
	"github.com/Amrit-pandey/airbnb-clone/internal/server/repositories/listings"
	"github.com/Amrit-pandey/airbnb-clone/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Listings(db dbx.DBTX) listings.Repository
	Bookings(db dbx.DBTX) bookings.Repository
}
