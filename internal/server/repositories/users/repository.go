// Package users persists identity records. Users are immutable after
// creation; there is no update path.
package users

import (
	"context"

	"github.com/Amrit-pandey/airbnb-clone/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
