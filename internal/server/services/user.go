package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Amrit-pandey/airbnb-clone/internal/common"
	"github.com/Amrit-pandey/airbnb-clone/internal/server/auth"
	"github.com/Amrit-pandey/airbnb-clone/internal/server/config"
	"github.com/Amrit-pandey/airbnb-clone/internal/server/models"
	"github.com/Amrit-pandey/airbnb-clone/internal/server/repositories/repomanager"
)

// UserService provides authentication-related operations:
// - Register: create users
// - Login: verify credentials and mint a session token
// - Profile: resolve a session identity to the stored user record
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register creates a new user with a freshly hashed password. A duplicate
// email yields common.ErrConflict.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	digest, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrInternal
	}

	user := &models.User{Username: username, Email: email, PasswordHash: digest}
	repo := s.repomanager.Users(s.db)

	u, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login verifies the credentials and mints a session token. Unknown email
// and wrong password both yield common.ErrInvalidCredentials; a dummy digest
// is verified on the unknown-email path so the two cost the same.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			auth.VerifyPassword(password, auth.DummyDigest)
			return nil, "", common.ErrInvalidCredentials
		}
		return nil, "", common.ErrInternal
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, "", common.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, "", common.ErrInternal
	}

	return user, token, nil
}

// Profile returns the stored user record behind an identity. A token whose
// subject no longer resolves yields common.ErrNotFound.
func (s *UserService) Profile(ctx context.Context, identity Identity) (*models.User, error) {
	if identity.IsAnonymous() {
		return nil, common.ErrUnauthenticated
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, common.ErrInternal
	}
	return user, nil
}
