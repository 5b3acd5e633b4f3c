// Package repositories is the data access layer: one repository per record
// kind, backed by MongoDB, a gorm SQL database or process memory.
package repositories

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shashiranjanraj/kalaghar/app/models"
	"github.com/shashiranjanraj/kalaghar/config"
	"github.com/shashiranjanraj/kalaghar/pkg/database"
)

var (
	// ErrNotFound is returned when no record has the given id (or login key).
	ErrNotFound = errors.New("repositories: not found")
	// ErrDuplicate is returned when (name, role) is already taken.
	ErrDuplicate = errors.New("repositories: duplicate name and role")
)

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByLogin(ctx context.Context, name, role string) (*models.User, error)
	All(ctx context.Context) ([]models.User, error)
	UpdateByID(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)
	DeleteByID(ctx context.Context, id string) error
}

type ArtworkRepository interface {
	Create(ctx context.Context, a *models.Artwork) error
	FindByID(ctx context.Context, id string) (*models.Artwork, error)
	All(ctx context.Context) ([]models.Artwork, error)
	DeleteByID(ctx context.Context, id string) error
}

// OrderRepository lists orders newest first.
type OrderRepository interface {
	Create(ctx context.Context, o *models.Order) error
	FindByID(ctx context.Context, id string) (*models.Order, error)
	All(ctx context.Context) ([]models.Order, error)
	DeleteByID(ctx context.Context, id string) error
}

// Store bundles the repositories of one backend.
type Store struct {
	Driver   string
	Users    UserRepository
	Artworks ArtworkRepository
	Orders   OrderRepository

	ping    func(ctx context.Context) error
	migrate func(ctx context.Context) error
	close   func(ctx context.Context) error
}

// Ping checks the backend is reachable.
func (s *Store) Ping(ctx context.Context) error { return s.ping(ctx) }

// Migrate creates tables (SQL) or indexes (MongoDB). Open already runs it.
func (s *Store) Migrate(ctx context.Context) error { return s.migrate(ctx) }

func (s *Store) Close(ctx context.Context) error { return s.close(ctx) }

// Open connects the backend named by driver and migrates it.
func Open(ctx context.Context, driver string) (*Store, error) {
	var (
		s   *Store
		err error
	)

	switch driver {
	case "memory":
		return NewMemoryStore(), nil
	case "mongo":
		client, cerr := database.ConnectMongo(ctx, config.MongoURI())
		if cerr != nil {
			return nil, cerr
		}
		s = NewMongoStore(client, client.Database(config.MongoDatabase()))
	case "sqlite", "postgres", "mysql", "sqlserver":
		db, oerr := database.OpenSQL(driver, config.DatabaseDSN())
		if oerr != nil {
			return nil, oerr
		}
		s = NewSQLStore(db)
	default:
		return nil, fmt.Errorf("repositories: unknown store driver %q", driver)
	}

	if err = s.Migrate(ctx); err != nil {
		_ = s.Close(ctx)
		return nil, fmt.Errorf("repositories: migrate %s: %w", driver, err)
	}
	return s, nil
}

// ─── Timestamps ──────────────────────────────────────────────────────────────

var clock struct {
	sync.Mutex
	last time.Time
}

// stamp returns a UTC millisecond timestamp strictly after the previous
// one, so records created in sequence never share a createdAt. Millisecond
// precision survives every backend.
func stamp() time.Time {
	now := time.Now().UTC().Truncate(time.Millisecond)

	clock.Lock()
	defer clock.Unlock()
	if !now.After(clock.last) {
		now = clock.last.Add(time.Millisecond)
	}
	clock.last = now
	return now
}
