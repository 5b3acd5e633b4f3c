package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/kalaghar/app/models"
	"github.com/shashiranjanraj/kalaghar/pkg/metrics"
)

// NewSQLStore wires repositories onto a gorm handle.
func NewSQLStore(db *gorm.DB) *Store {
	driver := db.Dialector.Name()

	return &Store{
		Driver:   driver,
		Users:    &sqlUsers{db: db, driver: driver},
		Artworks: &sqlArtworks{db: db, driver: driver},
		Orders:   &sqlOrders{db: db, driver: driver},
		ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		migrate: func(ctx context.Context) error {
			return db.WithContext(ctx).AutoMigrate(&models.User{}, &models.Artwork{}, &models.Order{})
		},
		close: func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}

func sqlErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		return ErrDuplicate
	}
	return err
}

// isUniqueViolation catches drivers whose errors gorm does not translate.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	for _, s := range []string{
		"UNIQUE constraint failed", // sqlite
		"duplicate key value",      // postgres
		"Duplicate entry",          // mysql
		"Cannot insert duplicate key",
	} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

// ─── Users ───────────────────────────────────────────────────────────────────

type sqlUsers struct {
	db     *gorm.DB
	driver string
}

func (r *sqlUsers) Create(ctx context.Context, u *models.User) error {
	defer metrics.ObserveStoreOp(r.driver, usersCollection, "create", time.Now())

	u.ID = uuid.NewString()
	u.CreatedAt = stamp()
	u.UpdatedAt = u.CreatedAt
	if err := sqlErr(r.db.WithContext(ctx).Create(u).Error); err != nil {
		u.ID = ""
		return err
	}
	return nil
}

func (r *sqlUsers) FindByID(ctx context.Context, id string) (*models.User, error) {
	defer metrics.ObserveStoreOp(r.driver, usersCollection, "find", time.Now())

	var u models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, sqlErr(err)
	}
	return &u, nil
}

func (r *sqlUsers) FindByLogin(ctx context.Context, name, role string) (*models.User, error) {
	defer metrics.ObserveStoreOp(r.driver, usersCollection, "find", time.Now())

	var u models.User
	if err := r.db.WithContext(ctx).Where("name = ? AND role = ?", name, role).First(&u).Error; err != nil {
		return nil, sqlErr(err)
	}
	return &u, nil
}

func (r *sqlUsers) All(ctx context.Context) ([]models.User, error) {
	defer metrics.ObserveStoreOp(r.driver, usersCollection, "all", time.Now())

	var users []models.User
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *sqlUsers) UpdateByID(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	defer metrics.ObserveStoreOp(r.driver, usersCollection, "update", time.Now())

	var u models.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&u).Error; err != nil {
			return err
		}
		patch.Apply(&u)
		u.UpdatedAt = stamp()
		return tx.Save(&u).Error
	})
	if err != nil {
		return nil, sqlErr(err)
	}
	return &u, nil
}

func (r *sqlUsers) DeleteByID(ctx context.Context, id string) error {
	defer metrics.ObserveStoreOp(r.driver, usersCollection, "delete", time.Now())

	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{}).Error
}

// ─── Artworks ────────────────────────────────────────────────────────────────

type sqlArtworks struct {
	db     *gorm.DB
	driver string
}

func (r *sqlArtworks) Create(ctx context.Context, a *models.Artwork) error {
	defer metrics.ObserveStoreOp(r.driver, artworksCollection, "create", time.Now())

	a.ID = uuid.NewString()
	a.CreatedAt = stamp()
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *sqlArtworks) FindByID(ctx context.Context, id string) (*models.Artwork, error) {
	defer metrics.ObserveStoreOp(r.driver, artworksCollection, "find", time.Now())

	var a models.Artwork
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return nil, sqlErr(err)
	}
	return &a, nil
}

func (r *sqlArtworks) All(ctx context.Context) ([]models.Artwork, error) {
	defer metrics.ObserveStoreOp(r.driver, artworksCollection, "all", time.Now())

	var out []models.Artwork
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *sqlArtworks) DeleteByID(ctx context.Context, id string) error {
	defer metrics.ObserveStoreOp(r.driver, artworksCollection, "delete", time.Now())

	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Artwork{}).Error
}

// ─── Orders ──────────────────────────────────────────────────────────────────

type sqlOrders struct {
	db     *gorm.DB
	driver string
}

func (r *sqlOrders) Create(ctx context.Context, o *models.Order) error {
	defer metrics.ObserveStoreOp(r.driver, ordersCollection, "create", time.Now())

	o.ID = uuid.NewString()
	o.CreatedAt = stamp()
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *sqlOrders) FindByID(ctx context.Context, id string) (*models.Order, error) {
	defer metrics.ObserveStoreOp(r.driver, ordersCollection, "find", time.Now())

	var o models.Order
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&o).Error; err != nil {
		return nil, sqlErr(err)
	}
	return &o, nil
}

func (r *sqlOrders) All(ctx context.Context) ([]models.Order, error) {
	defer metrics.ObserveStoreOp(r.driver, ordersCollection, "all", time.Now())

	var out []models.Order
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *sqlOrders) DeleteByID(ctx context.Context, id string) error {
	defer metrics.ObserveStoreOp(r.driver, ordersCollection, "delete", time.Now())

	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Order{}).Error
}
