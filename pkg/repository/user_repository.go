package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"alx_travel_app/pkg/apperror"
	"alx_travel_app/pkg/database"
	"alx_travel_app/pkg/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// EnsureByUsername returns the user, creating it from defaults if absent.
	EnsureByUsername(ctx context.Context, username string, defaults models.User) (*models.User, bool, error)
	// Delete removes the user with their listings, bookings and reviews.
	Delete(ctx context.Context, id uint) error
}

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, translate(err, "user", strconv.FormatUint(uint64(id), 10))
	}
	return &u, nil
}

func (r *GormUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, translate(err, "user", username)
	}
	return &u, nil
}

func (r *GormUserRepository) EnsureByUsername(ctx context.Context, username string, defaults models.User) (*models.User, bool, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, false, apperror.NewValidation("username", "This field may not be blank.")
	}

	u, err := r.GetByUsername(ctx, username)
	if err == nil {
		return u, false, nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return nil, false, err
	}

	created := defaults
	created.ID = 0
	created.Username = username
	if err := r.db.WithContext(ctx).Create(&created).Error; err != nil {
		// lost a race with a concurrent first request for the same user
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			u, getErr := r.GetByUsername(ctx, username)
			return u, false, getErr
		}
		return nil, false, translate(err, "user", username)
	}
	return &created, true, nil
}

func (r *GormUserRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := database.DeleteCascade(tx, "users", []interface{}{id})
		if err != nil {
			return err
		}
		if n == 0 {
			return apperror.NewNotFound("user", strconv.FormatUint(uint64(id), 10))
		}
		return nil
	})
}
