package repository

import (
	"context"
	"time"

	"alx_travel_app/pkg/apperror"
	"alx_travel_app/pkg/database"
	"alx_travel_app/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ListingRepository interface {
	Create(ctx context.Context, listing *models.Listing) error
	// GetByID loads the listing with its host.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Listing, error)
	// GetByTitle returns the oldest listing with this title.
	GetByTitle(ctx context.Context, title string) (*models.Listing, error)
	List(ctx context.Context, limit, offset int) ([]models.Listing, int64, error)
	ListByHost(ctx context.Context, hostID uint) ([]models.Listing, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	// Delete removes the listing with its bookings and reviews.
	Delete(ctx context.Context, id uuid.UUID) error
}

type GormListingRepository struct {
	db *gorm.DB
}

func NewGormListingRepository(db *gorm.DB) *GormListingRepository {
	return &GormListingRepository{db: db}
}

func (r *GormListingRepository) Create(ctx context.Context, listing *models.Listing) error {
	if listing.ID == uuid.Nil {
		listing.ID = uuid.New()
	}
	// created_at is always assigned by the store clock
	listing.CreatedAt = time.Time{}
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(listing).Error
	return translate(err, "listing", listing.ID.String())
}

func (r *GormListingRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	var l models.Listing
	if err := r.db.WithContext(ctx).Preload("Host").First(&l, "listing_id = ?", id).Error; err != nil {
		return nil, translate(err, "listing", id.String())
	}
	return &l, nil
}

func (r *GormListingRepository) GetByTitle(ctx context.Context, title string) (*models.Listing, error) {
	var l models.Listing
	err := r.db.WithContext(ctx).
		Preload("Host").
		Where("title = ?", title).
		Order("created_at ASC").
		First(&l).Error
	if err != nil {
		return nil, translate(err, "listing", title)
	}
	return &l, nil
}

func (r *GormListingRepository) List(ctx context.Context, limit, offset int) ([]models.Listing, int64, error) {
	limit, offset = pageBounds(limit, offset)

	q := r.db.WithContext(ctx).Model(&models.Listing{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var listings []models.Listing
	err := q.Preload("Host").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&listings).Error
	if err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

func (r *GormListingRepository) ListByHost(ctx context.Context, hostID uint) ([]models.Listing, error) {
	var listings []models.Listing
	err := r.db.WithContext(ctx).
		Preload("Host").
		Where("host_id = ?", hostID).
		Order("created_at DESC").
		Find(&listings).Error
	if err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *GormListingRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Listing{}).
		Where("listing_id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormListingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := database.DeleteCascade(tx, "listings", []interface{}{id})
		if err != nil {
			return err
		}
		if n == 0 {
			return apperror.NewNotFound("listing", id.String())
		}
		return nil
	})
}
