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

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Review, error)
	// ListByListing returns the reviews of a listing, newest first.
	ListByListing(ctx context.Context, listingID uuid.UUID) ([]models.Review, error)
	// Update writes rating and comment; the rating bounds are checked again.
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type GormReviewRepository struct {
	db *gorm.DB
}

func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

func (r *GormReviewRepository) Create(ctx context.Context, review *models.Review) error {
	if review.ReviewID == uuid.Nil {
		review.ReviewID = uuid.New()
	}
	review.CreatedAt = time.Time{}
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(review).Error
	return translate(err, "review", review.ReviewID.String())
}

func (r *GormReviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	var rev models.Review
	if err := r.db.WithContext(ctx).Preload("User").First(&rev, "review_id = ?", id).Error; err != nil {
		return nil, translate(err, "review", id.String())
	}
	return &rev, nil
}

func (r *GormReviewRepository) ListByListing(ctx context.Context, listingID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("listing_id = ?", listingID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *GormReviewRepository) Update(ctx context.Context, review *models.Review) error {
	res := r.db.WithContext(ctx).
		Model(review).
		Select("rating", "comment").
		Updates(review)
	if res.Error != nil {
		return translate(res.Error, "review", review.ReviewID.String())
	}
	if res.RowsAffected == 0 {
		return apperror.NewNotFound("review", review.ReviewID.String())
	}
	return nil
}

func (r *GormReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := database.DeleteCascade(tx, "reviews", []interface{}{id})
		if err != nil {
			return err
		}
		if n == 0 {
			return apperror.NewNotFound("review", id.String())
		}
		return nil
	})
}
