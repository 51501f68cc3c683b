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

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	// GetByID loads the booking with its listing, the listing's host and the guest.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Booking, int64, error)
	ListByListing(ctx context.Context, listingID uuid.UUID) ([]models.Booking, error)
	// Update writes dates and status; the date-order check runs again.
	Update(ctx context.Context, booking *models.Booking) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type GormBookingRepository struct {
	db *gorm.DB
}

func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

func (r *GormBookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	if booking.BookingID == uuid.Nil {
		booking.BookingID = uuid.New()
	}
	if booking.Status == "" {
		booking.Status = models.BookingStatusPending
	}
	booking.CreatedAt = time.Time{}
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(booking).Error
	return translate(err, "booking", booking.BookingID.String())
}

func (r *GormBookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var b models.Booking
	err := r.withRelations(ctx).First(&b, "booking_id = ?", id).Error
	if err != nil {
		return nil, translate(err, "booking", id.String())
	}
	return &b, nil
}

func (r *GormBookingRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Booking, int64, error) {
	limit, offset = pageBounds(limit, offset)

	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var bookings []models.Booking
	err = r.withRelations(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (r *GormBookingRepository) ListByListing(ctx context.Context, listingID uuid.UUID) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.withRelations(ctx).
		Where("listing_id = ?", listingID).
		Order("check_in ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *GormBookingRepository) Update(ctx context.Context, booking *models.Booking) error {
	res := r.db.WithContext(ctx).
		Model(booking).
		Select("check_in", "check_out", "status").
		Updates(booking)
	if res.Error != nil {
		return translate(res.Error, "booking", booking.BookingID.String())
	}
	if res.RowsAffected == 0 {
		return apperror.NewNotFound("booking", booking.BookingID.String())
	}
	return nil
}

func (r *GormBookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := database.DeleteCascade(tx, "bookings", []interface{}{id})
		if err != nil {
			return err
		}
		if n == 0 {
			return apperror.NewNotFound("booking", id.String())
		}
		return nil
	})
}

func (r *GormBookingRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Listing").
		Preload("Listing.Host").
		Preload("User")
}
