package models

import (
	"fmt"
	"strings"
	"time"

	"alx_travel_app/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	MinRating = 1
	MaxRating = 5
)

// NewListing builds a listing with a fresh identifier. CreatedAt is left for
// the repository to assign.
func NewListing(hostID uint, title, description string, pricePerNight decimal.Decimal, location string) (*Listing, error) {
	l := &Listing{
		ID:            uuid.New(),
		HostID:        hostID,
		Title:         title,
		Description:   description,
		PricePerNight: pricePerNight,
		Location:      location,
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Listing) Validate() error {
	if l.HostID == 0 {
		return apperror.NewValidation("host", "This field is required.")
	}
	for _, f := range []struct{ name, value string }{
		{"title", l.Title},
		{"description", l.Description},
		{"location", l.Location},
	} {
		if strings.TrimSpace(f.value) == "" {
			return apperror.NewValidation(f.name, "This field may not be blank.")
		}
	}
	return nil
}

// NewBooking builds a booking; an empty status means pending.
func NewBooking(listingID uuid.UUID, userID uint, checkIn, checkOut time.Time, status BookingStatus) (*Booking, error) {
	if status == "" {
		status = BookingStatusPending
	}
	b := &Booking{
		BookingID: uuid.New(),
		ListingID: listingID,
		UserID:    userID,
		CheckIn:   datatypes.Date(checkIn),
		CheckOut:  datatypes.Date(checkOut),
		Status:    status,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate runs before every write of the booking, not only at construction.
func (b *Booking) Validate() error {
	if b.ListingID == uuid.Nil {
		return apperror.NewValidation("listing", "This field is required.")
	}
	if b.UserID == 0 {
		return apperror.NewValidation("user", "This field is required.")
	}
	if !b.Status.Valid() {
		return apperror.NewValidation("status", fmt.Sprintf("%q is not a valid choice.", string(b.Status)))
	}
	if !DateOf(b.CheckIn).Before(DateOf(b.CheckOut)) {
		return apperror.NewValidation("check_out", "check_out must be after check_in")
	}
	return nil
}

// NewReview builds a review; comment may be nil.
func NewReview(listingID uuid.UUID, userID uint, rating int, comment *string) (*Review, error) {
	r := &Review{
		ReviewID:  uuid.New(),
		ListingID: listingID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Review) Validate() error {
	if r.ListingID == uuid.Nil {
		return apperror.NewValidation("listing", "This field is required.")
	}
	if r.UserID == 0 {
		return apperror.NewValidation("user", "This field is required.")
	}
	if r.Rating < MinRating || r.Rating > MaxRating {
		return apperror.NewValidation("rating", "Rating must be between 1 and 5")
	}
	return nil
}

// DateOf strips the clock from a stored date so that values read back from
// different drivers compare by calendar day.
func DateOf(d datatypes.Date) time.Time {
	y, m, day := time.Time(d).Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}
