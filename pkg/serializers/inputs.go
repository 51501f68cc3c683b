// Package serializers validates client input at the boundary and renders
// entities into their external representations. Input checks here run
// before entity construction and independently of the entity invariants.
package serializers

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"alx_travel_app/pkg/apperror"
	"alx_travel_app/pkg/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DateLayout = "2006-01-02"

	priceMaxDigits = 10
	pricePlaces    = 2
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecimalText keeps a decimal exactly as the client sent it. Both JSON
// strings and JSON numbers are accepted.
type DecimalText string

func (d *DecimalText) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	switch {
	case raw == "null":
		*d = ""
	case strings.HasPrefix(raw, `"`):
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*d = DecimalText(s)
	default:
		*d = DecimalText(raw)
	}
	return nil
}

type ListingInput struct {
	Title         string      `json:"title" validate:"required,max=255"`
	Description   string      `json:"description" validate:"required"`
	PricePerNight DecimalText `json:"price_per_night" validate:"required"`
	Location      string      `json:"location" validate:"required,max=255"`
}

// ToListing checks the input and builds a listing owned by hostID.
func (in ListingInput) ToListing(hostID uint) (*models.Listing, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	price, err := ParsePrice("price_per_night", string(in.PricePerNight))
	if err != nil {
		return nil, err
	}
	return models.NewListing(hostID, in.Title, in.Description, price, in.Location)
}

type BookingInput struct {
	ListingID string  `json:"listing_id" validate:"required"`
	CheckIn   string  `json:"check_in" validate:"required"`
	CheckOut  string  `json:"check_out" validate:"required"`
	// Absent means pending; an empty string is rejected like any unknown value.
	Status    *string `json:"status"`
}

// BookingFields is a BookingInput after boundary validation.
type BookingFields struct {
	ListingID uuid.UUID
	CheckIn   time.Time
	CheckOut  time.Time
	Status    models.BookingStatus
}

func (in BookingInput) Validate() (*BookingFields, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	listingID, err := ParseUUID("listing_id", in.ListingID)
	if err != nil {
		return nil, err
	}
	checkIn, err := ParseDate("check_in", in.CheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := ParseDate("check_out", in.CheckOut)
	if err != nil {
		return nil, err
	}
	status := models.BookingStatusPending
	if in.Status != nil {
		if status, err = ParseStatus("status", *in.Status); err != nil {
			return nil, err
		}
	}
	return &BookingFields{
		ListingID: listingID,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Status:    status,
	}, nil
}

// ToBooking runs the boundary checks and then the entity constructor.
func (in BookingInput) ToBooking(userID uint) (*models.Booking, error) {
	f, err := in.Validate()
	if err != nil {
		return nil, err
	}
	return models.NewBooking(f.ListingID, userID, f.CheckIn, f.CheckOut, f.Status)
}

// BookingUpdateInput carries a partial update; nil fields are left alone.
type BookingUpdateInput struct {
	CheckIn  *string `json:"check_in"`
	CheckOut *string `json:"check_out"`
	Status   *string `json:"status"`
}

// Apply validates the present fields and copies them onto b. The caller
// still has to persist b, which re-checks the date order.
func (in BookingUpdateInput) Apply(b *models.Booking) error {
	var (
		checkIn, checkOut time.Time
		status            models.BookingStatus
		err               error
	)
	if in.CheckIn != nil {
		if checkIn, err = ParseDate("check_in", *in.CheckIn); err != nil {
			return err
		}
	}
	if in.CheckOut != nil {
		if checkOut, err = ParseDate("check_out", *in.CheckOut); err != nil {
			return err
		}
	}
	if in.Status != nil {
		if status, err = ParseStatus("status", *in.Status); err != nil {
			return err
		}
	}

	if in.CheckIn != nil {
		b.CheckIn = dateValue(checkIn)
	}
	if in.CheckOut != nil {
		b.CheckOut = dateValue(checkOut)
	}
	if in.Status != nil {
		b.Status = status
	}
	return nil
}

type ReviewInput struct {
	ListingID string  `json:"listing_id" validate:"required"`
	Rating    *int    `json:"rating" validate:"required"`
	Comment   *string `json:"comment"`
}

func (in ReviewInput) ToReview(userID uint) (*models.Review, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	listingID, err := ParseUUID("listing_id", in.ListingID)
	if err != nil {
		return nil, err
	}
	return models.NewReview(listingID, userID, *in.Rating, normalizeComment(in.Comment))
}

type ReviewUpdateInput struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

func (in ReviewUpdateInput) Apply(r *models.Review) {
	if in.Rating != nil {
		r.Rating = *in.Rating
	}
	if in.Comment != nil {
		r.Comment = normalizeComment(in.Comment)
	}
}

// ParsePrice accepts what a decimal(10,2) column can hold.
func ParsePrice(field, text string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return decimal.Decimal{}, apperror.NewValidation(field, "A valid number is required.")
	}
	if -d.Exponent() > pricePlaces {
		return decimal.Decimal{}, apperror.NewValidation(field,
			fmt.Sprintf("Ensure that there are no more than %d decimal places.", pricePlaces))
	}
	whole := d.Abs().Truncate(0).String()
	if whole != "0" && len(whole) > priceMaxDigits-pricePlaces {
		return decimal.Decimal{}, apperror.NewValidation(field,
			fmt.Sprintf("Ensure that there are no more than %d digits before the decimal point.", priceMaxDigits-pricePlaces))
	}
	return d, nil
}

func ParseDate(field, text string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(text))
	if err != nil {
		return time.Time{}, apperror.NewValidation(field, "Date has wrong format. Use one of these formats instead: YYYY-MM-DD.")
	}
	return t, nil
}

func ParseUUID(field, text string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(text))
	if err != nil {
		return uuid.Nil, apperror.NewValidation(field, "Must be a valid UUID.")
	}
	return id, nil
}

func ParseStatus(field, text string) (models.BookingStatus, error) {
	s := models.BookingStatus(text)
	if !s.Valid() {
		return "", apperror.NewValidation(field, fmt.Sprintf("%q is not a valid choice.", text))
	}
	return s, nil
}

func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return apperror.NewValidation(fe.Field(), messageFor(fe))
	}
	return err
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	default:
		return fmt.Sprintf("Failed %s validation.", fe.Tag())
	}
}

// An empty comment is stored as no comment.
func normalizeComment(c *string) *string {
	if c == nil || strings.TrimSpace(*c) == "" {
		return nil
	}
	v := *c
	return &v
}
