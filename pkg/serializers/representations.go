package serializers

import (
	"time"

	"alx_travel_app/pkg/models"

	"gorm.io/datatypes"
)

type ListingRepresentation struct {
	ID            string    `json:"id"`
	Owner         string    `json:"owner"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	PricePerNight string    `json:"price_per_night"`
	Location      string    `json:"location"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewListingRepresentation flattens the host to its display string; load
// the Host relation first or owner renders empty.
func NewListingRepresentation(l *models.Listing) ListingRepresentation {
	rep := ListingRepresentation{
		ID:            l.ID.String(),
		Title:         l.Title,
		Description:   l.Description,
		PricePerNight: l.PricePerNight.StringFixed(pricePlaces),
		Location:      l.Location,
		CreatedAt:     l.CreatedAt.UTC(),
	}
	if l.Host != nil {
		rep.Owner = l.Host.String()
	}
	return rep
}

type BookingRepresentation struct {
	ID        string                 `json:"id"`
	Listing   *ListingRepresentation `json:"listing"`
	User      string                 `json:"user"`
	CheckIn   string                 `json:"check_in"`
	CheckOut  string                 `json:"check_out"`
	Status    string                 `json:"status"`
	CreatedAt time.Time              `json:"created_at"`
}

func NewBookingRepresentation(b *models.Booking) BookingRepresentation {
	rep := BookingRepresentation{
		ID:        b.BookingID.String(),
		CheckIn:   models.DateOf(b.CheckIn).Format(DateLayout),
		CheckOut:  models.DateOf(b.CheckOut).Format(DateLayout),
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt.UTC(),
	}
	if b.Listing != nil {
		listing := NewListingRepresentation(b.Listing)
		rep.Listing = &listing
	}
	if b.User != nil {
		rep.User = b.User.String()
	}
	return rep
}

type ReviewRepresentation struct {
	ID        string    `json:"id"`
	ListingID string    `json:"listing_id"`
	User      string    `json:"user"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

func NewReviewRepresentation(r *models.Review) ReviewRepresentation {
	rep := ReviewRepresentation{
		ID:        r.ReviewID.String(),
		ListingID: r.ListingID.String(),
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt.UTC(),
	}
	if r.User != nil {
		rep.User = r.User.String()
	}
	return rep
}

// Page is one page of a listing endpoint.
type Page[T any] struct {
	Page          int   `json:"page"`
	PageSize      int   `json:"pageSize"`
	TotalElements int64 `json:"totalElements"`
	Items         []T   `json:"items"`
}

func NewPage[T any](items []T, page, size int, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Page: page, PageSize: size, TotalElements: total, Items: items}
}

func dateValue(t time.Time) datatypes.Date {
	return datatypes.Date(t)
}
