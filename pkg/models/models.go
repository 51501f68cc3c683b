package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCanceled  BookingStatus = "canceled"
)

// BookingStatuses lists every accepted status in display order.
var BookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusCanceled,
}

func (s BookingStatus) Valid() bool {
	for _, known := range BookingStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// User mirrors the identity provider's account. Only the username is used
// outside the seed routine.
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"size:150;not null;uniqueIndex"`
	Email     string `gorm:"size:254"`
	Password  string `gorm:"size:128"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u User) String() string {
	return u.Username
}

// Deleting the host deletes the listing (see database.CascadePlan).
type Listing struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;column:listing_id"`
	HostID        uint            `gorm:"not null;index"`
	Title         string          `gorm:"size:255;not null"`
	Description   string          `gorm:"type:text;not null"`
	PricePerNight decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Location      string          `gorm:"size:255;not null"`
	CreatedAt     time.Time       `gorm:"not null"`

	Host *User `gorm:"foreignKey:HostID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (l Listing) String() string {
	return l.Title + " (" + l.ID.String() + ")"
}

type Booking struct {
	BookingID uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ListingID uuid.UUID      `gorm:"type:uuid;not null;index"`
	UserID    uint           `gorm:"not null;index"`
	CheckIn   datatypes.Date `gorm:"type:date;not null"`
	CheckOut  datatypes.Date `gorm:"type:date;not null;check:check_in < check_out"`
	Status    BookingStatus  `gorm:"size:10;not null;default:'pending'"`
	CreatedAt time.Time      `gorm:"not null"`

	Listing *Listing `gorm:"foreignKey:ListingID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	User    *User    `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (b Booking) String() string {
	return "Booking " + b.BookingID.String()
}

type Review struct {
	ReviewID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	ListingID uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID    uint      `gorm:"not null;index"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment   *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null"`

	Listing *Listing `gorm:"foreignKey:ListingID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	User    *User    `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// All returns every entity in dependency order, for migrations.
func All() []interface{} {
	return []interface{}{&User{}, &Listing{}, &Booking{}, &Review{}}
}
