// Package seed loads the demo host and sample listings. Running it again
// creates nothing new.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log"

	"alx_travel_app/pkg/apperror"
	"alx_travel_app/pkg/models"
	"alx_travel_app/pkg/passwords"
	"alx_travel_app/pkg/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	HostUsername = "demo_host"
	HostEmail    = "host@example.com"
	HostPassword = "password123"
)

type sampleListing struct {
	Title         string
	Description   string
	PricePerNight string
	Location      string
}

var sampleListings = []sampleListing{
	{"Cozy Apartment in Nairobi", "A nice apartment in the city center", "5000.00", "Nairobi"},
	{"Beach House in Mombasa", "Beautiful beachside property", "12000.00", "Mombasa"},
	{"Safari Lodge in Maasai Mara", "Experience the wild in comfort", "15000.00", "Maasai Mara"},
}

type Result struct {
	UsersCreated    int
	ListingsCreated int
}

func (r Result) String() string {
	return fmt.Sprintf("%d user(s) and %d listing(s) created", r.UsersCreated, r.ListingsCreated)
}

// Run ensures the demo host exists and creates each sample listing whose
// title is not taken yet.
func Run(ctx context.Context, db *gorm.DB, bcryptCost int) (*Result, error) {
	users := repository.NewGormUserRepository(db)
	listings := repository.NewGormListingRepository(db)
	res := &Result{}

	host, err := ensureHost(ctx, users, bcryptCost)
	if err != nil {
		return nil, err
	}
	if host.created {
		res.UsersCreated++
		log.Printf("Created demo host: %s", host.user.Username)
	}

	for _, s := range sampleListings {
		_, err := listings.GetByTitle(ctx, s.Title)
		if err == nil {
			continue
		}
		if !errors.Is(err, apperror.ErrNotFound) {
			return nil, fmt.Errorf("look up listing %q: %w", s.Title, err)
		}

		l, err := models.NewListing(host.user.ID, s.Title, s.Description,
			decimal.RequireFromString(s.PricePerNight), s.Location)
		if err != nil {
			return nil, fmt.Errorf("build listing %q: %w", s.Title, err)
		}
		if err := listings.Create(ctx, l); err != nil {
			return nil, fmt.Errorf("create listing %q: %w", s.Title, err)
		}
		res.ListingsCreated++
		log.Printf("Created sample listing: %s", l.Title)
	}

	log.Printf("Seed finished: %s", res)
	return res, nil
}

type ensuredHost struct {
	user    *models.User
	created bool
}

func ensureHost(ctx context.Context, users repository.UserRepository, bcryptCost int) (*ensuredHost, error) {
	if u, err := users.GetByUsername(ctx, HostUsername); err == nil {
		return &ensuredHost{user: u}, nil
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("look up demo host: %w", err)
	}

	hash, err := passwords.HashPassword(HostPassword, bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash demo host password: %w", err)
	}
	u, created, err := users.EnsureByUsername(ctx, HostUsername, models.User{
		Email:    HostEmail,
		Password: hash,
	})
	if err != nil {
		return nil, fmt.Errorf("create demo host: %w", err)
	}
	return &ensuredHost{user: u, created: created}, nil
}
