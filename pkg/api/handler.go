// Package api exposes listings, bookings and reviews over HTTP. Handlers
// stay thin: they decode input through serializers, call the repositories
// and map apperror types to status codes.
package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"alx_travel_app/pkg/apperror"
	"alx_travel_app/pkg/database"
	"alx_travel_app/pkg/models"
	"alx_travel_app/pkg/repository"
	"alx_travel_app/pkg/serializers"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserHeader names the caller. Authentication happens upstream.
const UserHeader = "X-User-Name"

type Handler struct {
	db       *gorm.DB
	users    repository.UserRepository
	listings repository.ListingRepository
	bookings repository.BookingRepository
	reviews  repository.ReviewRepository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		db:       db,
		users:    repository.NewGormUserRepository(db),
		listings: repository.NewGormListingRepository(db),
		bookings: repository.NewGormBookingRepository(db),
		reviews:  repository.NewGormReviewRepository(db),
	}
}

func (h *Handler) RegisterRoutes(server *gin.Engine) {
	v1 := server.Group("/api/v1")

	v1.GET("/listings", h.getListings)
	v1.POST("/listings", h.createListing)
	v1.GET("/listings/:listingId", h.getListing)
	v1.DELETE("/listings/:listingId", h.deleteListing)
	v1.GET("/listings/:listingId/reviews", h.getListingReviews)

	v1.GET("/bookings", h.getBookings)
	v1.POST("/bookings", h.createBooking)
	v1.GET("/bookings/:bookingId", h.getBooking)
	v1.PATCH("/bookings/:bookingId", h.updateBooking)
	v1.DELETE("/bookings/:bookingId", h.deleteBooking)

	v1.POST("/reviews", h.createReview)
	v1.PATCH("/reviews/:reviewId", h.updateReview)
	v1.DELETE("/reviews/:reviewId", h.deleteReview)

	server.GET("/manage/health", h.healthCheck)
}

func (h *Handler) healthCheck(c *gin.Context) {
	if err := database.Ping(h.db); err != nil {
		log.Printf("Health check failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "DOWN"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}

// currentUser resolves the caller, creating a local user on first sight.
// It writes the error response itself and returns nil in that case.
func (h *Handler) currentUser(c *gin.Context) *models.User {
	name := strings.TrimSpace(c.GetHeader(UserHeader))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": UserHeader + " header is required"})
		return nil
	}
	u, _, err := h.users.EnsureByUsername(c.Request.Context(), name, models.User{})
	if err != nil {
		writeError(c, err)
		return nil
	}
	return u
}

func writeError(c *gin.Context, err error) {
	var notFound *apperror.NotFoundError
	var integrity *apperror.IntegrityError

	if ve, ok := apperror.IsValidation(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message, "field": ve.Field})
		return
	}
	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case errors.As(err, &integrity):
		c.JSON(http.StatusConflict, gin.H{"error": integrity.Detail()})
	default:
		log.Printf("Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// bindJSON decodes the body; a malformed body is a 400 without a field.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return false
	}
	return true
}

func pathUUID(c *gin.Context, param, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		// a malformed identifier cannot name a stored row
		writeError(c, apperror.NewNotFound(resource, c.Param(param)))
		return uuid.Nil, false
	}
	return id, true
}

func pageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil || size < 1 || size > 100 {
		size = 10
	}
	return page, size
}

func toPage[E any, R any](items []E, render func(*E) R, page, size int, total int64) serializers.Page[R] {
	out := make([]R, len(items))
	for i := range items {
		out[i] = render(&items[i])
	}
	return serializers.NewPage(out, page, size, total)
}
