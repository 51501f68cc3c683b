package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"alx_travel_app/pkg/apperror"
	"alx_travel_app/pkg/config"
	"alx_travel_app/pkg/database"
	"alx_travel_app/pkg/models"
	"alx_travel_app/pkg/seed"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(&config.DBConfig{
		Driver:         config.DriverSQLite,
		Path:           ":memory:",
		MaxOpenConns:   1,
		ConnectRetries: 1,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)
	server := gin.New()
	NewHandler(db).RegisterRoutes(server)
	return server, db
}

func doRequest(server *gin.Engine, method, path, user string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set(UserHeader, user)
	}
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response), w.Body.String())
	return response
}

func seededListingID(t *testing.T, db *gorm.DB, title string) string {
	t.Helper()
	var l models.Listing
	require.NoError(t, db.Where("title = ?", title).First(&l).Error)
	return l.ID.String()
}

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(setupTestDB(t))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/manage/health", nil)

	h.healthCheck(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "UP", decode(t, w)["status"])
}

func TestGetListings(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)
	_, err := seed.Run(context.Background(), db, bcrypt.MinCost)
	require.NoError(t, err)
	h := NewHandler(db)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/v1/listings?page=1&size=2", nil)

	h.getListings(c)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decode(t, w)
	assert.Equal(t, float64(3), response["totalElements"])
	assert.Equal(t, float64(2), response["pageSize"])
	items := response["items"].([]interface{})
	assert.Equal(t, 2, len(items))
}

func TestGetListing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)
	_, err := seed.Run(context.Background(), db, bcrypt.MinCost)
	require.NoError(t, err)
	h := NewHandler(db)
	id := seededListingID(t, db, "Cozy Apartment in Nairobi")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/v1/listings/"+id, nil)
	c.Params = gin.Params{gin.Param{Key: "listingId", Value: id}}

	h.getListing(c)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decode(t, w)
	assert.Equal(t, id, response["id"])
	assert.Equal(t, "demo_host", response["owner"])
	assert.Equal(t, "5000.00", response["price_per_night"])
	assert.NotEmpty(t, response["created_at"])
}

func TestGetListingNotFound(t *testing.T) {
	server, _ := setupRouter(t)

	w := doRequest(server, "GET", "/api/v1/listings/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(server, "GET", "/api/v1/listings/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateListing(t *testing.T) {
	server, _ := setupRouter(t)

	w := doRequest(server, "POST", "/api/v1/listings", "alice", map[string]interface{}{
		"title":           "Lake Cabin",
		"description":     "Quiet place by the lake",
		"price_per_night": 7500.5,
		"location":        "Naivasha",
	})

	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	response := decode(t, w)
	assert.Equal(t, "alice", response["owner"])
	assert.Equal(t, "7500.50", response["price_per_night"])
	_, err := uuid.Parse(response["id"].(string))
	assert.NoError(t, err)
}

func TestCreateListingRequiresUser(t *testing.T) {
	server, _ := setupRouter(t)

	w := doRequest(server, "POST", "/api/v1/listings", "", map[string]interface{}{
		"title": "Lake Cabin", "description": "d", "price_per_night": "1.00", "location": "l",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateListingRejectsThreeDecimalPlaces(t *testing.T) {
	server, db := setupRouter(t)

	w := doRequest(server, "POST", "/api/v1/listings", "alice", map[string]interface{}{
		"title": "Lake Cabin", "description": "d", "price_per_night": "10.005", "location": "l",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "price_per_night", decode(t, w)["field"])

	var n int64
	db.Model(&models.Listing{}).Count(&n)
	assert.Equal(t, int64(0), n)
}

func TestCreateBookingForSeededListing(t *testing.T) {
	server, db := setupRouter(t)
	_, err := seed.Run(context.Background(), db, bcrypt.MinCost)
	require.NoError(t, err)
	id := seededListingID(t, db, "Cozy Apartment in Nairobi")

	w := doRequest(server, "POST", "/api/v1/bookings", "guest", map[string]interface{}{
		"listing_id": id,
		"check_in":   "2025-06-05",
		"check_out":  "2025-06-10",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	response := decode(t, w)
	assert.Equal(t, "pending", response["status"])
	assert.Equal(t, "guest", response["user"])
	assert.Equal(t, "2025-06-05", response["check_in"])
	assert.Equal(t, "2025-06-10", response["check_out"])
	listing := response["listing"].(map[string]interface{})
	assert.Equal(t, "Cozy Apartment in Nairobi", listing["title"])
	assert.Equal(t, "demo_host", listing["owner"])
	assert.Equal(t, "5000.00", listing["price_per_night"])
}

func TestCreateBookingReversedDates(t *testing.T) {
	server, db := setupRouter(t)
	_, err := seed.Run(context.Background(), db, bcrypt.MinCost)
	require.NoError(t, err)
	id := seededListingID(t, db, "Beach House in Mombasa")

	w := doRequest(server, "POST", "/api/v1/bookings", "guest", map[string]interface{}{
		"listing_id": id,
		"check_in":   "2025-06-10",
		"check_out":  "2025-06-05",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	response := decode(t, w)
	assert.Equal(t, "check_out", response["field"])
	assert.Equal(t, "check_out must be after check_in", response["error"])

	var n int64
	db.Model(&models.Booking{}).Count(&n)
	assert.Equal(t, int64(0), n)
}

func TestCreateBookingUnknownStatus(t *testing.T) {
	server, db := setupRouter(t)
	_, err := seed.Run(context.Background(), db, bcrypt.MinCost)
	require.NoError(t, err)
	id := seededListingID(t, db, "Beach House in Mombasa")

	w := doRequest(server, "POST", "/api/v1/bookings", "guest", map[string]interface{}{
		"listing_id": id,
		"check_in":   "2025-06-05",
		"check_out":  "2025-06-10",
		"status":     "archived",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "status", decode(t, w)["field"])
}

func TestCreateBookingUnknownListing(t *testing.T) {
	server, _ := setupRouter(t)

	w := doRequest(server, "POST", "/api/v1/bookings", "guest", map[string]interface{}{
		"listing_id": uuid.NewString(),
		"check_in":   "2025-06-05",
		"check_out":  "2025-06-10",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateBooking(t *testing.T) {
	server, db := setupRouter(t)
	_, err := seed.Run(context.Background(), db, bcrypt.MinCost)
	require.NoError(t, err)
	id := seededListingID(t, db, "Safari Lodge in Maasai Mara")

	w := doRequest(server, "POST", "/api/v1/bookings", "guest", map[string]interface{}{
		"listing_id": id, "check_in": "2025-06-05", "check_out": "2025-06-10",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	bookingID := decode(t, w)["id"].(string)

	w = doRequest(server, "PATCH", "/api/v1/bookings/"+bookingID, "guest", map[string]interface{}{
		"status": "confirmed",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "confirmed", decode(t, w)["status"])

	w = doRequest(server, "PATCH", "/api/v1/bookings/"+bookingID, "guest", map[string]interface{}{
		"check_out": "2025-06-01",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "check_out", decode(t, w)["field"])

	var stored models.Booking
	require.NoError(t, db.First(&stored, "booking_id = ?", bookingID).Error)
	assert.Equal(t, "2025-06-10", models.DateOf(stored.CheckOut).Format("2006-01-02"))
	assert.Equal(t, models.BookingStatusConfirmed, stored.Status)
}

func TestGetBookingsListsOnlyCallers(t *testing.T) {
	server, db := setupRouter(t)
	_, err := seed.Run(context.Background(), db, bcrypt.MinCost)
	require.NoError(t, err)
	id := seededListingID(t, db, "Cozy Apartment in Nairobi")

	for _, guest := range []string{"guest", "guest", "other"} {
		w := doRequest(server, "POST", "/api/v1/bookings", guest, map[string]interface{}{
			"listing_id": id, "check_in": "2025-06-05", "check_out": "2025-06-10",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := doRequest(server, "GET", "/api/v1/bookings", "guest", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	response := decode(t, w)
	assert.Equal(t, float64(2), response["totalElements"])
	assert.Len(t, response["items"], 2)
}

func TestDeleteListingCascades(t *testing.T) {
	server, db := setupRouter(t)
	_, err := seed.Run(context.Background(), db, bcrypt.MinCost)
	require.NoError(t, err)
	id := seededListingID(t, db, "Cozy Apartment in Nairobi")

	w := doRequest(server, "POST", "/api/v1/bookings", "guest", map[string]interface{}{
		"listing_id": id, "check_in": "2025-06-05", "check_out": "2025-06-10",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = doRequest(server, "POST", "/api/v1/reviews", "guest", map[string]interface{}{
		"listing_id": id, "rating": 5, "comment": "Lovely",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doRequest(server, "DELETE", "/api/v1/listings/"+id, "demo_host", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	var bookings, reviews int64
	db.Model(&models.Booking{}).Count(&bookings)
	db.Model(&models.Review{}).Count(&reviews)
	assert.Equal(t, int64(0), bookings)
	assert.Equal(t, int64(0), reviews)

	w = doRequest(server, "DELETE", "/api/v1/listings/"+id, "demo_host", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReviewLifecycle(t *testing.T) {
	server, db := setupRouter(t)
	_, err := seed.Run(context.Background(), db, bcrypt.MinCost)
	require.NoError(t, err)
	id := seededListingID(t, db, "Beach House in Mombasa")

	w := doRequest(server, "POST", "/api/v1/reviews", "guest", map[string]interface{}{
		"listing_id": id, "rating": 6,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "rating", decode(t, w)["field"])

	w = doRequest(server, "POST", "/api/v1/reviews", "guest", map[string]interface{}{
		"listing_id": id, "rating": 5,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	assert.Equal(t, "guest", created["user"])
	assert.Nil(t, created["comment"])
	reviewID := created["id"].(string)

	w = doRequest(server, "PATCH", "/api/v1/reviews/"+reviewID, "guest", map[string]interface{}{
		"rating": 0,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(server, "PATCH", "/api/v1/reviews/"+reviewID, "guest", map[string]interface{}{
		"rating": 3, "comment": "Noisy at night",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, float64(3), decode(t, w)["rating"])

	w = doRequest(server, "GET", "/api/v1/listings/"+id+"/reviews", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var reviews []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reviews))
	require.Len(t, reviews, 1)
	assert.Equal(t, "Noisy at night", reviews[0]["comment"])

	w = doRequest(server, "DELETE", "/api/v1/reviews/"+reviewID, "guest", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = doRequest(server, "DELETE", "/api/v1/reviews/"+reviewID, "guest", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMalformedBody(t *testing.T) {
	server, _ := setupRouter(t)

	req := httptest.NewRequest("POST", "/api/v1/bookings", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(UserHeader, "guest")
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBookingEmptyStatus(t *testing.T) {
	server, db := setupRouter(t)
	_, err := seed.Run(context.Background(), db, bcrypt.MinCost)
	require.NoError(t, err)
	id := seededListingID(t, db, "Beach House in Mombasa")

	w := doRequest(server, "POST", "/api/v1/bookings", "guest", map[string]interface{}{
		"listing_id": id,
		"check_in":   "2025-06-05",
		"check_out":  "2025-06-10",
		"status":     "",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "status", decode(t, w)["field"])
}

func TestWriteErrorIntegrityNamesRelation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/v1/bookings", nil)

	writeError(c, apperror.NewIntegrity("booking", "listing does not exist", errors.New("FOREIGN KEY constraint failed")))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "booking: listing does not exist", decode(t, w)["error"])
}

func TestWriteErrorStoreFailureIsOpaque(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/v1/listings", nil)

	writeError(c, errors.New("dial tcp: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal error", decode(t, w)["error"])
}
