package api

import (
	"net/http"

	"alx_travel_app/pkg/apperror"
	"alx_travel_app/pkg/serializers"

	"github.com/gin-gonic/gin"
)

func (h *Handler) getListings(c *gin.Context) {
	page, size := pageParams(c)

	listings, total, err := h.listings.List(c.Request.Context(), size, (page-1)*size)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPage(listings, serializers.NewListingRepresentation, page, size, total))
}

func (h *Handler) createListing(c *gin.Context) {
	user := h.currentUser(c)
	if user == nil {
		return
	}

	var in serializers.ListingInput
	if !bindJSON(c, &in) {
		return
	}
	listing, err := in.ToListing(user.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.listings.Create(c.Request.Context(), listing); err != nil {
		writeError(c, err)
		return
	}

	stored, err := h.listings.GetByID(c.Request.Context(), listing.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializers.NewListingRepresentation(stored))
}

func (h *Handler) getListing(c *gin.Context) {
	id, ok := pathUUID(c, "listingId", "listing")
	if !ok {
		return
	}
	listing, err := h.listings.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializers.NewListingRepresentation(listing))
}

func (h *Handler) deleteListing(c *gin.Context) {
	id, ok := pathUUID(c, "listingId", "listing")
	if !ok {
		return
	}
	if err := h.listings.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) getListingReviews(c *gin.Context) {
	id, ok := pathUUID(c, "listingId", "listing")
	if !ok {
		return
	}
	exists, err := h.listings.Exists(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	if !exists {
		writeError(c, apperror.NewNotFound("listing", id.String()))
		return
	}

	reviews, err := h.reviews.ListByListing(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	items := make([]serializers.ReviewRepresentation, len(reviews))
	for i := range reviews {
		items[i] = serializers.NewReviewRepresentation(&reviews[i])
	}
	c.JSON(http.StatusOK, items)
}
