package api

import (
	"net/http"

	"alx_travel_app/pkg/apperror"
	"alx_travel_app/pkg/serializers"

	"github.com/gin-gonic/gin"
)

func (h *Handler) createReview(c *gin.Context) {
	user := h.currentUser(c)
	if user == nil {
		return
	}

	var in serializers.ReviewInput
	if !bindJSON(c, &in) {
		return
	}
	review, err := in.ToReview(user.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	exists, err := h.listings.Exists(c.Request.Context(), review.ListingID)
	if err != nil {
		writeError(c, err)
		return
	}
	if !exists {
		writeError(c, apperror.NewNotFound("listing", review.ListingID.String()))
		return
	}

	if err := h.reviews.Create(c.Request.Context(), review); err != nil {
		writeError(c, err)
		return
	}
	review.User = user
	c.JSON(http.StatusCreated, serializers.NewReviewRepresentation(review))
}

func (h *Handler) updateReview(c *gin.Context) {
	id, ok := pathUUID(c, "reviewId", "review")
	if !ok {
		return
	}

	var in serializers.ReviewUpdateInput
	if !bindJSON(c, &in) {
		return
	}
	review, err := h.reviews.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	in.Apply(review)
	if err := h.reviews.Update(c.Request.Context(), review); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, serializers.NewReviewRepresentation(review))
}

func (h *Handler) deleteReview(c *gin.Context) {
	id, ok := pathUUID(c, "reviewId", "review")
	if !ok {
		return
	}
	if err := h.reviews.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
