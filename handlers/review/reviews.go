package review

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/hackagra/mindverse-api/services"
	"github.com/hackagra/mindverse-api/services/notify"
	"github.com/hackagra/mindverse-api/utils/middleware"
	"github.com/hackagra/mindverse-api/utils/response"
)

// ReviewHandler handles senior review requests
type ReviewHandler struct {
	db      *gorm.DB
	reviews *services.ReviewService
	hub     *notify.Hub
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(db *gorm.DB, reviews *services.ReviewService, hub *notify.Hub) *ReviewHandler {
	return &ReviewHandler{
		db:      db,
		reviews: reviews,
		hub:     hub,
	}
}

// SubmitReviewRequest represents a review submission
type SubmitReviewRequest struct {
	SeniorID uint   `json:"senior_id" validate:"required"`
	Rating   int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment  string `json:"comment" validate:"required,max=500"`
}

// Submit creates a review for a senior and updates the senior's average
// rating.
func (h *ReviewHandler) Submit(c *fiber.Ctx) error {
	reviewerID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not found in context")
	}

	var req SubmitReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.SeniorID == 0 {
		return response.BadRequest(c, "senior_id is required")
	}

	review, err := h.reviews.SubmitReview(c.Context(), reviewerID, req.SeniorID, req.Rating, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRating),
			errors.Is(err, services.ErrCommentMissing),
			errors.Is(err, services.ErrCommentTooLong),
			errors.Is(err, services.ErrSelfReview):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrSeniorNotFound):
			return response.NotFound(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to submit review")
		}
	}

	// Notify the senior. Best effort; review submission already succeeded.
	if h.hub != nil {
		_ = h.hub.Publish(c.Context(), notify.Notice{
			UserID:  req.SeniorID,
			Title:   "New review received",
			Message: "Someone left a review on your mentorship profile",
		})
	}

	return response.Created(c, review.ToResponse())
}

// ListForSenior returns all reviews for a senior, newest first
func (h *ReviewHandler) ListForSenior(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid senior ID")
	}

	reviews, err := h.reviews.ReviewsForSenior(c.Context(), uint(id))
	if err != nil {
		return response.InternalServerError(c, "Failed to load reviews")
	}

	items := make([]interface{}, 0, len(reviews))
	for i := range reviews {
		items = append(items, reviews[i].ToResponse())
	}

	return response.Success(c, fiber.Map{
		"reviews": items,
		"count":   len(items),
	})
}
