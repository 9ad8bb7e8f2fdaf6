package auth

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/hackagra/mindverse-api/model"
	"github.com/hackagra/mindverse-api/utils/middleware"
	"github.com/hackagra/mindverse-api/utils/response"
)

// MeResponse is the caller's own record with received reviews attached. The
// outer Reviews field shadows the model's relation so reviewers are serialized
// as the public projection, not full user rows.
type MeResponse struct {
	*model.User
	Reviews []model.ReviewResponse `json:"reviews"`
}

// NewMeResponse projects a user with preloaded reviews
func NewMeResponse(user *model.User) MeResponse {
	res := MeResponse{
		User:    user,
		Reviews: make([]model.ReviewResponse, 0, len(user.Reviews)),
	}
	for i := range user.Reviews {
		res.Reviews = append(res.Reviews, user.Reviews[i].ToResponse())
	}
	return res
}

// Me returns the authenticated user's own record with reviews populated
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not found in context")
	}

	var user model.User
	err := h.db.
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Preload("Reviewer").Order("created_at DESC")
		}).
		First(&user, userID).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to load user")
	}

	return response.Success(c, NewMeResponse(&user))
}
