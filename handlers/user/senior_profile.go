package user

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/hackagra/mindverse-api/model"
	"github.com/hackagra/mindverse-api/utils/middleware"
	"github.com/hackagra/mindverse-api/utils/response"
	"github.com/hackagra/mindverse-api/utils/validation"
)

// UserHandler handles user profile requests
type UserHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewUserHandler creates a new user handler
func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// SeniorProfileRequest carries a partial update of the caller's senior
// mentorship profile. All fields are pointers so that explicitly sent falsy
// values ("", 0) are applied, while omitted fields are left untouched.
// Activation is not a field: any update activates the profile, and there is
// no deactivation operation.
type SeniorProfileRequest struct {
	Subjects          *[]model.SeniorSubject `json:"subjects,omitempty"`
	Description       *string                `json:"description,omitempty"`
	ProfilePictureURL *string                `json:"profile_picture_url,omitempty"`
	Availability      *string                `json:"availability,omitempty"`
	ConnectionLink    *string                `json:"connection_link,omitempty"`
	SessionsTaken     *int                   `json:"sessions_taken,omitempty"`
	SessionsAttended  *int                   `json:"sessions_attended,omitempty"`
}

// applySeniorProfile maps the set fields of the request onto a column update
// map. Every update activates the profile. Average rating is derived from
// reviews and never accepted from clients.
func applySeniorProfile(req *SeniorProfileRequest) (map[string]interface{}, error) {
	updates := map[string]interface{}{
		"is_senior_profile_active": true,
	}
	if req.Subjects != nil {
		// Stored as a JSON array so the senior's ordering is preserved
		raw, err := json.Marshal(*req.Subjects)
		if err != nil {
			return nil, err
		}
		updates["senior_subjects"] = datatypes.JSON(raw)
	}
	if req.Description != nil {
		updates["senior_description"] = *req.Description
	}
	if req.ProfilePictureURL != nil {
		updates["profile_picture_url"] = *req.ProfilePictureURL
	}
	if req.Availability != nil {
		updates["availability"] = *req.Availability
	}
	if req.ConnectionLink != nil {
		updates["connection_link"] = *req.ConnectionLink
	}
	if req.SessionsTaken != nil {
		if *req.SessionsTaken < 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "sessions_taken cannot be negative")
		}
		updates["sessions_taken"] = *req.SessionsTaken
	}
	if req.SessionsAttended != nil {
		if *req.SessionsAttended < 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "sessions_attended cannot be negative")
		}
		updates["sessions_attended"] = *req.SessionsAttended
	}

	return updates, nil
}

// UpdateSeniorProfile updates the caller's own senior mentorship profile.
// The target row is derived from the authenticated identity, never from a
// client-supplied ID.
func (h *UserHandler) UpdateSeniorProfile(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not found in context")
	}

	var req SeniorProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	updates, err := applySeniorProfile(&req)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return response.BadRequest(c, fe.Message)
		}
		return response.BadRequest(c, "Invalid senior profile payload")
	}

	if err := h.db.Model(&model.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		return response.InternalServerError(c, "Failed to update senior profile")
	}

	var user model.User
	if err := h.db.First(&user, userID).Error; err != nil {
		return response.InternalServerError(c, "Failed to reload user")
	}

	return response.SuccessWithMessage(c, "Senior profile updated", user)
}
