package user

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/hackagra/mindverse-api/model"
	"github.com/hackagra/mindverse-api/utils/middleware"
	"github.com/hackagra/mindverse-api/utils/response"
	"github.com/hackagra/mindverse-api/utils/validation"
)

// DetailsRequest carries a partial update of the caller's personal,
// educational, and social details. Pointer fields so omitted keys are left
// untouched while explicit empty strings clear a field.
type DetailsRequest struct {
	Username    *string `json:"username,omitempty"`
	RollNumber  *string `json:"roll_number,omitempty"`
	DateOfBirth *string `json:"date_of_birth,omitempty"` // YYYY-MM-DD
	Gender      *string `json:"gender,omitempty"`
	Address     *string `json:"address,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`

	TenthMarks   *string `json:"tenth_marks,omitempty"`
	TwelfthMarks *string `json:"twelfth_marks,omitempty"`
	Course       *string `json:"course,omitempty"`
	University   *string `json:"university,omitempty"`

	LinkedinProfile  *string `json:"linkedin_profile,omitempty"`
	GithubProfile    *string `json:"github_profile,omitempty"`
	PortfolioWebsite *string `json:"portfolio_website,omitempty"`
}

// applyDetails maps the set fields of the request onto a column update map
func applyDetails(req *DetailsRequest) (map[string]interface{}, error) {
	updates := make(map[string]interface{})

	if req.Username != nil {
		username := validation.SanitizeString(*req.Username)
		if ok, msg := validation.ValidateUsername(username); !ok {
			return nil, fiber.NewError(fiber.StatusBadRequest, msg)
		}
		updates["username"] = username
	}
	if req.RollNumber != nil {
		updates["roll_number"] = *req.RollNumber
	}
	if req.DateOfBirth != nil {
		if *req.DateOfBirth == "" {
			updates["date_of_birth"] = nil
		} else {
			dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
			if err != nil {
				return nil, fiber.NewError(fiber.StatusBadRequest, "date_of_birth must be in YYYY-MM-DD format")
			}
			updates["date_of_birth"] = dob
		}
	}
	if req.Gender != nil {
		updates["gender"] = *req.Gender
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
	}
	if req.TenthMarks != nil {
		updates["tenth_marks"] = *req.TenthMarks
	}
	if req.TwelfthMarks != nil {
		updates["twelfth_marks"] = *req.TwelfthMarks
	}
	if req.Course != nil {
		updates["course"] = *req.Course
	}
	if req.University != nil {
		updates["university"] = *req.University
	}
	if req.LinkedinProfile != nil {
		updates["linkedin_profile"] = *req.LinkedinProfile
	}
	if req.GithubProfile != nil {
		updates["github_profile"] = *req.GithubProfile
	}
	if req.PortfolioWebsite != nil {
		updates["portfolio_website"] = *req.PortfolioWebsite
	}

	return updates, nil
}

// UpdateDetails updates the caller's own personal, educational, and social
// details.
func (h *UserHandler) UpdateDetails(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not found in context")
	}

	var req DetailsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	updates, err := applyDetails(&req)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return response.BadRequest(c, fe.Message)
		}
		return response.BadRequest(c, "Invalid details payload")
	}

	if len(updates) == 0 {
		return response.BadRequest(c, "No fields to update")
	}

	if err := h.db.Model(&model.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		return response.InternalServerError(c, "Failed to update details")
	}

	var user model.User
	if err := h.db.First(&user, userID).Error; err != nil {
		return response.InternalServerError(c, "Failed to reload user")
	}

	return response.SuccessWithMessage(c, "Details updated", user)
}
