package user

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/hackagra/mindverse-api/model"
	"github.com/hackagra/mindverse-api/utils/response"
)

// SeniorListItem is the public projection of a senior's profile for the
// mentorship directory. Contact and personal details stay private.
type SeniorListItem struct {
	ID                uint                  `json:"id"`
	Username          string                `json:"username"`
	ProfilePictureURL string                `json:"profile_picture_url,omitempty"`
	Subjects          []model.SeniorSubject `json:"subjects"`
	Description       string                `json:"description,omitempty"`
	Availability      string                `json:"availability,omitempty"`
	ConnectionLink    string                `json:"connection_link,omitempty"`
	AverageRating     float64               `json:"average_rating"`
	ReviewCount       int                   `json:"review_count"`
	SessionsTaken     int                   `json:"sessions_taken"`
	SessionsAttended  int                   `json:"sessions_attended"`
	Course            string                `json:"course,omitempty"`
	University        string                `json:"university,omitempty"`

	Reviews []model.ReviewResponse `json:"reviews"`
}

// ListSeniors returns all active senior profiles, highest rated first, with
// their reviews attached.
func (h *UserHandler) ListSeniors(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var seniors []model.User
	err := h.db.
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Preload("Reviewer").Order("created_at DESC")
		}).
		Where("is_senior_profile_active = ?", true).
		Order("average_rating DESC, id ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&seniors).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to load seniors")
	}

	items := make([]SeniorListItem, 0, len(seniors))
	for i := range seniors {
		items = append(items, toSeniorListItem(&seniors[i]))
	}

	return response.Success(c, fiber.Map{
		"seniors": items,
		"page":    page,
		"limit":   limit,
	})
}

// GetSenior returns one active senior profile by ID
func (h *UserHandler) GetSenior(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid senior ID")
	}

	var senior model.User
	err = h.db.
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Preload("Reviewer").Order("created_at DESC")
		}).
		Where("id = ? AND is_senior_profile_active = ?", uint(id), true).
		First(&senior).Error
	if err != nil {
		return response.NotFound(c, "Senior profile not found")
	}

	return response.Success(c, toSeniorListItem(&senior))
}

func toSeniorListItem(u *model.User) SeniorListItem {
	item := SeniorListItem{
		ID:                u.ID,
		Username:          u.Username,
		ProfilePictureURL: u.ProfilePictureURL,
		Subjects:          u.SubjectList(),
		Description:       u.SeniorDescription,
		Availability:      u.Availability,
		ConnectionLink:    u.ConnectionLink,
		AverageRating:     u.AverageRating,
		ReviewCount:       len(u.Reviews),
		SessionsTaken:     u.SessionsTaken,
		SessionsAttended:  u.SessionsAttended,
		Course:            u.Course,
		University:        u.University,
		Reviews:           make([]model.ReviewResponse, 0, len(u.Reviews)),
	}
	for i := range u.Reviews {
		item.Reviews = append(item.Reviews, u.Reviews[i].ToResponse())
	}
	return item
}
