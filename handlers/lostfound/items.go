package lostfound

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/hackagra/mindverse-api/model"
	"github.com/hackagra/mindverse-api/utils/middleware"
	"github.com/hackagra/mindverse-api/utils/response"
	"github.com/hackagra/mindverse-api/utils/validation"
)

// LostFoundHandler handles lost-and-found board requests
type LostFoundHandler struct {
	db *gorm.DB
}

// NewLostFoundHandler creates a new lost-and-found handler
func NewLostFoundHandler(db *gorm.DB) *LostFoundHandler {
	return &LostFoundHandler{db: db}
}

// ReportItemRequest represents a new lost or found report
type ReportItemRequest struct {
	Kind        string `json:"kind" validate:"required,oneof=lost found"`
	Title       string `json:"title" validate:"required,min=3,max=100"`
	Description string `json:"description,omitempty" validate:"max=2000"`
	Location    string `json:"location,omitempty" validate:"max=200"`
	ImageURL    string `json:"image_url,omitempty"`
}

// Report posts a new lost or found item
func (h *LostFoundHandler) Report(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not found in context")
	}

	var req ReportItemRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	kind := model.LostFoundKind(req.Kind)
	if kind != model.LostFoundKindLost && kind != model.LostFoundKindFound {
		return response.BadRequest(c, "Kind must be 'lost' or 'found'")
	}

	req.Title = validation.SanitizeString(req.Title)
	if len(req.Title) < 3 {
		return response.BadRequest(c, "Title must be at least 3 characters")
	}

	item := model.LostFoundItem{
		ReporterID:  userID,
		Kind:        kind,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
	}

	if err := h.db.Create(&item).Error; err != nil {
		return response.InternalServerError(c, "Failed to create report")
	}

	return response.Created(c, item)
}

// List returns reports, newest first. Filterable by kind; resolved reports
// are hidden unless requested.
func (h *LostFoundHandler) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := h.db.Model(&model.LostFoundItem{}).Preload("Reporter")

	if kind := c.Query("kind"); kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if c.Query("include_resolved") != "true" {
		query = query.Where("resolved = ?", false)
	}

	var items []model.LostFoundItem
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to load reports")
	}

	return response.Success(c, fiber.Map{
		"items": items,
		"page":  page,
		"limit": limit,
	})
}

// Resolve marks a report as resolved. Only the reporter can resolve it.
func (h *LostFoundHandler) Resolve(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not found in context")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid item ID")
	}

	var item model.LostFoundItem
	if err := h.db.First(&item, uint(id)).Error; err != nil {
		return response.NotFound(c, "Report not found")
	}
	if item.ReporterID != userID {
		return response.Forbidden(c, "You do not own this report")
	}

	if err := h.db.Model(&item).Update("resolved", true).Error; err != nil {
		return response.InternalServerError(c, "Failed to resolve report")
	}

	return response.SuccessWithMessage(c, "Report resolved", item)
}

// Delete removes a report. Only the reporter can delete it.
func (h *LostFoundHandler) Delete(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not found in context")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid item ID")
	}

	var item model.LostFoundItem
	if err := h.db.First(&item, uint(id)).Error; err != nil {
		return response.NotFound(c, "Report not found")
	}
	if item.ReporterID != userID {
		return response.Forbidden(c, "You do not own this report")
	}

	if err := h.db.Delete(&item).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete report")
	}

	return response.SuccessWithMessage(c, "Report deleted", fiber.Map{"id": item.ID})
}
