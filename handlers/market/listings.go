package market

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/hackagra/mindverse-api/model"
	"github.com/hackagra/mindverse-api/utils/middleware"
	"github.com/hackagra/mindverse-api/utils/response"
	"github.com/hackagra/mindverse-api/utils/validation"
)

// MarketHandler handles marketplace listing requests
type MarketHandler struct {
	db *gorm.DB
}

// NewMarketHandler creates a new market handler
func NewMarketHandler(db *gorm.DB) *MarketHandler {
	return &MarketHandler{db: db}
}

// CreateListingRequest represents a new marketplace listing
type CreateListingRequest struct {
	Title       string  `json:"title" validate:"required,min=3,max=100"`
	Description string  `json:"description,omitempty" validate:"max=2000"`
	Price       float64 `json:"price" validate:"gte=0"`
	Category    string  `json:"category,omitempty" validate:"max=50"`
	ImageURL    string  `json:"image_url,omitempty"`
}

// Create posts a new listing owned by the authenticated user
func (h *MarketHandler) Create(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not found in context")
	}

	var req CreateListingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Title = validation.SanitizeString(req.Title)
	if len(req.Title) < 3 {
		return response.BadRequest(c, "Title must be at least 3 characters")
	}
	if req.Price < 0 {
		return response.BadRequest(c, "Price cannot be negative")
	}

	listing := model.MarketListing{
		SellerID:    userID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Status:      model.ListingStatusAvailable,
	}

	if err := h.db.Create(&listing).Error; err != nil {
		return response.InternalServerError(c, "Failed to create listing")
	}

	return response.Created(c, listing)
}

// List returns listings, newest first. Filterable by category and status.
func (h *MarketHandler) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := h.db.Model(&model.MarketListing{}).Preload("Seller")

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	status := c.Query("status", string(model.ListingStatusAvailable))
	if status != "all" {
		query = query.Where("status = ?", status)
	}

	var listings []model.MarketListing
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&listings).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to load listings")
	}

	return response.Success(c, fiber.Map{
		"listings": listings,
		"page":     page,
		"limit":    limit,
	})
}

// UpdateListingRequest carries a partial update of a listing
type UpdateListingRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Category    *string  `json:"category,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`
	Status      *string  `json:"status,omitempty"`
}

// Update modifies a listing. Only the seller can update it.
func (h *MarketHandler) Update(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not found in context")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid listing ID")
	}

	var listing model.MarketListing
	if err := h.db.First(&listing, uint(id)).Error; err != nil {
		return response.NotFound(c, "Listing not found")
	}
	if listing.SellerID != userID {
		return response.Forbidden(c, "You do not own this listing")
	}

	var req UpdateListingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		title := validation.SanitizeString(*req.Title)
		if len(title) < 3 {
			return response.BadRequest(c, "Title must be at least 3 characters")
		}
		updates["title"] = title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return response.BadRequest(c, "Price cannot be negative")
		}
		updates["price"] = *req.Price
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.Status != nil {
		status := model.ListingStatus(*req.Status)
		if status != model.ListingStatusAvailable && status != model.ListingStatusSold {
			return response.BadRequest(c, "Status must be 'available' or 'sold'")
		}
		updates["status"] = status
	}

	if len(updates) == 0 {
		return response.BadRequest(c, "No fields to update")
	}

	if err := h.db.Model(&listing).Updates(updates).Error; err != nil {
		return response.InternalServerError(c, "Failed to update listing")
	}

	return response.SuccessWithMessage(c, "Listing updated", listing)
}

// Delete removes a listing. Only the seller can delete it.
func (h *MarketHandler) Delete(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not found in context")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid listing ID")
	}

	var listing model.MarketListing
	if err := h.db.First(&listing, uint(id)).Error; err != nil {
		return response.NotFound(c, "Listing not found")
	}
	if listing.SellerID != userID {
		return response.Forbidden(c, "You do not own this listing")
	}

	if err := h.db.Delete(&listing).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete listing")
	}

	return response.SuccessWithMessage(c, "Listing deleted", fiber.Map{"id": listing.ID})
}
