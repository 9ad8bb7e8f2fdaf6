package quiz

import (
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/hackagra/mindverse-api/model"
	"github.com/hackagra/mindverse-api/services"
	"github.com/hackagra/mindverse-api/utils/middleware"
	"github.com/hackagra/mindverse-api/utils/response"
)

// QuizHandler handles quiz result and leaderboard requests
type QuizHandler struct {
	db          *gorm.DB
	leaderboard *services.LeaderboardService
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(db *gorm.DB, leaderboard *services.LeaderboardService) *QuizHandler {
	return &QuizHandler{
		db:          db,
		leaderboard: leaderboard,
	}
}

// SubmitResultRequest records a completed quiz attempt
type SubmitResultRequest struct {
	Topic      string          `json:"topic,omitempty" validate:"max=100"`
	Score      int             `json:"score" validate:"gte=0"`
	TotalMarks int             `json:"total_marks" validate:"required,gte=1"`
	Answers    json.RawMessage `json:"answers,omitempty"`
}

// SubmitResult saves a quiz attempt for the authenticated user
func (h *QuizHandler) SubmitResult(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not found in context")
	}

	var req SubmitResultRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.TotalMarks < 1 {
		return response.BadRequest(c, "total_marks must be at least 1")
	}
	if req.Score < 0 || req.Score > req.TotalMarks {
		return response.BadRequest(c, "score must be between 0 and total_marks")
	}

	result := model.QuizResult{
		UserID:     userID,
		Topic:      req.Topic,
		Score:      req.Score,
		TotalMarks: req.TotalMarks,
	}
	if len(req.Answers) > 0 {
		result.Answers = datatypes.JSON(req.Answers)
	}

	if err := h.db.Create(&result).Error; err != nil {
		return response.InternalServerError(c, "Failed to save quiz result")
	}

	return response.Created(c, result)
}

// History returns the caller's quiz attempts, newest first
func (h *QuizHandler) History(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not found in context")
	}

	var results []model.QuizResult
	err := h.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(100).
		Find(&results).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to load quiz history")
	}

	return response.Success(c, fiber.Map{
		"results": results,
		"count":   len(results),
	})
}

// Leaderboard returns the ranked best scores, optionally per topic
func (h *QuizHandler) Leaderboard(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	topic := c.Query("topic")

	entries, err := h.leaderboard.TopScores(c.Context(), topic, limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to load leaderboard")
	}

	return response.Success(c, fiber.Map{
		"leaderboard": entries,
		"count":       len(entries),
	})
}
