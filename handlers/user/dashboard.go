package user

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hackagra/mindverse-api/model"
	"github.com/hackagra/mindverse-api/utils/middleware"
	"github.com/hackagra/mindverse-api/utils/response"
)

// DashboardStats aggregates the caller's activity across the platform
type DashboardStats struct {
	FilesUploaded   int64   `json:"files_uploaded"`
	ReviewsReceived int64   `json:"reviews_received"`
	ReviewsWritten  int64   `json:"reviews_written"`
	AverageRating   float64 `json:"average_rating"`
	MarketListings  int64   `json:"market_listings"`
	PlannerPending  int64   `json:"planner_pending"`
	PlannerDone     int64   `json:"planner_done"`
	QuizzesTaken    int64   `json:"quizzes_taken"`
}

// Dashboard returns activity stats for the authenticated user
func (h *UserHandler) Dashboard(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "User not found in context")
	}

	var stats DashboardStats
	stats.AverageRating = user.AverageRating

	h.db.Model(&model.UserFile{}).Where("user_id = ?", user.ID).Count(&stats.FilesUploaded)
	h.db.Model(&model.Review{}).Where("senior_id = ?", user.ID).Count(&stats.ReviewsReceived)
	h.db.Model(&model.Review{}).Where("reviewer_id = ?", user.ID).Count(&stats.ReviewsWritten)
	h.db.Model(&model.MarketListing{}).Where("seller_id = ?", user.ID).Count(&stats.MarketListings)
	h.db.Model(&model.PlannerTask{}).Where("user_id = ? AND status = ?", user.ID, model.TaskStatusPending).Count(&stats.PlannerPending)
	h.db.Model(&model.PlannerTask{}).Where("user_id = ? AND status = ?", user.ID, model.TaskStatusCompleted).Count(&stats.PlannerDone)
	h.db.Model(&model.QuizResult{}).Where("user_id = ?", user.ID).Count(&stats.QuizzesTaken)

	return response.Success(c, stats)
}
