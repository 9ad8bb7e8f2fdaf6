package planner

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/hackagra/mindverse-api/model"
	"github.com/hackagra/mindverse-api/utils/middleware"
	"github.com/hackagra/mindverse-api/utils/response"
	"github.com/hackagra/mindverse-api/utils/validation"
)

// PlannerHandler handles revision planner requests
type PlannerHandler struct {
	db *gorm.DB
}

// NewPlannerHandler creates a new planner handler
func NewPlannerHandler(db *gorm.DB) *PlannerHandler {
	return &PlannerHandler{db: db}
}

// CreateTaskRequest represents a new planner task
type CreateTaskRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=200"`
	Subject string `json:"subject,omitempty" validate:"max=100"`
	DueDate string `json:"due_date" validate:"required"` // YYYY-MM-DD or RFC3339
}

func parseDueDate(raw string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// Create adds a revision task for the authenticated user
func (h *PlannerHandler) Create(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not found in context")
	}

	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Title = validation.SanitizeString(req.Title)
	if req.Title == "" {
		return response.BadRequest(c, "Title is required")
	}

	dueDate, ok := parseDueDate(req.DueDate)
	if !ok {
		return response.BadRequest(c, "due_date must be YYYY-MM-DD or RFC3339")
	}

	task := model.PlannerTask{
		UserID:  userID,
		Title:   req.Title,
		Subject: req.Subject,
		DueDate: dueDate,
		Status:  model.TaskStatusPending,
	}

	if err := h.db.Create(&task).Error; err != nil {
		return response.InternalServerError(c, "Failed to create task")
	}

	return response.Created(c, task)
}

// List returns the caller's tasks ordered by due date. Filterable by status.
func (h *PlannerHandler) List(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not found in context")
	}

	query := h.db.Where("user_id = ?", userID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var tasks []model.PlannerTask
	if err := query.Order("due_date ASC").Find(&tasks).Error; err != nil {
		return response.InternalServerError(c, "Failed to load tasks")
	}

	return response.Success(c, fiber.Map{
		"tasks": tasks,
		"count": len(tasks),
	})
}

// UpdateTaskRequest carries a partial update of a task
type UpdateTaskRequest struct {
	Title   *string `json:"title,omitempty"`
	Subject *string `json:"subject,omitempty"`
	DueDate *string `json:"due_date,omitempty"`
	Status  *string `json:"status,omitempty"`
}

// Update modifies a task. Only the owner can update it.
func (h *PlannerHandler) Update(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not found in context")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid task ID")
	}

	var task model.PlannerTask
	if err := h.db.First(&task, uint(id)).Error; err != nil {
		return response.NotFound(c, "Task not found")
	}
	if task.UserID != userID {
		return response.Forbidden(c, "You do not own this task")
	}

	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		title := validation.SanitizeString(*req.Title)
		if title == "" {
			return response.BadRequest(c, "Title cannot be empty")
		}
		updates["title"] = title
	}
	if req.Subject != nil {
		updates["subject"] = *req.Subject
	}
	if req.DueDate != nil {
		dueDate, ok := parseDueDate(*req.DueDate)
		if !ok {
			return response.BadRequest(c, "due_date must be YYYY-MM-DD or RFC3339")
		}
		updates["due_date"] = dueDate
	}
	if req.Status != nil {
		status := model.TaskStatus(*req.Status)
		if status != model.TaskStatusPending && status != model.TaskStatusCompleted {
			return response.BadRequest(c, "Status must be 'pending' or 'completed'")
		}
		updates["status"] = status
	}

	if len(updates) == 0 {
		return response.BadRequest(c, "No fields to update")
	}

	if err := h.db.Model(&task).Updates(updates).Error; err != nil {
		return response.InternalServerError(c, "Failed to update task")
	}

	return response.SuccessWithMessage(c, "Task updated", task)
}

// Delete removes a task. Only the owner can delete it.
func (h *PlannerHandler) Delete(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not found in context")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid task ID")
	}

	var task model.PlannerTask
	if err := h.db.First(&task, uint(id)).Error; err != nil {
		return response.NotFound(c, "Task not found")
	}
	if task.UserID != userID {
		return response.Forbidden(c, "You do not own this task")
	}

	if err := h.db.Delete(&task).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete task")
	}

	return response.SuccessWithMessage(c, "Task deleted", fiber.Map{"id": task.ID})
}
