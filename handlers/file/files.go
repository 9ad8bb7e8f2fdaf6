package file

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/hackagra/mindverse-api/model"
	"github.com/hackagra/mindverse-api/services/storage"
	"github.com/hackagra/mindverse-api/utils/middleware"
	"github.com/hackagra/mindverse-api/utils/response"
	"github.com/hackagra/mindverse-api/utils/validation"
)

// MaxUploadSize is the largest accepted upload (50MB)
const MaxUploadSize = 50 * 1024 * 1024

// FileHandler handles user file requests
type FileHandler struct {
	db     *gorm.DB
	spaces *storage.SpacesClient
}

// NewFileHandler creates a new file handler
func NewFileHandler(db *gorm.DB, spaces *storage.SpacesClient) *FileHandler {
	return &FileHandler{
		db:     db,
		spaces: spaces,
	}
}

// Upload receives a multipart file, stores it in Spaces, and records it
// against the authenticated user.
func (h *FileHandler) Upload(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not found in context")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "No file provided")
	}

	if fileHeader.Size > MaxUploadSize {
		return response.BadRequest(c, "File exceeds the 50MB upload limit")
	}
	if fileHeader.Size == 0 {
		return response.BadRequest(c, "File is empty")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return response.InternalServerError(c, "Failed to read uploaded file")
	}
	defer src.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = storage.GetContentType(fileHeader.Filename)
	}

	key := storage.GenerateKey(fmt.Sprintf("uploads/%d", userID), fileHeader.Filename)

	fileURL, err := h.spaces.UploadFile(c.Context(), key, src, contentType)
	if err != nil {
		return response.InternalServerError(c, "Failed to store file")
	}

	record := model.UserFile{
		UserID:     userID,
		Filename:   fileHeader.Filename,
		FileURL:    fileURL,
		SpacesKey:  key,
		FileType:   contentType,
		FileSize:   fileHeader.Size,
		UploadedAt: time.Now().UTC(),
	}

	if err := h.db.Create(&record).Error; err != nil {
		// Orphaned object in Spaces is preferable to a dangling DB row
		_ = h.spaces.DeleteFile(c.Context(), key)
		return response.InternalServerError(c, "Failed to save file record")
	}

	return response.Created(c, record)
}

// SaveURLRequest registers an externally hosted file by URL
type SaveURLRequest struct {
	Filename string `json:"filename" validate:"required"`
	FileURL  string `json:"file_url" validate:"required,url"`
	FileType string `json:"file_type,omitempty"`
	FileSize int64  `json:"file_size,omitempty"`
}

// SaveURL records a file that already lives at an external URL. No bytes pass
// through the API; the record only points at the remote location.
func (h *FileHandler) SaveURL(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not found in context")
	}

	var req SaveURLRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Filename = validation.SanitizeString(req.Filename)
	req.FileURL = strings.TrimSpace(req.FileURL)

	if req.Filename == "" || req.FileURL == "" {
		return response.BadRequest(c, "Filename and file_url are required")
	}
	if !strings.HasPrefix(req.FileURL, "http://") && !strings.HasPrefix(req.FileURL, "https://") {
		return response.BadRequest(c, "file_url must be an http(s) URL")
	}

	fileType := req.FileType
	if fileType == "" {
		fileType = storage.GetContentType(req.Filename)
	}

	record := model.UserFile{
		UserID:     userID,
		Filename:   req.Filename,
		FileURL:    req.FileURL,
		FileType:   fileType,
		FileSize:   req.FileSize,
		UploadedAt: time.Now().UTC(),
	}

	if err := h.db.Create(&record).Error; err != nil {
		return response.InternalServerError(c, "Failed to save file record")
	}

	return response.Created(c, record)
}

// List returns the caller's files, newest first
func (h *FileHandler) List(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not found in context")
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var files []model.UserFile
	err := h.db.
		Where("user_id = ?", userID).
		Order("uploaded_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&files).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to load files")
	}

	return response.Success(c, fiber.Map{
		"files": files,
		"page":  page,
		"limit": limit,
	})
}

// Search returns the caller's files whose filename matches the query
func (h *FileHandler) Search(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not found in context")
	}

	query := validation.SanitizeString(c.Query("q"))
	if query == "" {
		return response.BadRequest(c, "Query parameter 'q' is required")
	}

	var files []model.UserFile
	err := h.db.
		Where("user_id = ? AND filename ILIKE ?", userID, "%"+query+"%").
		Order("uploaded_at DESC").
		Limit(50).
		Find(&files).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to search files")
	}

	return response.Success(c, fiber.Map{
		"files": files,
		"count": len(files),
	})
}

// FileStats aggregates a user's stored files
type FileStats struct {
	TotalFiles int64            `json:"total_files"`
	TotalSize  int64            `json:"total_size"`
	ByType     map[string]int64 `json:"by_type"`
}

// Stats returns aggregate stats over the caller's files
func (h *FileHandler) Stats(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not found in context")
	}

	stats := FileStats{ByType: make(map[string]int64)}

	if err := h.db.Model(&model.UserFile{}).
		Where("user_id = ?", userID).
		Count(&stats.TotalFiles).Error; err != nil {
		return response.InternalServerError(c, "Failed to compute file stats")
	}

	if err := h.db.Model(&model.UserFile{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(file_size), 0)").
		Scan(&stats.TotalSize).Error; err != nil {
		return response.InternalServerError(c, "Failed to compute file stats")
	}

	type typeCount struct {
		FileType string
		Count    int64
	}
	var counts []typeCount
	if err := h.db.Model(&model.UserFile{}).
		Where("user_id = ?", userID).
		Select("file_type, COUNT(*) as count").
		Group("file_type").
		Scan(&counts).Error; err != nil {
		return response.InternalServerError(c, "Failed to compute file stats")
	}
	for _, tc := range counts {
		stats.ByType[tc.FileType] = tc.Count
	}

	return response.Success(c, stats)
}

// Delete removes a file record and, when the file lives in Spaces, the
// stored object too. Only the owner can delete a file.
func (h *FileHandler) Delete(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not found in context")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid file ID")
	}

	var record model.UserFile
	if err := h.db.First(&record, uint(id)).Error; err != nil {
		return response.NotFound(c, "File not found")
	}

	if record.UserID != userID {
		return response.Forbidden(c, "You do not own this file")
	}

	if record.SpacesKey != "" {
		if err := h.spaces.DeleteFile(c.Context(), record.SpacesKey); err != nil {
			return response.InternalServerError(c, "Failed to delete stored file")
		}
	}

	if err := h.db.Delete(&record).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete file record")
	}

	return response.SuccessWithMessage(c, "File deleted", fiber.Map{"id": record.ID})
}
