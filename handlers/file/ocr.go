package file

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/hackagra/mindverse-api/services"
	"github.com/hackagra/mindverse-api/utils/middleware"
	"github.com/hackagra/mindverse-api/utils/response"
)

// OCRHandler handles text extraction requests
type OCRHandler struct {
	ocr *services.OCRService
}

// NewOCRHandler creates a new OCR handler
func NewOCRHandler(ocr *services.OCRService) *OCRHandler {
	return &OCRHandler{ocr: ocr}
}

// OCRRequest points at a previously uploaded file to extract text from
type OCRRequest struct {
	FileURL  string `json:"file_url" validate:"required,url"`
	FileType string `json:"file_type" validate:"required"`
	Filename string `json:"filename,omitempty"`
}

// Extract downloads the referenced file and runs OCR on it
func (h *OCRHandler) Extract(c *fiber.Ctx) error {
	if _, ok := middleware.GetUserID(c); !ok {
		return response.Unauthorized(c, "User not found in context")
	}

	var req OCRRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.FileURL = strings.TrimSpace(req.FileURL)
	if req.FileURL == "" || req.FileType == "" {
		return response.BadRequest(c, "file_url and file_type are required")
	}
	if !strings.HasPrefix(req.FileURL, "http://") && !strings.HasPrefix(req.FileURL, "https://") {
		return response.BadRequest(c, "file_url must be an http(s) URL")
	}

	filename := req.Filename
	if filename == "" {
		parts := strings.Split(req.FileURL, "/")
		filename = parts[len(parts)-1]
	}

	result, err := h.ocr.ExtractText(c.Context(), req.FileURL, req.FileType, filename)
	if err != nil {
		if errors.Is(err, services.ErrUnsupportedFileType) {
			return response.BadRequest(c, err.Error())
		}
		return response.InternalServerError(c, "Failed to extract text from file")
	}

	return response.Success(c, result)
}
