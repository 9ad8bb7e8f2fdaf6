package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hackagra/mindverse-api/utils/pdfvalidation"
)

var (
	ErrUnsupportedFileType = errors.New("only images and PDFs are supported")
)

// OCR script names, resolved relative to the model directory
const (
	imageOCRScript = "tesseract_ocr.py"
	pdfOCRScript   = "pdf_ocr.py"
)

// OCRService downloads a remote file, runs the external OCR script on it and
// returns the extracted text. The OCR work itself is delegated to the Python
// scripts shipped alongside this service.
type OCRService struct {
	modelDir   string
	tempDir    string
	httpClient *http.Client
}

// NewOCRService creates a new OCR service
func NewOCRService(modelDir, tempDir string) *OCRService {
	return &OCRService{
		modelDir: modelDir,
		tempDir:  tempDir,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

// OCRResult contains the outcome of an OCR extraction
type OCRResult struct {
	Filename      string    `json:"filename"`
	FileType      string    `json:"file_type"`
	ExtractedText string    `json:"extracted_text"`
	Timestamp     time.Time `json:"timestamp"`
}

// ExtractText downloads the file at fileURL, runs the matching OCR script and
// returns the cleaned-up text. The downloaded temp file is always removed.
func (s *OCRService) ExtractText(ctx context.Context, fileURL, fileType, filename string) (*OCRResult, error) {
	scriptName, err := ScriptForFileType(fileType)
	if err != nil {
		return nil, err
	}

	scriptPath := filepath.Join(s.modelDir, scriptName)
	if _, err := os.Stat(scriptPath); err != nil {
		return nil, fmt.Errorf("OCR script not found: %s", scriptPath)
	}

	localPath, err := s.downloadFile(ctx, fileURL, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	defer os.Remove(localPath)

	if fileType == "application/pdf" {
		content, err := os.ReadFile(localPath)
		if err != nil {
			return nil, err
		}
		result, err := pdfvalidation.ValidatePDFBytes(content, pdfvalidation.DefaultLimits)
		if err != nil {
			return nil, err
		}
		if !result.Valid {
			return nil, errors.New(result.Error)
		}
	}

	output, err := s.runScript(ctx, scriptPath, localPath)
	if err != nil {
		return nil, err
	}

	return &OCRResult{
		Filename:      filename,
		FileType:      fileType,
		ExtractedText: FilterOCROutput(output),
		Timestamp:     time.Now().UTC(),
	}, nil
}

// ScriptForFileType maps a MIME type to the OCR script that handles it
func ScriptForFileType(fileType string) (string, error) {
	switch {
	case strings.HasPrefix(fileType, "image/"):
		return imageOCRScript, nil
	case fileType == "application/pdf":
		return pdfOCRScript, nil
	default:
		return "", ErrUnsupportedFileType
	}
}

// FilterOCROutput strips the scripts' progress lines from stdout, leaving only
// the extracted text. The scripts prefix their log lines with emoji markers.
func FilterOCROutput(output string) string {
	lines := strings.Split(output, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.HasPrefix(line, "🔍") ||
			strings.HasPrefix(line, "📄") ||
			strings.HasPrefix(line, "🔄") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

func (s *OCRService) downloadFile(ctx context.Context, fileURL, filename string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d fetching file", resp.StatusCode)
	}

	// Unique temp name so concurrent requests for the same filename don't collide
	localPath := filepath.Join(s.tempDir, uuid.New().String()+"_"+filepath.Base(filename))
	file, err := os.Create(localPath)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(file, resp.Body); err != nil {
		file.Close()
		os.Remove(localPath)
		return "", err
	}
	if err := file.Close(); err != nil {
		os.Remove(localPath)
		return "", err
	}

	return localPath, nil
}

func (s *OCRService) runScript(ctx context.Context, scriptPath, filePath string) (string, error) {
	cmd := exec.CommandContext(ctx, "python3", scriptPath, filePath)
	cmd.Dir = s.modelDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Printf("Running OCR script %s on %s", filepath.Base(scriptPath), filepath.Base(filePath))

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("OCR script failed: %w: %s", err, stderr.String())
	}

	return stdout.String(), nil
}

// CleanupTempFiles removes leftover OCR temp files older than maxAge. Temp
// files are normally removed per request; this catches files orphaned by
// crashes.
func (s *OCRService) CleanupTempFiles(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(s.tempDir)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(s.tempDir, entry.Name())); err == nil {
				removed++
			}
		}
	}
	return removed, nil
}
