package pdfvalidation

import (
	"strings"
	"testing"
)

func TestValidatePDFBytesRejectsNonPDF(t *testing.T) {
	result, err := ValidatePDFBytes([]byte("this is not a pdf"), DefaultLimits)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Valid {
		t.Error("expected non-PDF content to be invalid")
	}
	if !strings.Contains(result.Error, "PDF header") {
		t.Errorf("expected header error, got %q", result.Error)
	}
}

func TestValidatePDFBytesRejectsOversized(t *testing.T) {
	limits := PDFLimits{MaxFileSizeMB: 1, MaxPages: 10, DocumentTypeName: "test"}
	content := make([]byte, 2*1024*1024)

	result, err := ValidatePDFBytes(content, limits)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Valid {
		t.Error("expected oversized content to be invalid")
	}
	if !strings.Contains(result.Error, "exceeds maximum") {
		t.Errorf("expected size error, got %q", result.Error)
	}
}

func TestValidatePDFBytesRejectsTruncatedPDF(t *testing.T) {
	// Valid header but no xref table or page tree
	result, err := ValidatePDFBytes([]byte("%PDF-1.7 truncated"), DefaultLimits)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Valid {
		t.Error("expected truncated PDF to be invalid")
	}
}
