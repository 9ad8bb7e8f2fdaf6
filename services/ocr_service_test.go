package services

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestScriptForFileType(t *testing.T) {
	cases := []struct {
		fileType string
		want     string
		wantErr  bool
	}{
		{"image/png", "tesseract_ocr.py", false},
		{"image/jpeg", "tesseract_ocr.py", false},
		{"application/pdf", "pdf_ocr.py", false},
		{"text/plain", "", true},
		{"application/zip", "", true},
		{"", "", true},
	}

	for _, tc := range cases {
		got, err := ScriptForFileType(tc.fileType)
		if tc.wantErr {
			if !errors.Is(err, ErrUnsupportedFileType) {
				t.Errorf("%q: expected ErrUnsupportedFileType, got %v", tc.fileType, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error %v", tc.fileType, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%q: expected script %q, got %q", tc.fileType, tc.want, got)
		}
	}
}

func TestFilterOCROutput(t *testing.T) {
	raw := "🔍 Running OCR on page 1\n" +
		"First line of extracted text\n" +
		"📄 Processing page 2\n" +
		"Second line\n" +
		"🔄 Retrying page 2\n" +
		"Third line\n"

	want := "First line of extracted text\nSecond line\nThird line"
	if got := FilterOCROutput(raw); got != want {
		t.Errorf("FilterOCROutput = %q, want %q", got, want)
	}
}

func TestFilterOCROutputOnlyProgress(t *testing.T) {
	raw := "🔍 scanning\n📄 reading\n🔄 retry\n"
	if got := FilterOCROutput(raw); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}

func TestFilterOCROutputKeepsInlineMarkers(t *testing.T) {
	// Only lines that start with a marker are progress lines
	raw := "text mentioning 🔍 inline"
	if got := FilterOCROutput(raw); got != raw {
		t.Errorf("expected inline marker kept, got %q", got)
	}
}

func TestCleanupTempFiles(t *testing.T) {
	dir := t.TempDir()
	svc := NewOCRService(dir, dir)

	stale := filepath.Join(dir, "stale.tmp")
	if err := os.WriteFile(stale, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	old := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(stale, old, old); err != nil {
		t.Fatal(err)
	}

	fresh := filepath.Join(dir, "fresh.tmp")
	if err := os.WriteFile(fresh, []byte("new"), 0o644); err != nil {
		t.Fatal(err)
	}

	removed, err := svc.CleanupTempFiles(time.Hour)
	if err != nil {
		t.Fatalf("CleanupTempFiles failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 file removed, got %d", removed)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("expected stale file to be removed")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Error("expected fresh file to survive")
	}
}
