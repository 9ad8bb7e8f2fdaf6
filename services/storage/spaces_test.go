package storage

import (
	"strings"
	"testing"
)

func TestGenerateKey(t *testing.T) {
	key := GenerateKey("uploads/42", "notes.pdf")

	if !strings.HasPrefix(key, "uploads/42/") {
		t.Errorf("expected key to start with uploads/42/, got %q", key)
	}
	if !strings.HasSuffix(key, "_notes.pdf") {
		t.Errorf("expected key to end with _notes.pdf, got %q", key)
	}
}

func TestGenerateKeyIsUnique(t *testing.T) {
	k1 := GenerateKey("uploads/1", "same.pdf")
	k2 := GenerateKey("uploads/1", "same.pdf")
	if k1 == k2 {
		t.Error("expected two keys for the same filename to differ")
	}
}

func TestGenerateKeyStripsPath(t *testing.T) {
	key := GenerateKey("uploads/1", "../../etc/passwd")
	if strings.Contains(key, "..") {
		t.Errorf("expected path traversal stripped from key, got %q", key)
	}
	if strings.Count(key, "/") != 2 {
		t.Errorf("expected key to stay under its prefix, got %q", key)
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"with space", "with_space"},
		{"a/b\\c", "a_b_c"},
	}

	for _, tc := range cases {
		if got := SanitizeFilename(tc.in); got != tc.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestGetContentType(t *testing.T) {
	cases := []struct {
		filename string
		want     string
	}{
		{"doc.pdf", "application/pdf"},
		{"photo.PNG", "image/png"},
		{"photo.jpeg", "image/jpeg"},
		{"sheet.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
		{"notes.txt", "text/plain"},
		{"unknown.xyz", "application/octet-stream"},
		{"no-extension", "application/octet-stream"},
	}

	for _, tc := range cases {
		if got := GetContentType(tc.filename); got != tc.want {
			t.Errorf("GetContentType(%q) = %q, want %q", tc.filename, got, tc.want)
		}
	}
}
