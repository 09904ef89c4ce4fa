package validator

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"docuvet/internal/config"
	"docuvet/pkg/models"
)

func testConfig() *config.Config {
	return &config.Config{
		MaxFileSize:    config.DefaultMaxFileSize,
		SupportedTypes: config.DefaultSupportedTypes,
	}
}

func writeTestFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write test file: %v", err)
	}
	return path
}

func TestBasicValidator_NonExistentFile(t *testing.T) {
	v := NewBasicValidator(testConfig())
	result := v.Analyze(context.Background(), filepath.Join(t.TempDir(), "missing.png"))

	if result.Status != models.StatusFailed {
		t.Errorf("expected status failed, got %s", result.Status)
	}
	if result.Error == "" {
		t.Error("expected non-empty error for non-existent file")
	}
	if result.Error != "File does not exist" {
		t.Errorf("unexpected error message: %q", result.Error)
	}
}

func TestBasicValidator_Directory(t *testing.T) {
	v := NewBasicValidator(testConfig())
	result := v.Analyze(context.Background(), t.TempDir())

	if result.Status != models.StatusFailed {
		t.Errorf("expected status failed, got %s", result.Status)
	}
	if result.Error != "Path is not a file" {
		t.Errorf("unexpected error message: %q", result.Error)
	}
}

func TestBasicValidator_EmptyFile(t *testing.T) {
	v := NewBasicValidator(testConfig())
	path := writeTestFile(t, "empty.png", nil)

	result := v.Analyze(context.Background(), path)

	if result.Status != models.StatusFailed {
		t.Errorf("expected status failed, got %s", result.Status)
	}
	if !strings.Contains(strings.ToLower(result.Error), "empty") {
		t.Errorf("expected error mentioning empty, got %q", result.Error)
	}
}

func TestBasicValidator_OversizedFile(t *testing.T) {
	cfg := testConfig()
	cfg.MaxFileSize = 10
	v := NewBasicValidator(cfg)
	path := writeTestFile(t, "big.png", []byte("0123456789A"))

	result := v.Analyze(context.Background(), path)

	if result.Status != models.StatusFailed {
		t.Errorf("expected status failed, got %s", result.Status)
	}
	if !strings.Contains(result.Error, "exceeds maximum allowed size") {
		t.Errorf("unexpected error message: %q", result.Error)
	}
	if !strings.Contains(result.Error, "10.00 B") {
		t.Errorf("expected human-readable limit in error, got %q", result.Error)
	}
}

func TestBasicValidator_SizeAtLimit(t *testing.T) {
	cfg := testConfig()
	cfg.MaxFileSize = 11
	v := NewBasicValidator(cfg)
	path := writeTestFile(t, "fits.png", []byte("0123456789A"))

	result := v.Analyze(context.Background(), path)

	if result.Status == models.StatusFailed {
		t.Errorf("size at the limit must not fail, got error %q", result.Error)
	}
}

func TestBasicValidator_UnsupportedType(t *testing.T) {
	v := NewBasicValidator(testConfig())
	path := writeTestFile(t, "notes.txt", []byte("plain text"))

	result := v.Analyze(context.Background(), path)

	if result.Status != models.StatusWarning {
		t.Errorf("expected status warning, got %s (error %q)", result.Status, result.Error)
	}
	if !strings.Contains(result.Warning, "may not be fully supported") {
		t.Errorf("unexpected warning message: %q", result.Warning)
	}
	if supported, ok := result.Checks["format_supported"].(bool); !ok || supported {
		t.Errorf("expected format_supported=false, got %v", result.Checks["format_supported"])
	}
}

func TestBasicValidator_SupportedFile(t *testing.T) {
	v := NewBasicValidator(testConfig())
	path := writeTestFile(t, "doc.png", []byte{0x89, 0x50, 0x4E, 0x47})

	result := v.Analyze(context.Background(), path)

	if result.Status != models.StatusPassed {
		t.Fatalf("expected status passed, got %s (error %q, warning %q)",
			result.Status, result.Error, result.Warning)
	}

	checks := []struct {
		key  string
		want interface{}
	}{
		{"file_size", int64(4)},
		{"file_size_readable", "4.00 B"},
		{"mime_type", "image/png"},
		{"format_supported", true},
		{"readable", true},
		{"extension", ".png"},
	}
	for _, c := range checks {
		if got := result.Checks[c.key]; got != c.want {
			t.Errorf("check %s = %v, want %v", c.key, got, c.want)
		}
	}
}

func TestBasicValidator_ResultFields(t *testing.T) {
	v := NewBasicValidator(testConfig())
	for _, path := range []string{
		writeTestFile(t, "a.png", []byte("x")),
		filepath.Join(t.TempDir(), "missing.png"),
	} {
		result := v.Analyze(context.Background(), path)
		if result.Method == "" || result.FilePath == "" || result.Status == "" {
			t.Errorf("result for %s missing identity fields: %+v", path, result)
		}
		if result.Status == models.StatusUnknown {
			t.Errorf("result for %s left in unknown state", path)
		}
		if result.ID == "" {
			t.Errorf("result for %s missing id", path)
		}
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0.00 B"},
		{100, "100.00 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1048576, "1.00 MB"},
		{1073741824, "1.00 GB"},
		{1099511627776, "1.00 TB"},
		{52428800, "50.00 MB"},
	}

	for _, tt := range tests {
		if got := FormatSize(tt.size); got != tt.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}
