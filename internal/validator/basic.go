package validator

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"docuvet/internal/config"
	"docuvet/pkg/models"
)

// BasicValidator checks file metadata: existence, size, media type and
// readability. It never touches an external engine and performs no side
// effects beyond a single-byte read.
type BasicValidator struct {
	maxFileSize int64
	supported   map[string]struct{}
}

// NewBasicValidator creates a basic validator with the configured size limit
// and supported media types.
func NewBasicValidator(cfg *config.Config) *BasicValidator {
	supported := make(map[string]struct{}, len(cfg.SupportedTypes))
	for _, t := range cfg.SupportedTypes {
		supported[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
	}
	return &BasicValidator{
		maxFileSize: cfg.MaxFileSize,
		supported:   supported,
	}
}

func (v *BasicValidator) Name() string { return "Basic Validation" }

// Analyze performs the metadata checks in order, short-circuiting to a
// failed result on the first violation. An unsupported media type downgrades
// the result to a warning but does not stop the remaining checks.
func (v *BasicValidator) Analyze(ctx context.Context, path string) *models.Result {
	start := time.Now()
	result := models.NewResult(v.Name(), path)
	result.Checks = map[string]interface{}{}
	defer func() {
		result.ProcessingTimeSec = time.Since(start).Seconds()
	}()

	info, err := os.Stat(path)
	if err != nil {
		return result.Fail("File does not exist")
	}
	if !info.Mode().IsRegular() {
		return result.Fail("Path is not a file")
	}

	size := info.Size()
	result.Checks["file_size"] = size
	result.Checks["file_size_readable"] = FormatSize(size)

	if size > v.maxFileSize {
		return result.Fail(fmt.Sprintf("File size exceeds maximum allowed size (%s)", FormatSize(v.maxFileSize)))
	}
	if size == 0 {
		return result.Fail("File is empty")
	}

	// Media type is derived from the extension so the supported-format
	// contract matches what the user sees in the file name.
	mimeType := typeByExtension(path)
	result.Checks["mime_type"] = mimeType
	if _, ok := v.supported[mimeType]; ok {
		result.Checks["format_supported"] = true
	} else {
		result.Checks["format_supported"] = false
		result.Warn(fmt.Sprintf("File type %s may not be fully supported", mimeType))
	}

	if err := readOneByte(path); err != nil {
		return result.Fail(fmt.Sprintf("File is not readable: %v", err))
	}
	result.Checks["readable"] = true

	// Content sniff recorded as an observation only; a mismatch with the
	// extension-derived type never changes the status.
	if mtype, err := mimetype.DetectFile(path); err == nil {
		result.Checks["detected_type"] = mtype.String()
	}

	result.Checks["extension"] = filepath.Ext(path)

	if result.Status == models.StatusUnknown {
		result.Status = models.StatusPassed
	}
	return result
}

func typeByExtension(path string) string {
	t := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if t == "" {
		return "unknown"
	}
	// Strip any parameters such as "; charset=utf-8"
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t = t[:i]
	}
	return strings.TrimSpace(t)
}

func readOneByte(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := make([]byte, 1)
	if _, err := f.Read(buf); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// FormatSize renders a byte count in human-readable form with a 1024
// divisor and two decimal places.
func FormatSize(sizeBytes int64) string {
	size := float64(sizeBytes)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if size < 1024.0 {
			return fmt.Sprintf("%.2f %s", size, unit)
		}
		size /= 1024.0
	}
	return fmt.Sprintf("%.2f TB", size)
}
