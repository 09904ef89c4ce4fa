package models

import (
	"time"

	"github.com/google/uuid"
)

// Status classifies the outcome of a validation run.
type Status string

const (
	StatusUnknown Status = "unknown"
	StatusPassed  Status = "passed"
	StatusSuccess Status = "success"
	StatusWarning Status = "warning"
	StatusFailed  Status = "failed"
)

// Result is the uniform record every validator produces. A fresh Result is
// created per Analyze call; validators never retain it between calls.
type Result struct {
	ID                string  `json:"id"`
	Method            string  `json:"method"`
	FilePath          string  `json:"file_path"`
	Status            Status  `json:"status"`
	Timestamp         string  `json:"timestamp"`
	ProcessingTimeSec float64 `json:"processing_time_sec"`

	// Failure description, present iff Status is failed
	Error string `json:"error,omitempty"`
	// Caution note, present iff Status is warning
	Warning string `json:"warning,omitempty"`
	// Remediation hint (install X, set env var Y)
	Note string `json:"note,omitempty"`

	// Basic validation observations, keyed by check name
	Checks map[string]interface{} `json:"checks,omitempty"`

	// OCR extraction output (optional)
	OCR *OCRExtraction `json:"ocr,omitempty"`

	// Azure AI Vision output (optional)
	Analysis *VisionAnalysis `json:"analysis,omitempty"`
}

// NewResult creates a Result in the unknown state for the given validator
// method and input path.
func NewResult(method, filePath string) *Result {
	return &Result{
		ID:        uuid.NewString(),
		Method:    method,
		FilePath:  filePath,
		Status:    StatusUnknown,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// Fail marks the result as failed with a human-readable description.
func (r *Result) Fail(msg string) *Result {
	r.Status = StatusFailed
	r.Error = msg
	return r
}

// FailWithNote marks the result as failed and attaches a remediation hint.
func (r *Result) FailWithNote(msg, note string) *Result {
	r.Fail(msg)
	r.Note = note
	return r
}

// Warn marks the result as warning without aborting further checks.
func (r *Result) Warn(msg string) *Result {
	r.Status = StatusWarning
	r.Warning = msg
	return r
}

// OCRExtraction holds the output of a local OCR pass.
type OCRExtraction struct {
	Text       string  `json:"text"`
	TextLength int     `json:"text_length"`
	WordCount  int     `json:"word_count"`
	Confidence float64 `json:"confidence"`

	// Expected-text comparison, present only when an expected text was given
	ExpectedText  string   `json:"expected_text,omitempty"`
	MatchScore    *float64 `json:"match_score,omitempty"`
	WordErrorRate *float64 `json:"word_error_rate,omitempty"`
	CharErrorRate *float64 `json:"char_error_rate,omitempty"`
}

// VisionAnalysis groups the feature sub-results returned by the remote
// vision service. Fields absent from the remote response stay nil and are
// omitted from any rendering.
type VisionAnalysis struct {
	Caption     *Caption      `json:"caption,omitempty"`
	Text        *DetectedText `json:"text,omitempty"`
	Tags        []TagScore    `json:"tags,omitempty"`
	Objects     []TagScore    `json:"objects,omitempty"`
	PeopleCount *int          `json:"people_count,omitempty"`
}

// Empty reports whether no feature produced any data.
func (a *VisionAnalysis) Empty() bool {
	return a.Caption == nil && a.Text == nil && len(a.Tags) == 0 &&
		len(a.Objects) == 0 && a.PeopleCount == nil
}

// Caption is a generated image description with its confidence.
type Caption struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// DetectedText is recognized text grouped into blocks of lines, plus a
// flattened form joining every line with single spaces.
type DetectedText struct {
	Blocks   []TextBlock `json:"blocks"`
	FullText string      `json:"full_text"`
}

// TextBlock is one recognized block as a sequence of line strings.
type TextBlock struct {
	Lines []string `json:"lines"`
}

// TagScore is a (name, confidence) pair, used for both tags and objects.
type TagScore struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}
