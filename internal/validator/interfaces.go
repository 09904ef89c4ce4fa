package validator

import (
	"context"

	"docuvet/pkg/models"
)

// Validator is the shared capability every analysis strategy exposes. An
// Analyze call never returns an error: every failure mode is reported inside
// the Result so library callers and the CLI see the same record.
type Validator interface {
	// Name returns the human-readable method label recorded in results.
	Name() string

	// Analyze inspects the file at path and produces a fresh Result. The
	// returned Result is owned by the caller; validators keep no per-call
	// state.
	Analyze(ctx context.Context, path string) *models.Result
}

// Options carries per-invocation settings that individual validators may
// consume. Unknown fields are ignored by validators that do not use them.
type Options struct {
	// ExpectedText enables the OCR expected-vs-extracted comparison.
	ExpectedText string

	// Endpoint and Key override the configured vision credentials.
	Endpoint string
	Key      string
}
