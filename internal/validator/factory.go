package validator

import (
	"fmt"

	"docuvet/internal/config"
)

// Method selects one of the validation strategies.
type Method string

const (
	// MethodBasic runs local metadata checks only
	MethodBasic Method = "basic"
	// MethodOCR extracts text with the local Tesseract engine
	MethodOCR Method = "ocr"
	// MethodAzure analyzes the document with Azure AI Vision
	MethodAzure Method = "azure"
)

// Methods lists the accepted method selectors in display order.
func Methods() []string {
	return []string{string(MethodBasic), string(MethodOCR), string(MethodAzure)}
}

// Factory creates validators from method selectors.
type Factory struct {
	cfg *config.Config
}

// NewFactory creates a validator factory bound to the given configuration.
func NewFactory(cfg *config.Config) *Factory {
	return &Factory{cfg: cfg}
}

// Create builds the validator for the given method.
func (f *Factory) Create(method Method, opts Options) (Validator, error) {
	switch method {
	case MethodBasic:
		return NewBasicValidator(f.cfg), nil
	case MethodOCR:
		return NewOCRValidator(f.cfg, opts), nil
	case MethodAzure:
		return NewVisionValidator(f.cfg, opts), nil
	default:
		return nil, fmt.Errorf("unsupported method: %q (expected one of basic, ocr, azure)", method)
	}
}
