package service

import (
	"context"
	"net/url"
	"os"
	"path"

	apperrors "docuvet/internal/errors"
	"docuvet/internal/storage"
	"docuvet/internal/validator"
	"docuvet/pkg/models"
)

// ValidationService validates remote documents: it resolves a source URL to
// a local temp file and dispatches to the selected validator.
type ValidationService interface {
	Validate(ctx context.Context, sourceURL string, method validator.Method, opts validator.Options) (*models.Result, error)
	ValidateSourceURL(sourceURL string) error
}

type validationService struct {
	fetchers map[string]storage.DocumentFetcher
	factory  *validator.Factory
}

// NewValidationService creates a validation service. fetchers maps URL
// schemes (http, https, azblob) to the fetcher that serves them.
func NewValidationService(fetchers map[string]storage.DocumentFetcher, factory *validator.Factory) ValidationService {
	return &validationService{
		fetchers: fetchers,
		factory:  factory,
	}
}

// Validate fetches the document, writes it to a temp file, runs the
// validator and reports the result against the original source URL. The
// temp file is removed before returning.
func (s *validationService) Validate(ctx context.Context, sourceURL string, method validator.Method, opts validator.Options) (*models.Result, error) {
	if err := s.ValidateSourceURL(sourceURL); err != nil {
		return nil, err
	}

	parsed, _ := url.Parse(sourceURL)
	fetcher, ok := s.fetchers[parsed.Scheme]
	if !ok {
		return nil, apperrors.NewValidationError("unsupported URL scheme: "+parsed.Scheme, nil)
	}

	v, err := s.factory.Create(method, opts)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid method", err)
	}

	data, err := fetcher.FetchDocument(ctx, sourceURL)
	if err != nil {
		return nil, apperrors.NewNetworkError("failed to fetch document", err)
	}

	tmpPath, err := writeTempDocument(data, path.Ext(parsed.Path))
	if err != nil {
		return nil, apperrors.NewInternalError("failed to stage document", err)
	}
	defer os.Remove(tmpPath)

	result := v.Analyze(ctx, tmpPath)
	// Report the caller's source, not the staging path.
	result.FilePath = sourceURL
	return result, nil
}

// ValidateSourceURL checks that the source is a well-formed URL with a
// scheme this service can fetch.
func (s *validationService) ValidateSourceURL(sourceURL string) error {
	if sourceURL == "" {
		return apperrors.NewValidationError("source URL must not be empty", nil)
	}
	parsed, err := url.Parse(sourceURL)
	if err != nil {
		return apperrors.NewValidationError("invalid URL format", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return apperrors.NewValidationError("URL must have a scheme and host", nil)
	}
	if _, ok := s.fetchers[parsed.Scheme]; !ok {
		return apperrors.NewValidationError("unsupported URL scheme: "+parsed.Scheme, nil)
	}
	return nil
}

// writeTempDocument stages the fetched bytes on disk, keeping the source
// extension so extension-based checks still apply.
func writeTempDocument(data []byte, ext string) (string, error) {
	f, err := os.CreateTemp("", "docuvet-*"+ext)
	if err != nil {
		return "", err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
