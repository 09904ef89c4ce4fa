package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DocumentFetcher retrieves the raw bytes of a remote document.
type DocumentFetcher interface {
	FetchDocument(ctx context.Context, sourceURL string) ([]byte, error)
}

// HTTPDocumentFetcher fetches documents over HTTP(S) with bounded retries.
type HTTPDocumentFetcher struct {
	client   *http.Client
	maxBytes int64
}

// NewHTTPDocumentFetcher creates an HTTP document fetcher. maxBytes caps
// the downloaded payload; anything larger is rejected.
func NewHTTPDocumentFetcher(timeout time.Duration, maxBytes int64) *HTTPDocumentFetcher {
	transport := &http.Transport{
		MaxIdleConns:           10,
		MaxIdleConnsPerHost:    2,
		IdleConnTimeout:        30 * time.Second,
		TLSHandshakeTimeout:    10 * time.Second,
		ResponseHeaderTimeout:  10 * time.Second,
		ExpectContinueTimeout:  1 * time.Second,
		MaxResponseHeaderBytes: 4096,
	}
	return &HTTPDocumentFetcher{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("too many redirects (limit: 3)")
				}
				return nil
			},
		},
		maxBytes: maxBytes,
	}
}

// FetchDocument downloads the document, retrying transient failures up to
// three attempts. 4xx responses are not retried; 5xx responses are.
func (h *HTTPDocumentFetcher) FetchDocument(ctx context.Context, sourceURL string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}

		data, retryable, err := h.fetchOnce(ctx, sourceURL)
		if err == nil {
			return data, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}

	return nil, fmt.Errorf("failed to fetch document after 3 attempts: %w", lastErr)
}

func (h *HTTPDocumentFetcher) fetchOnce(ctx context.Context, sourceURL string) (data []byte, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("invalid URL: %w", err)
	}
	req.Header.Set("Accept", "image/jpeg, image/png, image/webp, image/gif, application/pdf, */*")
	req.Header.Set("User-Agent", "Docuvet/1.0")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, false, fmt.Errorf("client error: status code %d", resp.StatusCode)
	case resp.StatusCode >= 500:
		return nil, true, fmt.Errorf("server error: status code %d", resp.StatusCode)
	default:
		return nil, false, fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, h.maxBytes+1))
	if err != nil {
		return nil, true, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > h.maxBytes {
		return nil, false, fmt.Errorf("document exceeds size limit (%d bytes)", h.maxBytes)
	}
	return body, false, nil
}
