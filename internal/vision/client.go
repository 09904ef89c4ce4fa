// Package vision is a minimal client for the Azure AI Vision Image
// Analysis 4.0 REST endpoint. Only the single multi-feature analyze call
// this tool needs is implemented.
package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	apiVersion  = "2024-02-01"
	analyzePath = "/computervision/imageanalysis:analyze"
)

// Features is the fixed feature set requested on every analyze call.
var Features = []string{"caption", "read", "tags", "objects", "people"}

// Client calls the Image Analysis endpoint with key-based auth.
type Client struct {
	endpoint string
	key      string
	httpc    *http.Client
}

// NewClient creates a vision client for the given endpoint and key.
func NewClient(endpoint, key string, timeout time.Duration) *Client {
	transport := &http.Transport{
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   2,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: timeout,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		key:      key,
		httpc: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
	}
}

// Analyze submits the raw image bytes and returns the decoded multi-feature
// result. Any transport, status or decode problem is returned as an error;
// there is no retry and no partial result.
func (c *Client) Analyze(ctx context.Context, imageData []byte) (*AnalyzeResult, error) {
	u := fmt.Sprintf("%s%s?api-version=%s&features=%s",
		c.endpoint, analyzePath, apiVersion, strings.Join(Features, ","))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("Ocp-Apim-Subscription-Key", c.key)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image analysis returned status %d: %s", resp.StatusCode, errorMessage(body))
	}

	var result AnalyzeResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &result, nil
}

// errorMessage extracts the service error description from an error
// envelope, falling back to the raw body.
func errorMessage(body []byte) string {
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		if envelope.Error.Code != "" {
			return fmt.Sprintf("%s: %s", envelope.Error.Code, envelope.Error.Message)
		}
		return envelope.Error.Message
	}
	return strings.TrimSpace(string(body))
}
