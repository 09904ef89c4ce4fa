package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

// AzureBlobFetcher retrieves documents addressed as
// azblob://container/path/to/blob from a single storage account.
type AzureBlobFetcher struct {
	client   *azblob.Client
	maxBytes int64
}

// NewAzureBlobFetcher creates a blob fetcher bound to the given storage
// account using shared-key auth.
func NewAzureBlobFetcher(accountName, accountKey string, maxBytes int64) (*AzureBlobFetcher, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, err
	}

	client, err := azblob.NewClientWithSharedKeyCredential(
		fmt.Sprintf("https://%s.blob.core.windows.net", accountName),
		credential,
		nil,
	)
	if err != nil {
		return nil, err
	}

	return &AzureBlobFetcher{client: client, maxBytes: maxBytes}, nil
}

// FetchDocument downloads a blob and returns its bytes.
func (s *AzureBlobFetcher) FetchDocument(ctx context.Context, sourceURL string) ([]byte, error) {
	containerName, blobName, err := splitBlobURL(sourceURL)
	if err != nil {
		return nil, err
	}

	downloadResponse, err := s.client.DownloadStream(ctx, containerName, blobName, nil)
	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}

	retryReader := downloadResponse.Body
	defer retryReader.Close()

	data, err := io.ReadAll(io.LimitReader(retryReader, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read blob: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, fmt.Errorf("blob exceeds size limit (%d bytes)", s.maxBytes)
	}
	return data, nil
}

func splitBlobURL(sourceURL string) (container, blob string, err error) {
	parsed, err := url.Parse(sourceURL)
	if err != nil {
		return "", "", fmt.Errorf("invalid blob URL: %w", err)
	}
	if parsed.Scheme != "azblob" {
		return "", "", fmt.Errorf("unexpected scheme %q (want azblob)", parsed.Scheme)
	}
	container = parsed.Host
	blob = strings.TrimPrefix(parsed.Path, "/")
	if container == "" || blob == "" {
		return "", "", fmt.Errorf("blob URL must be azblob://container/blob, got %q", sourceURL)
	}
	return container, blob, nil
}
