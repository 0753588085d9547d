package core

import (
	"context"
	"io"
)

// AzureBlob defines operation for working with azure store
type AzureBlob interface {
	RecordUploader
	RecordSharer
	// UploadBytes uploads a buffer in blocks to a block blob.
	UploadBytes(ctx context.Context, path string, rawBytes []byte, mimeType string) (string, error)
	// DownloadStream downloads the data from the blob return result in io.Reader
	DownloadStream(ctx context.Context, path string) (io.ReadCloser, error)
}
